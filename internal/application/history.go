package application

import (
	"context"
	"fmt"
	"sort"

	"github.com/kmdb/kmdb-cli/internal/domain"
	"github.com/kmdb/kmdb-cli/internal/ports"
)

type HistoryService struct {
	repo  ports.HistoryRepository
	clock ports.Clock
}

func NewHistoryService(repo ports.HistoryRepository, clock ports.Clock) *HistoryService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &HistoryService{repo: repo, clock: clock}
}

// Record remembers a target that was accepted by the server. Passwords are
// never stored.
func (s *HistoryService) Record(ctx context.Context, target domain.Target) error {
	entry := domain.HistoryEntry{
		Asset:        target.Asset,
		CredentialID: target.CredentialID,
		Username:     target.Username,
		LastUsedAt:   s.clock.Now().UTC(),
		UseCount:     1,
	}

	entries, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}
	for _, existing := range entries {
		if existing.Key() == entry.Key() {
			entry.UseCount = existing.UseCount + 1
			break
		}
	}

	if err := s.repo.Record(ctx, entry); err != nil {
		return fmt.Errorf("record history: %w", err)
	}
	return nil
}

// List returns entries most recent first.
func (s *HistoryService) List(ctx context.Context) ([]domain.HistoryEntry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].LastUsedAt.After(entries[j].LastUsedAt)
	})
	return entries, nil
}

func (s *HistoryService) Last(ctx context.Context) (domain.HistoryEntry, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return domain.HistoryEntry{}, err
	}
	if len(entries) == 0 {
		return domain.HistoryEntry{}, domain.ErrHistoryEmpty
	}
	return entries[0], nil
}
