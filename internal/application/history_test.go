package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kmdb/kmdb-cli/internal/domain"
	"github.com/kmdb/kmdb-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHistoryRecordNewEntry(t *testing.T) {
	repo := mocks.NewMockHistoryRepository(t)
	clock := mocks.NewMockClock(t)
	service := NewHistoryService(repo, clock)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock.EXPECT().Now().Return(now)
	repo.EXPECT().List(mockAnyContext()).Return(nil, nil)
	repo.EXPECT().Record(mockAnyContext(), domain.HistoryEntry{
		Asset:      domain.Asset{ID: "7", Name: "db-1"},
		Username:   "root",
		LastUsedAt: now,
		UseCount:   1,
	}).Return(nil)

	err := service.Record(context.Background(), domain.Target{
		Asset:    domain.Asset{ID: "7", Name: "db-1"},
		Username: "root",
		Password: "never-stored",
	})
	require.NoError(t, err)
}

func TestHistoryRecordIncrementsUseCount(t *testing.T) {
	repo := mocks.NewMockHistoryRepository(t)
	clock := mocks.NewMockClock(t)
	service := NewHistoryService(repo, clock)

	now := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)
	asset := domain.Asset{ID: "7", Name: "db-1"}
	clock.EXPECT().Now().Return(now)
	repo.EXPECT().List(mockAnyContext()).Return([]domain.HistoryEntry{
		{Asset: asset, CredentialID: "c1", UseCount: 4, LastUsedAt: now.Add(-time.Hour)},
	}, nil)
	repo.EXPECT().Record(mockAnyContext(), domain.HistoryEntry{
		Asset:        asset,
		CredentialID: "c1",
		LastUsedAt:   now,
		UseCount:     5,
	}).Return(nil)

	require.NoError(t, service.Record(context.Background(), domain.Target{Asset: asset, CredentialID: "c1"}))
}

func TestHistoryRecordPropagatesErrors(t *testing.T) {
	repo := mocks.NewMockHistoryRepository(t)
	clock := mocks.NewMockClock(t)
	service := NewHistoryService(repo, clock)

	boom := errors.New("disk full")
	clock.EXPECT().Now().Return(time.Now())
	repo.EXPECT().List(mockAnyContext()).Return(nil, nil)
	repo.EXPECT().Record(mockAnyContext(), mock.Anything).Return(boom)

	err := service.Record(context.Background(), domain.Target{Asset: domain.Asset{ID: "1"}, CredentialID: "c"})
	require.ErrorIs(t, err, boom)
}

func TestHistoryListNewestFirstAndLast(t *testing.T) {
	repo := mocks.NewMockHistoryRepository(t)
	service := NewHistoryService(repo, nil)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.EXPECT().List(mockAnyContext()).Return([]domain.HistoryEntry{
		{Asset: domain.Asset{ID: "1"}, LastUsedAt: base},
		{Asset: domain.Asset{ID: "2"}, LastUsedAt: base.Add(2 * time.Hour)},
		{Asset: domain.Asset{ID: "3"}, LastUsedAt: base.Add(time.Hour)},
	}, nil)

	entries, err := service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, domain.AssetID("2"), entries[0].Asset.ID)
	assert.Equal(t, domain.AssetID("3"), entries[1].Asset.ID)

	last, err := service.Last(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.AssetID("2"), last.Asset.ID)
}

func TestHistoryLastEmpty(t *testing.T) {
	repo := mocks.NewMockHistoryRepository(t)
	service := NewHistoryService(repo, nil)
	repo.EXPECT().List(mockAnyContext()).Return(nil, nil)

	_, err := service.Last(context.Background())
	require.ErrorIs(t, err, domain.ErrHistoryEmpty)
}
