package ports

import (
	"context"

	"github.com/kmdb/kmdb-cli/internal/domain"
)

type HistoryRepository interface {
	List(ctx context.Context) ([]domain.HistoryEntry, error)
	Record(ctx context.Context, entry domain.HistoryEntry) error
}
