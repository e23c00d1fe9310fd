package repository

import (
	"context"

	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
)

// ItemLogRepository append-only: no hay Update ni Delete.
type ItemLogRepository interface {
	Append(ctx context.Context, log *entity.ItemLog) error
	ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.ItemLog, error)
	ListByReference(ctx context.Context, ref entity.Reference) ([]*entity.ItemLog, error)
}
