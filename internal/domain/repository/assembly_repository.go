package repository

import (
	"context"

	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
)

// AssemblyRepository ensambles (inmutables).
type AssemblyRepository interface {
	Create(ctx context.Context, a *entity.Assembly) error
	GetByID(ctx context.Context, id string) (*entity.Assembly, error)
}

// StockAdjustmentRepository ajustes de stock.
type StockAdjustmentRepository interface {
	Create(ctx context.Context, a *entity.StockAdjustment) error
	GetForUpdate(ctx context.Context, id string) (*entity.StockAdjustment, error)
	ListByItem(ctx context.Context, itemID string) ([]*entity.StockAdjustment, error)
	Delete(ctx context.Context, id string) error
}
