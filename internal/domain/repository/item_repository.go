package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
)

// ItemRepository puerto de persistencia para Item.
// Stock y costo solo se cambian con UpdateStock/UpdateStockAndCost desde el ledger.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE). nil si no existe.
	GetForUpdate(ctx context.Context, id string) (*entity.Item, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	UpdateStock(ctx context.Context, id string, stock int) error
	UpdateStockAndCost(ctx context.Context, id string, stock int, cost decimal.Decimal) error
}
