package repository

import (
	"context"

	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
}
