package repository

import (
	"context"

	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
)

// SaleRepository ventas y sus líneas.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	CreateItem(ctx context.Context, item *entity.SaleItem) error
	// GetByID carga la venta con Items y Warranties.
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
}

// WarrantyRepository garantías por unidad vendida.
type WarrantyRepository interface {
	Create(ctx context.Context, w *entity.Warranty) error
	SerialExists(ctx context.Context, itemID, serial string) (bool, error)
	FindBySerial(ctx context.Context, serial string) ([]*entity.Warranty, error)
	ListBySale(ctx context.Context, saleID string) ([]*entity.Warranty, error)
}
