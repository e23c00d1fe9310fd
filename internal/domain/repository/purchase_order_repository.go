package repository

import (
	"context"

	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
)

// PurchaseOrderRepository órdenes de compra con sus líneas.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	// GetForUpdate bloquea la cabecera y carga las líneas.
	GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	// Update guarda cabecera; ReplaceItems reemplaza las líneas (solo en pending).
	Update(ctx context.Context, po *entity.PurchaseOrder) error
	ReplaceItems(ctx context.Context, poID string, items []entity.PurchaseOrderItem) error
	UpdateItemReceived(ctx context.Context, itemID string, received int) error
	Delete(ctx context.Context, id string) error
}
