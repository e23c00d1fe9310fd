package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo órdenes de compra y sus líneas.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador.
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const poColumns = `id, supplier, status, notes, created_by, approved_by, approved_at, received_at, created_at, updated_at`

// Create inserta cabecera y líneas.
func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	_, err := r.q.Exec(ctx, `INSERT INTO purchase_orders (`+poColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		po.ID, po.Supplier, po.Status, po.Notes, po.CreatedBy, nullable(po.ApprovedBy),
		po.ApprovedAt, po.ReceivedAt, po.CreatedAt, po.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return r.insertItems(ctx, po.ID, po.Items)
}

func (r *PurchaseOrderRepo) insertItems(ctx context.Context, poID string, items []entity.PurchaseOrderItem) error {
	for _, l := range items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO purchase_order_items (id, purchase_order_id, item_id, quantity, unit_price, received_quantity)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			l.ID, poID, l.ItemID, l.Quantity, l.UnitPrice, l.ReceivedQuantity,
		)
		if err != nil {
			return fmt.Errorf("insert purchase order item: %w", err)
		}
	}
	return nil
}

func (r *PurchaseOrderRepo) load(ctx context.Context, query, id string) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	var approvedBy *string
	err := r.q.QueryRow(ctx, query, id).Scan(&po.ID, &po.Supplier, &po.Status, &po.Notes, &po.CreatedBy,
		&approvedBy, &po.ApprovedAt, &po.ReceivedAt, &po.CreatedAt, &po.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	po.ApprovedBy = deref(approvedBy)

	rows, err := r.q.Query(ctx, `
		SELECT id, purchase_order_id, item_id, quantity, unit_price, received_quantity
		FROM purchase_order_items WHERE purchase_order_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("list purchase order items: %w", mapInvalidID(err))
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.PurchaseOrderItem
		if err := rows.Scan(&l.ID, &l.PurchaseOrderID, &l.ItemID, &l.Quantity, &l.UnitPrice, &l.ReceivedQuantity); err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		po.Items = append(po.Items, l)
	}
	return &po, mapInvalidID(rows.Err())
}

// GetByID OC con líneas.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.load(ctx, `SELECT `+poColumns+` FROM purchase_orders WHERE id = $1`, id)
}

// GetForUpdate bloquea la cabecera; las líneas solo se tocan con la cabecera bloqueada.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.load(ctx, `SELECT `+poColumns+` FROM purchase_orders WHERE id = $1 FOR UPDATE`, id)
}

// Update guarda la cabecera.
func (r *PurchaseOrderRepo) Update(ctx context.Context, po *entity.PurchaseOrder) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE purchase_orders SET supplier = $2, status = $3, notes = $4, approved_by = $5,
			approved_at = $6, received_at = $7, updated_at = $8
		WHERE id = $1`,
		po.ID, po.Supplier, po.Status, po.Notes, nullable(po.ApprovedBy), po.ApprovedAt, po.ReceivedAt, po.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("orden de compra", po.ID)
	}
	return nil
}

// ReplaceItems borra y reinserta las líneas.
func (r *PurchaseOrderRepo) ReplaceItems(ctx context.Context, poID string, items []entity.PurchaseOrderItem) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM purchase_order_items WHERE purchase_order_id = $1`, poID); err != nil {
		return fmt.Errorf("delete purchase order items: %w", err)
	}
	return r.insertItems(ctx, poID, items)
}

// UpdateItemReceived fija la cantidad acumulada recibida de una línea.
func (r *PurchaseOrderRepo) UpdateItemReceived(ctx context.Context, itemID string, received int) error {
	tag, err := r.q.Exec(ctx, `UPDATE purchase_order_items SET received_quantity = $2 WHERE id = $1`, itemID, received)
	if err != nil {
		if isCheckViolation(err) {
			return domain.Invalid("received_quantity", "fuera de rango")
		}
		return fmt.Errorf("update received quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("línea de orden de compra", itemID)
	}
	return nil
}

// Delete elimina la OC (las líneas caen por ON DELETE CASCADE).
func (r *PurchaseOrderRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM purchase_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete purchase order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("orden de compra", id)
	}
	return nil
}
