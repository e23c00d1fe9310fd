package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
)

var (
	_ repository.SaleRepository     = (*SaleRepo)(nil)
	_ repository.WarrantyRepository = (*WarrantyRepo)(nil)
)

// SaleRepo ventas y líneas.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la cabecera de la venta.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (id, customer_id, user_id, session_id, payment_method, bank_account_id,
			subtotal, total, amount_paid, change_given, status, parent_sale_id, refund_source,
			refund_bank_account_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		s.ID, nullable(s.CustomerID), s.UserID, s.SessionID, s.PaymentMethod, nullable(s.BankAccountID),
		s.Subtotal, s.Total, s.AmountPaid, s.ChangeGiven, s.Status, nullable(s.ParentSaleID), s.RefundSource,
		nullable(s.RefundBankAccountID), s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem inserta una línea.
func (r *SaleRepo) CreateItem(ctx context.Context, it *entity.SaleItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sale_items (id, sale_id, item_id, quantity, price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		it.ID, it.SaleID, it.ItemID, it.Quantity, it.Price, it.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert sale_item: %w", err)
	}
	return nil
}

// GetByID venta con líneas y garantías.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	var s entity.Sale
	var customerID, bankID, parentID, refundBankID *string
	err := r.q.QueryRow(ctx, `
		SELECT id, customer_id, user_id, session_id, payment_method, bank_account_id,
			subtotal, total, amount_paid, change_given, status, parent_sale_id, refund_source,
			refund_bank_account_id, created_at
		FROM sales WHERE id = $1`, id).Scan(
		&s.ID, &customerID, &s.UserID, &s.SessionID, &s.PaymentMethod, &bankID,
		&s.Subtotal, &s.Total, &s.AmountPaid, &s.ChangeGiven, &s.Status, &parentID, &s.RefundSource,
		&refundBankID, &s.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	s.CustomerID = deref(customerID)
	s.BankAccountID = deref(bankID)
	s.ParentSaleID = deref(parentID)
	s.RefundBankAccountID = deref(refundBankID)

	rows, err := r.q.Query(ctx, `SELECT id, sale_id, item_id, quantity, price, subtotal FROM sale_items WHERE sale_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("list sale_items: %w", mapInvalidID(err))
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ItemID, &it.Quantity, &it.Price, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan sale_item: %w", err)
		}
		s.Items = append(s.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	warranties, err := NewWarrantyRepository(r.q).ListBySale(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, w := range warranties {
		s.Warranties = append(s.Warranties, *w)
	}
	return &s, nil
}

// WarrantyRepo garantías por unidad.
type WarrantyRepo struct {
	q Querier
}

// NewWarrantyRepository construye el adaptador.
func NewWarrantyRepository(q Querier) *WarrantyRepo {
	return &WarrantyRepo{q: q}
}

const warrantyColumns = `id, sale_id, sale_item_id, item_id, customer_id, serial_number, warranty_months, sold_at, expires_at`

// Create inserta la garantía. Serial repetido para el ítem => ConflictError.
func (r *WarrantyRepo) Create(ctx context.Context, w *entity.Warranty) error {
	_, err := r.q.Exec(ctx, `INSERT INTO warranties (`+warrantyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		w.ID, w.SaleID, w.SaleItemID, w.ItemID, nullable(w.CustomerID), nullable(w.SerialNumber),
		w.WarrantyMonths, w.SoldAt, w.ExpiresAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return mapUniqueViolation(err)
		}
		return fmt.Errorf("insert warranty: %w", err)
	}
	return nil
}

// SerialExists indica si el serial ya fue vendido para el ítem.
func (r *WarrantyRepo) SerialExists(ctx context.Context, itemID, serial string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM warranties WHERE item_id = $1 AND serial_number = $2)`,
		itemID, serial).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("serial exists: %w", err)
	}
	return exists, nil
}

func (r *WarrantyRepo) list(ctx context.Context, where string, arg string) ([]*entity.Warranty, error) {
	rows, err := r.q.Query(ctx, `SELECT `+warrantyColumns+` FROM warranties WHERE `+where+` ORDER BY sold_at, id`, arg)
	if err != nil {
		return nil, fmt.Errorf("list warranties: %w", mapInvalidID(err))
	}
	defer rows.Close()
	var list []*entity.Warranty
	for rows.Next() {
		var w entity.Warranty
		var customerID, serial *string
		if err := rows.Scan(&w.ID, &w.SaleID, &w.SaleItemID, &w.ItemID, &customerID, &serial,
			&w.WarrantyMonths, &w.SoldAt, &w.ExpiresAt); err != nil {
			return nil, fmt.Errorf("scan warranty: %w", err)
		}
		w.CustomerID = deref(customerID)
		w.SerialNumber = deref(serial)
		list = append(list, &w)
	}
	return list, mapInvalidID(rows.Err())
}

// FindBySerial garantías con ese serial (puede repetirse entre ítems distintos).
func (r *WarrantyRepo) FindBySerial(ctx context.Context, serial string) ([]*entity.Warranty, error) {
	return r.list(ctx, `serial_number = $1`, serial)
}

// ListBySale garantías de una venta.
func (r *WarrantyRepo) ListBySale(ctx context.Context, saleID string) ([]*entity.Warranty, error) {
	return r.list(ctx, `sale_id = $1`, saleID)
}
