package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, category_id, sku, name, price, cost, stock, has_warranty, warranty_months, created_at, updated_at`

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(&it.ID, &it.CategoryID, &it.SKU, &it.Name, &it.Price, &it.Cost, &it.Stock,
		&it.HasWarranty, &it.WarrantyMonths, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Create persiste un nuevo ítem.
func (r *ItemRepo) Create(ctx context.Context, it *entity.Item) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO items (`+itemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		it.ID, it.CategoryID, it.SKU, it.Name, it.Price, it.Cost, it.Stock,
		it.HasWarranty, it.WarrantyMonths, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (r *ItemRepo) get(ctx context.Context, query, id string) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// GetByID obtiene un ítem por ID.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	return r.get(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
}

// GetForUpdate obtiene el ítem bloqueando la fila hasta el fin de la transacción.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.get(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1 FOR UPDATE`, id)
}

// List lista ítems por fecha de creación.
func (r *ItemRepo) List(ctx context.Context, limit, offset int) ([]*entity.Item, error) {
	rows, err := r.q.Query(ctx, `SELECT `+itemColumns+` FROM items ORDER BY created_at, id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", mapInvalidID(err))
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, mapInvalidID(rows.Err())
}

// Update actualiza datos de catálogo; stock y costo quedan fuera.
func (r *ItemRepo) Update(ctx context.Context, it *entity.Item) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE items SET category_id = $2, sku = $3, name = $4, price = $5,
			has_warranty = $6, warranty_months = $7, updated_at = $8
		WHERE id = $1`,
		it.ID, it.CategoryID, it.SKU, it.Name, it.Price, it.HasWarranty, it.WarrantyMonths, it.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("ítem", it.ID)
	}
	return nil
}

// UpdateStock fija el stock. Un valor negativo lo rechaza el CHECK.
func (r *ItemRepo) UpdateStock(ctx context.Context, id string, stock int) error {
	_, err := r.q.Exec(ctx, `UPDATE items SET stock = $2, updated_at = now() WHERE id = $1`, id, stock)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrNegativeStock
		}
		return fmt.Errorf("update item stock: %w", err)
	}
	return nil
}

// UpdateStockAndCost fija stock y costo promedio.
func (r *ItemRepo) UpdateStockAndCost(ctx context.Context, id string, stock int, cost decimal.Decimal) error {
	_, err := r.q.Exec(ctx, `UPDATE items SET stock = $2, cost = $3, updated_at = now() WHERE id = $1`, id, stock, cost)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrNegativeStock
		}
		return fmt.Errorf("update item stock/cost: %w", err)
	}
	return nil
}
