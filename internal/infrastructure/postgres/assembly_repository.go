package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
)

var (
	_ repository.AssemblyRepository        = (*AssemblyRepo)(nil)
	_ repository.StockAdjustmentRepository = (*StockAdjustmentRepo)(nil)
)

// AssemblyRepo ensambles y componentes consumidos.
type AssemblyRepo struct {
	q Querier
}

// NewAssemblyRepository construye el adaptador.
func NewAssemblyRepository(q Querier) *AssemblyRepo {
	return &AssemblyRepo{q: q}
}

// Create inserta el ensamble y sus componentes.
func (r *AssemblyRepo) Create(ctx context.Context, a *entity.Assembly) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO assemblies (id, final_item_id, quantity, unit_cost, notes, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.FinalItemID, a.Quantity, a.UnitCost, a.Notes, a.UserID, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert assembly: %w", err)
	}
	for _, it := range a.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO assembly_items (id, assembly_id, item_id, per_unit_quantity, quantity, unit_cost)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			it.ID, a.ID, it.ItemID, it.PerUnitQuantity, it.Quantity, it.UnitCost,
		)
		if err != nil {
			return fmt.Errorf("insert assembly item: %w", err)
		}
	}
	return nil
}

// GetByID ensamble con componentes.
func (r *AssemblyRepo) GetByID(ctx context.Context, id string) (*entity.Assembly, error) {
	var a entity.Assembly
	err := r.q.QueryRow(ctx, `
		SELECT id, final_item_id, quantity, unit_cost, notes, user_id, created_at
		FROM assemblies WHERE id = $1`, id).Scan(
		&a.ID, &a.FinalItemID, &a.Quantity, &a.UnitCost, &a.Notes, &a.UserID, &a.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get assembly: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, assembly_id, item_id, per_unit_quantity, quantity, unit_cost
		FROM assembly_items WHERE assembly_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("list assembly items: %w", mapInvalidID(err))
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.AssemblyItem
		if err := rows.Scan(&it.ID, &it.AssemblyID, &it.ItemID, &it.PerUnitQuantity, &it.Quantity, &it.UnitCost); err != nil {
			return nil, fmt.Errorf("scan assembly item: %w", err)
		}
		a.Items = append(a.Items, it)
	}
	return &a, mapInvalidID(rows.Err())
}

// StockAdjustmentRepo ajustes vigentes (borrar = revertido).
type StockAdjustmentRepo struct {
	q Querier
}

// NewStockAdjustmentRepository construye el adaptador.
func NewStockAdjustmentRepository(q Querier) *StockAdjustmentRepo {
	return &StockAdjustmentRepo{q: q}
}

const adjustmentColumns = `id, item_id, quantity_change, reason, notes, old_stock, new_stock, user_id, created_at`

// Create inserta el ajuste.
func (r *StockAdjustmentRepo) Create(ctx context.Context, a *entity.StockAdjustment) error {
	_, err := r.q.Exec(ctx, `INSERT INTO stock_adjustments (`+adjustmentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID, a.ItemID, a.QuantityChange, a.Reason, a.Notes, a.OldStock, a.NewStock, a.UserID, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock adjustment: %w", err)
	}
	return nil
}

// GetForUpdate ajuste bloqueado; nil si no existe o ya fue revertido.
func (r *StockAdjustmentRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockAdjustment, error) {
	var a entity.StockAdjustment
	err := r.q.QueryRow(ctx, `SELECT `+adjustmentColumns+` FROM stock_adjustments WHERE id = $1 FOR UPDATE`, id).Scan(
		&a.ID, &a.ItemID, &a.QuantityChange, &a.Reason, &a.Notes, &a.OldStock, &a.NewStock, &a.UserID, &a.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock adjustment: %w", err)
	}
	return &a, nil
}

// ListByItem ajustes vigentes del ítem.
func (r *StockAdjustmentRepo) ListByItem(ctx context.Context, itemID string) ([]*entity.StockAdjustment, error) {
	rows, err := r.q.Query(ctx, `SELECT `+adjustmentColumns+` FROM stock_adjustments WHERE item_id = $1 ORDER BY created_at, id`, itemID)
	if err != nil {
		return nil, fmt.Errorf("list stock adjustments: %w", mapInvalidID(err))
	}
	defer rows.Close()
	var list []*entity.StockAdjustment
	for rows.Next() {
		var a entity.StockAdjustment
		if err := rows.Scan(&a.ID, &a.ItemID, &a.QuantityChange, &a.Reason, &a.Notes, &a.OldStock, &a.NewStock, &a.UserID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock adjustment: %w", err)
		}
		list = append(list, &a)
	}
	return list, mapInvalidID(rows.Err())
}

// Delete borra el ajuste.
func (r *StockAdjustmentRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock_adjustments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock adjustment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("ajuste de stock", id)
	}
	return nil
}
