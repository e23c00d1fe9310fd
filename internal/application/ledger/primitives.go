package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/cashier"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
)

// StockResult ítem bloqueado y su stock antes/después.
type StockResult struct {
	Item *entity.Item
	inventory.StockChange
}

// ReceiptResult resultado de una entrada con costo promedio.
type ReceiptResult struct {
	Item *entity.Item
	inventory.StockChange
	OldCost decimal.Decimal
	NewCost decimal.Decimal
}

// AdjustStock bloquea el ítem (SELECT FOR UPDATE), aplica delta y persiste.
// Falla con NegativeStockError si el stock quedaría negativo.
func AdjustStock(ctx context.Context, r repository.Repos, itemID string, delta int) (StockResult, error) {
	item, err := lockItem(ctx, r, itemID)
	if err != nil {
		return StockResult{}, err
	}
	change, err := inventory.ApplyDelta(item.ID, item.Stock, delta)
	if err != nil {
		return StockResult{}, err
	}
	if err := r.Items.UpdateStock(ctx, item.ID, change.New); err != nil {
		return StockResult{}, err
	}
	item.Stock = change.New
	return StockResult{Item: item, StockChange: change}, nil
}

// ReceiveStock entrada de mercancía: suma cantidad y recalcula costo promedio ponderado.
func ReceiveStock(ctx context.Context, r repository.Repos, itemID string, quantity int, unitPrice decimal.Decimal) (ReceiptResult, error) {
	if quantity <= 0 {
		return ReceiptResult{}, domain.Invalid("quantity", "la entrada debe ser positiva")
	}
	item, err := lockItem(ctx, r, itemID)
	if err != nil {
		return ReceiptResult{}, err
	}
	change, err := inventory.ApplyDelta(item.ID, item.Stock, quantity)
	if err != nil {
		return ReceiptResult{}, err
	}
	newCost := inventory.CostCalculator(item.Stock, item.Cost, quantity, unitPrice)
	if err := r.Items.UpdateStockAndCost(ctx, item.ID, change.New, newCost); err != nil {
		return ReceiptResult{}, err
	}
	res := ReceiptResult{Item: item, StockChange: change, OldCost: item.Cost, NewCost: newCost}
	item.Stock = change.New
	item.Cost = newCost
	return res, nil
}

// SetStockAndCost fija stock y costo de un ítem ya bloqueado (ensamble).
func SetStockAndCost(ctx context.Context, r repository.Repos, item *entity.Item, delta int, cost decimal.Decimal) (inventory.StockChange, error) {
	change, err := inventory.ApplyDelta(item.ID, item.Stock, delta)
	if err != nil {
		return inventory.StockChange{}, err
	}
	if err := r.Items.UpdateStockAndCost(ctx, item.ID, change.New, cost); err != nil {
		return inventory.StockChange{}, err
	}
	item.Stock = change.New
	item.Cost = cost
	return change, nil
}

// AdjustCashSession incrementa cash_sales o debt_repaid de una sesión abierta y
// recalcula expected_cash. Devuelve la sesión actualizada y old/new del campo.
func AdjustCashSession(ctx context.Context, r repository.Repos, sessionID string, field entity.SessionField, delta decimal.Decimal) (*entity.CashRegisterSession, decimal.Decimal, decimal.Decimal, error) {
	s, err := r.Sessions.GetForUpdate(ctx, sessionID)
	if err != nil {
		return nil, decimal.Zero, decimal.Zero, err
	}
	if s == nil {
		return nil, decimal.Zero, decimal.Zero, domain.NotFound("sesión de caja", sessionID)
	}
	if !s.IsOpen() {
		return nil, decimal.Zero, decimal.Zero, domain.ErrNoOpenSession
	}
	oldV, newV, err := cashier.Increment(s, field, delta)
	if err != nil {
		return nil, decimal.Zero, decimal.Zero, err
	}
	if err := r.Sessions.Update(ctx, s); err != nil {
		return nil, decimal.Zero, decimal.Zero, err
	}
	return s, oldV, newV, nil
}

// AdjustCustomerDebt suma delta (puede ser negativo) al saldo de deuda.
// Rechaza un saldo negativo aunque el caller ya lo haya validado.
func AdjustCustomerDebt(ctx context.Context, r repository.Repos, customerID string, delta decimal.Decimal) (*entity.Customer, decimal.Decimal, decimal.Decimal, error) {
	c, err := r.Customers.GetForUpdate(ctx, customerID)
	if err != nil {
		return nil, decimal.Zero, decimal.Zero, err
	}
	if c == nil {
		return nil, decimal.Zero, decimal.Zero, domain.NotFound("cliente", customerID)
	}
	oldV := c.DebtBalance
	newV := oldV.Add(delta)
	if newV.IsNegative() {
		return nil, decimal.Zero, decimal.Zero, domain.Invalid("amount", "la deuda del cliente no puede quedar negativa")
	}
	if err := r.Customers.UpdateDebt(ctx, c.ID, newV); err != nil {
		return nil, decimal.Zero, decimal.Zero, err
	}
	c.DebtBalance = newV
	return c, oldV, newV, nil
}

func lockItem(ctx context.Context, r repository.Repos, itemID string) (*entity.Item, error) {
	item, err := r.Items.GetForUpdate(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.NotFound("ítem", itemID)
	}
	return item, nil
}
