package cashier

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
)

// Increment suma delta al campo acumulativo y recalcula el esperado.
// Devuelve el valor anterior y el nuevo del campo.
func Increment(s *entity.CashRegisterSession, field entity.SessionField, delta decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	if delta.IsNegative() {
		return decimal.Zero, decimal.Zero, domain.Invalid(string(field), "el incremento no puede ser negativo")
	}
	var target *decimal.Decimal
	switch field {
	case entity.SessionCashSales:
		target = &s.CashSales
	case entity.SessionDebtRepaid:
		target = &s.DebtRepaid
	default:
		return decimal.Zero, decimal.Zero, domain.Invalid("field", "campo de sesión desconocido: "+string(field))
	}
	old := *target
	*target = old.Add(delta)
	s.Recompute()
	return old, *target, nil
}

// ApplyTotals fija los valores corregidos de una sesión cerrada manteniendo el invariante.
func ApplyTotals(s *entity.CashRegisterSession, t entity.SessionTotals) error {
	if t.OpeningBalance.IsNegative() || t.CashSales.IsNegative() || t.DebtRepaid.IsNegative() || t.ActualCash.IsNegative() {
		return domain.Invalid("totals", "los montos no pueden ser negativos")
	}
	s.OpeningBalance = t.OpeningBalance
	s.CashSales = t.CashSales
	s.DebtRepaid = t.DebtRepaid
	actual := t.ActualCash
	s.ActualCash = &actual
	s.Recompute()
	return nil
}
