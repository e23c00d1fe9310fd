package cashier

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
)

// MoneyScale decimales de los montos de venta.
const MoneyScale = 2

// PricedLine línea del carrito con precio resuelto.
type PricedLine struct {
	ItemID   string
	Quantity int
	Price    decimal.Decimal
}

// Subtotal price * quantity.
func (l PricedLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))).Round(MoneyScale)
}

// Totals montos calculados de una venta.
type Totals struct {
	Subtotal    decimal.Decimal
	Total       decimal.Decimal
	AmountPaid  decimal.Decimal
	ChangeGiven decimal.Decimal
}

// ComputeTotals subtotal = Σ price*qty; total = subtotal (sin impuestos ni descuentos).
// En efectivo amountPaid es obligatorio y cubre el total; en bank/credit se paga el total exacto.
func ComputeTotals(lines []PricedLine, method string, amountPaid *decimal.Decimal) (Totals, error) {
	var t Totals
	t.Subtotal = decimal.Zero
	for _, l := range lines {
		t.Subtotal = t.Subtotal.Add(l.Subtotal())
	}
	t.Total = t.Subtotal
	switch method {
	case entity.PaymentCash:
		if amountPaid == nil {
			return Totals{}, domain.Invalid("amount_paid", "requerido en pago en efectivo")
		}
		if amountPaid.LessThan(t.Total) {
			return Totals{}, domain.Invalid("amount_paid", "el monto recibido no cubre el total")
		}
		t.AmountPaid = amountPaid.Round(MoneyScale)
		t.ChangeGiven = decimal.Max(decimal.Zero, t.AmountPaid.Sub(t.Total))
	case entity.PaymentBank, entity.PaymentCredit:
		t.AmountPaid = t.Total
		t.ChangeGiven = decimal.Zero
	default:
		return Totals{}, domain.Invalid("payment_method", "debe ser cash, bank o credit")
	}
	return t, nil
}
