package inventory

import (
	"math"

	"github.com/jhoicas/pos-ledger-api/internal/domain"
)

// MaxStock tope de stock y de cualquier cantidad; items.stock es INTEGER.
const MaxStock = math.MaxInt32

// StockChange stock antes y después de aplicar un delta.
type StockChange struct {
	Old int
	New int
}

// Delta cambio con signo.
func (c StockChange) Delta() int { return c.New - c.Old }

// ValidQuantity indica si q está en 1..MaxStock.
func ValidQuantity(q int) bool { return q > 0 && q <= MaxStock }

// Units perUnit*quantity; ok=false si algún factor no es válido o el producto pasa de MaxStock.
func Units(perUnit, quantity int) (int, bool) {
	if !ValidQuantity(perUnit) || !ValidQuantity(quantity) || perUnit > MaxStock/quantity {
		return 0, false
	}
	return perUnit * quantity, true
}

// ApplyDelta calcula el nuevo stock; falla con NegativeStockError si quedaría < 0 y con
// ValidationError si el delta o el resultado pasan de MaxStock.
func ApplyDelta(itemID string, current, delta int) (StockChange, error) {
	if delta > MaxStock || delta < -MaxStock {
		return StockChange{}, domain.Invalid("quantity", "cantidad fuera de rango")
	}
	next := current + delta
	if next < 0 {
		return StockChange{}, &domain.NegativeStockError{ItemID: itemID, Current: current, Delta: delta}
	}
	if next > MaxStock {
		return StockChange{}, domain.Invalid("quantity", "el stock resultante excede el máximo")
	}
	return StockChange{Old: current, New: next}, nil
}
