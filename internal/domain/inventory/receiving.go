package inventory

import "github.com/jhoicas/pos-ledger-api/internal/domain/entity"

// ReceiptLine cantidad acumulada recibida informada para una línea de OC.
type ReceiptLine struct {
	PurchaseOrderItemID string
	ReceivedCumulative  int
}

// QuantityToAdd max(0, acumulado - recibido previamente).
func QuantityToAdd(line entity.PurchaseOrderItem, cumulative int) int {
	if d := cumulative - line.ReceivedQuantity; d > 0 {
		return d
	}
	return 0
}

// DerivePOStatus received si todas las líneas están completas; partially_received si alguna
// recibió algo; si nada se ha recibido conserva el estado actual.
func DerivePOStatus(current string, lines []entity.PurchaseOrderItem) string {
	if len(lines) == 0 {
		return current
	}
	all, some := true, false
	for _, l := range lines {
		if l.ReceivedQuantity != l.Quantity {
			all = false
		}
		if l.ReceivedQuantity > 0 {
			some = true
		}
	}
	switch {
	case all:
		return entity.POReceived
	case some:
		return entity.POPartiallyReceived
	}
	return current
}
