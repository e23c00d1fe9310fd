package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de orden de compra.
const (
	POPending           = "pending"
	POApproved          = "approved"
	POPartiallyReceived = "partially_received"
	POReceived          = "received"
)

// PurchaseOrder orden de compra a proveedor. El estado tras aprobar se deriva de las líneas.
type PurchaseOrder struct {
	ID         string
	Supplier   string
	Status     string
	Notes      string
	CreatedBy  string
	ApprovedBy string
	ApprovedAt *time.Time
	ReceivedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Items []PurchaseOrderItem
}

// PurchaseOrderItem línea de OC. Invariante: ReceivedQuantity <= Quantity.
type PurchaseOrderItem struct {
	ID               string
	PurchaseOrderID  string
	ItemID           string
	Quantity         int
	UnitPrice        decimal.Decimal
	ReceivedQuantity int
}

// Pending cantidad aún no recibida.
func (l *PurchaseOrderItem) Pending() int { return l.Quantity - l.ReceivedQuantity }

// Total suma de quantity * unit_price.
func (po *PurchaseOrder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range po.Items {
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// Editable solo mientras está pendiente.
func (po *PurchaseOrder) Editable() bool { return po.Status == POPending }

// Receivable acepta recepciones.
func (po *PurchaseOrder) Receivable() bool {
	return po.Status == POApproved || po.Status == POPartiallyReceived
}
