package entity

import "time"

// Warranty garantía de una unidad vendida.
type Warranty struct {
	ID             string
	SaleID         string
	SaleItemID     string
	ItemID         string
	CustomerID     string
	SerialNumber   string // opcional; único por ítem cuando existe
	WarrantyMonths int
	SoldAt         time.Time
	ExpiresAt      time.Time
}

// ActiveAt indica si la garantía sigue vigente en t.
func (w *Warranty) ActiveAt(t time.Time) bool {
	return !t.After(w.ExpiresAt)
}
