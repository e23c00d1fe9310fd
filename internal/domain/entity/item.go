package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo vendible o un componente de ensamble.
// Cost es costo promedio ponderado; Stock y Cost solo cambian vía el ledger.
type Item struct {
	ID             string
	CategoryID     string
	SKU            string
	Name           string
	Price          decimal.Decimal // precio de venta
	Cost           decimal.Decimal // costo unitario promedio ponderado
	Stock          int             // invariante: >= 0
	HasWarranty    bool
	WarrantyMonths int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CarriesWarranty indica si cada unidad vendida genera una garantía.
func (i *Item) CarriesWarranty() bool {
	return i.HasWarranty && i.WarrantyMonths > 0
}
