package cashier

import (
	"time"

	"github.com/jhoicas/pos-ledger-api/internal/domain"
)

// AddMonths suma meses sin desbordar: 31-ene + 1 mes = 28/29-feb (no 2/3-mar).
func AddMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last := daysIn(first.Year(), first.Month(), t.Location())
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// WarrantyExpiry sold_at + warranty_months.
func WarrantyExpiry(soldAt time.Time, months int) time.Time {
	return AddMonths(soldAt, months)
}

// CheckSerials valida los seriales de una línea: no más que unidades vendidas y sin
// repetir dentro de la misma venta para el mismo ítem. seen se comparte entre líneas.
func CheckSerials(itemID string, quantity int, serials []string, seen map[string]struct{}) error {
	if len(serials) > quantity {
		return domain.Invalid("serial_numbers", "hay más seriales que unidades vendidas")
	}
	for _, s := range serials {
		if s == "" {
			continue
		}
		key := itemID + "\x00" + s
		if _, dup := seen[key]; dup {
			return domain.Invalid("serial_numbers", "serial repetido en la venta: "+s)
		}
		seen[key] = struct{}{}
	}
	return nil
}
