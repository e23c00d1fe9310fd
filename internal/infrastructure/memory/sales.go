package memory

import (
	"context"

	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
)

type saleRepo struct{ base }

func (r *saleRepo) Create(_ context.Context, sale *entity.Sale) error {
	return r.do(func(st *state) error {
		if _, ok := st.sales[sale.ID]; ok {
			return domain.ErrDuplicate
		}
		head := *sale
		head.Items = nil
		head.Warranties = nil
		st.sales[sale.ID] = head
		return nil
	})
}

func (r *saleRepo) CreateItem(_ context.Context, item *entity.SaleItem) error {
	return r.do(func(st *state) error {
		if _, ok := st.sales[item.SaleID]; !ok {
			return domain.NotFound("venta", item.SaleID)
		}
		st.saleItems = append(st.saleItems, *item)
		return nil
	})
}

func (r *saleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.do(func(st *state) error {
		s, ok := st.sales[id]
		if !ok {
			return nil
		}
		for _, it := range st.saleItems {
			if it.SaleID == id {
				s.Items = append(s.Items, it)
			}
		}
		for _, w := range st.warranties {
			if w.SaleID == id {
				s.Warranties = append(s.Warranties, w)
			}
		}
		out = &s
		return nil
	})
	return out, err
}

type warrantyRepo struct{ base }

func serialTaken(st *state, itemID, serial string) bool {
	for _, w := range st.warranties {
		if w.ItemID == itemID && w.SerialNumber == serial {
			return true
		}
	}
	return false
}

func (r *warrantyRepo) Create(_ context.Context, w *entity.Warranty) error {
	return r.do(func(st *state) error {
		if w.SerialNumber != "" && serialTaken(st, w.ItemID, w.SerialNumber) {
			return domain.Conflict("el serial %s ya está registrado", w.SerialNumber)
		}
		st.warranties = append(st.warranties, *w)
		return nil
	})
}

func (r *warrantyRepo) SerialExists(_ context.Context, itemID, serial string) (bool, error) {
	var found bool
	err := r.do(func(st *state) error {
		found = serialTaken(st, itemID, serial)
		return nil
	})
	return found, err
}

func (r *warrantyRepo) list(pred func(entity.Warranty) bool) ([]*entity.Warranty, error) {
	var out []*entity.Warranty
	err := r.do(func(st *state) error {
		for _, w := range st.warranties {
			if pred(w) {
				w := w
				out = append(out, &w)
			}
		}
		return nil
	})
	return out, err
}

func (r *warrantyRepo) FindBySerial(_ context.Context, serial string) ([]*entity.Warranty, error) {
	return r.list(func(w entity.Warranty) bool { return w.SerialNumber == serial })
}

func (r *warrantyRepo) ListBySale(_ context.Context, saleID string) ([]*entity.Warranty, error) {
	return r.list(func(w entity.Warranty) bool { return w.SaleID == saleID })
}
