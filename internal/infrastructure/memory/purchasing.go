package memory

import (
	"context"

	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
)

func copyOrder(po entity.PurchaseOrder) entity.PurchaseOrder {
	if po.ApprovedAt != nil {
		t := *po.ApprovedAt
		po.ApprovedAt = &t
	}
	if po.ReceivedAt != nil {
		t := *po.ReceivedAt
		po.ReceivedAt = &t
	}
	po.Items = nil
	return po
}

func copyAssembly(a entity.Assembly) entity.Assembly {
	a.Items = append([]entity.AssemblyItem(nil), a.Items...)
	return a
}

type purchaseOrderRepo struct{ base }

func (r *purchaseOrderRepo) Create(_ context.Context, po *entity.PurchaseOrder) error {
	return r.do(func(st *state) error {
		if _, ok := st.orders[po.ID]; ok {
			return domain.ErrDuplicate
		}
		st.orders[po.ID] = copyOrder(*po)
		for _, l := range po.Items {
			l.PurchaseOrderID = po.ID
			st.orderItems = append(st.orderItems, l)
		}
		return nil
	})
}

func loadOrder(st *state, id string) *entity.PurchaseOrder {
	head, ok := st.orders[id]
	if !ok {
		return nil
	}
	po := copyOrder(head)
	for _, l := range st.orderItems {
		if l.PurchaseOrderID == id {
			po.Items = append(po.Items, l)
		}
	}
	return &po
}

func (r *purchaseOrderRepo) GetByID(_ context.Context, id string) (*entity.PurchaseOrder, error) {
	var out *entity.PurchaseOrder
	err := r.do(func(st *state) error {
		out = loadOrder(st, id)
		return nil
	})
	return out, err
}

func (r *purchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *purchaseOrderRepo) Update(_ context.Context, po *entity.PurchaseOrder) error {
	return r.do(func(st *state) error {
		if _, ok := st.orders[po.ID]; !ok {
			return domain.NotFound("orden de compra", po.ID)
		}
		st.orders[po.ID] = copyOrder(*po)
		return nil
	})
}

func (r *purchaseOrderRepo) ReplaceItems(_ context.Context, poID string, items []entity.PurchaseOrderItem) error {
	return r.do(func(st *state) error {
		if _, ok := st.orders[poID]; !ok {
			return domain.NotFound("orden de compra", poID)
		}
		kept := st.orderItems[:0:0]
		for _, l := range st.orderItems {
			if l.PurchaseOrderID != poID {
				kept = append(kept, l)
			}
		}
		for _, l := range items {
			l.PurchaseOrderID = poID
			kept = append(kept, l)
		}
		st.orderItems = kept
		return nil
	})
}

func (r *purchaseOrderRepo) UpdateItemReceived(_ context.Context, itemID string, received int) error {
	return r.do(func(st *state) error {
		for i := range st.orderItems {
			if st.orderItems[i].ID != itemID {
				continue
			}
			if received < 0 || received > st.orderItems[i].Quantity {
				return domain.Invalid("received_quantity", "fuera de rango")
			}
			st.orderItems[i].ReceivedQuantity = received
			return nil
		}
		return domain.NotFound("línea de orden de compra", itemID)
	})
}

func (r *purchaseOrderRepo) Delete(_ context.Context, id string) error {
	return r.do(func(st *state) error {
		if _, ok := st.orders[id]; !ok {
			return domain.NotFound("orden de compra", id)
		}
		delete(st.orders, id)
		kept := st.orderItems[:0:0]
		for _, l := range st.orderItems {
			if l.PurchaseOrderID != id {
				kept = append(kept, l)
			}
		}
		st.orderItems = kept
		return nil
	})
}

type assemblyRepo struct{ base }

func (r *assemblyRepo) Create(_ context.Context, a *entity.Assembly) error {
	return r.do(func(st *state) error {
		if _, ok := st.assemblies[a.ID]; ok {
			return domain.ErrDuplicate
		}
		st.assemblies[a.ID] = copyAssembly(*a)
		return nil
	})
}

func (r *assemblyRepo) GetByID(_ context.Context, id string) (*entity.Assembly, error) {
	var out *entity.Assembly
	err := r.do(func(st *state) error {
		if a, ok := st.assemblies[id]; ok {
			c := copyAssembly(a)
			out = &c
		}
		return nil
	})
	return out, err
}

type adjustmentRepo struct{ base }

func (r *adjustmentRepo) Create(_ context.Context, a *entity.StockAdjustment) error {
	return r.do(func(st *state) error {
		if _, ok := st.adjustments[a.ID]; ok {
			return domain.ErrDuplicate
		}
		st.adjustments[a.ID] = *a
		return nil
	})
}

func (r *adjustmentRepo) GetForUpdate(_ context.Context, id string) (*entity.StockAdjustment, error) {
	var out *entity.StockAdjustment
	err := r.do(func(st *state) error {
		if a, ok := st.adjustments[id]; ok {
			out = &a
		}
		return nil
	})
	return out, err
}

func (r *adjustmentRepo) ListByItem(_ context.Context, itemID string) ([]*entity.StockAdjustment, error) {
	var out []*entity.StockAdjustment
	err := r.do(func(st *state) error {
		list := sortedByCreation(st.adjustments, func(a entity.StockAdjustment) (int64, string) { return a.CreatedAt.UnixNano(), a.ID })
		for _, a := range list {
			if a.ItemID == itemID {
				a := a
				out = append(out, &a)
			}
		}
		return nil
	})
	return out, err
}

func (r *adjustmentRepo) Delete(_ context.Context, id string) error {
	return r.do(func(st *state) error {
		if _, ok := st.adjustments[id]; !ok {
			return domain.NotFound("ajuste de stock", id)
		}
		delete(st.adjustments, id)
		return nil
	})
}
