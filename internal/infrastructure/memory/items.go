package memory

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
)

type itemRepo struct{ base }

func skuTaken(st *state, sku, exceptID string) bool {
	if sku == "" {
		return false
	}
	for id, it := range st.items {
		if id != exceptID && strings.EqualFold(it.SKU, sku) {
			return true
		}
	}
	return false
}

func (r *itemRepo) Create(_ context.Context, item *entity.Item) error {
	return r.do(func(st *state) error {
		if _, ok := st.items[item.ID]; ok || skuTaken(st, item.SKU, "") {
			return domain.ErrDuplicate
		}
		st.items[item.ID] = *item
		return nil
	})
}

func (r *itemRepo) GetByID(_ context.Context, id string) (*entity.Item, error) {
	var out *entity.Item
	err := r.do(func(st *state) error {
		if it, ok := st.items[id]; ok {
			out = &it
		}
		return nil
	})
	return out, err
}

// GetForUpdate en memoria el lock es el del store.
func (r *itemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}

func (r *itemRepo) List(_ context.Context, limit, offset int) ([]*entity.Item, error) {
	var out []*entity.Item
	err := r.do(func(st *state) error {
		list := sortedByCreation(st.items, func(i entity.Item) (int64, string) { return i.CreatedAt.UnixNano(), i.ID })
		for _, it := range page(list, limit, offset) {
			it := it
			out = append(out, &it)
		}
		return nil
	})
	return out, err
}

func (r *itemRepo) Update(_ context.Context, item *entity.Item) error {
	return r.do(func(st *state) error {
		cur, ok := st.items[item.ID]
		if !ok {
			return domain.NotFound("ítem", item.ID)
		}
		if skuTaken(st, item.SKU, item.ID) {
			return domain.ErrDuplicate
		}
		// stock y costo solo cambian por UpdateStock/UpdateStockAndCost
		next := *item
		next.Stock = cur.Stock
		next.Cost = cur.Cost
		st.items[item.ID] = next
		return nil
	})
}

func (r *itemRepo) UpdateStock(_ context.Context, id string, stock int) error {
	return r.do(func(st *state) error {
		it, ok := st.items[id]
		if !ok {
			return domain.NotFound("ítem", id)
		}
		if stock < 0 {
			return &domain.NegativeStockError{ItemID: id, Current: it.Stock, Delta: stock - it.Stock}
		}
		it.Stock = stock
		st.items[id] = it
		return nil
	})
}

func (r *itemRepo) UpdateStockAndCost(_ context.Context, id string, stock int, cost decimal.Decimal) error {
	return r.do(func(st *state) error {
		it, ok := st.items[id]
		if !ok {
			return domain.NotFound("ítem", id)
		}
		if stock < 0 {
			return &domain.NegativeStockError{ItemID: id, Current: it.Stock, Delta: stock - it.Stock}
		}
		it.Stock = stock
		it.Cost = cost
		st.items[id] = it
		return nil
	})
}

type itemLogRepo struct{ base }

func (r *itemLogRepo) Append(_ context.Context, log *entity.ItemLog) error {
	return r.do(func(st *state) error {
		st.itemLogs = append(st.itemLogs, *log)
		return nil
	})
}

// ListByItem más recientes primero.
func (r *itemLogRepo) ListByItem(_ context.Context, itemID string, limit, offset int) ([]*entity.ItemLog, error) {
	var out []*entity.ItemLog
	err := r.do(func(st *state) error {
		var matched []entity.ItemLog
		for i := len(st.itemLogs) - 1; i >= 0; i-- {
			if st.itemLogs[i].ItemID == itemID {
				matched = append(matched, st.itemLogs[i])
			}
		}
		for _, l := range page(matched, limit, offset) {
			l := l
			out = append(out, &l)
		}
		return nil
	})
	return out, err
}

func (r *itemLogRepo) ListByReference(_ context.Context, ref entity.Reference) ([]*entity.ItemLog, error) {
	var out []*entity.ItemLog
	err := r.do(func(st *state) error {
		for _, l := range st.itemLogs {
			if l.Reference == ref {
				l := l
				out = append(out, &l)
			}
		}
		return nil
	})
	return out, err
}

type moneyRepo struct{ base }

func (r *moneyRepo) Append(_ context.Context, tx *entity.MoneyTransaction) error {
	return r.do(func(st *state) error {
		st.money = append(st.money, *tx)
		return nil
	})
}

func (r *moneyRepo) filter(pred func(entity.MoneyTransaction) bool) ([]*entity.MoneyTransaction, error) {
	var out []*entity.MoneyTransaction
	err := r.do(func(st *state) error {
		for _, m := range st.money {
			if pred(m) {
				m := m
				out = append(out, &m)
			}
		}
		return nil
	})
	return out, err
}

func (r *moneyRepo) ListBySession(_ context.Context, sessionID string) ([]*entity.MoneyTransaction, error) {
	return r.filter(func(m entity.MoneyTransaction) bool { return m.CashRegisterSessionID == sessionID })
}

func (r *moneyRepo) ListByReference(_ context.Context, ref entity.Reference) ([]*entity.MoneyTransaction, error) {
	return r.filter(func(m entity.MoneyTransaction) bool { return m.Reference == ref })
}

func (r *moneyRepo) SourceBalance(_ context.Context, sourceType, sourceID string) (decimal.Decimal, error) {
	total := decimal.Zero
	err := r.do(func(st *state) error {
		for _, m := range st.money {
			if m.SourceType != sourceType || m.SourceID != sourceID {
				continue
			}
			if m.Type == entity.MoneyOut {
				total = total.Sub(m.Amount)
			} else {
				total = total.Add(m.Amount)
			}
		}
		return nil
	})
	return total, err
}
