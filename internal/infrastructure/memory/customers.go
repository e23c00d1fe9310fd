package memory

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
)

type customerRepo struct{ base }

func (r *customerRepo) Create(_ context.Context, c *entity.Customer) error {
	return r.do(func(st *state) error {
		if _, ok := st.customers[c.ID]; ok {
			return domain.ErrDuplicate
		}
		if c.TaxID != "" {
			for _, other := range st.customers {
				if other.TaxID == c.TaxID {
					return domain.ErrDuplicate
				}
			}
		}
		st.customers[c.ID] = *c
		return nil
	})
}

func (r *customerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.do(func(st *state) error {
		if c, ok := st.customers[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *customerRepo) GetForUpdate(ctx context.Context, id string) (*entity.Customer, error) {
	return r.GetByID(ctx, id)
}

func (r *customerRepo) List(_ context.Context, limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	err := r.do(func(st *state) error {
		list := sortedByCreation(st.customers, func(c entity.Customer) (int64, string) { return c.CreatedAt.UnixNano(), c.ID })
		for _, c := range page(list, limit, offset) {
			c := c
			out = append(out, &c)
		}
		return nil
	})
	return out, err
}

func (r *customerRepo) UpdateDebt(_ context.Context, id string, debt decimal.Decimal) error {
	return r.do(func(st *state) error {
		c, ok := st.customers[id]
		if !ok {
			return domain.NotFound("cliente", id)
		}
		if debt.IsNegative() {
			return domain.Invalid("debt_balance", "no puede ser negativo")
		}
		c.DebtBalance = debt
		st.customers[id] = c
		return nil
	})
}

type bankAccountRepo struct{ base }

func (r *bankAccountRepo) Create(_ context.Context, a *entity.BankAccount) error {
	return r.do(func(st *state) error {
		if _, ok := st.bankAccounts[a.ID]; ok {
			return domain.ErrDuplicate
		}
		st.bankAccounts[a.ID] = *a
		return nil
	})
}

func (r *bankAccountRepo) GetByID(_ context.Context, id string) (*entity.BankAccount, error) {
	var out *entity.BankAccount
	err := r.do(func(st *state) error {
		if a, ok := st.bankAccounts[id]; ok {
			out = &a
		}
		return nil
	})
	return out, err
}

func (r *bankAccountRepo) List(_ context.Context) ([]*entity.BankAccount, error) {
	var out []*entity.BankAccount
	err := r.do(func(st *state) error {
		for _, a := range sortedByCreation(st.bankAccounts, func(a entity.BankAccount) (int64, string) { return a.CreatedAt.UnixNano(), a.ID }) {
			a := a
			out = append(out, &a)
		}
		return nil
	})
	return out, err
}

type userRepo struct{ base }

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	return r.do(func(st *state) error {
		for _, other := range st.users {
			if other.ID == u.ID || strings.EqualFold(other.Email, u.Email) {
				return domain.ErrDuplicate
			}
		}
		st.users[u.ID] = *u
		return nil
	})
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.do(func(st *state) error {
		if u, ok := st.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.do(func(st *state) error {
		for _, u := range st.users {
			if strings.EqualFold(u.Email, email) {
				u := u
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}
