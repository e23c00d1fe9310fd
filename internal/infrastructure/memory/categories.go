package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
)

type categoryRepo struct{ base }

func (r *categoryRepo) Create(_ context.Context, c *entity.Category) error {
	return r.do(func(st *state) error {
		if _, ok := st.categories[c.ID]; ok {
			return domain.ErrDuplicate
		}
		if c.Code != "" {
			for _, other := range st.categories {
				if strings.EqualFold(other.Code, c.Code) {
					return domain.ErrDuplicate
				}
			}
		}
		st.categories[c.ID] = *c
		return nil
	})
}

func (r *categoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	err := r.do(func(st *state) error {
		if c, ok := st.categories[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *categoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	err := r.do(func(st *state) error {
		for _, c := range st.categories {
			c := c
			out = append(out, &c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, err
}
