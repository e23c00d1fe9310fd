package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
)

// CategoryInput datos de una categoría.
type CategoryInput struct {
	Name     string
	Code     string
	ParentID string
}

// CategoryUseCase categorías del catálogo.
type CategoryUseCase struct {
	repos repository.Repos
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repos repository.Repos) *CategoryUseCase {
	return &CategoryUseCase{repos: repos}
}

// Create crea una categoría; el padre, si se indica, debe existir.
func (uc *CategoryUseCase) Create(ctx context.Context, in CategoryInput) (*entity.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name", "requerido")
	}
	if in.ParentID != "" {
		if err := ensureCategory(ctx, uc.repos, in.ParentID); err != nil {
			return nil, err
		}
	}
	c := &entity.Category{
		ID:        uuid.New().String(),
		ParentID:  in.ParentID,
		Name:      name,
		Code:      strings.TrimSpace(in.Code),
		CreatedAt: time.Now(),
	}
	if err := uc.repos.Categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// List todas las categorías por nombre.
func (uc *CategoryUseCase) List(ctx context.Context) ([]*entity.Category, error) {
	return uc.repos.Categories.List(ctx)
}

func ensureCategory(ctx context.Context, repos repository.Repos, id string) error {
	c, err := repos.Categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.NotFound("categoría", id)
	}
	return nil
}
