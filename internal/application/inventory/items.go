package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
)

// ItemInput datos editables de un ítem. Stock y costo no se editan aquí.
type ItemInput struct {
	SKU            string
	Name           string
	CategoryID     string
	Price          decimal.Decimal
	HasWarranty    bool
	WarrantyMonths int
}

// ItemUseCase catálogo de ítems. Cost y Stock se manejan vía el ledger.
type ItemUseCase struct {
	repos repository.Repos
	now   func() time.Time
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repos repository.Repos) *ItemUseCase {
	return &ItemUseCase{repos: repos, now: time.Now}
}

func validateItem(in ItemInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.Invalid("name", "requerido")
	}
	if in.Price.IsNegative() {
		return domain.Invalid("price", "no puede ser negativo")
	}
	if in.WarrantyMonths < 0 {
		return domain.Invalid("warranty_months", "no puede ser negativo")
	}
	if in.HasWarranty && in.WarrantyMonths == 0 {
		return domain.Invalid("warranty_months", "requerido cuando el ítem tiene garantía")
	}
	return nil
}

// Create crea un ítem con stock 0 y costo 0.
func (uc *ItemUseCase) Create(ctx context.Context, in ItemInput) (*entity.Item, error) {
	if err := validateItem(in); err != nil {
		return nil, err
	}
	if in.CategoryID != "" {
		if err := ensureCategory(ctx, uc.repos, in.CategoryID); err != nil {
			return nil, err
		}
	}
	now := uc.now()
	item := &entity.Item{
		ID:             uuid.New().String(),
		CategoryID:     in.CategoryID,
		SKU:            strings.TrimSpace(in.SKU),
		Name:           strings.TrimSpace(in.Name),
		Price:          in.Price,
		Cost:           decimal.Zero,
		HasWarranty:    in.HasWarranty,
		WarrantyMonths: in.WarrantyMonths,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repos.Items.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Get ítem por ID.
func (uc *ItemUseCase) Get(ctx context.Context, id string) (*entity.Item, error) {
	item, err := uc.repos.Items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.NotFound("ítem", id)
	}
	return item, nil
}

// List ítems con paginación.
func (uc *ItemUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Item, error) {
	return uc.repos.Items.List(ctx, limit, offset)
}

// Update actualiza datos del catálogo. No toca Cost ni Stock.
func (uc *ItemUseCase) Update(ctx context.Context, id string, in ItemInput) (*entity.Item, error) {
	if err := validateItem(in); err != nil {
		return nil, err
	}
	item, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.CategoryID != "" && in.CategoryID != item.CategoryID {
		if err := ensureCategory(ctx, uc.repos, in.CategoryID); err != nil {
			return nil, err
		}
	}
	item.SKU = strings.TrimSpace(in.SKU)
	item.Name = strings.TrimSpace(in.Name)
	item.CategoryID = in.CategoryID
	item.Price = in.Price
	item.HasWarranty = in.HasWarranty
	item.WarrantyMonths = in.WarrantyMonths
	item.UpdatedAt = uc.now()
	if err := uc.repos.Items.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// History movimientos de stock del ítem, más recientes primero.
func (uc *ItemUseCase) History(ctx context.Context, id string, limit, offset int) ([]*entity.ItemLog, error) {
	if _, err := uc.Get(ctx, id); err != nil {
		return nil, err
	}
	return uc.repos.ItemLogs.ListByItem(ctx, id, limit, offset)
}
