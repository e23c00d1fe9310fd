package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-ledger-api/internal/application/inventory"
	"github.com/jhoicas/pos-ledger-api/internal/application/ledger"
	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/infrastructure/memory"
)

var clerk = entity.Actor{UserID: "u-bodega", Role: entity.RoleWarehouse, Caps: entity.CapInventory}

func TestItemYAjustes(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repos()
	items := inventory.NewItemUseCase(repos)
	adjustments := inventory.NewStockAdjustmentUseCase(memory.NewTxRunner(store), repos, ledger.NewAuditWriter(nil), zerolog.Nop())

	item, err := items.Create(ctx, inventory.ItemInput{SKU: "MON-24", Name: "Monitor 24", Price: decimal.NewFromInt(700), HasWarranty: true, WarrantyMonths: 6})
	require.NoError(t, err)
	assert.Equal(t, 0, item.Stock)
	assert.True(t, item.Cost.IsZero())

	// Caso 1: entrada por ajuste
	adj, err := adjustments.Create(ctx, clerk, inventory.AdjustmentInput{ItemID: item.ID, Delta: 5, Reason: entity.AdjustmentReasonAdjustment, Notes: "conteo"})
	require.NoError(t, err)
	assert.Equal(t, 0, adj.OldStock)
	assert.Equal(t, 5, adj.NewStock)

	// Caso 2: salida por daño
	damage, err := adjustments.Create(ctx, clerk, inventory.AdjustmentInput{ItemID: item.ID, Delta: -2, Reason: entity.AdjustmentReasonDamage})
	require.NoError(t, err)
	assert.Equal(t, 3, damage.NewStock)

	// Caso 3: el stock no puede quedar negativo
	_, err = adjustments.Create(ctx, clerk, inventory.AdjustmentInput{ItemID: item.ID, Delta: -4, Reason: entity.AdjustmentReasonInternalUse})
	assert.True(t, errors.Is(err, domain.ErrNegativeStock))

	// Caso 4: motivo desconocido y delta cero
	_, err = adjustments.Create(ctx, clerk, inventory.AdjustmentInput{ItemID: item.ID, Delta: 1, Reason: "robo"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	_, err = adjustments.Create(ctx, clerk, inventory.AdjustmentInput{ItemID: item.ID, Delta: 0, Reason: entity.AdjustmentReasonAdjustment})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	// Caso 4b: delta fuera del rango de la columna stock
	_, err = adjustments.Create(ctx, clerk, inventory.AdjustmentInput{ItemID: item.ID, Delta: 1 << 40, Reason: entity.AdjustmentReasonAdjustment})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	// Caso 5: revertir el daño devuelve las unidades y elimina el ajuste
	log, err := adjustments.Reverse(ctx, clerk, damage.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ItemLogReversed, log.Type)
	assert.Equal(t, 2, log.QuantityChange)
	assert.Equal(t, 5, log.NewStock)

	_, err = adjustments.Reverse(ctx, clerk, damage.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	remaining, err := adjustments.ListByItem(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, adj.ID, remaining[0].ID)

	history, err := items.History(ctx, item.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, history, 3, "dos ajustes y una reversión")

	got, err := items.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Stock)
}

func TestItemUpdate_NoTocaStockNiCosto(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repos()
	items := inventory.NewItemUseCase(repos)
	adjustments := inventory.NewStockAdjustmentUseCase(memory.NewTxRunner(store), repos, ledger.NewAuditWriter(nil), zerolog.Nop())

	item, err := items.Create(ctx, inventory.ItemInput{Name: "Cable", Price: decimal.NewFromInt(10)})
	require.NoError(t, err)
	_, err = adjustments.Create(ctx, clerk, inventory.AdjustmentInput{ItemID: item.ID, Delta: 4, Reason: entity.AdjustmentReasonAdjustment})
	require.NoError(t, err)

	updated, err := items.Update(ctx, item.ID, inventory.ItemInput{Name: "Cable HDMI", Price: decimal.NewFromInt(12)})
	require.NoError(t, err)
	assert.Equal(t, "Cable HDMI", updated.Name)
	assert.Equal(t, 4, updated.Stock)

	// Caso 1: garantía sin meses
	_, err = items.Create(ctx, inventory.ItemInput{Name: "Laptop", Price: decimal.NewFromInt(10), HasWarranty: true})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = items.Get(ctx, "nada")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCategorias(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repos()
	categories := inventory.NewCategoryUseCase(repos)
	items := inventory.NewItemUseCase(repos)

	root, err := categories.Create(ctx, inventory.CategoryInput{Name: "Periféricos", Code: "PER"})
	require.NoError(t, err)
	_, err = categories.Create(ctx, inventory.CategoryInput{Name: "Mouses", ParentID: root.ID})
	require.NoError(t, err)

	// Caso 1: código repetido sin importar mayúsculas
	_, err = categories.Create(ctx, inventory.CategoryInput{Name: "Otra", Code: "per"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	// Caso 2: padre inexistente
	_, err = categories.Create(ctx, inventory.CategoryInput{Name: "Huérfana", ParentID: "nada"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	list, err := categories.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Mouses", list[0].Name)

	// Caso 3: el ítem solo acepta categorías existentes
	_, err = items.Create(ctx, inventory.ItemInput{Name: "Mouse", CategoryID: "nada", Price: decimal.NewFromInt(5)})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	item, err := items.Create(ctx, inventory.ItemInput{Name: "Mouse", CategoryID: root.ID, Price: decimal.NewFromInt(5)})
	require.NoError(t, err)
	assert.Equal(t, root.ID, item.CategoryID)
}
