package assembly_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-ledger-api/internal/application/assembly"
	"github.com/jhoicas/pos-ledger-api/internal/application/ledger"
	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
	"github.com/jhoicas/pos-ledger-api/internal/infrastructure/memory"
)

var tech = entity.Actor{UserID: "u-tec", Role: entity.RoleWarehouse, Caps: entity.CapAssembly}

func seed(t *testing.T, ctx context.Context, repos repository.Repos, id string, stock int, cost string) {
	t.Helper()
	require.NoError(t, repos.Items.Create(ctx, &entity.Item{
		ID: id, Name: id, Price: decimal.NewFromInt(100), Cost: decimal.RequireFromString(cost),
		Stock: stock, CreatedAt: time.Now(),
	}))
}

func setup(t *testing.T) (context.Context, repository.Repos, *assembly.AssemblyUseCase) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repos()
	seed(t, ctx, repos, "pc", 0, "0")
	seed(t, ctx, repos, "board", 5, "7")
	seed(t, ctx, repos, "ram", 6, "2")
	uc := assembly.NewAssemblyUseCase(memory.NewTxRunner(store), repos, ledger.NewAuditWriter(nil), zerolog.Nop())
	return ctx, repos, uc
}

func stockOf(t *testing.T, ctx context.Context, repos repository.Repos, id string) *entity.Item {
	t.Helper()
	it, err := repos.Items.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, it)
	return it
}

func TestAssemble(t *testing.T) {
	ctx, repos, uc := setup(t)

	asm, err := uc.Assemble(ctx, tech, assembly.AssembleInput{
		FinalItemID: "pc",
		Quantity:    2,
		Parts: []assembly.PartInput{
			{ItemID: "board", PerUnitQuantity: 1},
			{ItemID: "ram", PerUnitQuantity: 2},
		},
	})
	require.NoError(t, err)
	assert.True(t, asm.UnitCost.Equal(decimal.NewFromInt(11)), "7 + 2*2")
	require.Len(t, asm.Items, 2)

	pc := stockOf(t, ctx, repos, "pc")
	assert.Equal(t, 2, pc.Stock)
	assert.True(t, pc.Cost.Equal(decimal.NewFromInt(11)))
	assert.Equal(t, 3, stockOf(t, ctx, repos, "board").Stock)
	assert.Equal(t, 2, stockOf(t, ctx, repos, "ram").Stock)

	logs, err := repos.ItemLogs.ListByReference(ctx, entity.Ref(entity.RefAssembly, asm.ID))
	require.NoError(t, err)
	assert.Len(t, logs, 3, "un log por parte y otro por el terminado")

	got, err := uc.Get(ctx, asm.ID)
	require.NoError(t, err)
	assert.Equal(t, asm.FinalItemID, got.FinalItemID)
}

func TestAssemble_PartesInsuficientesNoMutan(t *testing.T) {
	ctx, repos, uc := setup(t)

	_, err := uc.Assemble(ctx, tech, assembly.AssembleInput{
		FinalItemID: "pc",
		Quantity:    4,
		Parts: []assembly.PartInput{
			{ItemID: "board", PerUnitQuantity: 1},
			{ItemID: "ram", PerUnitQuantity: 2},
		},
	})
	var ise *domain.InsufficientStockError
	require.ErrorAs(t, err, &ise)
	assert.Equal(t, "ram", ise.ItemID)
	assert.Equal(t, 8, ise.Required)

	assert.Equal(t, 0, stockOf(t, ctx, repos, "pc").Stock)
	assert.Equal(t, 5, stockOf(t, ctx, repos, "board").Stock)
	assert.Equal(t, 6, stockOf(t, ctx, repos, "ram").Stock)
	logs, err := repos.ItemLogs.ListByItem(ctx, "board", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestAssemble_Validacion(t *testing.T) {
	ctx, _, uc := setup(t)
	tests := []struct {
		name string
		in   assembly.AssembleInput
	}{
		{"sin partes", assembly.AssembleInput{FinalItemID: "pc", Quantity: 1}},
		{"cantidad cero", assembly.AssembleInput{FinalItemID: "pc", Parts: []assembly.PartInput{{ItemID: "ram", PerUnitQuantity: 1}}}},
		{"terminado como parte", assembly.AssembleInput{FinalItemID: "pc", Quantity: 1, Parts: []assembly.PartInput{{ItemID: "pc", PerUnitQuantity: 1}}}},
		{"parte repetida", assembly.AssembleInput{FinalItemID: "pc", Quantity: 1, Parts: []assembly.PartInput{{ItemID: "ram", PerUnitQuantity: 1}, {ItemID: "ram", PerUnitQuantity: 1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Assemble(ctx, tech, tt.in)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		})
	}

	_, err := uc.Assemble(ctx, tech, assembly.AssembleInput{FinalItemID: "pc", Quantity: 1, Parts: []assembly.PartInput{{ItemID: "nada", PerUnitQuantity: 1}}})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestAssemble_CantidadDesbordadaNoCreaTerminados(t *testing.T) {
	ctx, repos, uc := setup(t)

	_, err := uc.Assemble(ctx, tech, assembly.AssembleInput{
		FinalItemID: "pc",
		Quantity:    4,
		Parts:       []assembly.PartInput{{ItemID: "board", PerUnitQuantity: 1 << 62}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	assert.Equal(t, 0, stockOf(t, ctx, repos, "pc").Stock)
	assert.Equal(t, 5, stockOf(t, ctx, repos, "board").Stock)
	logs, err := repos.ItemLogs.ListByItem(ctx, "pc", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, logs)
}
