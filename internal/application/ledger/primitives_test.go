package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-ledger-api/internal/application/ledger"
	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
	"github.com/jhoicas/pos-ledger-api/internal/infrastructure/memory"
)

func seeded(t *testing.T) (context.Context, repository.Repos) {
	t.Helper()
	ctx := context.Background()
	repos := memory.NewStore().Repos()
	require.NoError(t, repos.Items.Create(ctx, &entity.Item{ID: "i1", Name: "Papel", Cost: decimal.NewFromInt(10), Stock: 4, CreatedAt: time.Now()}))
	require.NoError(t, repos.Customers.Create(ctx, &entity.Customer{ID: "c1", Name: "Ana", DebtBalance: decimal.NewFromInt(30), CreatedAt: time.Now()}))
	require.NoError(t, repos.Sessions.Create(ctx, &entity.CashRegisterSession{
		ID: "s1", OpenedBy: "u1", OpeningBalance: decimal.NewFromInt(100), CashSales: decimal.Zero,
		DebtRepaid: decimal.Zero, ExpectedCash: decimal.NewFromInt(100), Status: entity.SessionOpen, OpenedAt: time.Now(),
	}))
	return ctx, repos
}

func TestAdjustStock(t *testing.T) {
	ctx, repos := seeded(t)

	res, err := ledger.AdjustStock(ctx, repos, "i1", -3)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Old)
	assert.Equal(t, 1, res.New)

	// Caso 1: quedaría negativo
	_, err = ledger.AdjustStock(ctx, repos, "i1", -2)
	assert.True(t, errors.Is(err, domain.ErrNegativeStock))

	// Caso 2: ítem inexistente
	_, err = ledger.AdjustStock(ctx, repos, "nada", 1)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestReceiveStock_CostoPromedio(t *testing.T) {
	ctx, repos := seeded(t)

	res, err := ledger.ReceiveStock(ctx, repos, "i1", 6, decimal.NewFromInt(15))
	require.NoError(t, err)
	assert.Equal(t, 10, res.New)
	assert.True(t, res.OldCost.Equal(decimal.NewFromInt(10)))
	assert.True(t, res.NewCost.Equal(decimal.NewFromInt(13)))

	item, err := repos.Items.GetByID(ctx, "i1")
	require.NoError(t, err)
	assert.True(t, item.Cost.Equal(decimal.NewFromInt(13)))

	_, err = ledger.ReceiveStock(ctx, repos, "i1", 0, decimal.NewFromInt(15))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestAdjustCashSessionYDeuda(t *testing.T) {
	ctx, repos := seeded(t)

	s, oldV, newV, err := ledger.AdjustCashSession(ctx, repos, "s1", entity.SessionCashSales, decimal.NewFromInt(40))
	require.NoError(t, err)
	assert.True(t, oldV.IsZero())
	assert.True(t, newV.Equal(decimal.NewFromInt(40)))
	assert.True(t, s.ExpectedCash.Equal(decimal.NewFromInt(140)))

	_, oldD, newD, err := ledger.AdjustCustomerDebt(ctx, repos, "c1", decimal.NewFromInt(-30))
	require.NoError(t, err)
	assert.True(t, oldD.Equal(decimal.NewFromInt(30)))
	assert.True(t, newD.IsZero())

	// Caso 1: la deuda no baja de cero
	_, _, _, err = ledger.AdjustCustomerDebt(ctx, repos, "c1", decimal.NewFromInt(-1))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	// Caso 2: sesión cerrada no acumula
	s.Status = entity.SessionClosed
	require.NoError(t, repos.Sessions.Update(ctx, s))
	_, _, _, err = ledger.AdjustCashSession(ctx, repos, "s1", entity.SessionCashSales, decimal.NewFromInt(1))
	assert.True(t, errors.Is(err, domain.ErrNoOpenSession))
}

func TestAuditWriter(t *testing.T) {
	ctx, repos := seeded(t)
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	w := ledger.NewAuditWriter(func() time.Time { return at })
	ref := entity.Ref(entity.RefSale, "v1")

	log, err := w.LogItemChange(ctx, repos, ledger.ItemChange{ItemID: "i1", Type: entity.ItemLogSale, QuantityChange: -1, OldStock: 4, NewStock: 3, Reference: ref})
	require.NoError(t, err)
	assert.Equal(t, at, log.CreatedAt)
	assert.NotEmpty(t, log.ID)

	tx, err := w.LogMoneyTransaction(ctx, repos, ledger.Money{Direction: entity.MoneyIn, Amount: decimal.NewFromInt(5), SourceType: entity.SourceCashRegister, SourceID: "s1", SessionID: "s1", Category: entity.MoneyCategorySale, Reference: ref})
	require.NoError(t, err)
	assert.Equal(t, "s1", tx.CashRegisterSessionID)

	got, err := repos.Money.ListByReference(ctx, ref)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, tx.ID, got[0].ID)
}
