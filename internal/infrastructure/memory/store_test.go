package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
	"github.com/jhoicas/pos-ledger-api/internal/infrastructure/memory"
)

func newItem(id, sku string, stock int) *entity.Item {
	return &entity.Item{ID: id, SKU: sku, Name: id, Price: decimal.NewFromInt(10), Stock: stock, CreatedAt: time.Now()}
}

func TestTxRunner_RollbackRestauraEstado(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repos()
	require.NoError(t, repos.Items.Create(ctx, newItem("a", "A", 5)))

	boom := errors.New("boom")
	err := memory.NewTxRunner(store).Run(ctx, func(r repository.Repos) error {
		require.NoError(t, r.Items.UpdateStock(ctx, "a", 1))
		require.NoError(t, r.Items.Create(ctx, newItem("b", "B", 3)))
		require.NoError(t, r.ItemLogs.Append(ctx, &entity.ItemLog{ID: "l1", ItemID: "a", Type: entity.ItemLogSale, CreatedAt: time.Now()}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	a, err := repos.Items.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 5, a.Stock)
	b, err := repos.Items.GetByID(ctx, "b")
	require.NoError(t, err)
	assert.Nil(t, b)
	logs, err := repos.ItemLogs.ListByItem(ctx, "a", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestTxRunner_CommitYPanic(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)
	repos := store.Repos()

	require.NoError(t, runner.Run(ctx, func(r repository.Repos) error {
		return r.Items.Create(ctx, newItem("a", "A", 2))
	}))

	assert.Panics(t, func() {
		_ = runner.Run(ctx, func(r repository.Repos) error {
			_ = r.Items.UpdateStock(ctx, "a", 0)
			panic("fallo")
		})
	})
	a, err := repos.Items.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 2, a.Stock)

	// Contexto cancelado no ejecuta fn
	cctx, cancel := context.WithCancel(ctx)
	cancel()
	called := false
	err = runner.Run(cctx, func(repository.Repos) error { called = true; return nil })
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestItems_Duplicados(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repos()
	require.NoError(t, repos.Items.Create(ctx, newItem("a", "A", 0)))

	// Caso 1: SKU repetido
	assert.True(t, errors.Is(repos.Items.Create(ctx, newItem("b", "A", 0)), domain.ErrDuplicate))
	// Caso 2: SKU vacío puede repetirse
	require.NoError(t, repos.Items.Create(ctx, newItem("c", "", 0)))
	require.NoError(t, repos.Items.Create(ctx, newItem("d", "", 0)))

	list, err := repos.Items.List(ctx, 2, 1)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
