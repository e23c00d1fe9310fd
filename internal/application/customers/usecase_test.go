package customers_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-ledger-api/internal/application/customers"
	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/infrastructure/memory"
)

func TestCustomerCreate(t *testing.T) {
	ctx := context.Background()
	uc := customers.NewCustomerUseCase(memory.NewStore().Repos().Customers)

	c, err := uc.Create(ctx, customers.CustomerInput{Name: " Ferretería El Tornillo ", TaxID: "900.373.115-3"})
	require.NoError(t, err)
	assert.Equal(t, "Ferretería El Tornillo", c.Name)
	assert.Equal(t, "900373115-3", c.TaxID)
	assert.True(t, c.DebtBalance.IsZero())

	// Caso 1: mismo documento
	_, err = uc.Create(ctx, customers.CustomerInput{Name: "Duplicado", TaxID: "900373115-3"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	// Caso 2: DV inválido
	_, err = uc.Create(ctx, customers.CustomerInput{Name: "Mal DV", TaxID: "900373115-9"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	// Caso 3: sin nombre
	_, err = uc.Create(ctx, customers.CustomerInput{Name: "  "})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Get(ctx, "nada")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestBankAccountBalance(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repos()
	uc := customers.NewBankAccountUseCase(repos.BankAccounts, repos.Money)

	acc, err := uc.Create(ctx, customers.BankAccountInput{Name: "Corriente", Bank: "Banco X", Number: "001"})
	require.NoError(t, err)
	assert.True(t, acc.Active)

	for i, m := range []struct {
		dir    string
		amount int64
	}{{entity.MoneyIn, 300}, {entity.MoneyIn, 50}, {entity.MoneyOut, 120}} {
		require.NoError(t, repos.Money.Append(ctx, &entity.MoneyTransaction{
			ID: fmt.Sprintf("m%d", i), Type: m.dir, Amount: decimal.NewFromInt(m.amount),
			SourceType: entity.SourceBankAccount, SourceID: acc.ID, Category: entity.MoneyCategorySale, CreatedAt: time.Now(),
		}))
	}
	// Movimiento de caja: no cuenta para el banco
	require.NoError(t, repos.Money.Append(ctx, &entity.MoneyTransaction{
		ID: "z", Type: entity.MoneyIn, Amount: decimal.NewFromInt(999),
		SourceType: entity.SourceCashRegister, SourceID: acc.ID, Category: entity.MoneyCategorySale, CreatedAt: time.Now(),
	}))

	bal, err := uc.Balance(ctx, acc.ID)
	require.NoError(t, err)
	assert.True(t, bal.Balance.Equal(decimal.NewFromInt(230)), "saldo %s", bal.Balance)

	_, err = uc.Balance(ctx, "nada")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
