package cashier_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/cashier"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
)

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func TestComputeTotals(t *testing.T) {
	lines := []cashier.PricedLine{{ItemID: "a", Quantity: 2, Price: dec(50)}, {ItemID: "b", Quantity: 1, Price: decimal.RequireFromString("19.99")}}

	// Caso 1: efectivo con cambio
	paid := dec(200)
	tot, err := cashier.ComputeTotals(lines, entity.PaymentCash, &paid)
	require.NoError(t, err)
	assert.True(t, tot.Total.Equal(decimal.RequireFromString("119.99")))
	assert.True(t, tot.ChangeGiven.Equal(decimal.RequireFromString("80.01")))

	// Caso 2: efectivo insuficiente
	short := dec(100)
	_, err = cashier.ComputeTotals(lines, entity.PaymentCash, &short)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	// Caso 3: efectivo sin monto
	_, err = cashier.ComputeTotals(lines, entity.PaymentCash, nil)
	assert.Error(t, err)

	// Caso 4: crédito paga exacto, sin cambio
	tot, err = cashier.ComputeTotals(lines, entity.PaymentCredit, nil)
	require.NoError(t, err)
	assert.True(t, tot.AmountPaid.Equal(tot.Total))
	assert.True(t, tot.ChangeGiven.IsZero())
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		from   string
		months int
		want   string
	}{
		{"2026-01-31", 1, "2026-02-28"},
		{"2028-01-31", 1, "2028-02-29"},
		{"2026-03-31", 1, "2026-04-30"},
		{"2026-01-15", 12, "2027-01-15"},
		{"2026-11-30", 3, "2027-02-28"},
		{"2026-05-10", 0, "2026-05-10"},
	}
	for _, tt := range tests {
		from, _ := time.Parse("2006-01-02", tt.from)
		got := cashier.AddMonths(from, tt.months)
		assert.Equal(t, tt.want, got.Format("2006-01-02"), "%s + %d", tt.from, tt.months)
	}
}

func TestCheckSerials(t *testing.T) {
	seen := map[string]struct{}{}
	require.NoError(t, cashier.CheckSerials("a", 2, []string{"S1", "S2"}, seen))

	// Caso 1: mismo serial en otra línea del mismo ítem
	assert.Error(t, cashier.CheckSerials("a", 1, []string{"S1"}, seen))
	// Caso 2: mismo serial en otro ítem es válido
	assert.NoError(t, cashier.CheckSerials("b", 1, []string{"S1"}, seen))
	// Caso 3: más seriales que unidades
	assert.Error(t, cashier.CheckSerials("c", 1, []string{"X", "Y"}, map[string]struct{}{}))
}

func TestIncrementYApplyTotals(t *testing.T) {
	s := &entity.CashRegisterSession{OpeningBalance: dec(1000), CashSales: dec(0), DebtRepaid: dec(0)}
	s.Recompute()

	old, next, err := cashier.Increment(s, entity.SessionCashSales, dec(100))
	require.NoError(t, err)
	assert.True(t, old.IsZero())
	assert.True(t, next.Equal(dec(100)))
	assert.True(t, s.ExpectedCash.Equal(dec(1100)))

	_, _, err = cashier.Increment(s, entity.SessionDebtRepaid, dec(-1))
	assert.Error(t, err)

	require.NoError(t, cashier.ApplyTotals(s, entity.SessionTotals{OpeningBalance: dec(900), CashSales: dec(100), DebtRepaid: dec(50), ActualCash: dec(1040)}))
	assert.True(t, s.ExpectedCash.Equal(dec(1050)))
	require.NotNil(t, s.Difference())
	assert.True(t, s.Difference().Equal(dec(-10)))

	assert.Error(t, cashier.ApplyTotals(s, entity.SessionTotals{OpeningBalance: dec(-1)}))
}
