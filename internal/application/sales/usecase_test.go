package sales_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-ledger-api/internal/application/cashregister"
	"github.com/jhoicas/pos-ledger-api/internal/application/ledger"
	"github.com/jhoicas/pos-ledger-api/internal/application/sales"
	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/cashier"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
	"github.com/jhoicas/pos-ledger-api/internal/infrastructure/memory"
)

var cashierActor = entity.Actor{UserID: "u-caja", Role: entity.RoleCashier, Caps: entity.CapPOS | entity.CapSessions}

type fixture struct {
	ctx      context.Context
	repos    repository.Repos
	sales    *sales.SaleUseCase
	sessions *cashregister.SessionUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	tx := memory.NewTxRunner(store)
	repos := store.Repos()
	return &fixture{
		ctx:      context.Background(),
		repos:    repos,
		sales:    sales.NewSaleUseCase(tx, repos, ledger.NewAuditWriter(nil), zerolog.Nop()),
		sessions: cashregister.NewSessionUseCase(tx, repos, zerolog.Nop()),
	}
}

func (f *fixture) item(t *testing.T, id string, price int64, stock int, warrantyMonths int) {
	t.Helper()
	require.NoError(t, f.repos.Items.Create(f.ctx, &entity.Item{
		ID:             id,
		SKU:            "SKU-" + id,
		Name:           "Ítem " + id,
		Price:          decimal.NewFromInt(price),
		Cost:           decimal.Zero,
		Stock:          stock,
		HasWarranty:    warrantyMonths > 0,
		WarrantyMonths: warrantyMonths,
		CreatedAt:      time.Now(),
	}))
}

func (f *fixture) customer(t *testing.T, id string) {
	t.Helper()
	require.NoError(t, f.repos.Customers.Create(f.ctx, &entity.Customer{ID: id, Name: "Cliente " + id, DebtBalance: decimal.Zero, CreatedAt: time.Now()}))
}

func (f *fixture) open(t *testing.T, opening int64) *entity.CashRegisterSession {
	t.Helper()
	s, err := f.sessions.Open(f.ctx, cashierActor, decimal.NewFromInt(opening))
	require.NoError(t, err)
	return s
}

func (f *fixture) stock(t *testing.T, id string) int {
	t.Helper()
	it, err := f.repos.Items.GetByID(f.ctx, id)
	require.NoError(t, err)
	require.NotNil(t, it)
	return it.Stock
}

func money(n int64) *decimal.Decimal {
	d := decimal.NewFromInt(n)
	return &d
}

func TestRecordSale_Efectivo(t *testing.T) {
	f := newFixture(t)
	f.item(t, "mouse", 50, 10, 0)
	session := f.open(t, 1000)

	sale, err := f.sales.RecordSale(f.ctx, cashierActor, sales.SaleInput{
		PaymentMethod: entity.PaymentCash,
		AmountPaid:    money(100),
		Lines:         []sales.CartLine{{ItemID: "mouse", Quantity: 2}},
	})
	require.NoError(t, err)
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(100)))
	assert.True(t, sale.ChangeGiven.IsZero())
	assert.Equal(t, 8, f.stock(t, "mouse"))

	current, err := f.sessions.Current(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, session.ID, current.ID)
	assert.True(t, current.CashSales.Equal(decimal.NewFromInt(100)))
	assert.True(t, current.ExpectedCash.Equal(decimal.NewFromInt(1100)))

	// Auditoría: un log de venta y un ingreso en caja con la misma referencia
	logs, err := f.repos.ItemLogs.ListByReference(f.ctx, entity.Ref(entity.RefSale, sale.ID))
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.ItemLogSale, logs[0].Type)
	assert.Equal(t, -2, logs[0].QuantityChange)
	assert.Equal(t, 10, logs[0].OldStock)
	assert.Equal(t, 8, logs[0].NewStock)

	txs, err := f.repos.Money.ListBySession(f.ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, entity.MoneyIn, txs[0].Type)
	assert.True(t, txs[0].Amount.Equal(decimal.NewFromInt(100)))
}

func TestRecordSale_CambioYPrecioManual(t *testing.T) {
	f := newFixture(t)
	f.item(t, "cable", 15, 5, 0)
	f.open(t, 0)

	sale, err := f.sales.RecordSale(f.ctx, cashierActor, sales.SaleInput{
		PaymentMethod: entity.PaymentCash,
		AmountPaid:    money(50),
		Lines:         []sales.CartLine{{ItemID: "cable", Quantity: 3, Price: decimal.NewFromInt(12)}},
	})
	require.NoError(t, err)
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(36)))
	assert.True(t, sale.ChangeGiven.Equal(decimal.NewFromInt(14)))

	current, err := f.sessions.Current(f.ctx)
	require.NoError(t, err)
	assert.True(t, current.CashSales.Equal(decimal.NewFromInt(36)), "el cajón suma el total, no lo recibido")
}

func TestRecordSale_Credito(t *testing.T) {
	f := newFixture(t)
	f.item(t, "silla", 125, 4, 0)
	f.customer(t, "c1")
	f.open(t, 500)

	_, err := f.sales.RecordSale(f.ctx, cashierActor, sales.SaleInput{
		PaymentMethod: entity.PaymentCredit,
		CustomerID:    "c1",
		Lines:         []sales.CartLine{{ItemID: "silla", Quantity: 2}},
	})
	require.NoError(t, err)

	c, err := f.repos.Customers.GetByID(f.ctx, "c1")
	require.NoError(t, err)
	assert.True(t, c.DebtBalance.Equal(decimal.NewFromInt(250)))

	current, err := f.sessions.Current(f.ctx)
	require.NoError(t, err)
	assert.True(t, current.CashSales.IsZero(), "el crédito no mueve el cajón")
	assert.True(t, current.ExpectedCash.Equal(decimal.NewFromInt(500)))
}

func TestRecordSale_Banco(t *testing.T) {
	f := newFixture(t)
	f.item(t, "teclado", 80, 3, 0)
	require.NoError(t, f.repos.BankAccounts.Create(f.ctx, &entity.BankAccount{ID: "b1", Name: "Cuenta", Active: true}))
	session := f.open(t, 0)

	_, err := f.sales.RecordSale(f.ctx, cashierActor, sales.SaleInput{
		PaymentMethod: entity.PaymentBank,
		BankAccountID: "b1",
		Lines:         []sales.CartLine{{ItemID: "teclado", Quantity: 1}},
	})
	require.NoError(t, err)

	bal, err := f.repos.Money.SourceBalance(f.ctx, entity.SourceBankAccount, "b1")
	require.NoError(t, err)
	assert.True(t, bal.Equal(decimal.NewFromInt(80)))

	current, err := f.sessions.Current(f.ctx)
	require.NoError(t, err)
	assert.True(t, current.CashSales.IsZero())
	txs, err := f.repos.Money.ListBySession(f.ctx, session.ID)
	require.NoError(t, err)
	assert.Len(t, txs, 1, "el ingreso bancario queda asociado a la sesión")
}

func TestRecordSale_Errores(t *testing.T) {
	f := newFixture(t)
	f.item(t, "mouse", 50, 1, 0)

	// Caso 1: sin sesión abierta
	_, err := f.sales.RecordSale(f.ctx, cashierActor, sales.SaleInput{
		PaymentMethod: entity.PaymentCash, AmountPaid: money(50),
		Lines: []sales.CartLine{{ItemID: "mouse", Quantity: 1}},
	})
	assert.True(t, errors.Is(err, domain.ErrNoOpenSession))

	f.open(t, 0)

	// Caso 2: stock insuficiente
	_, err = f.sales.RecordSale(f.ctx, cashierActor, sales.SaleInput{
		PaymentMethod: entity.PaymentCash, AmountPaid: money(500),
		Lines: []sales.CartLine{{ItemID: "mouse", Quantity: 2}},
	})
	var ise *domain.InsufficientStockError
	require.ErrorAs(t, err, &ise)
	assert.Equal(t, 1, ise.Available)

	// Caso 3: efectivo que no cubre el total
	_, err = f.sales.RecordSale(f.ctx, cashierActor, sales.SaleInput{
		PaymentMethod: entity.PaymentCash, AmountPaid: money(10),
		Lines: []sales.CartLine{{ItemID: "mouse", Quantity: 1}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	// Caso 4: crédito sin cliente
	_, err = f.sales.RecordSale(f.ctx, cashierActor, sales.SaleInput{
		PaymentMethod: entity.PaymentCredit,
		Lines:         []sales.CartLine{{ItemID: "mouse", Quantity: 1}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	// Caso 5: ítem inexistente
	_, err = f.sales.RecordSale(f.ctx, cashierActor, sales.SaleInput{
		PaymentMethod: entity.PaymentCash, AmountPaid: money(10),
		Lines: []sales.CartLine{{ItemID: "nada", Quantity: 1}},
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	// Caso 6: cantidad fuera del rango de stock
	_, err = f.sales.RecordSale(f.ctx, cashierActor, sales.SaleInput{
		PaymentMethod: entity.PaymentCash, AmountPaid: money(10),
		Lines: []sales.CartLine{{ItemID: "mouse", Quantity: 1 << 40}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	assert.Equal(t, 1, f.stock(t, "mouse"))
}

func TestRecordSale_GarantiasYRollback(t *testing.T) {
	f := newFixture(t)
	f.item(t, "mouse", 50, 5, 0)
	f.item(t, "laptop", 1000, 5, 12)
	f.open(t, 0)

	sale, err := f.sales.RecordSale(f.ctx, cashierActor, sales.SaleInput{
		PaymentMethod: entity.PaymentCash, AmountPaid: money(2000),
		Lines: []sales.CartLine{{ItemID: "laptop", Quantity: 2, SerialNumbers: []string{"SN-1"}}},
	})
	require.NoError(t, err)
	require.Len(t, sale.Warranties, 2, "una garantía por unidad")
	assert.Equal(t, "SN-1", sale.Warranties[0].SerialNumber)
	assert.Empty(t, sale.Warranties[1].SerialNumber)
	assert.Equal(t, cashier.AddMonths(sale.CreatedAt, 12).Format("2006-01-02"), sale.Warranties[0].ExpiresAt.Format("2006-01-02"))

	found, err := f.sales.FindWarranties(f.ctx, "SN-1")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, sale.ID, found[0].SaleID)

	before, err := f.sessions.Current(f.ctx)
	require.NoError(t, err)

	// La segunda línea repite un serial ya vendido: la primera línea ya escribió stock
	// y log, todo debe revertirse.
	_, err = f.sales.RecordSale(f.ctx, cashierActor, sales.SaleInput{
		PaymentMethod: entity.PaymentCash, AmountPaid: money(2000),
		Lines: []sales.CartLine{
			{ItemID: "mouse", Quantity: 2},
			{ItemID: "laptop", Quantity: 1, SerialNumbers: []string{"SN-1"}},
		},
	})
	require.Error(t, err)
	assert.Equal(t, 5, f.stock(t, "mouse"))
	assert.Equal(t, 3, f.stock(t, "laptop"))

	after, err := f.sessions.Current(f.ctx)
	require.NoError(t, err)
	assert.True(t, after.CashSales.Equal(before.CashSales))
	logs, err := f.repos.ItemLogs.ListByItem(f.ctx, "mouse", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, logs)

	// Seriales en un ítem sin garantía
	_, err = f.sales.RecordSale(f.ctx, cashierActor, sales.SaleInput{
		PaymentMethod: entity.PaymentCash, AmountPaid: money(100),
		Lines: []sales.CartLine{{ItemID: "mouse", Quantity: 1, SerialNumbers: []string{"X"}}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestCollectDebtPayment(t *testing.T) {
	f := newFixture(t)
	f.item(t, "silla", 125, 4, 0)
	f.customer(t, "c1")
	f.open(t, 100)
	_, err := f.sales.RecordSale(f.ctx, cashierActor, sales.SaleInput{
		PaymentMethod: entity.PaymentCredit, CustomerID: "c1",
		Lines: []sales.CartLine{{ItemID: "silla", Quantity: 2}},
	})
	require.NoError(t, err)

	// Caso 1: abono en efectivo
	res, err := f.sales.CollectDebtPayment(f.ctx, cashierActor, sales.DebtPaymentInput{
		CustomerID: "c1", Amount: decimal.NewFromInt(100), Method: entity.PaymentCash,
	})
	require.NoError(t, err)
	assert.True(t, res.Customer.DebtBalance.Equal(decimal.NewFromInt(150)))
	assert.True(t, res.Session.DebtRepaid.Equal(decimal.NewFromInt(100)))
	assert.True(t, res.Session.CashSales.Equal(decimal.NewFromInt(100)))
	assert.True(t, res.Session.ExpectedCash.Equal(res.Session.OpeningBalance.Add(res.Session.CashSales).Add(res.Session.DebtRepaid)))
	assert.Equal(t, entity.MoneyCategoryDebtPayment, res.Transaction.Category)

	// Caso 2: abono mayor que la deuda
	_, err = f.sales.CollectDebtPayment(f.ctx, cashierActor, sales.DebtPaymentInput{
		CustomerID: "c1", Amount: decimal.NewFromInt(151), Method: entity.PaymentCash,
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	// Caso 3: monto no positivo
	_, err = f.sales.CollectDebtPayment(f.ctx, cashierActor, sales.DebtPaymentInput{
		CustomerID: "c1", Amount: decimal.Zero, Method: entity.PaymentCash,
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	history, err := f.sales.PaymentHistory(f.ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestCollectDebtPayment_BancoYPrecondiciones(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.repos.Customers.Create(f.ctx, &entity.Customer{
		ID: "c1", Name: "Cliente c1", DebtBalance: decimal.NewFromInt(300), CreatedAt: time.Now(),
	}))
	require.NoError(t, f.repos.BankAccounts.Create(f.ctx, &entity.BankAccount{ID: "b1", Name: "Cuenta", Active: true}))
	require.NoError(t, f.repos.BankAccounts.Create(f.ctx, &entity.BankAccount{ID: "b-off", Name: "Cerrada", Active: false}))

	unchanged := func(t *testing.T) {
		t.Helper()
		c, err := f.repos.Customers.GetByID(f.ctx, "c1")
		require.NoError(t, err)
		assert.True(t, c.DebtBalance.Equal(decimal.NewFromInt(300)), "la deuda no cambia")
		history, err := f.sales.PaymentHistory(f.ctx, "c1")
		require.NoError(t, err)
		assert.Empty(t, history, "no queda movimiento de dinero")
	}

	// Caso 1: sin sesión abierta
	_, err := f.sales.CollectDebtPayment(f.ctx, cashierActor, sales.DebtPaymentInput{
		CustomerID: "c1", Amount: decimal.NewFromInt(50), Method: entity.PaymentCash,
	})
	assert.True(t, errors.Is(err, domain.ErrNoOpenSession))
	unchanged(t)

	session := f.open(t, 100)
	sessionUnchanged := func(t *testing.T) {
		t.Helper()
		s, err := f.sessions.Get(f.ctx, session.ID)
		require.NoError(t, err)
		assert.True(t, s.DebtRepaid.IsZero())
		assert.True(t, s.CashSales.IsZero())
		assert.True(t, s.ExpectedCash.Equal(decimal.NewFromInt(100)))
	}

	// Caso 2: pago bancario sin cuenta
	_, err = f.sales.CollectDebtPayment(f.ctx, cashierActor, sales.DebtPaymentInput{
		CustomerID: "c1", Amount: decimal.NewFromInt(50), Method: entity.PaymentBank,
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	unchanged(t)
	sessionUnchanged(t)

	// Caso 3: cuenta inactiva
	_, err = f.sales.CollectDebtPayment(f.ctx, cashierActor, sales.DebtPaymentInput{
		CustomerID: "c1", Amount: decimal.NewFromInt(50), Method: entity.PaymentBank, BankAccountID: "b-off",
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	unchanged(t)
	sessionUnchanged(t)

	// Caso 4: cuenta inexistente
	_, err = f.sales.CollectDebtPayment(f.ctx, cashierActor, sales.DebtPaymentInput{
		CustomerID: "c1", Amount: decimal.NewFromInt(50), Method: entity.PaymentBank, BankAccountID: "nada",
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	unchanged(t)
	sessionUnchanged(t)

	// Caso 5: abono bancario suma debt_repaid pero no cash_sales
	res, err := f.sales.CollectDebtPayment(f.ctx, cashierActor, sales.DebtPaymentInput{
		CustomerID: "c1", Amount: decimal.NewFromInt(120), Method: entity.PaymentBank, BankAccountID: "b1",
	})
	require.NoError(t, err)
	assert.True(t, res.Customer.DebtBalance.Equal(decimal.NewFromInt(180)))
	assert.True(t, res.Session.DebtRepaid.Equal(decimal.NewFromInt(120)))
	assert.True(t, res.Session.CashSales.IsZero())
	assert.True(t, res.Session.ExpectedCash.Equal(decimal.NewFromInt(220)))
	assert.Equal(t, entity.SourceBankAccount, res.Transaction.SourceType)
	assert.Equal(t, "b1", res.Transaction.SourceID)
	assert.Equal(t, entity.MoneyIn, res.Transaction.Type)
	assert.Equal(t, session.ID, res.Transaction.CashRegisterSessionID)

	bal, err := f.repos.Money.SourceBalance(f.ctx, entity.SourceBankAccount, "b1")
	require.NoError(t, err)
	assert.True(t, bal.Equal(decimal.NewFromInt(120)))
}
