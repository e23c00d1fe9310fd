package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/pos-ledger-api/internal/application/ledger"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
)

var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción READ COMMITTED, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. La consistencia depende de los SELECT ... FOR UPDATE de cada repo.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewRepos construye todos los repositorios sobre el mismo Querier (pool o tx).
func NewRepos(q Querier) repository.Repos {
	return repository.Repos{
		Categories:     NewCategoryRepository(q),
		Items:          NewItemRepository(q),
		ItemLogs:       NewItemLogRepository(q),
		Money:          NewMoneyTransactionRepository(q),
		Sessions:       NewCashSessionRepository(q),
		Sales:          NewSaleRepository(q),
		Warranties:     NewWarrantyRepository(q),
		Customers:      NewCustomerRepository(q),
		BankAccounts:   NewBankAccountRepository(q),
		PurchaseOrders: NewPurchaseOrderRepository(q),
		Assemblies:     NewAssemblyRepository(q),
		Adjustments:    NewStockAdjustmentRepository(q),
		Users:          NewUserRepository(q),
	}
}
