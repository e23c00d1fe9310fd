package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-ledger-api/internal/domain"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
	"github.com/jhoicas/pos-ledger-api/internal/domain/repository"
)

var (
	_ repository.CustomerRepository    = (*CustomerRepo)(nil)
	_ repository.BankAccountRepository = (*BankAccountRepo)(nil)
)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, name, tax_id, email, phone, address, debt_balance, created_at, updated_at`

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.TaxID, &c.Email, &c.Phone, &c.Address, &c.DebtBalance, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	_, err := r.q.Exec(ctx, `INSERT INTO customers (`+customerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.Name, c.TaxID, c.Email, c.Phone, c.Address, c.DebtBalance, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

func (r *CustomerRepo) get(ctx context.Context, query, id string) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	return r.get(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
}

// GetForUpdate cliente bloqueado (deuda).
func (r *CustomerRepo) GetForUpdate(ctx context.Context, id string) (*entity.Customer, error) {
	return r.get(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1 FOR UPDATE`, id)
}

// List lista clientes por nombre con paginación.
func (r *CustomerRepo) List(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	rows, err := r.q.Query(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY name, id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", mapInvalidID(err))
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, mapInvalidID(rows.Err())
}

// UpdateDebt fija el saldo de deuda.
func (r *CustomerRepo) UpdateDebt(ctx context.Context, id string, debt decimal.Decimal) error {
	_, err := r.q.Exec(ctx, `UPDATE customers SET debt_balance = $2, updated_at = now() WHERE id = $1`, id, debt)
	if err != nil {
		if isCheckViolation(err) {
			return domain.Invalid("debt_balance", "no puede ser negativo")
		}
		return fmt.Errorf("update customer debt: %w", err)
	}
	return nil
}

// BankAccountRepo cuentas bancarias.
type BankAccountRepo struct {
	q Querier
}

// NewBankAccountRepository construye el adaptador.
func NewBankAccountRepository(q Querier) *BankAccountRepo {
	return &BankAccountRepo{q: q}
}

// Create inserta la cuenta.
func (r *BankAccountRepo) Create(ctx context.Context, a *entity.BankAccount) error {
	_, err := r.q.Exec(ctx, `INSERT INTO bank_accounts (id, name, bank, number, active, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.Name, a.Bank, a.Number, a.Active, a.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert bank account: %w", err)
	}
	return nil
}

// GetByID cuenta por ID.
func (r *BankAccountRepo) GetByID(ctx context.Context, id string) (*entity.BankAccount, error) {
	var a entity.BankAccount
	err := r.q.QueryRow(ctx, `SELECT id, name, bank, number, active, created_at FROM bank_accounts WHERE id = $1`, id).
		Scan(&a.ID, &a.Name, &a.Bank, &a.Number, &a.Active, &a.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bank account: %w", err)
	}
	return &a, nil
}

// List todas las cuentas.
func (r *BankAccountRepo) List(ctx context.Context) ([]*entity.BankAccount, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, bank, number, active, created_at FROM bank_accounts ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list bank accounts: %w", mapInvalidID(err))
	}
	defer rows.Close()
	var list []*entity.BankAccount
	for rows.Next() {
		var a entity.BankAccount
		if err := rows.Scan(&a.ID, &a.Name, &a.Bank, &a.Number, &a.Active, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bank account: %w", err)
		}
		list = append(list, &a)
	}
	return list, mapInvalidID(rows.Err())
}
