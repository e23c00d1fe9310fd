package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pos-ledger-api/internal/domain"
)

func TestMapUniqueViolation(t *testing.T) {
	// Caso 1: índice de sesión abierta única
	err := &pgconn.PgError{Code: "23505", ConstraintName: "cash_register_sessions_one_open"}
	assert.True(t, isUniqueViolation(err))
	assert.ErrorIs(t, mapUniqueViolation(err), domain.ErrConflict)

	// Caso 2: serial repetido
	err = &pgconn.PgError{Code: "23505", ConstraintName: "warranties_item_serial_key"}
	assert.ErrorIs(t, mapUniqueViolation(err), domain.ErrInvalidInput)

	// Caso 3: cualquier otro único
	err = &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	assert.ErrorIs(t, mapUniqueViolation(err), domain.ErrDuplicate)

	// Caso 4: CHECK
	assert.True(t, isCheckViolation(&pgconn.PgError{Code: "23514"}))
	assert.False(t, isCheckViolation(errors.New("x")))
}

func TestInvalidID(t *testing.T) {
	bad := fmt.Errorf("get item: %w", &pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type uuid"})

	// Caso 1: lookup de una fila, se trata como ausente
	assert.True(t, isNoRows(bad))
	assert.True(t, isNoRows(pgx.ErrNoRows))
	assert.False(t, isNoRows(errors.New("conexión caída")))

	// Caso 2: listados devuelven ErrNotFound
	assert.ErrorIs(t, mapInvalidID(bad), domain.ErrNotFound)
	other := errors.New("x")
	assert.Equal(t, other, mapInvalidID(other))
	assert.NoError(t, mapInvalidID(nil))
}

func TestNullable(t *testing.T) {
	assert.Nil(t, nullable(""))
	assert.Equal(t, "abc", nullable("abc"))
	s := "x"
	assert.Equal(t, "x", deref(&s))
	assert.Equal(t, "", deref(nil))
}
