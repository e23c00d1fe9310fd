package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/pos-ledger-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isInvalidID 22P02: el parámetro no es un UUID válido.
func isInvalidID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}

// isNoRows fila ausente. Un id que no es UUID tampoco puede existir.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || isInvalidID(err)
}

// mapInvalidID traduce 22P02 a domain.ErrNotFound en listados y sumas.
func mapInvalidID(err error) error {
	if isInvalidID(err) {
		return fmt.Errorf("%w: id inválido", domain.ErrNotFound)
	}
	return err
}

// isCheckViolation 23514: el CHECK de la tabla rechazó la fila.
func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23514"
}

func constraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// mapUniqueViolation traduce los índices únicos con significado de dominio.
func mapUniqueViolation(err error) error {
	switch constraintName(err) {
	case "cash_register_sessions_one_open":
		return domain.ErrSessionAlreadyOpen
	case "warranties_item_serial_key":
		return domain.Invalid("serial_numbers", "el número de serie ya está registrado para el ítem")
	}
	return domain.ErrDuplicate
}

// nullable convierte "" en NULL para columnas UUID opcionales.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
