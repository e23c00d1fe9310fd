package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrNegativeStock      = errors.New("el stock no puede quedar negativo")
	ErrNoOpenSession      = &ConflictError{Reason: "no hay una sesión de caja abierta"}
	ErrSessionAlreadyOpen = &ConflictError{Reason: "ya existe una sesión de caja abierta"}
)

// ValidationError entrada mal formada o incompleta; el caller puede corregirla y reintentar.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validación: " + e.Reason
	}
	return fmt.Sprintf("validación: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// Invalid construye un ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ConflictError la operación no aplica al estado actual (sesión abierta, OC en otro estado...).
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return "conflicto: " + e.Reason }

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// Conflict construye un ConflictError.
func Conflict(format string, args ...any) error {
	return &ConflictError{Reason: fmt.Sprintf(format, args...)}
}

// InsufficientStockError regla de negocio: no alcanza el stock de un ítem.
// Lleva nombre y cantidades para mostrarlas al usuario.
type InsufficientStockError struct {
	ItemID    string
	ItemName  string
	Required  int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %q: requerido %d, disponible %d", e.ItemName, e.Required, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// NegativeStockError guarda del invariante stock >= 0.
type NegativeStockError struct {
	ItemID  string
	Current int
	Delta   int
}

func (e *NegativeStockError) Error() string {
	return fmt.Sprintf("ítem %s: stock %d con delta %d quedaría negativo", e.ItemID, e.Current, e.Delta)
}

func (e *NegativeStockError) Is(target error) bool { return target == ErrNegativeStock }

// NotFoundError entidad referenciada inexistente.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s no encontrado", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NotFound construye un NotFoundError.
func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}
