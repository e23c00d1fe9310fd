package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-ledger-api/internal/application/dto"
	"github.com/jhoicas/pos-ledger-api/internal/domain"
)

// respondError traduce errores de dominio a status HTTP. Los 500 no exponen el detalle;
// el error queda en LocalError para el request logger.
func respondError(c *fiber.Ctx, err error) error {
	status, code := classify(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		c.Locals(LocalError, err)
		msg = "error interno"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrNegativeStock):
		return fiber.StatusConflict, "NEGATIVE_STOCK"
	case errors.Is(err, domain.ErrNoOpenSession):
		return fiber.StatusConflict, "NO_OPEN_SESSION"
	case errors.Is(err, domain.ErrSessionAlreadyOpen):
		return fiber.StatusConflict, "SESSION_ALREADY_OPEN"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}
