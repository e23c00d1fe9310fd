package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-ledger-api/internal/application/dto"
	"github.com/jhoicas/pos-ledger-api/internal/domain/entity"
)

// ResolveCapabilities traduce el rol del token a flags de capacidad y los deja en
// LocalCaps. Debe ir justo después de AuthMiddleware.
func ResolveCapabilities(roleCaps entity.RoleCapabilities) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(LocalCaps, roleCaps.For(GetRole(c)))
		return c.Next()
	}
}

// RequireCapability responde 403 si el rol del usuario no tiene la capacidad.
//
// Comportamiento:
//   - 401 si no hay usuario en el contexto.
//   - 403 CAPABILITY_DISABLED si el rol no incluye el flag.
func RequireCapability(want entity.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := ActorFrom(c)
		if actor.UserID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "usuario no encontrado en el token",
			})
		}
		if !actor.Caps.Has(want) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "CAPABILITY_DISABLED",
				Message: "el rol '" + actor.Role + "' no tiene acceso a este módulo",
			})
		}
		return c.Next()
	}
}
