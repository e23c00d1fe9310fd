package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-ledger-api/internal/application/dto"
	"github.com/jhoicas/pos-ledger-api/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Los errores usan el nombre JSON del campo.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bind parsea el body en dst y aplica las reglas `validate`.
func bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return domain.Invalid("body", "cuerpo inválido")
	}
	return check(dst)
}

func check(dst any) error {
	err := validate.Struct(dst)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			parts = append(parts, fe.Namespace()+": "+fe.Tag())
		}
		return domain.Invalid(verrs[0].Field(), strings.Join(parts, "; "))
	}
	return domain.Invalid("", err.Error())
}

// page lee ?limit=&offset= con defLimit por defecto.
func page(c *fiber.Ctx, defLimit int) (dto.PageRequest, error) {
	var p dto.PageRequest
	if err := c.QueryParser(&p); err != nil {
		return p, domain.Invalid("limit", "paginación inválida")
	}
	p = p.Or(defLimit)
	return p, check(&p)
}
