package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taantti/erp-demo/internal/domain"
	"github.com/taantti/erp-demo/internal/service"
)

// Authorize gates a route on a single module/feature cell of the
// principal's permission matrix. Runs after Auth.
func Authorize(perms *service.PermissionService, module domain.Module, feature domain.Feature) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := perms.Authorize(c.Context(), Principal(c), module, feature); err != nil {
			return err
		}
		return c.Next()
	}
}
