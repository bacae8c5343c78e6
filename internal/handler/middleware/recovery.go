package middleware

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"

	"github.com/taantti/erp-demo/internal/apperror"
)

// Recovery converts panics into a normalized internal error so a broken
// handler never leaks a stack trace to the client.
func Recovery(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					"panic", fmt.Sprintf("%v", r),
					"path", c.Path(),
					"stack", string(debug.Stack()),
				)
				err = apperror.Internal(fmt.Errorf("panic: %v", r))
			}
		}()

		return c.Next()
	}
}
