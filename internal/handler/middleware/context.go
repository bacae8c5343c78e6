package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taantti/erp-demo/internal/domain"
)

// Locals keys shared between middleware and handlers.
const (
	localPrincipal = "principal"
	localToken     = "token"
	localClaims    = "claims"
	localParams    = "params"
)

// Principal returns the resolved principal, or nil before the auth
// middleware has run.
func Principal(c *fiber.Ctx) *domain.Principal {
	p, _ := c.Locals(localPrincipal).(*domain.Principal)
	return p
}

// Token returns the raw bearer token for the current request.
func Token(c *fiber.Ctx) string {
	t, _ := c.Locals(localToken).(string)
	return t
}

// Claims returns the verified token claims for the current request.
func Claims(c *fiber.Ctx) *domain.Claims {
	cl, _ := c.Locals(localClaims).(*domain.Claims)
	return cl
}

// Param returns the sanitized value of a path parameter. Route params on
// the request itself are not rewritable, so the sanitizer stores cleaned
// copies in locals and handlers read them through here.
func Param(c *fiber.Ctx, name string) string {
	if params, ok := c.Locals(localParams).(map[string]string); ok {
		if v, ok := params[name]; ok {
			return v
		}
	}
	return c.Params(name)
}
