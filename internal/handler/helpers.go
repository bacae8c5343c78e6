package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/taantti/erp-demo/internal/apperror"
	"github.com/taantti/erp-demo/internal/handler/middleware"
)

// idParam reads the sanitized :id path parameter as a UUID.
func idParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	raw := middleware.Param(c, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.ValidationFailed([]apperror.FieldError{{
			Path:    "params." + name,
			Message: "must be a valid UUID",
		}})
	}
	return id, nil
}

// tenantQuery reads the optional tenant_id query filter. An absent value
// yields uuid.Nil, which the scoper replaces with the caller's own tenant.
func tenantQuery(c *fiber.Ctx) (uuid.UUID, error) {
	raw := c.Query("tenant_id")
	if raw == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.ValidationFailed([]apperror.FieldError{{
			Path:    "query.tenant_id",
			Message: "must be a valid UUID",
		}})
	}
	return id, nil
}

// allTenantsQuery reads the cross-tenant elevation flag. The scoper decides
// whether the caller may actually use it.
func allTenantsQuery(c *fiber.Ctx) bool {
	return c.QueryBool("all_tenants")
}
