package middleware

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/taantti/erp-demo/internal/apperror"
	"github.com/taantti/erp-demo/internal/domain"
	"github.com/taantti/erp-demo/internal/repository"
	"github.com/taantti/erp-demo/pkg/jwt"
)

// Revocations answers whether a token has been revoked before its natural
// expiry. Satisfied by blacklist.TokenBlacklist.
type Revocations interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// Auth verifies the bearer token and resolves it into a live principal:
// the user must exist and be active, carry a role, and belong to an
// active tenant. The resolved principal is stored in locals for the
// permission and scoping layers downstream.
func Auth(
	tokens *jwt.TokenService,
	revoked Revocations,
	users repository.UserRepository,
	tenants repository.TenantRepository,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := jwt.ExtractBearer(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return apperror.MissingCredential()
		}

		claims, err := tokens.Validate(token)
		if err != nil {
			return apperror.InvalidCredential()
		}

		isRevoked, err := revoked.IsRevoked(c.Context(), token)
		if err != nil {
			return apperror.Internal(err)
		}
		if isRevoked {
			return apperror.InvalidCredential()
		}

		user, err := users.GetByID(c.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperror.NoActivePrincipal()
			}
			return apperror.Internal(err)
		}
		if !user.Active {
			return apperror.NoActivePrincipal()
		}
		if !user.Role.Valid() {
			return apperror.PrincipalHasNoRole()
		}

		tenant, err := tenants.GetByID(c.Context(), user.TenantID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperror.NoActiveTenant()
			}
			return apperror.Internal(err)
		}
		if !tenant.Active {
			return apperror.NoActiveTenant()
		}

		principal := &domain.Principal{
			UserID:   user.ID,
			Username: user.Username,
			Role:     user.Role,
			Tenant: domain.PrincipalTenant{
				ID:    tenant.ID,
				Name:  tenant.Name,
				Admin: tenant.Admin,
			},
		}

		c.Locals(localPrincipal, principal)
		c.Locals(localClaims, claims)
		c.Locals(localToken, token)

		return c.Next()
	}
}
