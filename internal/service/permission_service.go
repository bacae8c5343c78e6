package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/taantti/erp-demo/internal/apperror"
	"github.com/taantti/erp-demo/internal/domain"
	"github.com/taantti/erp-demo/internal/repository"
)

// PermissionService decides allow/deny for a (module, feature) pair against
// the principal's role-permission matrix. Evaluation is read-only.
type PermissionService struct {
	roleRepo repository.RoleRepository
	logger   *slog.Logger
}

func NewPermissionService(roleRepo repository.RoleRepository, logger *slog.Logger) *PermissionService {
	return &PermissionService{roleRepo: roleRepo, logger: logger}
}

// Authorize allows only an explicit access=true matrix entry. A missing
// role record, missing module key, missing feature key or access=false all
// deny with an identical outward response; the log detail differs. Calling
// this without a module, feature or resolved principal is a programming
// defect, not a permission failure.
func (s *PermissionService) Authorize(ctx context.Context, principal *domain.Principal, module domain.Module, feature domain.Feature) error {
	if module == "" {
		s.logger.ErrorContext(ctx, "authorize called without module")
		return apperror.Internal(errors.New("authorize: missing module"))
	}
	if feature == "" {
		s.logger.ErrorContext(ctx, "authorize called without feature")
		return apperror.Internal(errors.New("authorize: missing feature"))
	}
	if principal == nil || principal.UserID == uuid.Nil {
		s.logger.ErrorContext(ctx, "authorize called without resolved principal")
		return apperror.Internal(errors.New("authorize: missing principal"))
	}
	if principal.Role == "" {
		s.logger.ErrorContext(ctx, "authorize called with principal lacking a role",
			"username", principal.Username)
		return apperror.Internal(errors.New("authorize: principal has no role"))
	}

	role, err := s.roleRepo.GetByCode(ctx, principal.Role)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.ErrorContext(ctx, "no role record found",
				"role", string(principal.Role), "username", principal.Username)
			return apperror.AccessDenied()
		}
		return apperror.Internal(fmt.Errorf("load role %s: %w", principal.Role, err))
	}

	features, ok := role.Permissions[module]
	if !ok {
		s.logger.ErrorContext(ctx, "module not present in permission matrix",
			"role", string(principal.Role), "module", string(module))
		return apperror.AccessDenied()
	}

	perm, ok := features[feature]
	if !ok {
		s.logger.ErrorContext(ctx, "feature not present in permission matrix",
			"role", string(principal.Role), "module", string(module), "feature", string(feature))
		return apperror.AccessDenied()
	}

	if !perm.Access {
		s.logger.ErrorContext(ctx, "permission entry denies access",
			"role", string(principal.Role), "module", string(module), "feature", string(feature))
		return apperror.AccessDenied()
	}

	if perm.AdminTenantOnly && !principal.Tenant.Admin {
		s.logger.ErrorContext(ctx, "permission entry requires admin tenant",
			"role", string(principal.Role), "module", string(module), "feature", string(feature),
			"tenant", principal.Tenant.ID.String())
		return apperror.AccessDenied()
	}

	s.logger.DebugContext(ctx, "access granted",
		"role", string(principal.Role), "module", string(module), "feature", string(feature))
	return nil
}
