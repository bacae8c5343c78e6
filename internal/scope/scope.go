// Package scope computes the tenant filter for reads and the tenant stamp
// for writes. Every service touching a tenant-scoped collection calls
// Check first, then Condition/TenantIDForQuery/StampForWrite; no handler
// queries or writes scoped data any other way.
package scope

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/taantti/erp-demo/internal/apperror"
	"github.com/taantti/erp-demo/internal/domain"
	"github.com/taantti/erp-demo/internal/logging"
)

// Condition is the tenant filter repositories translate into SQL. A zero
// AllTenants condition matches exactly one tenant.
type Condition struct {
	AllTenants bool
	TenantID   uuid.UUID
}

// AuditRecorder persists security events alongside the structured log
// output. Recording is best-effort and never fails the request.
type AuditRecorder interface {
	RecordSecurityEvent(ctx context.Context, principal *domain.Principal, message string)
}

type Scoper struct {
	logger *slog.Logger
	audit  AuditRecorder
}

func NewScoper(logger *slog.Logger, audit AuditRecorder) *Scoper {
	return &Scoper{logger: logger, audit: audit}
}

func (s *Scoper) critical(ctx context.Context, principal *domain.Principal, msg string, args ...any) {
	s.logger.Log(ctx, logging.LevelCritical, msg, args...)
	if s.audit != nil {
		s.audit.RecordSecurityEvent(ctx, principal, msg)
	}
}

// Check gates every scoped operation. Elevation requires the admin tenant
// AND the OVERSEER role; an elevation attempt by anyone else indicates a
// bug or an attack and is logged as critical. Without elevation the
// principal must carry a resolved tenant id, or scoping could silently
// vanish.
func (s *Scoper) Check(ctx context.Context, principal *domain.Principal, allTenants bool) error {
	if principal == nil {
		return apperror.PermissionDenied()
	}

	if allTenants && !principal.Tenant.Admin {
		s.critical(ctx, principal, "all-tenants access requested without admin tenant",
			"username", principal.Username,
			"tenant", principal.Tenant.ID.String(),
		)
		return apperror.PermissionDenied()
	}

	if allTenants && principal.Role != domain.RoleOverseer {
		s.critical(ctx, principal, "all-tenants access requested without overseer role",
			"username", principal.Username,
			"role", string(principal.Role),
		)
		return apperror.PermissionDenied()
	}

	if !allTenants && principal.Tenant.ID == uuid.Nil {
		s.critical(ctx, principal, "scoped access requested by principal without tenant",
			"username", principal.Username,
		)
		return apperror.PermissionDenied()
	}

	return nil
}

// TenantIDForQuery picks the tenant id feeding a query filter: the caller's
// own tenant unless elevation is in effect and an explicit tenant was
// requested.
func (s *Scoper) TenantIDForQuery(principal *domain.Principal, requested uuid.UUID, allTenants bool) uuid.UUID {
	if !allTenants || requested == uuid.Nil {
		return principal.Tenant.ID
	}
	return requested
}

// QueryCondition builds the filter: empty when elevated (search across all
// tenants), exact tenant match otherwise.
func (s *Scoper) QueryCondition(tenantID uuid.UUID, allTenants bool) Condition {
	if allTenants {
		return Condition{AllTenants: true}
	}
	return Condition{TenantID: tenantID}
}

// StampForWrite returns the tenant id to write. Without elevation the
// principal's own tenant overrides whatever the caller supplied; with
// elevation the supplied value is left untouched.
func (s *Scoper) StampForWrite(principal *domain.Principal, supplied uuid.UUID, allTenants bool) uuid.UUID {
	if !allTenants {
		return principal.Tenant.ID
	}
	return supplied
}
