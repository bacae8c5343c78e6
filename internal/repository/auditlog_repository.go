package repository

import (
	"context"

	"github.com/taantti/erp-demo/internal/domain"
)

// AuditLogRepository appends security events. Append-only: no update or
// delete surface.
type AuditLogRepository interface {
	Insert(ctx context.Context, entry *domain.AuditLog) error
}
