package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/taantti/erp-demo/internal/domain"
	"github.com/taantti/erp-demo/internal/repository"
)

// AuditService persists security events to the tenant-scoped logs table.
// Writes are best-effort: an audit insert failure is logged and swallowed
// so it can never mask the original outcome.
type AuditService struct {
	logRepo repository.AuditLogRepository
	logger  *slog.Logger
}

func NewAuditService(logRepo repository.AuditLogRepository, logger *slog.Logger) *AuditService {
	return &AuditService{logRepo: logRepo, logger: logger}
}

func (s *AuditService) RecordSecurityEvent(ctx context.Context, principal *domain.Principal, message string) {
	entry := &domain.AuditLog{
		ID:        uuid.New(),
		Level:     "CRITICAL",
		Message:   message,
		CreatedAt: time.Now(),
	}
	if principal != nil {
		entry.Actor = principal.Username
		entry.TenantID = principal.Tenant.ID
	}

	if err := s.logRepo.Insert(ctx, entry); err != nil {
		s.logger.ErrorContext(ctx, "audit insert failed", "error", err, "message", message)
	}
}
