package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/taantti/erp-demo/internal/domain"
	"github.com/taantti/erp-demo/internal/repository"
)

type auditLogRepository struct {
	db *sqlx.DB
}

func NewAuditLogRepository(db *sqlx.DB) repository.AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Insert(ctx context.Context, entry *domain.AuditLog) error {
	query := `
		INSERT INTO logs (id, level, message, actor, tenant_id, created_at)
		VALUES (:id, :level, :message, :actor, :tenant_id, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("insert audit log: %w", mapError(err))
	}
	return nil
}
