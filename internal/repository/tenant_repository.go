package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/taantti/erp-demo/internal/domain"
)

// Tenants are the isolation boundary itself, not tenant-scoped documents;
// access to them is gated purely by the permission matrix.
type TenantRepository interface {
	Create(ctx context.Context, tenant *domain.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
	GetByName(ctx context.Context, name string) (*domain.Tenant, error)
	List(ctx context.Context) ([]*domain.Tenant, error)
	Update(ctx context.Context, tenant *domain.Tenant) error
}
