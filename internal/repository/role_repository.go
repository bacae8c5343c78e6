package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/taantti/erp-demo/internal/domain"
)

// Roles are shared across tenants and read on every authorized request.
type RoleRepository interface {
	Create(ctx context.Context, role *domain.Role) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Role, error)
	GetByCode(ctx context.Context, code domain.RoleCode) (*domain.Role, error)
	List(ctx context.Context) ([]*domain.Role, error)
	Update(ctx context.Context, role *domain.Role) error
	Delete(ctx context.Context, id uuid.UUID) error
}
