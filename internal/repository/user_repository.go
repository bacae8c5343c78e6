package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/taantti/erp-demo/internal/domain"
	"github.com/taantti/erp-demo/internal/scope"
)

// UserFilter narrows a scoped user listing.
type UserFilter struct {
	Username string
	Active   *bool
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error

	// GetByID loads a user without a tenant filter. Only the principal
	// resolver and login flow may use it; business reads go through FindByID.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// Tenant-scoped reads and writes. cond comes from the scoper, never
	// built by hand.
	FindByID(ctx context.Context, id uuid.UUID, cond scope.Condition) (*domain.User, error)
	List(ctx context.Context, filter UserFilter, cond scope.Condition) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User, cond scope.Condition) error
	Delete(ctx context.Context, id uuid.UUID, cond scope.Condition) error
}
