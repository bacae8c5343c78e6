package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/taantti/erp-demo/internal/domain"
	"github.com/taantti/erp-demo/internal/scope"
)

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uuid.UUID, cond scope.Condition) (*domain.Product, error)
	List(ctx context.Context, cond scope.Condition) ([]*domain.Product, error)
	Update(ctx context.Context, product *domain.Product, cond scope.Condition) error
	Delete(ctx context.Context, id uuid.UUID, cond scope.Condition) error
}

type ProductCategoryRepository interface {
	Create(ctx context.Context, category *domain.ProductCategory) error
	FindByID(ctx context.Context, id uuid.UUID, cond scope.Condition) (*domain.ProductCategory, error)
	List(ctx context.Context, cond scope.Condition) ([]*domain.ProductCategory, error)
	Update(ctx context.Context, category *domain.ProductCategory, cond scope.Condition) error
	Delete(ctx context.Context, id uuid.UUID, cond scope.Condition) error
}
