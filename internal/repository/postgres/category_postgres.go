package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/taantti/erp-demo/internal/domain"
	"github.com/taantti/erp-demo/internal/repository"
	"github.com/taantti/erp-demo/internal/scope"
)

const categoryColumns = `id, name, description, tenant_id, created_at, updated_at`

type categoryRepository struct {
	db *sqlx.DB
}

func NewProductCategoryRepository(db *sqlx.DB) repository.ProductCategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.ProductCategory) error {
	query := `
		INSERT INTO product_categories (id, name, description, tenant_id, created_at, updated_at)
		VALUES (:id, :name, :description, :tenant_id, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, category); err != nil {
		return fmt.Errorf("create category: %w", mapError(err))
	}
	return nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID, cond scope.Condition) (*domain.ProductCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM product_categories WHERE id = $1`
	args := []any{id}

	clause, clauseArgs := tenantClause(cond, len(args)+1)
	query += clause
	args = append(args, clauseArgs...)

	var category domain.ProductCategory
	if err := r.db.GetContext(ctx, &category, query, args...); err != nil {
		return nil, fmt.Errorf("find category: %w", mapError(err))
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context, cond scope.Condition) ([]*domain.ProductCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM product_categories WHERE 1=1`
	var args []any

	clause, clauseArgs := tenantClause(cond, len(args)+1)
	query += clause
	args = append(args, clauseArgs...)
	query += ` ORDER BY name`

	categories := []*domain.ProductCategory{}
	if err := r.db.SelectContext(ctx, &categories, query, args...); err != nil {
		return nil, fmt.Errorf("list categories: %w", mapError(err))
	}
	return categories, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *domain.ProductCategory, cond scope.Condition) error {
	query := `
		UPDATE product_categories SET
			name = $1, description = $2, tenant_id = $3, updated_at = $4
		WHERE id = $5`
	args := []any{
		category.Name, category.Description, category.TenantID, category.UpdatedAt, category.ID,
	}

	clause, clauseArgs := tenantClause(cond, len(args)+1)
	query += clause
	args = append(args, clauseArgs...)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update category: %w", mapError(err))
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID, cond scope.Condition) error {
	query := `DELETE FROM product_categories WHERE id = $1`
	args := []any{id}

	clause, clauseArgs := tenantClause(cond, len(args)+1)
	query += clause
	args = append(args, clauseArgs...)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete category: %w", mapError(err))
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}
