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

const productColumns = `id, name, description, price, category_id, tenant_id, created_at, updated_at`

type productRepository struct {
	db *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (id, name, description, price, category_id, tenant_id, created_at, updated_at)
		VALUES (:id, :name, :description, :price, :category_id, :tenant_id, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, product); err != nil {
		return fmt.Errorf("create product: %w", mapError(err))
	}
	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID, cond scope.Condition) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	args := []any{id}

	clause, clauseArgs := tenantClause(cond, len(args)+1)
	query += clause
	args = append(args, clauseArgs...)

	var product domain.Product
	if err := r.db.GetContext(ctx, &product, query, args...); err != nil {
		return nil, fmt.Errorf("find product: %w", mapError(err))
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, cond scope.Condition) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	var args []any

	clause, clauseArgs := tenantClause(cond, len(args)+1)
	query += clause
	args = append(args, clauseArgs...)
	query += ` ORDER BY name`

	products := []*domain.Product{}
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, fmt.Errorf("list products: %w", mapError(err))
	}
	return products, nil
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product, cond scope.Condition) error {
	query := `
		UPDATE products SET
			name = $1, description = $2, price = $3, category_id = $4,
			tenant_id = $5, updated_at = $6
		WHERE id = $7`
	args := []any{
		product.Name, product.Description, product.Price, product.CategoryID,
		product.TenantID, product.UpdatedAt, product.ID,
	}

	clause, clauseArgs := tenantClause(cond, len(args)+1)
	query += clause
	args = append(args, clauseArgs...)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update product: %w", mapError(err))
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID, cond scope.Condition) error {
	query := `DELETE FROM products WHERE id = $1`
	args := []any{id}

	clause, clauseArgs := tenantClause(cond, len(args)+1)
	query += clause
	args = append(args, clauseArgs...)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete product: %w", mapError(err))
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}
