package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/taantti/erp-demo/internal/domain"
	"github.com/taantti/erp-demo/internal/repository"
)

type tenantRepository struct {
	db *sqlx.DB
}

func NewTenantRepository(db *sqlx.DB) repository.TenantRepository {
	return &tenantRepository{db: db}
}

func (r *tenantRepository) Create(ctx context.Context, tenant *domain.Tenant) error {
	query := `INSERT INTO tenants (id, name, admin, active) VALUES (:id, :name, :admin, :active)`

	if _, err := r.db.NamedExecContext(ctx, query, tenant); err != nil {
		return fmt.Errorf("create tenant: %w", mapError(err))
	}
	return nil
}

func (r *tenantRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	query := `SELECT id, name, admin, active FROM tenants WHERE id = $1`

	var tenant domain.Tenant
	if err := r.db.GetContext(ctx, &tenant, query, id); err != nil {
		return nil, fmt.Errorf("get tenant: %w", mapError(err))
	}
	return &tenant, nil
}

func (r *tenantRepository) GetByName(ctx context.Context, name string) (*domain.Tenant, error) {
	query := `SELECT id, name, admin, active FROM tenants WHERE name = $1`

	var tenant domain.Tenant
	if err := r.db.GetContext(ctx, &tenant, query, name); err != nil {
		return nil, fmt.Errorf("get tenant by name: %w", mapError(err))
	}
	return &tenant, nil
}

func (r *tenantRepository) List(ctx context.Context) ([]*domain.Tenant, error) {
	query := `SELECT id, name, admin, active FROM tenants ORDER BY name`

	tenants := []*domain.Tenant{}
	if err := r.db.SelectContext(ctx, &tenants, query); err != nil {
		return nil, fmt.Errorf("list tenants: %w", mapError(err))
	}
	return tenants, nil
}

func (r *tenantRepository) Update(ctx context.Context, tenant *domain.Tenant) error {
	query := `UPDATE tenants SET name = $1, admin = $2, active = $3 WHERE id = $4`

	res, err := r.db.ExecContext(ctx, query, tenant.Name, tenant.Admin, tenant.Active, tenant.ID)
	if err != nil {
		return fmt.Errorf("update tenant: %w", mapError(err))
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}
