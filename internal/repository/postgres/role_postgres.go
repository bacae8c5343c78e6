package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/taantti/erp-demo/internal/domain"
	"github.com/taantti/erp-demo/internal/repository"
)

type roleRepository struct {
	db *sqlx.DB
}

func NewRoleRepository(db *sqlx.DB) repository.RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) Create(ctx context.Context, role *domain.Role) error {
	query := `INSERT INTO roles (id, name, role, permissions) VALUES (:id, :name, :role, :permissions)`

	if _, err := r.db.NamedExecContext(ctx, query, role); err != nil {
		return fmt.Errorf("create role: %w", mapError(err))
	}
	return nil
}

func (r *roleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	query := `SELECT id, name, role, permissions FROM roles WHERE id = $1`

	var role domain.Role
	if err := r.db.GetContext(ctx, &role, query, id); err != nil {
		return nil, fmt.Errorf("get role: %w", mapError(err))
	}
	return &role, nil
}

func (r *roleRepository) GetByCode(ctx context.Context, code domain.RoleCode) (*domain.Role, error) {
	query := `SELECT id, name, role, permissions FROM roles WHERE role = $1`

	var role domain.Role
	if err := r.db.GetContext(ctx, &role, query, code); err != nil {
		return nil, fmt.Errorf("get role by code: %w", mapError(err))
	}
	return &role, nil
}

func (r *roleRepository) List(ctx context.Context) ([]*domain.Role, error) {
	query := `SELECT id, name, role, permissions FROM roles ORDER BY role`

	roles := []*domain.Role{}
	if err := r.db.SelectContext(ctx, &roles, query); err != nil {
		return nil, fmt.Errorf("list roles: %w", mapError(err))
	}
	return roles, nil
}

func (r *roleRepository) Update(ctx context.Context, role *domain.Role) error {
	query := `UPDATE roles SET name = $1, permissions = $2 WHERE id = $3`

	res, err := r.db.ExecContext(ctx, query, role.Name, role.Permissions, role.ID)
	if err != nil {
		return fmt.Errorf("update role: %w", mapError(err))
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *roleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM roles WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete role: %w", mapError(err))
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}
