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

const userColumns = `id, username, password_hash, first_name, last_name, email, role, active, tenant_id, created_at, updated_at`

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (
			id, username, password_hash, first_name, last_name, email,
			role, active, tenant_id, created_at, updated_at
		) VALUES (
			:id, :username, :password_hash, :first_name, :last_name, :email,
			:role, :active, :tenant_id, :created_at, :updated_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("create user: %w", mapError(err))
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, fmt.Errorf("get user by id: %w", mapError(err))
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, username); err != nil {
		return nil, fmt.Errorf("get user by username: %w", mapError(err))
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID, cond scope.Condition) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	args := []any{id}

	clause, clauseArgs := tenantClause(cond, len(args)+1)
	query += clause
	args = append(args, clauseArgs...)

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, args...); err != nil {
		return nil, fmt.Errorf("find user: %w", mapError(err))
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, filter repository.UserFilter, cond scope.Condition) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE 1=1`
	var args []any

	clause, clauseArgs := tenantClause(cond, len(args)+1)
	query += clause
	args = append(args, clauseArgs...)

	if filter.Username != "" {
		args = append(args, filter.Username)
		query += fmt.Sprintf(" AND username = $%d", len(args))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		query += fmt.Sprintf(" AND active = $%d", len(args))
	}
	query += ` ORDER BY username`

	users := []*domain.User{}
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, fmt.Errorf("list users: %w", mapError(err))
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User, cond scope.Condition) error {
	query := `
		UPDATE users SET
			username = $1, password_hash = $2, first_name = $3, last_name = $4,
			email = $5, role = $6, active = $7, tenant_id = $8, updated_at = $9
		WHERE id = $10`
	args := []any{
		user.Username, user.PasswordHash, user.FirstName, user.LastName,
		user.Email, user.Role, user.Active, user.TenantID, user.UpdatedAt,
		user.ID,
	}

	clause, clauseArgs := tenantClause(cond, len(args)+1)
	query += clause
	args = append(args, clauseArgs...)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update user: %w", mapError(err))
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID, cond scope.Condition) error {
	query := `DELETE FROM users WHERE id = $1`
	args := []any{id}

	clause, clauseArgs := tenantClause(cond, len(args)+1)
	query += clause
	args = append(args, clauseArgs...)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete user: %w", mapError(err))
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}
