// Package seed provisions the default roles, the administrative tenant and
// the first OVERSEER user. It runs only when the INIT flag is set and is
// idempotent: existing rows are left alone.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/taantti/erp-demo/internal/domain"
	"github.com/taantti/erp-demo/internal/repository"
	"github.com/taantti/erp-demo/pkg/hash"
)

const (
	defaultTenantName   = "system"
	defaultAdminUser    = "overseer"
	defaultAdminEmail   = "overseer@localhost"
	defaultAdminPass    = "Overseer#2024"
	defaultAdminFirst   = "System"
	defaultAdminSurname = "Overseer"
)

type Seeder struct {
	roles   repository.RoleRepository
	tenants repository.TenantRepository
	users   repository.UserRepository
	logger  *slog.Logger
}

func New(
	roles repository.RoleRepository,
	tenants repository.TenantRepository,
	users repository.UserRepository,
	logger *slog.Logger,
) *Seeder {
	return &Seeder{
		roles:   roles,
		tenants: tenants,
		users:   users,
		logger:  logger,
	}
}

// Run provisions defaults, skipping anything already present.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.seedRoles(ctx); err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}

	tenant, err := s.seedAdminTenant(ctx)
	if err != nil {
		return fmt.Errorf("seed admin tenant: %w", err)
	}

	if err := s.seedOverseer(ctx, tenant); err != nil {
		return fmt.Errorf("seed overseer user: %w", err)
	}

	s.logger.Info("seed completed")
	return nil
}

func (s *Seeder) seedRoles(ctx context.Context) error {
	for _, code := range domain.RoleCodes {
		if _, err := s.roles.GetByCode(ctx, code); err == nil {
			continue
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		role := &domain.Role{
			ID:          uuid.New(),
			Name:        roleName(code),
			Role:        code,
			Permissions: matrixFor(code),
		}
		if err := s.roles.Create(ctx, role); err != nil {
			return err
		}
		s.logger.Info("seeded role", "role", string(code))
	}
	return nil
}

func (s *Seeder) seedAdminTenant(ctx context.Context) (*domain.Tenant, error) {
	tenant, err := s.tenants.GetByName(ctx, defaultTenantName)
	if err == nil {
		return tenant, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	tenant = &domain.Tenant{
		ID:     uuid.New(),
		Name:   defaultTenantName,
		Admin:  true,
		Active: true,
	}
	if err := s.tenants.Create(ctx, tenant); err != nil {
		return nil, err
	}
	s.logger.Info("seeded admin tenant", "tenant", tenant.Name)
	return tenant, nil
}

func (s *Seeder) seedOverseer(ctx context.Context, tenant *domain.Tenant) error {
	if _, err := s.users.GetByUsername(ctx, defaultAdminUser); err == nil {
		return nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hashed, err := hash.Password(defaultAdminPass)
	if err != nil {
		return err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     defaultAdminUser,
		PasswordHash: hashed,
		FirstName:    defaultAdminFirst,
		LastName:     defaultAdminSurname,
		Email:        defaultAdminEmail,
		Role:         domain.RoleOverseer,
		Active:       true,
		TenantID:     tenant.ID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return err
	}

	// The password is a bootstrap credential; force a change on first login
	// through operational process, not code.
	s.logger.Warn("seeded overseer user with default password", "username", user.Username)
	return nil
}

func roleName(code domain.RoleCode) string {
	switch code {
	case domain.RoleOverseer:
		return "Overseer"
	case domain.RoleAdmin:
		return "Administrator"
	case domain.RoleWriter:
		return "Writer"
	default:
		return "Reader"
	}
}
