package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taantti/erp-demo/internal/apperror"
	"github.com/taantti/erp-demo/internal/config"
	"github.com/taantti/erp-demo/internal/domain"
	"github.com/taantti/erp-demo/internal/repository"
	"github.com/taantti/erp-demo/internal/scope"
	"github.com/taantti/erp-demo/pkg/email"
	"github.com/taantti/erp-demo/pkg/hash"
)

type UserService struct {
	userRepo   repository.UserRepository
	tenantRepo repository.TenantRepository
	scoper     *scope.Scoper
	email      email.Service
	cfg        *config.Config
	logger     *slog.Logger
}

type CreateUserRequest struct {
	Username  string    `json:"username" validate:"required,min=3,max=30"`
	Password  string    `json:"password" validate:"required,min=8,max=256"`
	FirstName string    `json:"first_name" validate:"required,min=1,max=50"`
	LastName  string    `json:"last_name" validate:"required,min=1,max=50"`
	Email     string    `json:"email" validate:"required,email,min=5,max=80"`
	Role      string    `json:"role" validate:"required"`
	Active    *bool     `json:"active"`
	TenantID  uuid.UUID `json:"tenant_id"`
}

type UpdateUserRequest struct {
	Password  *string    `json:"password,omitempty" validate:"omitempty,min=8,max=256"`
	FirstName *string    `json:"first_name,omitempty" validate:"omitempty,min=1,max=50"`
	LastName  *string    `json:"last_name,omitempty" validate:"omitempty,min=1,max=50"`
	Email     *string    `json:"email,omitempty" validate:"omitempty,email,min=5,max=80"`
	Role      *string    `json:"role,omitempty"`
	Active    *bool      `json:"active,omitempty"`
	TenantID  *uuid.UUID `json:"tenant_id,omitempty"`
}

// ListUsersQuery carries caller-controlled filters for a user search.
// Tenant is honored only under elevation; otherwise the scoper replaces it
// with the caller's own tenant.
type ListUsersQuery struct {
	Username   string
	Active     *bool
	Tenant     uuid.UUID
	AllTenants bool
}

func NewUserService(
	userRepo repository.UserRepository,
	tenantRepo repository.TenantRepository,
	scoper *scope.Scoper,
	emailService email.Service,
	cfg *config.Config,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		userRepo:   userRepo,
		tenantRepo: tenantRepo,
		scoper:     scoper,
		email:      emailService,
		cfg:        cfg,
		logger:     logger,
	}
}

// Create registers a new user inside the caller's tenant. The raw password
// is policy-checked and hashed before anything touches the database; the
// tenant stamp comes from the scoper, not from the request.
func (s *UserService) Create(ctx context.Context, principal *domain.Principal, req CreateUserRequest, allTenants bool) (*domain.User, error) {
	if err := s.scoper.Check(ctx, principal, allTenants); err != nil {
		return nil, err
	}

	if !hash.ValidRawPassword(req.Password, s.cfg.Auth.MinPasswordSize) {
		return nil, apperror.BadRequest("password must contain at least one uppercase letter, one number and one special character, and be at least 8 characters long")
	}

	role := domain.RoleCode(req.Role)
	if !role.Valid() {
		return nil, apperror.BadRequest("unknown role " + req.Role)
	}

	tenantID := s.scoper.StampForWrite(principal, req.TenantID, allTenants)
	if tenantID == uuid.Nil {
		return nil, apperror.BadRequest("tenant_id is required")
	}
	if _, err := s.tenantRepo.GetByID(ctx, tenantID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.BadRequest("tenant does not exist")
		}
		return nil, apperror.Internal(err)
	}

	passwordHash, err := hash.Password(req.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New(),
		Username:     strings.ToLower(strings.TrimSpace(req.Username)),
		PasswordHash: passwordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        strings.ToLower(req.Email),
		Role:         role,
		Active:       active,
		TenantID:     tenantID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict("username already exists")
		}
		return nil, apperror.Internal(err)
	}

	// Best-effort; registration already succeeded.
	if err := s.email.SendWelcomeEmail(ctx, user.Email, domain.FullName(user)); err != nil {
		s.logger.WarnContext(ctx, "welcome email failed", "username", user.Username, "error", err)
	}

	return user, nil
}

// Get returns a single user visible inside the caller's tenant scope. A
// user belonging to another tenant is indistinguishable from a missing one.
func (s *UserService) Get(ctx context.Context, principal *domain.Principal, id uuid.UUID, allTenants bool) (*domain.User, error) {
	if err := s.scoper.Check(ctx, principal, allTenants); err != nil {
		return nil, err
	}

	tenantID := s.scoper.TenantIDForQuery(principal, uuid.Nil, allTenants)
	cond := s.scoper.QueryCondition(tenantID, allTenants)

	user, err := s.userRepo.FindByID(ctx, id, cond)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("user")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, principal *domain.Principal, query ListUsersQuery) ([]*domain.User, error) {
	if err := s.scoper.Check(ctx, principal, query.AllTenants); err != nil {
		return nil, err
	}

	tenantID := s.scoper.TenantIDForQuery(principal, query.Tenant, query.AllTenants)
	cond := s.scoper.QueryCondition(tenantID, query.AllTenants)

	users, err := s.userRepo.List(ctx, repository.UserFilter{
		Username: query.Username,
		Active:   query.Active,
	}, cond)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return users, nil
}

func (s *UserService) Update(ctx context.Context, principal *domain.Principal, id uuid.UUID, req UpdateUserRequest, allTenants bool) (*domain.User, error) {
	if err := s.scoper.Check(ctx, principal, allTenants); err != nil {
		return nil, err
	}

	tenantID := s.scoper.TenantIDForQuery(principal, uuid.Nil, allTenants)
	cond := s.scoper.QueryCondition(tenantID, allTenants)

	user, err := s.userRepo.FindByID(ctx, id, cond)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("user")
		}
		return nil, apperror.Internal(err)
	}

	if req.Password != nil {
		if !hash.ValidRawPassword(*req.Password, s.cfg.Auth.MinPasswordSize) {
			return nil, apperror.BadRequest("password must contain at least one uppercase letter, one number and one special character, and be at least 8 characters long")
		}
		passwordHash, err := hash.Password(*req.Password)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		user.PasswordHash = passwordHash
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Email != nil {
		user.Email = strings.ToLower(*req.Email)
	}
	if req.Role != nil {
		role := domain.RoleCode(*req.Role)
		if !role.Valid() {
			return nil, apperror.BadRequest("unknown role " + *req.Role)
		}
		user.Role = role
	}
	if req.Active != nil {
		user.Active = *req.Active
	}

	// Caller-supplied tenant moves are honored only under elevation.
	supplied := user.TenantID
	if req.TenantID != nil {
		supplied = *req.TenantID
	}
	user.TenantID = s.scoper.StampForWrite(principal, supplied, allTenants)
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user, cond); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("user")
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict("username already exists")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

// Deactivate retires an account without deleting it where retention rules
// require the record to stay.
func (s *UserService) Deactivate(ctx context.Context, principal *domain.Principal, id uuid.UUID, allTenants bool) (*domain.User, error) {
	inactive := false
	return s.Update(ctx, principal, id, UpdateUserRequest{Active: &inactive}, allTenants)
}

func (s *UserService) Delete(ctx context.Context, principal *domain.Principal, id uuid.UUID, allTenants bool) error {
	if err := s.scoper.Check(ctx, principal, allTenants); err != nil {
		return err
	}

	tenantID := s.scoper.TenantIDForQuery(principal, uuid.Nil, allTenants)
	cond := s.scoper.QueryCondition(tenantID, allTenants)

	if err := s.userRepo.Delete(ctx, id, cond); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("user")
		}
		return apperror.Internal(err)
	}
	return nil
}
