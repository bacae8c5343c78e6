package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/taantti/erp-demo/internal/apperror"
	"github.com/taantti/erp-demo/internal/domain"
	"github.com/taantti/erp-demo/internal/repository"
)

// TenantService manages the isolation boundaries themselves. Tenants are
// not tenant-scoped documents; every operation here is reachable only
// through the permission matrix.
type TenantService struct {
	tenantRepo repository.TenantRepository
}

type CreateTenantRequest struct {
	Name   string `json:"name" validate:"required,min=3,max=30"`
	Admin  bool   `json:"admin"`
	Active *bool  `json:"active"`
}

type UpdateTenantRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,min=3,max=30"`
	Active *bool   `json:"active,omitempty"`
}

func NewTenantService(tenantRepo repository.TenantRepository) *TenantService {
	return &TenantService{tenantRepo: tenantRepo}
}

func (s *TenantService) Create(ctx context.Context, req CreateTenantRequest) (*domain.Tenant, error) {
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	tenant := &domain.Tenant{
		ID:     uuid.New(),
		Name:   req.Name,
		Admin:  req.Admin,
		Active: active,
	}

	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict("tenant name already exists")
		}
		return nil, apperror.Internal(err)
	}
	return tenant, nil
}

func (s *TenantService) Get(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("tenant")
		}
		return nil, apperror.Internal(err)
	}
	return tenant, nil
}

func (s *TenantService) List(ctx context.Context) ([]*domain.Tenant, error) {
	tenants, err := s.tenantRepo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return tenants, nil
}

func (s *TenantService) Update(ctx context.Context, id uuid.UUID, req UpdateTenantRequest) (*domain.Tenant, error) {
	tenant, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		tenant.Name = *req.Name
	}
	if req.Active != nil {
		tenant.Active = *req.Active
	}

	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("tenant")
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict("tenant name already exists")
		}
		return nil, apperror.Internal(err)
	}
	return tenant, nil
}
