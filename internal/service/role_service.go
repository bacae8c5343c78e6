package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/taantti/erp-demo/internal/apperror"
	"github.com/taantti/erp-demo/internal/domain"
	"github.com/taantti/erp-demo/internal/repository"
)

type RoleService struct {
	roleRepo repository.RoleRepository
}

type CreateRoleRequest struct {
	Name        string                  `json:"name" validate:"required,min=3,max=30"`
	Role        string                  `json:"role" validate:"required"`
	Permissions domain.PermissionMatrix `json:"permissions"`
}

type UpdateRoleRequest struct {
	Name        *string                 `json:"name,omitempty" validate:"omitempty,min=3,max=30"`
	Permissions domain.PermissionMatrix `json:"permissions,omitempty"`
}

func NewRoleService(roleRepo repository.RoleRepository) *RoleService {
	return &RoleService{roleRepo: roleRepo}
}

func (s *RoleService) Create(ctx context.Context, req CreateRoleRequest) (*domain.Role, error) {
	code := domain.RoleCode(req.Role)
	if !code.Valid() {
		return nil, apperror.BadRequest("unknown role " + req.Role)
	}

	permissions := req.Permissions
	if permissions == nil {
		permissions = domain.PermissionMatrix{}
	}

	role := &domain.Role{
		ID:          uuid.New(),
		Name:        req.Name,
		Role:        code,
		Permissions: permissions,
	}

	if err := s.roleRepo.Create(ctx, role); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Conflict("role already exists")
		}
		return nil, apperror.Internal(err)
	}
	return role, nil
}

func (s *RoleService) Get(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	role, err := s.roleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("role")
		}
		return nil, apperror.Internal(err)
	}
	return role, nil
}

func (s *RoleService) List(ctx context.Context) ([]*domain.Role, error) {
	roles, err := s.roleRepo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return roles, nil
}

// Update applies a new display name and/or permission matrix. Matrix
// entries flagged immutable reject any change to their values; this is the
// enforcement point for the immutable policy flag.
func (s *RoleService) Update(ctx context.Context, id uuid.UUID, req UpdateRoleRequest) (*domain.Role, error) {
	role, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		role.Name = *req.Name
	}

	if req.Permissions != nil {
		if err := checkImmutableEntries(role.Permissions, req.Permissions); err != nil {
			return nil, err
		}
		role.Permissions = req.Permissions
	}

	if err := s.roleRepo.Update(ctx, role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("role")
		}
		return nil, apperror.Internal(err)
	}
	return role, nil
}

func (s *RoleService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.roleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound("role")
		}
		return apperror.Internal(err)
	}
	return nil
}

// checkImmutableEntries rejects an update that changes or removes any
// entry marked immutable in the stored matrix.
func checkImmutableEntries(current, proposed domain.PermissionMatrix) error {
	for module, features := range current {
		for feature, perm := range features {
			if !perm.Immutable {
				continue
			}
			next, ok := proposed.Lookup(module, feature)
			if !ok || next != perm {
				return apperror.AccessDeniedWith(
					"permission entry " + string(module) + "." + string(feature) + " is immutable")
			}
		}
	}
	return nil
}
