package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/taantti/erp-demo/internal/apperror"
	"github.com/taantti/erp-demo/internal/domain"
)

func storedRole(t *testing.T, repo *fakeRoleRepo) *domain.Role {
	t.Helper()
	role := &domain.Role{
		ID:   uuid.New(),
		Name: "Overseer",
		Role: domain.RoleOverseer,
		Permissions: domain.PermissionMatrix{
			domain.ModuleRole: {
				"updateRole": {Access: true, AdminTenantOnly: true, Immutable: true},
				"readRole":   {Access: true},
			},
		},
	}
	if err := repo.Create(context.Background(), role); err != nil {
		t.Fatalf("seed role: %v", err)
	}
	return role
}

func TestUpdateRoleRejectsImmutableChange(t *testing.T) {
	repo := &fakeRoleRepo{}
	role := storedRole(t, repo)
	svc := NewRoleService(repo)

	// Weakening the immutable entry must fail.
	proposed := domain.PermissionMatrix{
		domain.ModuleRole: {
			"updateRole": {Access: false},
			"readRole":   {Access: true},
		},
	}
	_, err := svc.Update(context.Background(), role.ID, UpdateRoleRequest{Permissions: proposed})
	if !apperror.Is(err, apperror.KindAccessDenied) {
		t.Fatalf("expected access denied, got %v", err)
	}
}

func TestUpdateRoleRejectsImmutableRemoval(t *testing.T) {
	repo := &fakeRoleRepo{}
	role := storedRole(t, repo)
	svc := NewRoleService(repo)

	proposed := domain.PermissionMatrix{
		domain.ModuleRole: {
			"readRole": {Access: true},
		},
	}
	_, err := svc.Update(context.Background(), role.ID, UpdateRoleRequest{Permissions: proposed})
	if !apperror.Is(err, apperror.KindAccessDenied) {
		t.Fatalf("expected access denied, got %v", err)
	}
}

func TestUpdateRoleAllowsMutableChange(t *testing.T) {
	repo := &fakeRoleRepo{}
	role := storedRole(t, repo)
	svc := NewRoleService(repo)

	// The immutable entry is carried over unchanged; the mutable one moves.
	proposed := domain.PermissionMatrix{
		domain.ModuleRole: {
			"updateRole": {Access: true, AdminTenantOnly: true, Immutable: true},
			"readRole":   {Access: false},
		},
		domain.ModuleProduct: {
			"readProducts": {Access: true},
		},
	}
	updated, err := svc.Update(context.Background(), role.ID, UpdateRoleRequest{Permissions: proposed})
	if err != nil {
		t.Fatalf("expected update to pass, got %v", err)
	}

	perm, ok := updated.Permissions.Lookup(domain.ModuleRole, "readRole")
	if !ok || perm.Access {
		t.Errorf("expected readRole access revoked, got %+v ok=%v", perm, ok)
	}
	if _, ok := updated.Permissions.Lookup(domain.ModuleProduct, "readProducts"); !ok {
		t.Error("expected new product entry to be present")
	}
}

func TestUpdateRoleRename(t *testing.T) {
	repo := &fakeRoleRepo{}
	role := storedRole(t, repo)
	svc := NewRoleService(repo)

	name := "Head Overseer"
	updated, err := svc.Update(context.Background(), role.ID, UpdateRoleRequest{Name: &name})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != name {
		t.Errorf("expected name %q, got %q", name, updated.Name)
	}
}

func TestCreateRoleUnknownCode(t *testing.T) {
	svc := NewRoleService(&fakeRoleRepo{})

	_, err := svc.Create(context.Background(), CreateRoleRequest{Name: "Ghost", Role: "GHOST"})
	if !apperror.Is(err, apperror.KindValidationFailed) {
		t.Fatalf("expected validation failure for unknown role code, got %v", err)
	}
}
