package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/taantti/erp-demo/internal/domain"
	"github.com/taantti/erp-demo/internal/repository"
	"github.com/taantti/erp-demo/internal/scope"
)

// In-memory repository fakes honoring the scope.Condition contract the
// way the SQL implementations do.

type fakeUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, u := range f.users {
		if u.Username == user.Username {
			return repository.ErrDuplicate
		}
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func matches(tenantID uuid.UUID, cond scope.Condition) bool {
	return cond.AllTenants || tenantID == cond.TenantID
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID, cond scope.Condition) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok || !matches(u.TenantID, cond) {
		return nil, repository.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) List(_ context.Context, filter repository.UserFilter, cond scope.Condition) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range f.users {
		if !matches(u.TenantID, cond) {
			continue
		}
		if filter.Username != "" && !strings.Contains(u.Username, filter.Username) {
			continue
		}
		if filter.Active != nil && u.Active != *filter.Active {
			continue
		}
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User, cond scope.Condition) error {
	existing, ok := f.users[user.ID]
	if !ok || !matches(existing.TenantID, cond) {
		return repository.ErrNotFound
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID, cond scope.Condition) error {
	existing, ok := f.users[id]
	if !ok || !matches(existing.TenantID, cond) {
		return repository.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeTenantRepo struct {
	tenants map[uuid.UUID]*domain.Tenant
}

func newFakeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{tenants: make(map[uuid.UUID]*domain.Tenant)}
}

func (f *fakeTenantRepo) Create(_ context.Context, tenant *domain.Tenant) error {
	for _, t := range f.tenants {
		if t.Name == tenant.Name {
			return repository.ErrDuplicate
		}
	}
	clone := *tenant
	f.tenants[tenant.ID] = &clone
	return nil
}

func (f *fakeTenantRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Tenant, error) {
	t, ok := f.tenants[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *t
	return &clone, nil
}

func (f *fakeTenantRepo) GetByName(_ context.Context, name string) (*domain.Tenant, error) {
	for _, t := range f.tenants {
		if t.Name == name {
			clone := *t
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeTenantRepo) List(_ context.Context) ([]*domain.Tenant, error) {
	var out []*domain.Tenant
	for _, t := range f.tenants {
		clone := *t
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakeTenantRepo) Update(_ context.Context, tenant *domain.Tenant) error {
	if _, ok := f.tenants[tenant.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *tenant
	f.tenants[tenant.ID] = &clone
	return nil
}
