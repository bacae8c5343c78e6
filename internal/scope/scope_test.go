package scope

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/taantti/erp-demo/internal/apperror"
	"github.com/taantti/erp-demo/internal/domain"
)

type recordedEvent struct {
	principal *domain.Principal
	message   string
}

type fakeRecorder struct {
	events []recordedEvent
}

func (f *fakeRecorder) RecordSecurityEvent(_ context.Context, principal *domain.Principal, message string) {
	f.events = append(f.events, recordedEvent{principal, message})
}

func newTestScoper() (*Scoper, *fakeRecorder) {
	recorder := &fakeRecorder{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewScoper(logger, recorder), recorder
}

func principalWith(role domain.RoleCode, adminTenant bool) *domain.Principal {
	return &domain.Principal{
		UserID:   uuid.New(),
		Username: "alice",
		Role:     role,
		Tenant: domain.PrincipalTenant{
			ID:    uuid.New(),
			Name:  "acme",
			Admin: adminTenant,
		},
	}
}

func TestCheckNilPrincipal(t *testing.T) {
	s, _ := newTestScoper()

	err := s.Check(context.Background(), nil, false)
	if !apperror.Is(err, apperror.KindPermissionDenied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
}

func TestCheckElevationMatrix(t *testing.T) {
	tests := []struct {
		name        string
		role        domain.RoleCode
		adminTenant bool
		allowed     bool
	}{
		{"overseer in admin tenant", domain.RoleOverseer, true, true},
		{"overseer outside admin tenant", domain.RoleOverseer, false, false},
		{"admin in admin tenant", domain.RoleAdmin, true, false},
		{"writer outside admin tenant", domain.RoleWriter, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, recorder := newTestScoper()
			p := principalWith(tt.role, tt.adminTenant)

			err := s.Check(context.Background(), p, true)
			if tt.allowed {
				if err != nil {
					t.Fatalf("expected elevation to be allowed, got %v", err)
				}
				if len(recorder.events) != 0 {
					t.Errorf("expected no security events, got %d", len(recorder.events))
				}
				return
			}

			if !apperror.Is(err, apperror.KindPermissionDenied) {
				t.Fatalf("expected permission denied, got %v", err)
			}
			if len(recorder.events) != 1 {
				t.Fatalf("expected 1 security event, got %d", len(recorder.events))
			}
			if recorder.events[0].principal != p {
				t.Error("expected the denied principal on the security event")
			}
		})
	}
}

func TestCheckScopedWithoutTenant(t *testing.T) {
	s, recorder := newTestScoper()
	p := principalWith(domain.RoleAdmin, false)
	p.Tenant.ID = uuid.Nil

	err := s.Check(context.Background(), p, false)
	if !apperror.Is(err, apperror.KindPermissionDenied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
	if len(recorder.events) != 1 {
		t.Errorf("expected 1 security event, got %d", len(recorder.events))
	}
}

func TestCheckScopedAccessAllowed(t *testing.T) {
	s, _ := newTestScoper()
	p := principalWith(domain.RoleReader, false)

	if err := s.Check(context.Background(), p, false); err != nil {
		t.Fatalf("expected scoped access to pass, got %v", err)
	}
}

func TestTenantIDForQuery(t *testing.T) {
	s, _ := newTestScoper()
	p := principalWith(domain.RoleOverseer, true)
	other := uuid.New()

	// Without elevation, the requested tenant is ignored.
	if got := s.TenantIDForQuery(p, other, false); got != p.Tenant.ID {
		t.Errorf("expected own tenant, got %s", got)
	}

	// Elevated with an explicit tenant, the request wins.
	if got := s.TenantIDForQuery(p, other, true); got != other {
		t.Errorf("expected requested tenant, got %s", got)
	}

	// Elevated without an explicit tenant falls back to the caller's own.
	if got := s.TenantIDForQuery(p, uuid.Nil, true); got != p.Tenant.ID {
		t.Errorf("expected own tenant, got %s", got)
	}
}

func TestQueryCondition(t *testing.T) {
	s, _ := newTestScoper()
	tenant := uuid.New()

	cond := s.QueryCondition(tenant, false)
	if cond.AllTenants || cond.TenantID != tenant {
		t.Errorf("expected scoped condition for %s, got %+v", tenant, cond)
	}

	cond = s.QueryCondition(tenant, true)
	if !cond.AllTenants {
		t.Errorf("expected all-tenants condition, got %+v", cond)
	}
}

func TestStampForWriteOverridesSuppliedTenant(t *testing.T) {
	s, _ := newTestScoper()
	p := principalWith(domain.RoleWriter, false)
	supplied := uuid.New()

	if got := s.StampForWrite(p, supplied, false); got != p.Tenant.ID {
		t.Errorf("expected supplied tenant to be overridden with %s, got %s", p.Tenant.ID, got)
	}

	if got := s.StampForWrite(p, supplied, true); got != supplied {
		t.Errorf("expected supplied tenant to survive under elevation, got %s", got)
	}
}
