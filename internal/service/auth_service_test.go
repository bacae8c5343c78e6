package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/taantti/erp-demo/internal/apperror"
	"github.com/taantti/erp-demo/internal/domain"
	"github.com/taantti/erp-demo/pkg/hash"
	"github.com/taantti/erp-demo/pkg/jwt"
)

func seedLoginUser(t *testing.T, repo *fakeUserRepo, active bool) *domain.User {
	t.Helper()
	hashed, err := hash.Password("Corr3ct$pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := &domain.User{
		ID:           uuid.New(),
		Username:     "alice",
		PasswordHash: hashed,
		FirstName:    "Alice",
		LastName:     "Adams",
		Email:        "alice@example.com",
		Role:         domain.RoleAdmin,
		Active:       active,
		TenantID:     uuid.New(),
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func newAuthService(repo *fakeUserRepo) *AuthService {
	tokens := jwt.NewTokenService("test-secret", time.Hour, "erp-demo")
	return NewAuthService(repo, tokens, nil, testLogger())
}

func TestLoginSucceeds(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedLoginUser(t, repo, true)
	svc := newAuthService(repo)

	resp, err := svc.Login(context.Background(), LoginRequest{Username: "alice", Password: "Corr3ct$pass"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Token == nil || resp.Token.AccessToken == "" {
		t.Fatal("expected a signed token")
	}
	if resp.User.ID != user.ID {
		t.Errorf("expected user %s, got %s", user.ID, resp.User.ID)
	}
}

func TestLoginNormalizesUsername(t *testing.T) {
	repo := newFakeUserRepo()
	seedLoginUser(t, repo, true)
	svc := newAuthService(repo)

	_, err := svc.Login(context.Background(), LoginRequest{Username: "  ALICE ", Password: "Corr3ct$pass"})
	if err != nil {
		t.Fatalf("expected case-insensitive login, got %v", err)
	}
}

func TestLoginFailuresAreUniform(t *testing.T) {
	repo := newFakeUserRepo()
	seedLoginUser(t, repo, true)

	inactiveRepo := newFakeUserRepo()
	seedLoginUser(t, inactiveRepo, false)

	tests := []struct {
		name string
		repo *fakeUserRepo
		req  LoginRequest
	}{
		{"unknown username", repo, LoginRequest{Username: "mallory", Password: "Corr3ct$pass"}},
		{"wrong password", repo, LoginRequest{Username: "alice", Password: "Wr0ng$pass!"}},
		{"inactive account", inactiveRepo, LoginRequest{Username: "alice", Password: "Corr3ct$pass"}},
	}

	var messages []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newAuthService(tt.repo).Login(context.Background(), tt.req)
			if !apperror.Is(err, apperror.KindInvalidCredential) {
				t.Fatalf("expected invalid credential, got %v", err)
			}
			appErr := apperror.From(err)
			if appErr.Status != 401 {
				t.Errorf("expected 401, got %d", appErr.Status)
			}
			messages = append(messages, appErr.Message)
		})
	}

	// All three failures must present the identical outward message.
	for _, m := range messages {
		if m != messages[0] {
			t.Errorf("expected uniform failure message, got %q and %q", messages[0], m)
		}
	}
}
