package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/taantti/erp-demo/internal/domain"
	"github.com/taantti/erp-demo/internal/handler/middleware"
	"github.com/taantti/erp-demo/internal/sanitize"
	"github.com/taantti/erp-demo/internal/service"
	"github.com/taantti/erp-demo/pkg/hash"
	"github.com/taantti/erp-demo/pkg/jwt"
	"github.com/taantti/erp-demo/pkg/validator"
)

func newLoginApp(t *testing.T) (*fiber.App, *fakeUsers) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	users := &fakeUsers{byID: make(map[uuid.UUID]*domain.User)}
	tokens := jwt.NewTokenService("login-secret", time.Hour, "erp-demo")
	authService := service.NewAuthService(users, tokens, nil, logger)
	authHandler := NewAuthHandler(authService, validator.New())

	app := fiber.New(fiber.Config{
		ErrorHandler: NewErrorHandler(logger, nil, false),
	})
	app.Post("/api/v1/auth/login",
		middleware.Sanitize(sanitize.New(sanitizeTestConfig())),
		authHandler.Login,
	)
	return app, users
}

func seedLoginAccount(t *testing.T, users *fakeUsers, password string) *domain.User {
	t.Helper()
	hashed, err := hash.Password(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := &domain.User{
		ID:           uuid.New(),
		Username:     "alice",
		PasswordHash: hashed,
		Role:         domain.RoleAdmin,
		Active:       true,
		TenantID:     uuid.New(),
	}
	users.byID[user.ID] = user
	return user
}

func login(t *testing.T, app *fiber.App, body string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp.StatusCode, decoded
}

func TestLoginEndpointIssuesToken(t *testing.T) {
	app, users := newLoginApp(t)
	seedLoginAccount(t, users, "Corr3ct$pass")

	status, body := login(t, app, `{"username":"alice","password":"Corr3ct$pass"}`)
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d (%v)", status, body)
	}

	token, ok := body["token"].(map[string]any)
	if !ok || token["access_token"] == "" {
		t.Fatalf("expected a token in the response, got %v", body)
	}

	user, ok := body["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected the user in the response, got %v", body)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Error("password hash must never appear in a response")
	}
}

func TestLoginEndpointUniformFailures(t *testing.T) {
	app, users := newLoginApp(t)
	seedLoginAccount(t, users, "Corr3ct$pass")

	var messages []string
	for _, body := range []string{
		`{"username":"alice","password":"Wr0ng$pass!!"}`,
		`{"username":"mallory","password":"Corr3ct$pass"}`,
	} {
		status, decoded := login(t, app, body)
		if status != fiber.StatusUnauthorized {
			t.Fatalf("expected 401, got %d (%v)", status, decoded)
		}
		if msg, ok := decoded["error"].(string); ok {
			messages = append(messages, msg)
		}
	}

	if len(messages) == 2 && messages[0] != messages[1] {
		t.Errorf("expected identical failure messages, got %q and %q", messages[0], messages[1])
	}
}

func TestLoginEndpointValidation(t *testing.T) {
	app, users := newLoginApp(t)
	seedLoginAccount(t, users, "Corr3ct$pass")

	status, body := login(t, app, `{"username":"al"}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%v)", status, body)
	}
	if _, ok := body["details"]; !ok {
		t.Error("expected aggregated field details in the validation response")
	}
}
