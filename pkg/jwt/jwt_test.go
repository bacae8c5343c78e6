package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour, "erp-demo")
	userID := uuid.New()

	resp, err := svc.Generate(userID, "alice")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected non-empty token")
	}
	if resp.TokenType != "Bearer" {
		t.Errorf("expected token type 'Bearer', got %q", resp.TokenType)
	}

	claims, err := svc.Validate(resp.AccessToken)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("expected user id %s, got %s", userID, claims.UserID)
	}
	if claims.Username != "alice" {
		t.Errorf("expected username 'alice', got %q", claims.Username)
	}
	if claims.Issuer != "erp-demo" {
		t.Errorf("expected issuer 'erp-demo', got %q", claims.Issuer)
	}
}

func TestValidateWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-one", time.Hour, "erp-demo")
	verifier := NewTokenService("secret-two", time.Hour, "erp-demo")

	resp, err := issuer.Generate(uuid.New(), "alice")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := verifier.Validate(resp.AccessToken); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestValidateExpired(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute, "erp-demo")

	resp, err := svc.Generate(uuid.New(), "alice")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := svc.Validate(resp.AccessToken); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestValidateGarbage(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour, "erp-demo")

	if _, err := svc.Validate("not-a-token"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestExtractBearer(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{"Bearer abc123", "abc123", false},
		{"", "", true},
		{"abc123", "", true},
		{"Basic abc123", "", true},
		{"Bearer ", "", true},
	}

	for _, tt := range tests {
		got, err := ExtractBearer(tt.header)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ExtractBearer(%q): expected error", tt.header)
			}
			continue
		}
		if err != nil {
			t.Errorf("ExtractBearer(%q): %v", tt.header, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ExtractBearer(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestValidateRejectsTokenWithoutExpiry(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour, "erp-demo")

	// Signed with the right secret but carrying no exp claim.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      uuid.New().String(),
		"username": "alice",
	})
	signed, err := unsigned.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := svc.Validate(signed); err == nil {
		t.Fatal("expected validation to fail for a token without exp")
	}
}
