package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestFromPassesThroughTaggedErrors(t *testing.T) {
	orig := AccessDenied()

	got := From(fmt.Errorf("wrapped: %w", orig))
	if got.Kind != KindAccessDenied {
		t.Errorf("expected access_denied, got %s", got.Kind)
	}
	if got.Status != 403 {
		t.Errorf("expected 403, got %d", got.Status)
	}
}

func TestFromWrapsUnknownErrorsAsInternal(t *testing.T) {
	got := From(errors.New("driver exploded"))
	if got.Kind != KindInternal {
		t.Errorf("expected internal, got %s", got.Kind)
	}
	if got.Status != 500 {
		t.Errorf("expected 500, got %d", got.Status)
	}
	if got.Message != "internal server error" {
		t.Errorf("expected generic message, got %q", got.Message)
	}
	// The cause stays attached for logging but never drives the message.
	if got.Err == nil || got.Err.Error() != "driver exploded" {
		t.Errorf("expected cause preserved, got %v", got.Err)
	}
}

func TestIsMatchesKindThroughWrapping(t *testing.T) {
	err := fmt.Errorf("outer: %w", NotFound("user"))

	if !Is(err, KindNotFound) {
		t.Error("expected kind match through wrapping")
	}
	if Is(err, KindConflict) {
		t.Error("expected mismatched kind to report false")
	}
	if Is(errors.New("plain"), KindNotFound) {
		t.Error("expected untagged error to report false")
	}
}

func TestWithCauseKeepsOutwardShape(t *testing.T) {
	base := Conflict("username already exists")
	wrapped := base.WithCause(errors.New("unique_violation"))

	if wrapped.Message != base.Message || wrapped.Status != base.Status {
		t.Error("expected cause attachment to leave the outward shape alone")
	}
	if base.Err != nil {
		t.Error("expected the original error to stay untouched")
	}
	if !errors.Is(wrapped, wrapped) || wrapped.Unwrap() == nil {
		t.Error("expected the cause to be reachable via Unwrap")
	}
}

func TestInvalidLoginMatchesInvalidCredentialKind(t *testing.T) {
	// Login failures share the credential kind so metrics and handler
	// logic treat them alike, while the message stays login-specific.
	if InvalidLogin().Kind != KindInvalidCredential {
		t.Error("expected login failures to carry the invalid credential kind")
	}
	if InvalidLogin().Message == InvalidCredential().Message {
		t.Error("expected a login-specific message")
	}
}
