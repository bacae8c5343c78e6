// Package email sends account notifications. Sending is best-effort: a
// failed mail never fails the request that triggered it.
package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// Service sends account lifecycle notifications.
type Service interface {
	SendWelcomeEmail(ctx context.Context, to, name string) error
}

// ResendService implements Service using the Resend API.
type ResendService struct {
	client *resend.Client
	from   string
	logger *slog.Logger
}

func NewResendService(apiKey, from string, logger *slog.Logger) (*ResendService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend API key is required")
	}
	if from == "" {
		return nil, fmt.Errorf("from address is required")
	}
	return &ResendService{
		client: resend.NewClient(apiKey),
		from:   from,
		logger: logger,
	}, nil
}

func (s *ResendService) SendWelcomeEmail(ctx context.Context, to, name string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: "Welcome",
		Html:    welcomeTemplate(name),
	}

	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		s.logger.Warn("welcome email failed", "to", to, "error", err)
		return fmt.Errorf("send welcome email: %w", err)
	}
	return nil
}

func welcomeTemplate(name string) string {
	return fmt.Sprintf(`<p>Hello %s,</p><p>Your account has been created.</p>`, name)
}

// NoopService is used when no mail provider is configured.
type NoopService struct{}

func (NoopService) SendWelcomeEmail(ctx context.Context, to, name string) error { return nil }
