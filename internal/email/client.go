package email

import (
	"context"

	"github.com/resend/resend-go/v2"
	"github.com/roamsim/roamsim/internal/config"
	ierr "github.com/roamsim/roamsim/internal/errors"
)

// EmailClient wraps the Resend API client.
type EmailClient struct {
	client      *resend.Client
	fromAddress string
	enabled     bool
}

// NewEmailClient creates a new email client from configuration. A disabled
// client is valid; sends become logged no-ops at the service layer.
func NewEmailClient(cfg *config.Configuration) *EmailClient {
	var client *resend.Client
	if cfg.Email.APIKey != "" {
		client = resend.NewClient(cfg.Email.APIKey)
	}

	return &EmailClient{
		client:      client,
		fromAddress: cfg.Email.FromAddress,
		enabled:     cfg.Email.Enabled && client != nil,
	}
}

// IsEnabled reports whether the client can send email.
func (c *EmailClient) IsEnabled() bool {
	return c.enabled
}

// GetFromAddress returns the configured sender address.
func (c *EmailClient) GetFromAddress() string {
	return c.fromAddress
}

// SendEmail sends a single email and returns the provider message id.
func (c *EmailClient) SendEmail(ctx context.Context, from, to, subject, html, text string) (string, error) {
	req := &resend.SendEmailRequest{
		From:    from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
		Text:    text,
	}

	sent, err := c.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Email provider rejected the send").
			Mark(ierr.ErrExternalService)
	}

	return sent.Id, nil
}
