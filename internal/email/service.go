package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/roamsim/roamsim/internal/domain/order"
	"github.com/roamsim/roamsim/internal/logger"
	"github.com/roamsim/roamsim/internal/types"
)

// qrImageEndpoint renders a QR image for an arbitrary payload string.
const qrImageEndpoint = "https://api.qrserver.com/v1/create-qr-code/"

// Sender sends transactional email for the storefront.
type Sender interface {
	// SendOrderConfirmation emails the install QR and instructions for a
	// provisioned order.
	SendOrderConfirmation(ctx context.Context, to string, o *order.Order) error
}

// Email handles email operations
type Email struct {
	client *EmailClient
	logger *logger.Logger
}

// NewEmail creates a new email service
func NewEmail(client *EmailClient, log *logger.Logger) *Email {
	return &Email{
		client: client,
		logger: log,
	}
}

// SendOrderConfirmation sends the confirmation email with the QR image and
// install instructions.
func (s *Email) SendOrderConfirmation(ctx context.Context, to string, o *order.Order) error {
	if !s.client.IsEnabled() {
		s.logger.Warnw("email client is disabled, skipping order confirmation",
			"to", to,
			"order_number", o.OrderNumber)
		return nil
	}

	subject := fmt.Sprintf("Your %s eSIM is ready — order %s", o.DestinationName, o.OrderNumber)

	html, err := s.renderTemplate("order-confirmation.html", map[string]interface{}{
		"order_number":    o.OrderNumber,
		"destination":     o.DestinationName,
		"duration_days":   o.DurationDays.Days(),
		"amount_label":    AmountLabel(o),
		"qr_image_url":    QRImageURL(o.QRPayload),
		"profile_address": o.ProfileAddress,
		"matching_id":     o.MatchingID,
	})
	if err != nil {
		s.logger.Errorw("failed to render order confirmation template",
			"error", err,
			"order_number", o.OrderNumber)
		return err
	}

	messageID, err := s.client.SendEmail(ctx, s.client.GetFromAddress(), to, subject, html, "")
	if err != nil {
		s.logger.Errorw("failed to send order confirmation",
			"error", err,
			"to", to,
			"order_number", o.OrderNumber)
		return err
	}

	s.logger.Infow("order confirmation sent",
		"message_id", messageID,
		"to", to,
		"order_number", o.OrderNumber)
	return nil
}

func (s *Email) renderTemplate(templatePath string, data map[string]interface{}) (string, error) {
	templateContent, exists := emailTemplates[templatePath]
	if !exists {
		return "", fmt.Errorf("template not found: %s", templatePath)
	}

	tmpl, err := template.New("email").Parse(templateContent)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// AmountLabel formats the order total for display. A zero-amount order is
// labeled FREE rather than showing a currency amount.
func AmountLabel(o *order.Order) string {
	if o.IsFree() {
		return "FREE"
	}
	amount := types.FromMinorUnits(o.Amount, o.Currency)
	return fmt.Sprintf("%s %s", strings.ToUpper(o.Currency), amount.StringFixed(amountDecimals(o.Currency)))
}

func amountDecimals(currency string) int32 {
	if types.IsZeroDecimalCurrency(currency) {
		return 0
	}
	return 2
}

// QRImageURL builds the third-party rendering URL for a QR payload.
func QRImageURL(payload string) string {
	return qrImageEndpoint + "?size=300x300&data=" + url.QueryEscape(payload)
}
