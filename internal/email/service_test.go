package email

import (
	"testing"

	"github.com/roamsim/roamsim/internal/domain/order"
	"github.com/stretchr/testify/assert"
)

func TestAmountLabel(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		currency string
		expected string
	}{
		{"paid aud", 1599, "aud", "AUD 15.99"},
		{"paid idr", 149900, "idr", "IDR 149900"},
		{"free order", 0, "aud", "FREE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &order.Order{Amount: tt.amount, Currency: tt.currency}
			assert.Equal(t, tt.expected, AmountLabel(o))
		})
	}
}

func TestQRImageURL(t *testing.T) {
	url := QRImageURL("LPA:1$rsp.example.com$MATCH-123")
	assert.Equal(t,
		"https://api.qrserver.com/v1/create-qr-code/?size=300x300&data=LPA%3A1%24rsp.example.com%24MATCH-123",
		url)
}

func TestRenderOrderConfirmationTemplate(t *testing.T) {
	s := &Email{}
	html, err := s.renderTemplate("order-confirmation.html", map[string]interface{}{
		"order_number":    "TRV-20260829-001",
		"destination":     "Bali",
		"duration_days":   7,
		"amount_label":    "AUD 15.99",
		"qr_image_url":    QRImageURL("LPA:1$rsp.example.com$MATCH-123"),
		"profile_address": "rsp.example.com",
		"matching_id":     "MATCH-123",
	})
	assert.NoError(t, err)
	assert.Contains(t, html, "TRV-20260829-001")
	assert.Contains(t, html, "rsp.example.com")
	assert.Contains(t, html, "MATCH-123")

	_, err = s.renderTemplate("missing.html", nil)
	assert.Error(t, err)
}
