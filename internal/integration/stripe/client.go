package stripe

import (
	"context"
	"encoding/json"

	"github.com/roamsim/roamsim/internal/config"
	ierr "github.com/roamsim/roamsim/internal/errors"
	"github.com/roamsim/roamsim/internal/logger"
	"github.com/roamsim/roamsim/internal/types"
	stripego "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"github.com/stripe/stripe-go/v82/webhook"
)

// Client defines the interface for payment provider operations.
type Client interface {
	CreateCheckoutSession(ctx context.Context, req *CreateSessionRequest) (*CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error)
	// FindActivePromotionCode resolves a customer-entered promo code to the
	// provider's promotion code id. A missing or inactive code returns an
	// empty id and no error; invalid promo codes never fail a checkout.
	FindActivePromotionCode(ctx context.Context, code string) (string, error)
	// VerifyWebhook checks the event signature and decodes the session
	// payload for checkout events.
	VerifyWebhook(payload []byte, signature string) (*WebhookEvent, error)
}

type stripeClient struct {
	api           *client.API
	webhookSecret string
	logger        *logger.Logger
}

// NewClient creates a Stripe-backed payment client. The API key is threaded
// in from configuration; no package-global key is set.
func NewClient(cfg *config.Configuration, log *logger.Logger) Client {
	api := &client.API{}
	api.Init(cfg.Stripe.SecretKey, nil)

	return &stripeClient{
		api:           api,
		webhookSecret: cfg.Stripe.WebhookSecret,
		logger:        log,
	}
}

func (c *stripeClient) CreateCheckoutSession(ctx context.Context, req *CreateSessionRequest) (*CheckoutSession, error) {
	params := &stripego.CheckoutSessionParams{
		Params: stripego.Params{Context: ctx},
		Mode:   stripego.String(string(stripego.CheckoutSessionModePayment)),
		LineItems: []*stripego.CheckoutSessionLineItemParams{
			{
				Price:    stripego.String(req.PriceRef),
				Quantity: stripego.Int64(1),
			},
		},
		SuccessURL: stripego.String(req.SuccessURL),
		CancelURL:  stripego.String(req.CancelURL),
	}

	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	if req.ClientReferenceID != "" {
		params.ClientReferenceID = stripego.String(req.ClientReferenceID)
	}

	if req.PromotionCodeID != "" {
		params.Discounts = []*stripego.CheckoutSessionDiscountParams{
			{PromotionCode: stripego.String(req.PromotionCodeID)},
		}
	} else {
		// No pre-resolved code: let the customer type one in at checkout.
		params.AllowPromotionCodes = stripego.Bool(true)
	}

	sess, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		c.logger.Errorw("failed to create checkout session",
			"error", err,
			"price_ref", req.PriceRef)
		return nil, ierr.WithError(err).
			WithHint("Failed to create checkout session").
			Mark(ierr.ErrExternalService)
	}

	c.logger.Infow("created checkout session",
		"session_id", sess.ID,
		"price_ref", req.PriceRef)

	return fromStripeSession(sess), nil
}

func (c *stripeClient) GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	params := &stripego.CheckoutSessionParams{
		Params: stripego.Params{Context: ctx},
	}
	params.AddExpand("payment_intent")

	sess, err := c.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		if stripeErr, ok := err.(*stripego.Error); ok && stripeErr.HTTPStatusCode == 404 {
			return nil, ierr.NewErrorf("checkout session %s not found", sessionID).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch checkout session").
			Mark(ierr.ErrExternalService)
	}

	return fromStripeSession(sess), nil
}

func (c *stripeClient) FindActivePromotionCode(ctx context.Context, code string) (string, error) {
	params := &stripego.PromotionCodeListParams{
		Code:   stripego.String(code),
		Active: stripego.Bool(true),
	}
	params.Context = ctx
	params.Limit = stripego.Int64(1)

	iter := c.api.PromotionCodes.List(params)
	if iter.Next() {
		pc := iter.PromotionCode()
		c.logger.Infow("resolved promotion code", "code", code, "promotion_code_id", pc.ID)
		return pc.ID, nil
	}
	if err := iter.Err(); err != nil {
		// Promo lookup is best-effort; the caller falls back to manual
		// entry at checkout.
		c.logger.Warnw("promotion code lookup failed", "code", code, "error", err)
		return "", ierr.WithError(err).
			WithHint("Promotion code lookup failed").
			Mark(ierr.ErrExternalService)
	}

	c.logger.Infow("promotion code not found or inactive", "code", code)
	return "", nil
}

func (c *stripeClient) VerifyWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, c.webhookSecret)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Webhook signature verification failed").
			Mark(ierr.ErrValidation)
	}

	out := &WebhookEvent{Type: string(event.Type)}

	if event.Type == "checkout.session.completed" {
		var sess stripego.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to decode checkout session payload").
				Mark(ierr.ErrValidation)
		}
		out.Session = fromStripeSession(&sess)
	}

	return out, nil
}

func fromStripeSession(sess *stripego.CheckoutSession) *CheckoutSession {
	if sess == nil {
		return nil
	}

	out := &CheckoutSession{
		ID:                sess.ID,
		URL:               sess.URL,
		AmountTotal:       sess.AmountTotal,
		Currency:          string(sess.Currency),
		Paid:              sess.PaymentStatus == stripego.CheckoutSessionPaymentStatusPaid || sess.PaymentStatus == stripego.CheckoutSessionPaymentStatusNoPaymentRequired,
		Metadata:          types.Metadata(sess.Metadata),
		ClientReferenceID: sess.ClientReferenceID,
	}
	if sess.PaymentIntent != nil {
		out.PaymentIntentID = sess.PaymentIntent.ID
	}
	if sess.CustomerDetails != nil {
		out.CustomerEmail = sess.CustomerDetails.Email
	}
	return out
}
