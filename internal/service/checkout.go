package service

import (
	"context"
	"fmt"

	"github.com/roamsim/roamsim/internal/api/dto"
	ierr "github.com/roamsim/roamsim/internal/errors"
	"github.com/roamsim/roamsim/internal/integration/stripe"
	"github.com/roamsim/roamsim/internal/types"
)

// CheckoutService starts hosted checkout sessions and answers the success
// page's order status poll.
type CheckoutService interface {
	CreateCheckoutSession(ctx context.Context, req dto.CreateCheckoutRequest) (*dto.CheckoutResponse, error)
	GetOrderStatus(ctx context.Context, sessionID string) (*dto.OrderStatusResponse, error)
}

type checkoutService struct {
	ServiceParams
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(params ServiceParams) CheckoutService {
	return &checkoutService{ServiceParams: params}
}

func (s *checkoutService) CreateCheckoutSession(ctx context.Context, req dto.CreateCheckoutRequest) (*dto.CheckoutResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.PlanRepo.GetByDestination(ctx, req.Destination, req.Locale)
	if err != nil {
		return nil, err
	}

	duration := req.PlanDuration()
	priceRef, err := p.PriceRef(duration, s.Config.Deployment.Mode)
	if err != nil {
		return nil, err
	}

	// Promo lookup is a soft fail: an unknown or erroring code falls back
	// to letting the customer enter one manually at checkout.
	promotionCodeID := ""
	if req.PromoCode != "" {
		promotionCodeID, err = s.PaymentClient.FindActivePromotionCode(ctx, req.PromoCode)
		if err != nil {
			s.Logger.Warnw("promo code resolution failed, continuing without discount",
				"promo_code", req.PromoCode,
				"error", err)
			promotionCodeID = ""
		}
	}

	planName := fmt.Sprintf("%s %d-day eSIM", p.DestinationName, duration.Days())

	sess, err := s.PaymentClient.CreateCheckoutSession(ctx, &stripe.CreateSessionRequest{
		PriceRef:        priceRef,
		PromotionCodeID: promotionCodeID,
		Metadata: types.Metadata{
			stripe.MetadataDestination: p.DestinationSlug,
			stripe.MetadataDuration:    fmt.Sprintf("%d", duration.Days()),
			stripe.MetadataLocale:      req.Locale,
			stripe.MetadataBundle:      p.BundleRef(duration),
			stripe.MetadataPlanName:    planName,
		},
		SuccessURL:        s.successURL(req.Locale),
		CancelURL:         s.cancelURL(req.Locale, p.DestinationSlug),
		ClientReferenceID: req.AdClickID,
	})
	if err != nil {
		s.Logger.Errorw("checkout session creation failed",
			"destination", req.Destination,
			"duration", duration.Days(),
			"error", err)
		return nil, err
	}

	s.Logger.Infow("checkout session created",
		"session_id", sess.ID,
		"destination", p.DestinationSlug,
		"duration", duration.Days(),
		"locale", req.Locale)

	return &dto.CheckoutResponse{RedirectURL: sess.URL}, nil
}

func (s *checkoutService) GetOrderStatus(ctx context.Context, sessionID string) (*dto.OrderStatusResponse, error) {
	if sessionID == "" {
		return nil, ierr.NewError("session id is required").
			WithHint("Session id is required").
			Mark(ierr.ErrValidation)
	}

	o, err := s.OrderRepo.GetByPaymentSessionID(ctx, sessionID)
	if err != nil {
		if ierr.IsNotFound(err) {
			// Not reconciled yet; the success page degrades to its
			// processing state instead of erroring.
			return dto.NewOrderStatusResponse(nil), nil
		}
		return nil, err
	}

	return dto.NewOrderStatusResponse(o), nil
}

func (s *checkoutService) successURL(locale string) string {
	return fmt.Sprintf("%s/%s/checkout/success?session_id={CHECKOUT_SESSION_ID}", s.Config.Deployment.BaseURL, locale)
}

func (s *checkoutService) cancelURL(locale, destinationSlug string) string {
	return fmt.Sprintf("%s/%s/destinations/%s", s.Config.Deployment.BaseURL, locale, destinationSlug)
}
