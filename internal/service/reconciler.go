package service

import (
	"context"
	"strconv"
	"time"

	"github.com/roamsim/roamsim/internal/domain/order"
	ierr "github.com/roamsim/roamsim/internal/errors"
	"github.com/roamsim/roamsim/internal/integration/ads"
	"github.com/roamsim/roamsim/internal/integration/esimgo"
	"github.com/roamsim/roamsim/internal/integration/stripe"
	"github.com/roamsim/roamsim/internal/types"
)

// ReconcilerService turns a paid checkout session into an order: provision
// the eSIM, persist the order, notify the customer and report the
// conversion. Payment success must always produce an order record, so every
// step except persistence is best-effort.
type ReconcilerService interface {
	// ReconcileSession fetches the session from the payment provider and
	// reconciles it; used by the manual replay path.
	ReconcileSession(ctx context.Context, sessionID string) (*order.Order, error)

	// ReconcileCompletedSession reconciles an already-fetched session, as
	// delivered by the payment webhook.
	ReconcileCompletedSession(ctx context.Context, sess *stripe.CheckoutSession) (*order.Order, error)
}

type reconcilerService struct {
	ServiceParams
}

// NewReconcilerService creates a new reconciler service
func NewReconcilerService(params ServiceParams) ReconcilerService {
	return &reconcilerService{ServiceParams: params}
}

func (s *reconcilerService) ReconcileSession(ctx context.Context, sessionID string) (*order.Order, error) {
	if sessionID == "" {
		return nil, ierr.NewError("session id is required").
			WithHint("Session id is required").
			Mark(ierr.ErrValidation)
	}

	// Idempotency check before touching the provider at all.
	if existing, err := s.OrderRepo.GetByPaymentSessionID(ctx, sessionID); err == nil {
		return existing, nil
	} else if !ierr.IsNotFound(err) {
		return nil, err
	}

	sess, err := s.PaymentClient.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return s.ReconcileCompletedSession(ctx, sess)
}

func (s *reconcilerService) ReconcileCompletedSession(ctx context.Context, sess *stripe.CheckoutSession) (*order.Order, error) {
	if sess == nil || sess.ID == "" {
		return nil, ierr.NewError("checkout session is required").
			Mark(ierr.ErrValidation)
	}

	// Terminal idempotency path: an already-reconciled session returns the
	// stored order with no further side effects.
	if existing, err := s.OrderRepo.GetByPaymentSessionID(ctx, sess.ID); err == nil {
		s.Logger.Infow("session already reconciled",
			"session_id", sess.ID,
			"order_number", existing.OrderNumber)
		return existing, nil
	} else if !ierr.IsNotFound(err) {
		return nil, err
	}

	if !sess.Paid {
		return nil, ierr.NewErrorf("checkout session %s is not paid", sess.ID).
			WithHint("Only paid sessions can be reconciled").
			Mark(ierr.ErrValidation)
	}
	if sess.CustomerEmail == "" {
		return nil, ierr.NewErrorf("checkout session %s has no customer email", sess.ID).
			Mark(ierr.ErrValidation)
	}

	durationDays, _ := strconv.Atoi(sess.Metadata[stripe.MetadataDuration])
	bundleRef := sess.Metadata[stripe.MetadataBundle]
	locale := sess.Metadata[stripe.MetadataLocale]
	if locale == "" {
		locale = types.DefaultLocale
	}

	now := time.Now().UTC()

	o := &order.Order{
		ID:               types.GenerateID(types.OrderIDPrefix),
		PaymentSessionID: sess.ID,
		PaymentIntentID:  sess.PaymentIntentID,
		DestinationName:  sess.Metadata[stripe.MetadataDestination],
		PlanName:         sess.Metadata[stripe.MetadataPlanName],
		DurationDays:     types.PlanDuration(durationDays),
		Amount:           sess.AmountTotal,
		Currency:         sess.Currency,
		Locale:           locale,
		OrderStatus:      types.OrderStatusPaid,
		ESIMStatus:       types.ESIMStatusPending,
		PaidAt:           &now,
		BaseModel: types.BaseModel{
			Status: types.StatusPublished,
		},
	}

	// Provisioning failure never aborts order creation; the order stays
	// pending and can be replayed later.
	if bundleRef != "" {
		s.provision(ctx, o, bundleRef, sess.ID, now)
	} else {
		s.Logger.Warnw("session has no bundle reference, skipping provisioning",
			"session_id", sess.ID)
	}

	seq, err := s.OrderRepo.NextSequenceForDay(ctx, now)
	if err != nil {
		return nil, err
	}
	o.OrderNumber = order.FormatOrderNumber(now, seq)

	cust, err := s.CustomerRepo.GetOrCreateByEmail(ctx, sess.CustomerEmail, locale)
	if err != nil {
		return nil, err
	}
	o.CustomerID = cust.ID

	stored, created, err := s.OrderRepo.CreateIfAbsent(ctx, o)
	if err != nil {
		// Persistence is the source of truth; this is the one fatal step.
		return nil, err
	}
	if !created {
		s.Logger.Infow("lost reconciliation race, returning existing order",
			"session_id", sess.ID,
			"order_number", stored.OrderNumber)
		return stored, nil
	}

	s.Logger.Infow("order created",
		"order_number", stored.OrderNumber,
		"session_id", sess.ID,
		"esim_status", string(stored.ESIMStatus))

	if stored.QRPayload != "" {
		if err := s.EmailSender.SendOrderConfirmation(ctx, sess.CustomerEmail, stored); err != nil {
			s.Logger.Errorw("confirmation email failed, order kept",
				"order_number", stored.OrderNumber,
				"error", err)
		}
	}

	if sess.ClientReferenceID != "" {
		s.AdsReporter.ReportPurchase(ctx, &ads.Conversion{
			AdClickID: sess.ClientReferenceID,
			OrderID:   stored.OrderNumber,
			Value:     types.FromMinorUnits(stored.Amount, stored.Currency),
			Currency:  stored.Currency,
		})
	}

	return stored, nil
}

// provision requests an eSIM and records the result on the order. In test
// mode the provider's non-charging validate mode is used.
func (s *reconcilerService) provision(ctx context.Context, o *order.Order, bundleRef, sessionID string, now time.Time) {
	orderType := esimgo.OrderTypeTransaction
	if s.Config.Deployment.Mode.IsTest() {
		orderType = esimgo.OrderTypeValidate
	}

	result, err := s.ESIMClient.ProvisionESIM(ctx, &esimgo.ProvisionRequest{
		BundleRef:      bundleRef,
		OrderReference: sessionID,
		Type:           orderType,
	})
	if err != nil {
		s.Logger.Errorw("eSIM provisioning failed, order will be created pending",
			"session_id", sessionID,
			"bundle", bundleRef,
			"error", err)
		return
	}

	o.SetProvisioned(result.OrderReference, result.ICCID, result.ProfileAddress, result.MatchingID, now)
}
