package service

import (
	"context"
	"testing"

	"github.com/roamsim/roamsim/internal/api/dto"
	"github.com/roamsim/roamsim/internal/config"
	"github.com/roamsim/roamsim/internal/domain/order"
	"github.com/roamsim/roamsim/internal/domain/plan"
	ierr "github.com/roamsim/roamsim/internal/errors"
	"github.com/roamsim/roamsim/internal/integration/stripe"
	"github.com/roamsim/roamsim/internal/logger"
	"github.com/roamsim/roamsim/internal/testutil"
	"github.com/roamsim/roamsim/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CheckoutServiceSuite struct {
	suite.Suite
	ctx             context.Context
	checkoutService CheckoutService
	planRepo        *testutil.InMemoryPlanStore
	orderRepo       *testutil.InMemoryOrderStore
	paymentClient   *testutil.MockPaymentClient
	cfg             *config.Configuration
}

func TestCheckoutService(t *testing.T) {
	suite.Run(t, new(CheckoutServiceSuite))
}

func (s *CheckoutServiceSuite) SetupTest() {
	s.ctx = testutil.SetupContext()
	s.planRepo = testutil.NewInMemoryPlanStore()
	s.orderRepo = testutil.NewInMemoryOrderStore()
	s.paymentClient = testutil.NewMockPaymentClient()
	s.cfg = config.GetDefaultConfig()

	s.checkoutService = NewCheckoutService(ServiceParams{
		Config:        s.cfg,
		Logger:        logger.GetLogger(),
		PlanRepo:      s.planRepo,
		OrderRepo:     s.orderRepo,
		CustomerRepo:  testutil.NewInMemoryCustomerStore(),
		PaymentClient: s.paymentClient,
	})
}

func (s *CheckoutServiceSuite) seedPlan() {
	err := s.planRepo.Add(s.ctx, &plan.Plan{
		ID:                  "plan_bali_en",
		DestinationSlug:     "bali",
		DestinationName:     "Bali",
		Locale:              "en",
		Currency:            "AUD",
		CompetitorName:      "Telco Travel",
		CompetitorDailyRate: decimal.RequireFromString("10"),
		Durations: map[types.PlanDuration]plan.DurationOption{
			types.PlanDuration7: {
				WholesaleCost: decimal.RequireFromString("10"),
				BundleRef:     "esim_IDN_7D_5GB",
				PriceRefLive:  "price_live_7d",
				PriceRefTest:  "price_test_7d",
			},
			types.PlanDuration15: {
				WholesaleCost: decimal.RequireFromString("18"),
				BundleRef:     "esim_IDN_15D_10GB",
				PriceRefLive:  "price_live_15d",
				// No test price ref: a configuration gap in test mode.
			},
		},
		BaseModel: types.BaseModel{Status: types.StatusPublished},
	})
	s.Require().NoError(err)
}

func (s *CheckoutServiceSuite) TestCreateCheckoutSession() {
	s.seedPlan()

	resp, err := s.checkoutService.CreateCheckoutSession(s.ctx, dto.CreateCheckoutRequest{
		Destination: "bali",
		Duration:    7,
		Locale:      "en",
	})
	s.Require().NoError(err)
	s.Equal("https://checkout.example/pay/cs_test_mock", resp.RedirectURL)

	s.Require().Len(s.paymentClient.CreateCalls, 1)
	req := s.paymentClient.CreateCalls[0]
	// Test mode selects the test price reference.
	s.Equal("price_test_7d", req.PriceRef)
	s.Equal("bali", req.Metadata[stripe.MetadataDestination])
	s.Equal("7", req.Metadata[stripe.MetadataDuration])
	s.Equal("esim_IDN_7D_5GB", req.Metadata[stripe.MetadataBundle])
	s.Contains(req.SuccessURL, "/en/checkout/success")
	s.Contains(req.SuccessURL, "{CHECKOUT_SESSION_ID}")
}

func (s *CheckoutServiceSuite) TestCreateCheckoutSession_LiveModeUsesLiveRef() {
	s.seedPlan()
	s.cfg.Deployment.Mode = types.PaymentModeLive

	_, err := s.checkoutService.CreateCheckoutSession(s.ctx, dto.CreateCheckoutRequest{
		Destination: "bali",
		Duration:    7,
		Locale:      "en",
	})
	s.Require().NoError(err)
	s.Equal("price_live_7d", s.paymentClient.CreateCalls[0].PriceRef)
}

func (s *CheckoutServiceSuite) TestCreateCheckoutSession_UnsupportedDuration() {
	s.seedPlan()

	_, err := s.checkoutService.CreateCheckoutSession(s.ctx, dto.CreateCheckoutRequest{
		Destination: "bali",
		Duration:    10,
		Locale:      "en",
	})
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
	// No payment session may be created for an invalid request.
	s.Empty(s.paymentClient.CreateCalls)
}

func (s *CheckoutServiceSuite) TestCreateCheckoutSession_UnknownDestination() {
	_, err := s.checkoutService.CreateCheckoutSession(s.ctx, dto.CreateCheckoutRequest{
		Destination: "atlantis",
		Duration:    7,
		Locale:      "en",
	})
	s.Require().Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *CheckoutServiceSuite) TestCreateCheckoutSession_MissingPriceRef() {
	s.seedPlan()

	// The 15-day option has no test price reference configured.
	_, err := s.checkoutService.CreateCheckoutSession(s.ctx, dto.CreateCheckoutRequest{
		Destination: "bali",
		Duration:    15,
		Locale:      "en",
	})
	s.Require().Error(err)
	s.True(ierr.IsConfiguration(err))
	s.Empty(s.paymentClient.CreateCalls)
}

func (s *CheckoutServiceSuite) TestCreateCheckoutSession_PromoResolved() {
	s.seedPlan()
	s.paymentClient.PromotionCodes["SUMMER10"] = "promo_123"

	_, err := s.checkoutService.CreateCheckoutSession(s.ctx, dto.CreateCheckoutRequest{
		Destination: "bali",
		Duration:    7,
		Locale:      "en",
		PromoCode:   "SUMMER10",
	})
	s.Require().NoError(err)
	s.Equal("promo_123", s.paymentClient.CreateCalls[0].PromotionCodeID)
}

func (s *CheckoutServiceSuite) TestCreateCheckoutSession_PromoLookupSoftFails() {
	s.seedPlan()
	s.paymentClient.PromoErr = ierr.NewError("provider down").Mark(ierr.ErrExternalService)

	resp, err := s.checkoutService.CreateCheckoutSession(s.ctx, dto.CreateCheckoutRequest{
		Destination: "bali",
		Duration:    7,
		Locale:      "en",
		PromoCode:   "SUMMER10",
	})
	// An invalid or unresolvable promo code never fails the checkout.
	s.Require().NoError(err)
	s.NotEmpty(resp.RedirectURL)
	s.Empty(s.paymentClient.CreateCalls[0].PromotionCodeID)
}

func (s *CheckoutServiceSuite) TestGetOrderStatus_NotReconciled() {
	resp, err := s.checkoutService.GetOrderStatus(s.ctx, "cs_missing")
	s.Require().NoError(err)
	s.Nil(resp.Order)
	s.Equal(dto.OrderLookupPending, resp.Status)
}

func (s *CheckoutServiceSuite) TestGetOrderStatus_ProcessingAndReady() {
	pending := &order.Order{
		ID:               types.GenerateID(types.OrderIDPrefix),
		OrderNumber:      "TRV-20260829-001",
		PaymentSessionID: "cs_pending",
		CustomerID:       "cust_1",
		ESIMStatus:       types.ESIMStatusPending,
	}
	_, _, err := s.orderRepo.CreateIfAbsent(s.ctx, pending)
	s.Require().NoError(err)

	resp, err := s.checkoutService.GetOrderStatus(s.ctx, "cs_pending")
	s.Require().NoError(err)
	s.Equal(dto.OrderLookupProcessing, resp.Status)

	ready := &order.Order{
		ID:               types.GenerateID(types.OrderIDPrefix),
		OrderNumber:      "TRV-20260829-002",
		PaymentSessionID: "cs_ready",
		CustomerID:       "cust_1",
		ESIMStatus:       types.ESIMStatusProvisioned,
		QRPayload:        "LPA:1$rsp.example.com$MATCH-123",
	}
	_, _, err = s.orderRepo.CreateIfAbsent(s.ctx, ready)
	s.Require().NoError(err)

	resp, err = s.checkoutService.GetOrderStatus(s.ctx, "cs_ready")
	s.Require().NoError(err)
	s.Equal(dto.OrderLookupReady, resp.Status)
	s.Equal("TRV-20260829-002", resp.Order.OrderNumber)
}
