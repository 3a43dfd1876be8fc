package testutil

import (
	"context"
	"sync"

	"github.com/roamsim/roamsim/internal/domain/order"
	ierr "github.com/roamsim/roamsim/internal/errors"
	"github.com/roamsim/roamsim/internal/integration/ads"
	"github.com/roamsim/roamsim/internal/integration/esimgo"
	"github.com/roamsim/roamsim/internal/integration/stripe"
)

// MockPaymentClient implements stripe.Client against in-memory fixtures.
type MockPaymentClient struct {
	mu sync.Mutex

	// Sessions holds sessions retrievable by GetCheckoutSession.
	Sessions map[string]*stripe.CheckoutSession
	// PromotionCodes maps promo code text to provider promotion ids.
	PromotionCodes map[string]string

	// CreateErr forces CreateCheckoutSession to fail.
	CreateErr error
	// PromoErr forces FindActivePromotionCode to fail.
	PromoErr error

	CreateCalls []*stripe.CreateSessionRequest
}

// NewMockPaymentClient creates a new mock payment client
func NewMockPaymentClient() *MockPaymentClient {
	return &MockPaymentClient{
		Sessions:       make(map[string]*stripe.CheckoutSession),
		PromotionCodes: make(map[string]string),
	}
}

func (m *MockPaymentClient) CreateCheckoutSession(_ context.Context, req *stripe.CreateSessionRequest) (*stripe.CheckoutSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateErr != nil {
		return nil, m.CreateErr
	}
	m.CreateCalls = append(m.CreateCalls, req)

	sess := &stripe.CheckoutSession{
		ID:                "cs_test_mock",
		URL:               "https://checkout.example/pay/cs_test_mock",
		Metadata:          req.Metadata,
		ClientReferenceID: req.ClientReferenceID,
	}
	m.Sessions[sess.ID] = sess
	return sess, nil
}

func (m *MockPaymentClient) GetCheckoutSession(_ context.Context, sessionID string) (*stripe.CheckoutSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.Sessions[sessionID]
	if !ok {
		return nil, ierr.NewErrorf("checkout session %s not found", sessionID).
			Mark(ierr.ErrNotFound)
	}
	return sess, nil
}

func (m *MockPaymentClient) FindActivePromotionCode(_ context.Context, code string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.PromoErr != nil {
		return "", m.PromoErr
	}
	return m.PromotionCodes[code], nil
}

func (m *MockPaymentClient) VerifyWebhook(_ []byte, _ string) (*stripe.WebhookEvent, error) {
	return nil, ierr.NewError("not supported in mock").Mark(ierr.ErrInternal)
}

// MockESIMClient implements esimgo.Client.
type MockESIMClient struct {
	mu sync.Mutex

	Result *esimgo.ProvisionResult
	Err    error

	Calls []*esimgo.ProvisionRequest
}

// NewMockESIMClient creates a mock provisioning client that assigns a fixed
// eSIM.
func NewMockESIMClient() *MockESIMClient {
	return &MockESIMClient{
		Result: &esimgo.ProvisionResult{
			OrderReference: "prov-ref-mock",
			ICCID:          "8944000000000000001",
			ProfileAddress: "rsp.example.com",
			MatchingID:     "MATCH-123",
		},
	}
}

func (m *MockESIMClient) ProvisionESIM(_ context.Context, req *esimgo.ProvisionRequest) (*esimgo.ProvisionResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}

// CallCount returns how many provisioning requests were made.
func (m *MockESIMClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockEmailSender implements email.Sender.
type MockEmailSender struct {
	mu sync.Mutex

	Err   error
	Sends []MockEmailSend
}

// MockEmailSend records one confirmation send.
type MockEmailSend struct {
	To    string
	Order *order.Order
}

// NewMockEmailSender creates a new mock email sender
func NewMockEmailSender() *MockEmailSender {
	return &MockEmailSender{}
}

func (m *MockEmailSender) SendOrderConfirmation(_ context.Context, to string, o *order.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}
	m.Sends = append(m.Sends, MockEmailSend{To: to, Order: o})
	return nil
}

// SendCount returns how many confirmations were sent.
func (m *MockEmailSender) SendCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sends)
}

// MockAdsReporter implements ads.Reporter.
type MockAdsReporter struct {
	mu          sync.Mutex
	Conversions []*ads.Conversion
}

// NewMockAdsReporter creates a new mock ads reporter
func NewMockAdsReporter() *MockAdsReporter {
	return &MockAdsReporter{}
}

func (m *MockAdsReporter) ReportPurchase(_ context.Context, conv *ads.Conversion) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Conversions = append(m.Conversions, conv)
}

// Reported returns the captured conversions.
func (m *MockAdsReporter) Reported() []*ads.Conversion {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Conversions
}
