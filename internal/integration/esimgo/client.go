package esimgo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/roamsim/roamsim/internal/config"
	ierr "github.com/roamsim/roamsim/internal/errors"
	"github.com/roamsim/roamsim/internal/logger"
)

// Client defines the interface for eSIM provisioning operations.
type Client interface {
	// ProvisionESIM creates a provisioning order and returns the assigned
	// eSIM's device identifier and activation credentials.
	ProvisionESIM(ctx context.Context, req *ProvisionRequest) (*ProvisionResult, error)
}

type client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewClient creates a new eSIM provisioning client. Transient provider
// failures are retried by the underlying HTTP client.
func NewClient(cfg *config.Configuration, log *logger.Logger) Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.HTTPClient.Timeout = 30 * time.Second
	rc.Logger = log.GetRetryableHTTPLogger()

	return &client{
		baseURL:    cfg.ESIMGo.BaseURL,
		apiKey:     cfg.ESIMGo.APIKey,
		httpClient: rc.StandardClient(),
		logger:     log,
	}
}

func (c *client) ProvisionESIM(ctx context.Context, req *ProvisionRequest) (*ProvisionResult, error) {
	if req.BundleRef == "" {
		return nil, ierr.NewError("bundle reference is required").
			WithHint("Plan has no provisioning bundle configured").
			Mark(ierr.ErrValidation)
	}

	body := orderRequest{
		Type:   string(req.Type),
		Assign: true,
		Order: []orderItem{
			{Type: "bundle", Item: req.BundleRef, Quantity: 1},
		},
	}

	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrInternal)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, ierr.WithError(err).Mark(ierr.ErrInternal)
	}
	httpReq.Header.Set("X-API-Key", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Errorw("failed to reach eSIM provider",
			"error", err,
			"bundle", req.BundleRef,
			"order_reference", req.OrderReference)
		return nil, ierr.WithError(err).
			WithHint("Unable to connect to the eSIM provisioning API").
			Mark(ierr.ErrExternalService)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to read eSIM provider response").
			Mark(ierr.ErrExternalService)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp errorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			c.logger.Errorw("eSIM provider rejected order",
				"status", resp.StatusCode,
				"message", errResp.Message,
				"bundle", req.BundleRef)
			return nil, ierr.NewError(errResp.Message).
				WithHint("eSIM provisioning failed").
				Mark(ierr.ErrExternalService)
		}
		return nil, ierr.NewErrorf("eSIM provider error").
			WithHint(fmt.Sprintf("HTTP status %d", resp.StatusCode)).
			Mark(ierr.ErrExternalService)
	}

	var orderResp orderResponse
	if err := json.Unmarshal(respBody, &orderResp); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to parse eSIM provider response").
			Mark(ierr.ErrExternalService)
	}

	result := &ProvisionResult{OrderReference: orderResp.OrderReference}
	for _, line := range orderResp.Order {
		if len(line.ESIMs) == 0 {
			continue
		}
		assigned := line.ESIMs[0]
		result.ICCID = assigned.ICCID
		result.ProfileAddress = assigned.SMDPAddress
		result.MatchingID = assigned.MatchingID
		break
	}

	if result.ICCID == "" {
		return nil, ierr.NewError("eSIM provider returned no assigned eSIM").
			WithReportableDetails(map[string]interface{}{
				"order_reference": orderResp.OrderReference,
				"status":          orderResp.Status,
			}).
			Mark(ierr.ErrExternalService)
	}

	c.logger.Infow("provisioned eSIM",
		"order_reference", result.OrderReference,
		"iccid", result.ICCID,
		"bundle", req.BundleRef,
		"type", string(req.Type))

	return result, nil
}
