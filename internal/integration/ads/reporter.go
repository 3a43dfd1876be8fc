package ads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/roamsim/roamsim/internal/config"
	"github.com/roamsim/roamsim/internal/logger"
	"github.com/shopspring/decimal"
)

// Conversion is a purchase event to attribute back to an ad click.
type Conversion struct {
	// AdClickID is the opaque click token (gclid) captured at checkout.
	AdClickID string
	OrderID   string
	Value     decimal.Decimal
	Currency  string
}

// Reporter forwards purchase conversions to the ad-attribution services.
// Reporting is best-effort and never blocks or fails the purchase flow.
type Reporter interface {
	ReportPurchase(ctx context.Context, conv *Conversion)
}

type reporter struct {
	cfg        config.AdsConfig
	httpClient *http.Client
	logger     *logger.Logger
}

// NewReporter creates a conversion reporter for Google Ads click-conversion
// upload and the GA4 Measurement Protocol.
func NewReporter(cfg *config.Configuration, log *logger.Logger) Reporter {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 1
	rc.HTTPClient.Timeout = 10 * time.Second
	rc.Logger = log.GetRetryableHTTPLogger()

	return &reporter{
		cfg:        cfg.Ads,
		httpClient: rc.StandardClient(),
		logger:     log,
	}
}

// ReportPurchase uploads the conversion in a detached goroutine. The caller's
// context is not reused so a finished request cannot cancel the upload.
func (r *reporter) ReportPurchase(_ context.Context, conv *Conversion) {
	if !r.cfg.Enabled {
		return
	}
	if conv == nil || conv.AdClickID == "" {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := r.uploadClickConversion(ctx, conv); err != nil {
			r.logger.Warnw("google ads conversion upload failed",
				"error", err,
				"order_id", conv.OrderID)
		}
		if err := r.sendGA4Purchase(ctx, conv); err != nil {
			r.logger.Warnw("ga4 purchase event failed",
				"error", err,
				"order_id", conv.OrderID)
		}
	}()
}

func (r *reporter) uploadClickConversion(ctx context.Context, conv *Conversion) error {
	if r.cfg.GoogleConversionEndpoint == "" {
		return nil
	}

	payload := map[string]interface{}{
		"gclid":             conv.AdClickID,
		"conversion_action": r.cfg.GoogleConversionAction,
		"conversion_value":  conv.Value,
		"currency_code":     conv.Currency,
		"order_id":          conv.OrderID,
	}

	return r.post(ctx, r.cfg.GoogleConversionEndpoint, payload)
}

func (r *reporter) sendGA4Purchase(ctx context.Context, conv *Conversion) error {
	if r.cfg.GA4MeasurementID == "" || r.cfg.GA4APISecret == "" {
		return nil
	}

	endpoint := fmt.Sprintf(
		"https://www.google-analytics.com/mp/collect?measurement_id=%s&api_secret=%s",
		r.cfg.GA4MeasurementID, r.cfg.GA4APISecret,
	)

	payload := map[string]interface{}{
		"client_id": conv.AdClickID,
		"events": []map[string]interface{}{
			{
				"name": "purchase",
				"params": map[string]interface{}{
					"transaction_id": conv.OrderID,
					"value":          conv.Value,
					"currency":       conv.Currency,
				},
			},
		},
	}

	return r.post(ctx, endpoint, payload)
}

func (r *reporter) post(ctx context.Context, url string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("attribution endpoint returned HTTP %d", resp.StatusCode)
	}
	return nil
}
