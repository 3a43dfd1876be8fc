package esimgo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/roamsim/roamsim/internal/config"
	ierr "github.com/roamsim/roamsim/internal/errors"
	"github.com/roamsim/roamsim/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.GetDefaultConfig()
	cfg.ESIMGo.BaseURL = srv.URL
	cfg.ESIMGo.APIKey = "test-key"

	return NewClient(cfg, logger.GetLogger()), srv
}

func TestProvisionESIM_Success(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))

		var req orderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "validate", req.Type)
		assert.True(t, req.Assign)
		require.Len(t, req.Order, 1)
		assert.Equal(t, "esim_IDN_7D_5GB", req.Order[0].Item)

		json.NewEncoder(w).Encode(orderResponse{
			OrderReference: "prov-ref-1",
			Status:         "completed",
			Order: []orderLineItem{
				{
					Item: "esim_IDN_7D_5GB",
					ESIMs: []esim{
						{
							ICCID:       "8944000000000000001",
							SMDPAddress: "rsp.example.com",
							MatchingID:  "MATCH-123",
						},
					},
				},
			},
		})
	})

	result, err := client.ProvisionESIM(context.Background(), &ProvisionRequest{
		BundleRef:      "esim_IDN_7D_5GB",
		OrderReference: "cs_test_1",
		Type:           OrderTypeValidate,
	})
	require.NoError(t, err)
	assert.Equal(t, "prov-ref-1", result.OrderReference)
	assert.Equal(t, "8944000000000000001", result.ICCID)
	assert.Equal(t, "rsp.example.com", result.ProfileAddress)
	assert.Equal(t, "MATCH-123", result.MatchingID)
}

func TestProvisionESIM_ProviderError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(errorResponse{Message: "bundle out of stock"})
	})

	_, err := client.ProvisionESIM(context.Background(), &ProvisionRequest{
		BundleRef: "esim_IDN_7D_5GB",
		Type:      OrderTypeTransaction,
	})
	require.Error(t, err)
	assert.True(t, ierr.IsExternalService(err))
	assert.Contains(t, err.Error(), "bundle out of stock")
}

func TestProvisionESIM_NoAssignedESIM(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(orderResponse{OrderReference: "prov-ref-2", Status: "pending"})
	})

	_, err := client.ProvisionESIM(context.Background(), &ProvisionRequest{
		BundleRef: "esim_IDN_7D_5GB",
		Type:      OrderTypeTransaction,
	})
	require.Error(t, err)
	assert.True(t, ierr.IsExternalService(err))
}

func TestProvisionESIM_MissingBundle(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be made without a bundle reference")
	})

	_, err := client.ProvisionESIM(context.Background(), &ProvisionRequest{})
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}
