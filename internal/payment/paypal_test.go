package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenHandler(t *testing.T, token string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "client-id", user)
		assert.Equal(t, "client-secret", pass)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		json.NewEncoder(w).Encode(map[string]string{"access_token": token})
	}
}

func newTestClient(t *testing.T, handler http.Handler) *PayPalClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewPayPalClient(srv.URL, "client-id", "client-secret")
}

func TestCreateOrder_Success(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/oauth2/token", tokenHandler(t, "tok-123"))
	mux.HandleFunc("POST /v2/checkout/orders", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		var body struct {
			Intent        string `json:"intent"`
			PurchaseUnits []struct {
				Amount struct {
					CurrencyCode string `json:"currency_code"`
					Value        string `json:"value"`
				} `json:"amount"`
			} `json:"purchase_units"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "CAPTURE", body.Intent)
		require.Len(t, body.PurchaseUnits, 1)
		assert.Equal(t, "EUR", body.PurchaseUnits[0].Amount.CurrencyCode)
		assert.Equal(t, "98.48", body.PurchaseUnits[0].Amount.Value)

		json.NewEncoder(w).Encode(map[string]string{"id": "ORDER-1", "status": "CREATED"})
	})
	client := newTestClient(t, mux)

	orderID, err := client.CreateOrder(context.Background(), decimal.RequireFromString("98.48"), "EUR")

	require.NoError(t, err)
	assert.Equal(t, "ORDER-1", orderID)
}

func TestCreateOrder_TokenRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	client := newTestClient(t, mux)

	_, err := client.CreateOrder(context.Background(), decimal.RequireFromString("10.00"), "EUR")

	assert.ErrorIs(t, err, ErrRejected)
}

func TestCreateOrder_OrderRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/oauth2/token", tokenHandler(t, "tok-123"))
	mux.HandleFunc("POST /v2/checkout/orders", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	})
	client := newTestClient(t, mux)

	_, err := client.CreateOrder(context.Background(), decimal.RequireFromString("10.00"), "EUR")

	assert.ErrorIs(t, err, ErrRejected)
}

func TestCreateOrder_MalformedResponses(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: "{not json"},
		{name: "missing id", body: `{"status":"CREATED"}`},
		{name: "unexpected status", body: `{"id":"ORDER-1","status":"VOIDED"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("POST /v1/oauth2/token", tokenHandler(t, "tok-123"))
			mux.HandleFunc("POST /v2/checkout/orders", func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})
			client := newTestClient(t, mux)

			_, err := client.CreateOrder(context.Background(), decimal.RequireFromString("10.00"), "EUR")

			assert.ErrorIs(t, err, ErrBadResponse)
		})
	}
}

func TestCreateOrder_MissingAccessToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	client := newTestClient(t, mux)

	_, err := client.CreateOrder(context.Background(), decimal.RequireFromString("10.00"), "EUR")

	assert.ErrorIs(t, err, ErrBadResponse)
}

func TestCreateOrder_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on
	client := NewPayPalClient(srv.URL, "client-id", "client-secret")

	_, err := client.CreateOrder(context.Background(), decimal.RequireFromString("10.00"), "EUR")

	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestCreateOrder_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewPayPalClient(srv.URL, "client-id", "client-secret")

	for i := 0; i < 5; i++ {
		_, err := client.CreateOrder(context.Background(), decimal.RequireFromString("10.00"), "EUR")
		assert.ErrorIs(t, err, ErrUnreachable)
	}

	// Breaker is open now; the next call fails without dialing.
	_, err := client.CreateOrder(context.Background(), decimal.RequireFromString("10.00"), "EUR")
	assert.ErrorIs(t, err, ErrUnreachable)
	assert.Contains(t, err.Error(), "circuit breaker open")
}
