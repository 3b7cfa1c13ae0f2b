package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
)

var (
	// ErrUnreachable covers transport failures and an open circuit.
	ErrUnreachable = errors.New("payment provider unreachable")
	// ErrBadResponse covers malformed JSON and unexpected response shapes.
	ErrBadResponse = errors.New("malformed payment provider response")
	// ErrRejected covers well-formed error responses from the provider.
	ErrRejected = errors.New("payment provider rejected the request")
)

// Client creates an external payment order and returns its opaque id.
// Idempotency is the provider's responsibility; no idempotency key is
// generated here.
type Client interface {
	CreateOrder(ctx context.Context, amount decimal.Decimal, currency string) (string, error)
}

type PayPalClient struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	breaker      *gobreaker.CircuitBreaker[string]
}

func NewPayPalClient(baseURL, clientID, clientSecret string) *PayPalClient {
	breaker := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name: "paypal",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &PayPalClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   http.DefaultClient,
		breaker:      breaker,
	}
}

type accessTokenResponse struct {
	AccessToken string `json:"access_token"`
}

type createOrderRequest struct {
	Intent        string         `json:"intent"`
	PurchaseUnits []purchaseUnit `json:"purchase_units"`
}

type purchaseUnit struct {
	Amount purchaseAmount `json:"amount"`
}

type purchaseAmount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type createOrderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// CreateOrder performs the token exchange followed by the order creation
// call. Neither step retries; the first failure surfaces immediately.
func (c *PayPalClient) CreateOrder(ctx context.Context, amount decimal.Decimal, currency string) (string, error) {
	orderID, err := c.breaker.Execute(func() (string, error) {
		token, err := c.getAccessToken(ctx)
		if err != nil {
			return "", err
		}
		return c.createOrder(ctx, token, amount, currency)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", fmt.Errorf("%w: circuit breaker open", ErrUnreachable)
	}
	if err != nil {
		return "", err
	}
	return orderID, nil
}

func (c *PayPalClient) getAccessToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/oauth2/token",
		strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: token endpoint returned %d", ErrRejected, resp.StatusCode)
	}

	var body accessTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("%w: missing access_token", ErrBadResponse)
	}
	return body.AccessToken, nil
}

func (c *PayPalClient) createOrder(ctx context.Context, token string, amount decimal.Decimal, currency string) (string, error) {
	payload, err := json.Marshal(createOrderRequest{
		Intent: "CAPTURE",
		PurchaseUnits: []purchaseUnit{
			{Amount: purchaseAmount{CurrencyCode: currency, Value: amount.StringFixed(2)}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v2/checkout/orders", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: order endpoint returned %d", ErrRejected, resp.StatusCode)
	}

	var body createOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if body.ID == "" || body.Status != "CREATED" {
		return "", fmt.Errorf("%w: unexpected order response id=%q status=%q", ErrBadResponse, body.ID, body.Status)
	}
	return body.ID, nil
}
