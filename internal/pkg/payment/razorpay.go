package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultRazorpayBaseURL = "https://api.razorpay.com/v1"

// Client talks to the Razorpay orders API using basic auth.
type Client struct {
	KeyID     string
	KeySecret string
	BaseURL   string

	HTTPClient *http.Client
}

// GatewayOrder is the subset of the Razorpay order resource the workflow
// needs.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// Gateway abstracts the remote order creation so the service can be tested
// without network access. *Client is the production implementation.
type Gateway interface {
	CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (*GatewayOrder, error)
}

// NewClient creates a gateway client from an injected config.
func NewClient(cfg Config) *Client {
	return &Client{
		KeyID:     strings.TrimSpace(cfg.KeyID),
		KeySecret: strings.TrimSpace(cfg.KeySecret),
		BaseURL:   defaultRazorpayBaseURL,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// CreateOrder creates a remote order for the given amount in paise. A non-2xx
// response surfaces as an error carrying the gateway response body; nothing
// is retried.
func (c *Client) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (*GatewayOrder, error) {
	if c.KeyID == "" || c.KeySecret == "" {
		return nil, ErrConfiguration
	}
	if amountPaise <= 0 {
		return nil, errors.New("order amount must be positive")
	}

	payload := map[string]interface{}{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := strings.TrimRight(c.BaseURL, "/") + "/orders"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.KeyID, c.KeySecret)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("razorpay order creation failed: status=%d body=%s", resp.StatusCode, string(respBody))
	}

	var out GatewayOrder
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.ID) == "" {
		return nil, errors.New("razorpay order response missing order id")
	}
	return &out, nil
}
