package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shivaccounts/accounts-api/internal/core/domain"
	"github.com/shivaccounts/accounts-api/internal/core/ports"
)

const (
	DefaultBaseURL = "https://api.razorpay.com/v1"
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 4 << 10
)

// Config holds gateway credentials. Both keys must be set for the client to be
// built.
type Config struct {
	BaseURL   string
	KeyID     string
	KeySecret string
	Timeout   time.Duration
}

// Configured reports whether credentials are present.
func (c Config) Configured() bool {
	return c.KeyID != "" && c.KeySecret != ""
}

// Client creates orders on a Razorpay-compatible orders API.
type Client struct {
	baseURL   string
	keyID     string
	keySecret string
	http      *http.Client
}

var _ ports.PaymentGateway = (*Client)(nil)

func NewClient(cfg Config) (*Client, error) {
	if !cfg.Configured() {
		return nil, domain.ErrPaymentUnavailable
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:   base,
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		http:      &http.Client{Timeout: timeout},
	}, nil
}

type createOrderRequest struct {
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	PaymentCapture int    `json:"payment_capture"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

// CreateOrder opens an auto-captured order for amountMinor units of currency.
func (c *Client) CreateOrder(ctx context.Context, amountMinor int64, currency string) (*domain.PaymentOrder, error) {
	body, err := json.Marshal(createOrderRequest{
		Amount:         amountMinor,
		Currency:       currency,
		PaymentCapture: 1,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("create order: gateway returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out orderResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("create order: decode response: %w", err)
	}
	if out.ID == "" {
		return nil, fmt.Errorf("create order: response has no order id")
	}
	return &domain.PaymentOrder{
		OrderID:  out.ID,
		Amount:   out.Amount,
		Currency: out.Currency,
		Status:   out.Status,
	}, nil
}
