package domain

import "errors"

var (
	ErrPaymentUnavailable = errors.New("payment gateway not configured")
	ErrPaymentFailed      = errors.New("payment gateway request failed")
)

// PaymentOrder is the gateway's view of a created order. Amount is in minor
// currency units (paise for INR).
type PaymentOrder struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status,omitempty"`
}
