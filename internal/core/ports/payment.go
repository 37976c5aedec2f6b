package ports

import (
	"context"

	"github.com/shivaccounts/accounts-api/internal/core/domain"
)

// PaymentGateway is the external order-creation API.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amountMinor int64, currency string) (*domain.PaymentOrder, error)
}

type PaymentService interface {
	// CreateOrder opens a gateway order for cartTotal major currency units.
	CreateOrder(ctx context.Context, cartTotal int64) (*domain.PaymentOrder, error)
}
