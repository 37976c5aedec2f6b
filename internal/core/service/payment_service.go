package service

import (
	"context"
	"errors"
	"math"

	"github.com/rs/zerolog"

	"github.com/shivaccounts/accounts-api/internal/core/domain"
	"github.com/shivaccounts/accounts-api/internal/core/ports"
	"github.com/shivaccounts/accounts-api/internal/infrastructure/metrics"
)

// minorUnitsPerMajor converts a cart total to the gateway's minor units
// (₹1 = 100 paise).
const minorUnitsPerMajor = 100

// maxCartTotal is the largest cart total whose minor-unit amount fits in int64.
const maxCartTotal = math.MaxInt64 / minorUnitsPerMajor

type PaymentService struct {
	gateway  ports.PaymentGateway
	currency string
	logger   zerolog.Logger
}

// NewPaymentService returns a service that opens orders in currency. A nil
// gateway makes every call fail with domain.ErrPaymentUnavailable.
func NewPaymentService(gateway ports.PaymentGateway, currency string, logger zerolog.Logger) *PaymentService {
	if currency == "" {
		currency = "INR"
	}
	return &PaymentService{gateway: gateway, currency: currency, logger: logger}
}

func (s *PaymentService) CreateOrder(ctx context.Context, cartTotal int64) (*domain.PaymentOrder, error) {
	if cartTotal <= 0 {
		return nil, domain.NewValidationError("cart_total", "must be greater than 0")
	}
	if cartTotal > maxCartTotal {
		return nil, domain.NewValidationError("cart_total", "is too large")
	}
	if s.gateway == nil {
		metrics.PaymentOrdersTotal.WithLabelValues("unavailable").Inc()
		return nil, domain.ErrPaymentUnavailable
	}

	order, err := s.gateway.CreateOrder(ctx, cartTotal*minorUnitsPerMajor, s.currency)
	if err != nil {
		metrics.PaymentOrdersTotal.WithLabelValues("failed").Inc()
		s.logger.Error().Err(err).Int64("cart_total", cartTotal).Msg("payment order failed")
		if errors.Is(err, domain.ErrPaymentUnavailable) {
			return nil, err
		}
		return nil, errors.Join(domain.ErrPaymentFailed, err)
	}

	metrics.PaymentOrdersTotal.WithLabelValues("created").Inc()
	s.logger.Info().Str("order_id", order.OrderID).Int64("amount", order.Amount).Msg("payment order created")
	return order, nil
}
