package services

import (
	"context"
	"fmt"
	"time"

	"github.com/zaikahouse/storefront/models"
)

// PaymentService simulates the checkout payment step. There is no gateway
// behind it: CASH settles at the counter so the order stays PENDING, ONLINE
// waits out a fake gateway round-trip and comes back PAID.
type PaymentService struct {
	// OnlineDelay is how long the simulated ONLINE round-trip takes.
	// Tests shrink it to zero.
	OnlineDelay time.Duration
}

func NewPaymentService() *PaymentService {
	return &PaymentService{
		OnlineDelay: 2 * time.Second,
	}
}

// Process returns the payment status the order should carry. It honours ctx
// cancellation during the simulated delay.
func (s *PaymentService) Process(ctx context.Context, method string) (string, error) {
	switch method {
	case models.PaymentCash:
		return models.PaymentStatusPending, nil
	case models.PaymentOnline:
		select {
		case <-time.After(s.OnlineDelay):
			return models.PaymentStatusPaid, nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "", fmt.Errorf("unsupported payment method %q", method)
}
