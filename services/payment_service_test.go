package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/zaikahouse/storefront/models"
)

func TestProcessCashStaysPending(t *testing.T) {
	svc := &PaymentService{OnlineDelay: 0}

	status, err := svc.Process(context.Background(), models.PaymentCash)
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, status)
}

func TestProcessOnlineSettles(t *testing.T) {
	svc := &PaymentService{OnlineDelay: 0}

	status, err := svc.Process(context.Background(), models.PaymentOnline)
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, status)
}

func TestProcessOnlineHonoursCancellation(t *testing.T) {
	svc := &PaymentService{OnlineDelay: time.Minute}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Process(ctx, models.PaymentOnline)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcessRejectsUnknownMethod(t *testing.T) {
	svc := &PaymentService{OnlineDelay: 0}

	_, err := svc.Process(context.Background(), "CHEQUE")
	assert.Error(t, err)
}
