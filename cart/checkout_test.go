package cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/zaikahouse/storefront/models"
)

func dineInMeta() OrderMeta {
	slot := time.Now().Add(2 * time.Hour)
	return OrderMeta{
		OrderType:      models.OrderTypeDineIn,
		NumberOfPeople: 4,
		ScheduledTime:  &slot,
		PaymentMethod:  models.PaymentCash,
	}
}

func TestAssembleRejectsEmptyCart(t *testing.T) {
	_, err := Assemble(NewStore(), dineInMeta(), 1)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestAssembleRejectsDineInWithoutSlot(t *testing.T) {
	s := NewStore()
	s.Add(lassi(), VariantSingle)

	meta := dineInMeta()
	meta.ScheduledTime = nil

	_, err := Assemble(s, meta, 1)
	assert.ErrorIs(t, err, ErrScheduleRequired)
}

func TestAssembleRejectsUnknownOrderTypeAndPayment(t *testing.T) {
	s := NewStore()
	s.Add(lassi(), VariantSingle)

	meta := dineInMeta()
	meta.OrderType = "DELIVERY"
	_, err := Assemble(s, meta, 1)
	assert.ErrorIs(t, err, ErrBadOrderType)

	meta = dineInMeta()
	meta.PaymentMethod = "CRYPTO"
	_, err = Assemble(s, meta, 1)
	assert.ErrorIs(t, err, ErrBadPayment)
}

func TestAssembleTakeawayZeroesDineInLeftovers(t *testing.T) {
	s := NewStore()
	s.Add(lassi(), VariantSingle)

	// Leftover dine-in state from a previous selection
	meta := dineInMeta()
	meta.OrderType = models.OrderTypeTakeaway

	order, err := Assemble(s, meta, 1)
	assert.NoError(t, err)
	assert.Equal(t, 0, order.NumberOfPeople)
	assert.Nil(t, order.ScheduledTime)
}

func TestAssembleAppliesTax(t *testing.T) {
	s := NewStore()
	s.Add(paneer(), VariantFull)
	s.Add(paneer(), VariantFull)
	s.Add(lassi(), VariantSingle)

	order, err := Assemble(s, dineInMeta(), 1)
	assert.NoError(t, err)
	// 450 plus 5% tax
	assert.Equal(t, 472.5, order.TotalAmount)
}

func TestAssembleDefaults(t *testing.T) {
	s := NewStore()
	s.Add(lassi(), VariantSingle)

	order, err := Assemble(s, dineInMeta(), 42)
	assert.NoError(t, err)

	assert.Equal(t, uint(42), order.CustomerID)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, models.OrderStatusPlaced, order.Status)
	assert.NotEmpty(t, order.Reference)
	assert.Equal(t, 4, order.NumberOfPeople)
}

func TestAssembleTotalAgreesWithSnapshotDuringMutation(t *testing.T) {
	s := NewStore()
	s.Add(lassi(), VariantSingle)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			s.Add(paneer(), VariantFull)
		}
	}()

	// Whatever the cart looks like mid-churn, the assembled total must be
	// derived from the same lines that were snapshotted into the payload.
	for i := 0; i < 50; i++ {
		order, err := Assemble(s, dineInMeta(), 1)
		assert.NoError(t, err)

		sum := 0.0
		for _, it := range order.OrderItems {
			sum += it.Price * float64(it.Quantity)
		}
		assert.Equal(t, roundMoney(sum*(1+TaxRate)), order.TotalAmount)
	}
	<-done
}

func TestAssembleSnapshotsLineItems(t *testing.T) {
	s := NewStore()
	s.Add(paneer(), VariantFull)
	s.Add(lassi(), VariantSingle)

	order, err := Assemble(s, dineInMeta(), 1)
	assert.NoError(t, err)
	assert.Len(t, order.OrderItems, 2)
	assert.Equal(t, "Paneer Butter Masala", order.OrderItems[0].Name)
	assert.Equal(t, "FULL", order.OrderItems[0].Variant)
	assert.Equal(t, 200.0, order.OrderItems[0].Price)

	// Mutating the cart afterwards must not touch the assembled payload
	s.Clear()
	assert.Len(t, order.OrderItems, 2)
	assert.Equal(t, 1, order.OrderItems[0].Quantity)
}
