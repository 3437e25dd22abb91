package cart

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/zaikahouse/storefront/models"
)

// TaxRate is applied on top of the cart total at checkout.
const TaxRate = 0.05

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrScheduleRequired = errors.New("dine-in orders need a scheduled arrival time")
	ErrBadOrderType     = errors.New("order type must be DINE_IN or TAKEAWAY")
	ErrBadPayment       = errors.New("payment method must be CASH or ONLINE")
)

// OrderMeta carries the user's checkout choices alongside the cart.
type OrderMeta struct {
	OrderType      string
	NumberOfPeople int
	ScheduledTime  *time.Time
	PaymentMethod  string
}

// Assemble turns the current cart plus order meta into an order payload
// ready for submission. The line items are a snapshot: mutating the cart
// afterwards does not change an already assembled payload.
//
// Assembly refuses an empty cart and a dine-in order without a time slot.
// Takeaway orders always carry zero guests and no schedule, regardless of
// any leftover dine-in input.
func Assemble(store *Store, meta OrderMeta, customerID uint) (*models.Order, error) {
	if meta.OrderType != models.OrderTypeDineIn && meta.OrderType != models.OrderTypeTakeaway {
		return nil, ErrBadOrderType
	}
	if meta.PaymentMethod != models.PaymentCash && meta.PaymentMethod != models.PaymentOnline {
		return nil, ErrBadPayment
	}

	lines := store.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	if meta.OrderType == models.OrderTypeDineIn && meta.ScheduledTime == nil {
		return nil, ErrScheduleRequired
	}

	people := meta.NumberOfPeople
	scheduled := meta.ScheduledTime
	if meta.OrderType == models.OrderTypeTakeaway {
		people = 0
		scheduled = nil
	}

	// Total comes from the same snapshot as the line items; reading the
	// store again could race a concurrent mutation.
	total := 0.0
	for _, l := range lines {
		total += l.UnitPrice * float64(l.Quantity)
	}

	order := &models.Order{
		Reference:      uuid.NewString(),
		CustomerID:     customerID,
		OrderType:      meta.OrderType,
		NumberOfPeople: people,
		ScheduledTime:  scheduled,
		PaymentMethod:  meta.PaymentMethod,
		PaymentStatus:  models.PaymentStatusPending,
		Status:         models.OrderStatusPlaced,
		TotalAmount:    roundMoney(total * (1 + TaxRate)),
	}

	for _, l := range lines {
		order.OrderItems = append(order.OrderItems, models.OrderItem{
			MenuID:   l.MenuID,
			Name:     l.Name,
			Quantity: l.Quantity,
			Variant:  string(l.Variant),
			Price:    l.UnitPrice,
		})
	}

	return order, nil
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
