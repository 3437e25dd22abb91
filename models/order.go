package models

import (
	"time"
)

// Order types
const (
	OrderTypeDineIn   = "DINE_IN"
	OrderTypeTakeaway = "TAKEAWAY"
)

// Payment methods and statuses
const (
	PaymentCash   = "CASH"
	PaymentOnline = "ONLINE"

	PaymentStatusPending = "PENDING"
	PaymentStatusPaid    = "PAID"
)

// Kitchen queue statuses
const (
	OrderStatusPlaced    = "PLACED"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusPreparing = "PREPARING"
	OrderStatusReady     = "READY"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
	OrderStatusExpired   = "EXPIRED"
)

type Order struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	Reference      string      `gorm:"type:varchar(64);uniqueIndex;not null" json:"reference"`
	CustomerID     uint        `gorm:"not null;index" json:"customer_id"`
	Customer       User        `gorm:"foreignKey:CustomerID" json:"-"`
	OrderType      string      `gorm:"type:varchar(20);not null;default:'DINE_IN'" json:"order_type"`
	NumberOfPeople int         `gorm:"not null;default:0" json:"number_of_people"`
	ScheduledTime  *time.Time  `json:"scheduled_time,omitempty"`
	PaymentMethod  string      `gorm:"type:varchar(20);not null;default:'CASH'" json:"payment_method"`
	PaymentStatus  string      `gorm:"type:varchar(20);not null;default:'PENDING'" json:"payment_status"`
	Status         string      `gorm:"type:varchar(20);not null;default:'PLACED'" json:"status"`
	TotalAmount    float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount"`
	CreatedAt      time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"not null" json:"updated_at"`
	OrderItems     []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
}

// CanBeCancelledByCustomer reports whether the customer may still cancel.
// Once the kitchen has confirmed the order it belongs to the owner flow.
func (o *Order) CanBeCancelledByCustomer() bool {
	return o.Status == OrderStatusPlaced
}
