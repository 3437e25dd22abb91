package models

import (
	"time"
)

type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null" json:"order_id"`
	// Omitting Order field from JSON to avoid recursive nesting
	Order  Order `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuID uint  `gorm:"not null" json:"menu_id"`
	// Name, Variant and Price are copied from the cart line at checkout so
	// the historical record survives later catalog edits.
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Variant   string    `gorm:"type:varchar(10);not null;default:'SINGLE'" json:"variant"`
	Price     float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
