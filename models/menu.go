package models

import "time"

// Pricing types. A menu item is either sold at a single price or as
// half/full portions; the fields of the inactive type stay zero.
const (
	PricingSingle   = "SINGLE"
	PricingHalfFull = "HALF_FULL"
)

type Menu struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	CategoryID  uint         `gorm:"not null" json:"category_id"`
	Category    MenuCategory `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category"`
	Name        string       `gorm:"type:varchar(255); not null" json:"name"`
	Description string       `gorm:"type:text" json:"description"`
	PricingType string       `gorm:"type:varchar(20);not null;default:'SINGLE'" json:"pricing_type"`
	Price       float64      `gorm:"type:decimal(10,2);not null;default:0.00" json:"price"`
	PriceHalf   float64      `gorm:"type:decimal(10,2);not null;default:0.00" json:"price_half"`
	PriceFull   float64      `gorm:"type:decimal(10,2);not null;default:0.00" json:"price_full"`
	// No gorm default: a default tag makes gorm omit the zero value on
	// Create, silently flipping false to true. CreateMenu sets the default.
	IsAvailable bool         `gorm:"not null" json:"is_available"`
	ImageURL    string       `gorm:"type:varchar(255)" json:"image_url"`
	CreatedAt   time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null" json:"updated_at"`
}
