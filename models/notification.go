package models

import (
	"time"
)

type Notification struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	UserID    *uint
	User      User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Title     *string   `gorm:"type:varchar(100)" json:"title,omitempty"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
}
