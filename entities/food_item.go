package entities

import (
	"time"

	"github.com/google/uuid"
)

type FoodItem struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Name         string    `gorm:"not null" json:"name"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `gorm:"default:kg" json:"unit"`
	PurchaseDate time.Time `json:"purchase_date"`
	ExpiryDate   time.Time `gorm:"index" json:"expiry_date"`
	Storage      string    `gorm:"default:pantry" json:"storage"`
	Category     string    `gorm:"default:other" json:"category"`
	Calories     int       `gorm:"default:0" json:"calories"`
	Status       string    `gorm:"index;default:fresh" json:"status"` // fresh, expiring_soon, expired, consumed, donated, sold
	ImageURL     string    `json:"image_url,omitempty"`
	Notes        string    `json:"notes,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}
