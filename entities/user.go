package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Phone          string    `gorm:"uniqueIndex;not null" json:"phone"`
	Name           string    `json:"name"`
	Email          string    `json:"email,omitempty"`
	GreenCoins     int       `gorm:"default:0" json:"green_coins"`
	TotalKgSold    float64   `gorm:"default:0" json:"total_kg_sold"`
	TotalEarned    float64   `gorm:"default:0" json:"total_earned"`
	SavedFoodCount int       `gorm:"default:0" json:"saved_food_count"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`

	Timestamp
}
