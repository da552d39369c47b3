package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessLogin   = "login successful"
	MessageSuccessGetUser = "user retrieved successfully"

	MessageFailedLogin   = "failed to login"
	MessageFailedGetUser = "failed to retrieve user"

	ErrUserNotFound = errors.New("user not found")
	ErrInvalidPhone = errors.New("phone number must contain digits")
)

type (
	LoginRequest struct {
		Phone string `json:"phone" validate:"required"`
		Name  string `json:"name" validate:"omitempty,max=100"`
		Email string `json:"email" validate:"omitempty,email"`
	}

	LoginResponse struct {
		Token   string       `json:"token"`
		Created bool         `json:"created"`
		User    UserResponse `json:"user"`
	}

	UserResponse struct {
		ID             string    `json:"id"`
		Phone          string    `json:"phone"`
		Name           string    `json:"name"`
		Email          string    `json:"email,omitempty"`
		GreenCoins     int       `json:"green_coins"`
		TotalKgSold    float64   `json:"total_kg_sold"`
		TotalEarned    float64   `json:"total_earned"`
		SavedFoodCount int       `json:"saved_food_count"`
		ProfilePicture string    `json:"profile_picture,omitempty"`
		CreatedAt      time.Time `json:"created_at"`
	}

	// CounterDelta is applied to the cached user counters in one atomic update.
	// Negative values decrement.
	CounterDelta struct {
		GreenCoins     int
		TotalKgSold    float64
		TotalEarned    float64
		SavedFoodCount int
	}
)

func (d CounterDelta) IsZero() bool {
	return d.GreenCoins == 0 && d.TotalKgSold == 0 && d.TotalEarned == 0 && d.SavedFoodCount == 0
}
