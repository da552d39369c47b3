package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

const (
	FoodStatusFresh        = "fresh"
	FoodStatusExpiringSoon = "expiring_soon"
	FoodStatusExpired      = "expired"
	FoodStatusConsumed     = "consumed"
	FoodStatusDonated      = "donated"
	FoodStatusSold         = "sold"

	DefaultFoodUnit     = "kg"
	DefaultFoodStorage  = "pantry"
	DefaultFoodCategory = "other"

	ExpiringSoonWindow = 3 * 24 * time.Hour
)

var (
	MessageSuccessAddFoodItem       = "food item added successfully"
	MessageSuccessUpdateFoodItem    = "food item updated successfully"
	MessageSuccessDeleteFoodItem    = "food item deleted successfully"
	MessageSuccessGetFoodItems      = "food items retrieved successfully"
	MessageSuccessGetFoodItem       = "food item retrieved successfully"
	MessageSuccessUploadFoodImage   = "food image uploaded successfully"
	MessageSuccessGetDashboardStats = "dashboard statistics retrieved successfully"

	MessageFailedAddFoodItem       = "failed to add food item"
	MessageFailedUpdateFoodItem    = "failed to update food item"
	MessageFailedDeleteFoodItem    = "failed to delete food item"
	MessageFailedGetFoodItems      = "failed to retrieve food items"
	MessageFailedGetFoodItem       = "failed to retrieve food item"
	MessageFailedUploadFoodImage   = "failed to upload food image"
	MessageFailedGetDashboardStats = "failed to retrieve dashboard statistics"

	ErrFoodItemNotFound     = errors.New("food item not found")
	ErrInvalidPurchaseDate  = errors.New("invalid purchase date")
	ErrInvalidExpiryDate    = errors.New("invalid expiry date")
	ErrExpiryBeforePurchase = errors.New("expiry date must be after purchase date")
	ErrInvalidQuantity      = errors.New("quantity must be positive")
	ErrInvalidImageFormat   = errors.New("invalid image format")
	ErrUnauthorizedAccess   = errors.New("unauthorized access to food item")
)

// IsTerminalFoodStatus reports whether a status was set by hand and must
// survive expiry recomputation.
func IsTerminalFoodStatus(status string) bool {
	switch status {
	case FoodStatusConsumed, FoodStatusDonated, FoodStatusSold:
		return true
	}
	return false
}

type (
	ExpiryClassification struct {
		Status          string `json:"status"`
		DaysUntilExpiry int    `json:"days_until_expiry"`
		IsExpired       bool   `json:"is_expired"`
		IsExpiringSoon  bool   `json:"is_expiring_soon"`
	}

	AddFoodItemRequest struct {
		Name         string  `json:"name" validate:"required,max=100"`
		Quantity     float64 `json:"quantity" validate:"required,gt=0"`
		Unit         string  `json:"unit" validate:"omitempty,max=20"`
		PurchaseDate string  `json:"purchase_date" validate:"required"`
		ExpiryDate   string  `json:"expiry_date" validate:"required"`
		Storage      string  `json:"storage" validate:"omitempty,oneof=refrigerator freezer pantry counter"`
		Category     string  `json:"category" validate:"omitempty,oneof=fruits vegetables dairy meat grains beverages other"`
		Calories     int     `json:"calories" validate:"gte=0"`
		Notes        string  `json:"notes" validate:"omitempty,max=500"`
	}

	UpdateFoodItemRequest struct {
		Name         *string  `json:"name" validate:"omitempty,max=100"`
		Quantity     *float64 `json:"quantity" validate:"omitempty,gt=0"`
		Unit         *string  `json:"unit" validate:"omitempty,max=20"`
		PurchaseDate *string  `json:"purchase_date"`
		ExpiryDate   *string  `json:"expiry_date"`
		Storage      *string  `json:"storage" validate:"omitempty,oneof=refrigerator freezer pantry counter"`
		Category     *string  `json:"category" validate:"omitempty,oneof=fruits vegetables dairy meat grains beverages other"`
		Calories     *int     `json:"calories" validate:"omitempty,gte=0"`
		Status       *string  `json:"status" validate:"omitempty,oneof=fresh expiring_soon expired consumed donated sold"`
		Notes        *string  `json:"notes" validate:"omitempty,max=500"`
	}

	FoodItemFilter struct {
		Status   string
		Category string
		Storage  string
	}

	UploadFoodImageRequest struct {
		FoodItemID string                `json:"food_id" form:"food_id" validate:"required,uuid"`
		Image      *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	FoodItemResponse struct {
		ID              string    `json:"id"`
		Name            string    `json:"name"`
		Quantity        float64   `json:"quantity"`
		Unit            string    `json:"unit"`
		PurchaseDate    time.Time `json:"purchase_date"`
		ExpiryDate      time.Time `json:"expiry_date"`
		Storage         string    `json:"storage"`
		Category        string    `json:"category"`
		Calories        int       `json:"calories"`
		Status          string    `json:"status"`
		ImageURL        string    `json:"image_url,omitempty"`
		Notes           string    `json:"notes,omitempty"`
		DaysUntilExpiry int       `json:"days_until_expiry"`
		IsExpired       bool      `json:"is_expired"`
		IsExpiringSoon  bool      `json:"is_expiring_soon"`
		CreatedAt       time.Time `json:"created_at"`
		UpdatedAt       time.Time `json:"updated_at"`
	}

	GroupedFoodItems struct {
		Expired      []FoodItemResponse `json:"expired"`
		ExpiringSoon []FoodItemResponse `json:"expiring_soon"`
		Fresh        []FoodItemResponse `json:"fresh"`
	}

	FoodItemListResponse struct {
		Items   []FoodItemResponse `json:"items"`
		Grouped GroupedFoodItems   `json:"grouped"`
		Total   int                `json:"total"`
	}

	DashboardStatsResponse struct {
		TotalItems        int64 `json:"total_items"`
		FreshItems        int64 `json:"fresh_items"`
		ExpiringSoonItems int64 `json:"expiring_soon_items"`
		ExpiredItems      int64 `json:"expired_items"`
		ConsumedItems     int64 `json:"consumed_items"`
		DonatedItems      int64 `json:"donated_items"`
		SoldItems         int64 `json:"sold_items"`
	}
)
