package entities

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Transaction struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	SellerID         uuid.UUID  `gorm:"type:uuid;index" json:"seller_id"`
	BuyerName        string     `gorm:"not null" json:"buyer_name"`
	BuyerContact     string     `json:"buyer_contact"`
	Type             string     `gorm:"not null" json:"type"` // sale, donation
	AmountKg         float64    `json:"amount_kg"`
	PricePerKg       float64    `json:"price_per_kg"`
	TotalAmount      float64    `json:"total_amount"`
	WasteCategory    string     `json:"waste_category"`
	Status           string     `gorm:"index;default:pending" json:"status"`
	PaymentStatus    string     `gorm:"default:pending" json:"payment_status"`
	PaymentMethod    string     `gorm:"default:cash" json:"payment_method"`
	PaymentURL       string     `json:"payment_url,omitempty"`
	PickupAddress    string     `json:"pickup_address"`
	ScheduledDate    time.Time  `json:"scheduled_date"`
	CompletedDate    *time.Time `json:"completed_date,omitempty"`
	GreenCoinsEarned int        `json:"green_coins_earned"`
	Notes            string     `json:"notes,omitempty"`

	Seller *User `gorm:"foreignKey:SellerID" json:"-"`
	Timestamp
}

// Derive recomputes the stored totals from amount and price.
func (t *Transaction) Derive() {
	total := decimal.NewFromFloat(t.AmountKg).Mul(decimal.NewFromFloat(t.PricePerKg))
	t.TotalAmount = total.InexactFloat64()
	t.GreenCoinsEarned = int(math.Floor(t.AmountKg))
}

func (t *Transaction) BeforeSave(tx *gorm.DB) error {
	t.Derive()
	return nil
}
