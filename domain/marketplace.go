package domain

import (
	"errors"
	"time"
)

const (
	TransactionTypeSale     = "sale"
	TransactionTypeDonation = "donation"

	TransactionStatusPending   = "pending"
	TransactionStatusConfirmed = "confirmed"
	TransactionStatusPickedUp  = "picked_up"
	TransactionStatusCompleted = "completed"
	TransactionStatusCancelled = "cancelled"

	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"

	PaymentMethodCash         = "cash"
	PaymentMethodUPI          = "upi"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodGreenCoins   = "green_coins"

	BuyerContactFallback = "Contact via platform"
	DefaultPickupDelay   = 24 * time.Hour
)

var (
	MessageSuccessGetBuyers               = "buyers retrieved successfully"
	MessageSuccessCreateSale              = "sale request created successfully"
	MessageSuccessCreateDonation          = "donation request created successfully"
	MessageSuccessGetTransactions         = "transactions retrieved successfully"
	MessageSuccessUpdateTransactionStatus = "transaction status updated successfully"
	MessageSuccessGetTransactionImpact    = "transaction impact retrieved successfully"
	MessageSuccessCreatePayment           = "payment created successfully"
	MessageSuccessWebhook                 = "webhook processed successfully"

	MessageFailedGetBuyers               = "failed to retrieve buyers"
	MessageFailedCreateTransaction       = "failed to create transaction"
	MessageFailedGetTransactions         = "failed to retrieve transactions"
	MessageFailedUpdateTransactionStatus = "failed to update transaction status"
	MessageFailedGetTransactionImpact    = "failed to retrieve transaction impact"
	MessageFailedCreatePayment           = "failed to create payment"
	MessageFailedWebhook                 = "failed to process webhook"

	ErrTransactionNotFound     = errors.New("transaction not found")
	ErrInvalidStatusTransition = errors.New("invalid transaction status transition")
	ErrInvalidScheduledDate    = errors.New("invalid scheduled date")
	ErrInvalidCompletedDate    = errors.New("invalid completed date")
	ErrInvalidRate             = errors.New("rate filter must be a number")
	ErrPaymentNotAllowed       = errors.New("payment is only available for open sales")
	ErrPaymentAlreadyCreated   = errors.New("payment already created")
	ErrTransactionForbidden    = errors.New("unauthorized access to transaction")
)

type (
	Buyer struct {
		ID         string   `json:"id" yaml:"ID"`
		Name       string   `json:"name" yaml:"NAME"`
		Type       string   `json:"type" yaml:"TYPE"` // composter, recycler, waste_management, community
		Contact    string   `json:"contact" yaml:"CONTACT"`
		Email      string   `json:"email" yaml:"EMAIL"`
		RatePerKg  float64  `json:"rate_per_kg" yaml:"RATE_PER_KG"`
		WasteTypes []string `json:"waste_types" yaml:"WASTE_TYPES"`
		Location   string   `json:"location" yaml:"LOCATION"`
		Rating     float64  `json:"rating" yaml:"RATING"`
		Verified   bool     `json:"verified" yaml:"VERIFIED"`
	}

	BuyerFilter struct {
		WasteType string
		Location  string
		MinRate   *float64
		MaxRate   *float64
	}

	BuyerListResponse struct {
		TotalBuyers int     `json:"total_buyers"`
		Buyers      []Buyer `json:"buyers"`
	}

	SellRequest struct {
		Type          string   `json:"type" validate:"required,oneof=sale donation"`
		AmountKg      float64  `json:"amount_kg" validate:"required,gt=0"`
		BuyerName     string   `json:"buyer_name" validate:"required"`
		PricePerKg    *float64 `json:"price_per_kg" validate:"omitempty,gte=0"`
		WasteCategory string   `json:"waste_category" validate:"omitempty,oneof=compostable recyclable non-usable"`
		PaymentMethod string   `json:"payment_method" validate:"omitempty,oneof=cash upi bank_transfer green_coins"`
		PickupAddress string   `json:"pickup_address" validate:"required"`
		ScheduledDate string   `json:"scheduled_date"`
		Notes         string   `json:"notes" validate:"omitempty,max=500"`
	}

	TransactionFilter struct {
		Status string
		Type   string
	}

	UpdateTransactionStatusRequest struct {
		Status        string `json:"status" validate:"required,oneof=pending confirmed picked_up completed cancelled"`
		CompletedDate string `json:"completed_date"`
	}

	TransactionResponse struct {
		ID               string     `json:"id"`
		SellerID         string     `json:"seller_id"`
		BuyerName        string     `json:"buyer_name"`
		BuyerContact     string     `json:"buyer_contact"`
		Type             string     `json:"type"`
		AmountKg         float64    `json:"amount_kg"`
		PricePerKg       float64    `json:"price_per_kg"`
		TotalAmount      float64    `json:"total_amount"`
		WasteCategory    string     `json:"waste_category"`
		Status           string     `json:"status"`
		PaymentStatus    string     `json:"payment_status"`
		PaymentMethod    string     `json:"payment_method"`
		PaymentURL       string     `json:"payment_url,omitempty"`
		PickupAddress    string     `json:"pickup_address"`
		ScheduledDate    time.Time  `json:"scheduled_date"`
		CompletedDate    *time.Time `json:"completed_date,omitempty"`
		GreenCoinsEarned int        `json:"green_coins_earned"`
		Notes            string     `json:"notes,omitempty"`
		CO2Saved         float64    `json:"co2_saved"`
		DaysUntilPickup  int        `json:"days_until_pickup"`
		CreatedAt        time.Time  `json:"created_at"`
		UpdatedAt        time.Time  `json:"updated_at"`
	}

	TransactionListResponse struct {
		TotalTransactions int                   `json:"total_transactions"`
		Transactions      []TransactionResponse `json:"transactions"`
	}

	PaymentResponse struct {
		TransactionID string `json:"transaction_id"`
		Token         string `json:"token"`
		RedirectURL   string `json:"redirect_url"`
	}

	MidtransWebhookRequest struct {
		OrderID           string `json:"order_id"`
		TransactionStatus string `json:"transaction_status"`
		FraudStatus       string `json:"fraud_status"`
		StatusCode        string `json:"status_code"`
		GrossAmount       string `json:"gross_amount"`
		SignatureKey      string `json:"signature_key"`
	}

	TransactionEvent struct {
		EventID       string    `json:"event_id"`
		Kind          string    `json:"kind"`
		TransactionID string    `json:"transaction_id"`
		SellerID      string    `json:"seller_id"`
		Type          string    `json:"type"`
		Status        string    `json:"status"`
		AmountKg      float64   `json:"amount_kg"`
		WasteCategory string    `json:"waste_category"`
		OccurredAt    time.Time `json:"occurred_at"`
	}
)

const (
	EventTransactionCreated       = "transaction.created"
	EventTransactionStatusChanged = "transaction.status_changed"
	EventTransactionPaymentUpdate = "transaction.payment_updated"
)
