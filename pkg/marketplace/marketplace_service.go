package marketplace

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"worthy-waste/domain"
	"worthy-waste/entities"
	"worthy-waste/internal/events"
	"worthy-waste/internal/utils"
	"worthy-waste/internal/utils/mailing"
	"worthy-waste/pkg/food"
	"worthy-waste/pkg/impact"
	"worthy-waste/pkg/midtrans"
)

type (
	MarketplaceService interface {
		GetBuyers(filter domain.BuyerFilter) domain.BuyerListResponse
		Sell(ctx context.Context, req domain.SellRequest, userID string) (domain.TransactionResponse, error)
		GetTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) (domain.TransactionListResponse, error)
		UpdateStatus(ctx context.Context, id string, req domain.UpdateTransactionStatusRequest, userID string) (domain.TransactionResponse, error)
		GetTransactionImpact(ctx context.Context, id string, userID string) (domain.TransactionImpactResponse, error)
		CreatePayment(ctx context.Context, id string, userID string) (domain.PaymentResponse, error)
		HandlePaymentNotification(ctx context.Context, req domain.MidtransWebhookRequest) error
	}

	// SellerStore reads sellers and adjusts their cached counters.
	SellerStore interface {
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		IncrementCounters(ctx context.Context, userID string, delta domain.CounterDelta) error
	}

	marketplaceService struct {
		transactionRepository TransactionRepository
		sellers               SellerStore
		catalog               *BuyerCatalog
		payments              midtrans.MidtransService
		publisher             events.Publisher
		mailer                mailing.Mailer
		appURL                string
		now                   func() time.Time
	}
)

// validNext lists the statuses reachable from each open status.
var validNext = map[string][]string{
	domain.TransactionStatusPending:   {domain.TransactionStatusConfirmed, domain.TransactionStatusCancelled},
	domain.TransactionStatusConfirmed: {domain.TransactionStatusPickedUp, domain.TransactionStatusCancelled},
	domain.TransactionStatusPickedUp:  {domain.TransactionStatusCompleted, domain.TransactionStatusCancelled},
}

func CanTransition(from, to string) bool {
	return slices.Contains(validNext[from], to)
}

func NewMarketplaceService(
	transactionRepository TransactionRepository,
	sellers SellerStore,
	catalog *BuyerCatalog,
	payments midtrans.MidtransService,
	publisher events.Publisher,
	mailer mailing.Mailer,
) MarketplaceService {
	return &marketplaceService{
		transactionRepository: transactionRepository,
		sellers:               sellers,
		catalog:               catalog,
		payments:              payments,
		publisher:             publisher,
		mailer:                mailer,
		appURL:                utils.GetConfig("APP_URL"),
		now:                   time.Now,
	}
}

func (s *marketplaceService) GetBuyers(filter domain.BuyerFilter) domain.BuyerListResponse {
	buyers := s.catalog.Filter(filter)
	return domain.BuyerListResponse{
		TotalBuyers: len(buyers),
		Buyers:      buyers,
	}
}

func (s *marketplaceService) Sell(ctx context.Context, req domain.SellRequest, userID string) (domain.TransactionResponse, error) {
	sellerUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.TransactionResponse{}, domain.ErrParseUUID
	}
	if _, err := s.seller(ctx, userID); err != nil {
		return domain.TransactionResponse{}, err
	}

	now := s.now()
	buyerContact := domain.BuyerContactFallback
	pricePerKg := 0.0
	if buyer, ok := s.catalog.Find(req.BuyerName); ok {
		buyerContact = buyer.Contact
		pricePerKg = buyer.RatePerKg
	}
	if req.PricePerKg != nil {
		pricePerKg = *req.PricePerKg
	}

	scheduledDate := now.Add(domain.DefaultPickupDelay)
	if strings.TrimSpace(req.ScheduledDate) != "" {
		if scheduledDate, err = food.ParseDate(req.ScheduledDate); err != nil {
			return domain.TransactionResponse{}, domain.ErrInvalidScheduledDate
		}
	}

	transaction := &entities.Transaction{
		ID:            uuid.New(),
		SellerID:      sellerUUID,
		BuyerName:     req.BuyerName,
		BuyerContact:  buyerContact,
		Type:          req.Type,
		AmountKg:      req.AmountKg,
		PricePerKg:    pricePerKg,
		WasteCategory: orDefault(req.WasteCategory, domain.WasteCompostable),
		Status:        domain.TransactionStatusPending,
		PaymentStatus: domain.PaymentStatusPending,
		PaymentMethod: orDefault(req.PaymentMethod, domain.PaymentMethodCash),
		PickupAddress: strings.TrimSpace(req.PickupAddress),
		ScheduledDate: scheduledDate,
		Notes:         strings.TrimSpace(req.Notes),
	}
	// the save hook derives the same totals; the counters below need them first
	transaction.Derive()

	if err := s.transactionRepository.CreateTransaction(ctx, transaction); err != nil {
		return domain.TransactionResponse{}, err
	}

	delta := domain.CounterDelta{
		GreenCoins:  transaction.GreenCoinsEarned,
		TotalKgSold: transaction.AmountKg,
	}
	if transaction.Type == domain.TransactionTypeSale {
		delta.TotalEarned = transaction.TotalAmount
	}
	if err := s.sellers.IncrementCounters(ctx, userID, delta); err != nil {
		log.Errorf("increment counters for %s after transaction %s: %v", userID, transaction.ID, err)
	}

	s.publish(domain.EventTransactionCreated, transaction)
	return s.toResponse(transaction), nil
}

func (s *marketplaceService) GetTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) (domain.TransactionListResponse, error) {
	transactions, err := s.transactionRepository.GetTransactions(ctx, userID, filter)
	if err != nil {
		return domain.TransactionListResponse{}, err
	}

	res := domain.TransactionListResponse{
		TotalTransactions: len(transactions),
		Transactions:      make([]domain.TransactionResponse, 0, len(transactions)),
	}
	for _, t := range transactions {
		res.Transactions = append(res.Transactions, s.toResponse(t))
	}
	return res, nil
}

func (s *marketplaceService) UpdateStatus(ctx context.Context, id string, req domain.UpdateTransactionStatusRequest, userID string) (domain.TransactionResponse, error) {
	transaction, err := s.ownedTransaction(ctx, id, userID)
	if err != nil {
		return domain.TransactionResponse{}, err
	}
	if !CanTransition(transaction.Status, req.Status) {
		return domain.TransactionResponse{}, fmt.Errorf("%w: %s to %s", domain.ErrInvalidStatusTransition, transaction.Status, req.Status)
	}

	transaction.Status = req.Status
	if req.Status == domain.TransactionStatusCompleted {
		completed := s.now()
		if strings.TrimSpace(req.CompletedDate) != "" {
			if completed, err = food.ParseDate(req.CompletedDate); err != nil {
				return domain.TransactionResponse{}, domain.ErrInvalidCompletedDate
			}
		}
		transaction.CompletedDate = &completed
	}

	if err := s.transactionRepository.UpdateTransaction(ctx, transaction); err != nil {
		return domain.TransactionResponse{}, err
	}

	s.publish(domain.EventTransactionStatusChanged, transaction)
	if transaction.Status == domain.TransactionStatusCompleted {
		if seller, err := s.sellers.GetUserByID(ctx, userID); err == nil && seller.Email != "" {
			go s.notifyCompleted(*seller, *transaction)
		}
	}
	return s.toResponse(transaction), nil
}

func (s *marketplaceService) GetTransactionImpact(ctx context.Context, id string, userID string) (domain.TransactionImpactResponse, error) {
	transaction, err := s.ownedTransaction(ctx, id, userID)
	if err != nil {
		return domain.TransactionImpactResponse{}, err
	}

	result := impact.ComputeImpact(transaction.AmountKg, transaction.WasteCategory)
	return domain.TransactionImpactResponse{
		TransactionID: transaction.ID.String(),
		WasteCategory: impact.NormalizeCategory(transaction.WasteCategory),
		WeightKg:      transaction.AmountKg,
		Impact:        result,
		Message:       impact.Message(result),
	}, nil
}

func (s *marketplaceService) CreatePayment(ctx context.Context, id string, userID string) (domain.PaymentResponse, error) {
	transaction, err := s.ownedTransaction(ctx, id, userID)
	if err != nil {
		return domain.PaymentResponse{}, err
	}

	if transaction.Type != domain.TransactionTypeSale ||
		transaction.Status == domain.TransactionStatusCancelled ||
		transaction.PaymentStatus == domain.PaymentStatusPaid {
		return domain.PaymentResponse{}, domain.ErrPaymentNotAllowed
	}
	if transaction.PaymentURL != "" {
		return domain.PaymentResponse{}, domain.ErrPaymentAlreadyCreated
	}

	amount := int64(math.Round(transaction.TotalAmount))
	if amount <= 0 {
		return domain.PaymentResponse{}, domain.ErrPaymentNotAllowed
	}

	seller, err := s.seller(ctx, userID)
	if err != nil {
		return domain.PaymentResponse{}, err
	}

	payment, err := s.payments.CreateSnapPayment(midtrans.PaymentRequest{
		OrderID: transaction.ID.String(),
		Amount:  amount,
		Name:    seller.Name,
		Email:   seller.Email,
		Phone:   seller.Phone,
	})
	if err != nil {
		return domain.PaymentResponse{}, err
	}

	transaction.PaymentURL = payment.RedirectURL
	if err := s.transactionRepository.UpdateTransaction(ctx, transaction); err != nil {
		return domain.PaymentResponse{}, err
	}
	return payment, nil
}

// HandlePaymentNotification trusts the notification only as far as its
// signature; the status itself is re-read from the gateway.
func (s *marketplaceService) HandlePaymentNotification(ctx context.Context, req domain.MidtransWebhookRequest) error {
	if err := s.payments.VerifySignature(req); err != nil {
		return err
	}
	if _, err := uuid.Parse(req.OrderID); err != nil {
		return domain.ErrTransactionNotFound
	}

	transaction, err := s.transactionRepository.GetTransactionByID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrTransactionNotFound
		}
		return err
	}

	paymentStatus, err := s.payments.CheckStatus(req.OrderID)
	if err != nil {
		return err
	}
	if paymentStatus == transaction.PaymentStatus {
		return nil
	}

	if err := s.transactionRepository.UpdatePaymentStatus(ctx, req.OrderID, paymentStatus); err != nil {
		return err
	}
	transaction.PaymentStatus = paymentStatus
	s.publish(domain.EventTransactionPaymentUpdate, transaction)
	return nil
}

func (s *marketplaceService) seller(ctx context.Context, userID string) (*entities.User, error) {
	seller, err := s.sellers.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return seller, nil
}

func (s *marketplaceService) ownedTransaction(ctx context.Context, id string, userID string) (*entities.Transaction, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrTransactionNotFound
	}
	transaction, err := s.transactionRepository.GetTransactionByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	if transaction.SellerID.String() != userID {
		return nil, domain.ErrTransactionForbidden
	}
	return transaction, nil
}

func (s *marketplaceService) publish(kind string, t *entities.Transaction) {
	s.publisher.Publish(domain.TransactionEvent{
		EventID:       uuid.NewString(),
		Kind:          kind,
		TransactionID: t.ID.String(),
		SellerID:      t.SellerID.String(),
		Type:          t.Type,
		Status:        t.Status,
		AmountKg:      t.AmountKg,
		WasteCategory: t.WasteCategory,
		OccurredAt:    s.now(),
	})
}

func (s *marketplaceService) notifyCompleted(seller entities.User, t entities.Transaction) {
	body, err := mailing.TransactionCompletedBody(mailing.TransactionCompletedData{
		Name:       seller.Name,
		Type:       t.Type,
		AmountKg:   t.AmountKg,
		Category:   t.WasteCategory,
		BuyerName:  t.BuyerName,
		GreenCoins: t.GreenCoinsEarned,
		CO2Saved:   co2Saved(t.AmountKg),
		AppURL:     s.appURL,
	})
	if err != nil {
		log.Errorf("render completion mail for %s: %v", t.ID, err)
		return
	}
	if err := s.mailer.Send(seller.Email, "Your Worthy Waste pickup is complete", body); err != nil {
		log.Warnf("send completion mail for %s: %v", t.ID, err)
	}
}

func (s *marketplaceService) toResponse(t *entities.Transaction) domain.TransactionResponse {
	return domain.TransactionResponse{
		ID:               t.ID.String(),
		SellerID:         t.SellerID.String(),
		BuyerName:        t.BuyerName,
		BuyerContact:     t.BuyerContact,
		Type:             t.Type,
		AmountKg:         t.AmountKg,
		PricePerKg:       t.PricePerKg,
		TotalAmount:      t.TotalAmount,
		WasteCategory:    t.WasteCategory,
		Status:           t.Status,
		PaymentStatus:    t.PaymentStatus,
		PaymentMethod:    t.PaymentMethod,
		PaymentURL:       t.PaymentURL,
		PickupAddress:    t.PickupAddress,
		ScheduledDate:    t.ScheduledDate,
		CompletedDate:    t.CompletedDate,
		GreenCoinsEarned: t.GreenCoinsEarned,
		Notes:            t.Notes,
		CO2Saved:         co2Saved(t.AmountKg),
		DaysUntilPickup:  int(math.Ceil(float64(t.ScheduledDate.Sub(s.now())) / float64(24*time.Hour))),
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

func co2Saved(kg float64) float64 {
	return impact.Round(kg*impact.SummaryCO2Factor, 2)
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}
