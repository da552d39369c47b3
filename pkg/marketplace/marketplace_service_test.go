package marketplace

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"worthy-waste/domain"
	"worthy-waste/entities"
	"worthy-waste/pkg/midtrans"
)

type fakeTransactionRepo struct {
	items map[string]*entities.Transaction
}

func (f *fakeTransactionRepo) CreateTransaction(_ context.Context, t *entities.Transaction) error {
	cp := *t
	f.items[t.ID.String()] = &cp
	return nil
}

func (f *fakeTransactionRepo) GetTransactionByID(_ context.Context, id string) (*entities.Transaction, error) {
	t, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTransactionRepo) UpdateTransaction(_ context.Context, t *entities.Transaction) error {
	cp := *t
	cp.Derive()
	f.items[t.ID.String()] = &cp
	return nil
}

func (f *fakeTransactionRepo) UpdatePaymentStatus(_ context.Context, id string, status string) error {
	t, ok := f.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t.PaymentStatus = status
	return nil
}

func (f *fakeTransactionRepo) GetTransactions(_ context.Context, sellerID string, filter domain.TransactionFilter) ([]*entities.Transaction, error) {
	var out []*entities.Transaction
	for _, t := range f.items {
		if t.SellerID.String() != sellerID {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeTransactionRepo) GetTransactionsSince(context.Context, string, time.Time) ([]*entities.Transaction, error) {
	return nil, nil
}

type fakeSellers struct {
	users  map[string]*entities.User
	deltas []domain.CounterDelta
}

func (f *fakeSellers) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeSellers) IncrementCounters(_ context.Context, _ string, d domain.CounterDelta) error {
	f.deltas = append(f.deltas, d)
	return nil
}

type fakePayments struct {
	requests []midtrans.PaymentRequest
	status   string
	sigErr   error
}

func (f *fakePayments) CreateSnapPayment(req midtrans.PaymentRequest) (domain.PaymentResponse, error) {
	f.requests = append(f.requests, req)
	return domain.PaymentResponse{TransactionID: req.OrderID, Token: "tok", RedirectURL: "https://pay.test/" + req.OrderID}, nil
}

func (f *fakePayments) CheckStatus(string) (string, error) { return f.status, nil }

func (f *fakePayments) VerifySignature(domain.MidtransWebhookRequest) error { return f.sigErr }

type fakePublisher struct {
	mu     sync.Mutex
	events []domain.TransactionEvent
}

func (f *fakePublisher) Publish(e domain.TransactionEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
}

func (f *fakePublisher) Close() {}

func (f *fakePublisher) kinds() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Kind)
	}
	return out
}

type sentMail struct{ to, subject, body string }

type fakeMailer struct {
	sent chan sentMail
}

func (f *fakeMailer) Send(to, subject, body string) error {
	f.sent <- sentMail{to, subject, body}
	return nil
}

var marketNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type marketFixture struct {
	svc       *marketplaceService
	repo      *fakeTransactionRepo
	sellers   *fakeSellers
	payments  *fakePayments
	publisher *fakePublisher
	mailer    *fakeMailer
	userID    string
}

func newMarketFixture() *marketFixture {
	userID := uuid.NewString()
	f := &marketFixture{
		repo: &fakeTransactionRepo{items: map[string]*entities.Transaction{}},
		sellers: &fakeSellers{users: map[string]*entities.User{
			userID: {ID: uuid.MustParse(userID), Name: "Sari", Phone: "628123456789", Email: "sari@example.com"},
		}},
		payments:  &fakePayments{status: domain.PaymentStatusPaid},
		publisher: &fakePublisher{},
		mailer:    &fakeMailer{sent: make(chan sentMail, 1)},
		userID:    userID,
	}
	f.svc = &marketplaceService{
		transactionRepository: f.repo,
		sellers:               f.sellers,
		catalog:               NewBuyerCatalog(nil),
		payments:              f.payments,
		publisher:             f.publisher,
		mailer:                f.mailer,
		appURL:                "https://app.test",
		now:                   func() time.Time { return marketNow },
	}
	return f
}

func (f *marketFixture) sell(t *testing.T, req domain.SellRequest) domain.TransactionResponse {
	t.Helper()
	res, err := f.svc.Sell(context.Background(), req, f.userID)
	require.NoError(t, err)
	return res
}

func TestSell_SaleWithCatalogueBuyer(t *testing.T) {
	f := newMarketFixture()

	res := f.sell(t, domain.SellRequest{
		Type: domain.TransactionTypeSale, AmountKg: 2.5,
		BuyerName: "GreenEarth Composting Co.", PickupAddress: "Jl. Merdeka 1",
	})

	assert.Equal(t, "+91-9876543210", res.BuyerContact)
	assert.Equal(t, 15.0, res.PricePerKg)
	assert.Equal(t, 37.5, res.TotalAmount)
	assert.Equal(t, domain.WasteCompostable, res.WasteCategory)
	assert.Equal(t, domain.TransactionStatusPending, res.Status)
	assert.Equal(t, domain.PaymentMethodCash, res.PaymentMethod)
	assert.Equal(t, marketNow.Add(24*time.Hour), res.ScheduledDate)
	assert.Equal(t, 1, res.DaysUntilPickup)
	assert.Equal(t, 2, res.GreenCoinsEarned)
	assert.Equal(t, 6.25, res.CO2Saved)

	assert.Equal(t, []domain.CounterDelta{{GreenCoins: 2, TotalKgSold: 2.5, TotalEarned: 37.5}}, f.sellers.deltas)
	assert.Equal(t, []string{domain.EventTransactionCreated}, f.publisher.kinds())
}

func TestSell_DonationUnknownBuyer(t *testing.T) {
	f := newMarketFixture()

	res := f.sell(t, domain.SellRequest{
		Type: domain.TransactionTypeDonation, AmountKg: 0.8,
		BuyerName: "Neighbourhood Garden", PickupAddress: "Jl. Melati 2",
		WasteCategory: domain.WasteRecyclable, ScheduledDate: "2024-05-04",
	})

	assert.Equal(t, domain.BuyerContactFallback, res.BuyerContact)
	assert.Equal(t, 0.0, res.PricePerKg)
	assert.Equal(t, 0, res.GreenCoinsEarned)
	assert.Equal(t, 3, res.DaysUntilPickup)
	assert.Equal(t, []domain.CounterDelta{{TotalKgSold: 0.8}}, f.sellers.deltas)
}

func TestSell_ExplicitPriceAndDonationEarnsNothing(t *testing.T) {
	f := newMarketFixture()
	price := 20.0

	res := f.sell(t, domain.SellRequest{
		Type: domain.TransactionTypeDonation, AmountKg: 3,
		BuyerName: "RecyclePro Industries", PricePerKg: &price, PickupAddress: "x",
	})

	assert.Equal(t, 60.0, res.TotalAmount)
	assert.Equal(t, []domain.CounterDelta{{GreenCoins: 3, TotalKgSold: 3}}, f.sellers.deltas)
}

func TestSell_Errors(t *testing.T) {
	f := newMarketFixture()
	ctx := context.Background()
	req := domain.SellRequest{Type: domain.TransactionTypeSale, AmountKg: 1, BuyerName: "b", PickupAddress: "x"}

	_, err := f.svc.Sell(ctx, req, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	req.ScheduledDate = "next week"
	_, err = f.svc.Sell(ctx, req, f.userID)
	assert.ErrorIs(t, err, domain.ErrInvalidScheduledDate)

	assert.Empty(t, f.repo.items)
	assert.Empty(t, f.sellers.deltas)
}

func TestUpdateStatus_Machine(t *testing.T) {
	f := newMarketFixture()
	ctx := context.Background()
	tx := f.sell(t, domain.SellRequest{Type: domain.TransactionTypeSale, AmountKg: 1, BuyerName: "b", PickupAddress: "x"})

	_, err := f.svc.UpdateStatus(ctx, tx.ID, domain.UpdateTransactionStatusRequest{Status: domain.TransactionStatusCompleted}, f.userID)
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)

	for _, status := range []string{domain.TransactionStatusConfirmed, domain.TransactionStatusPickedUp} {
		res, err := f.svc.UpdateStatus(ctx, tx.ID, domain.UpdateTransactionStatusRequest{Status: status}, f.userID)
		require.NoError(t, err)
		assert.Equal(t, status, res.Status)
		assert.Nil(t, res.CompletedDate)
	}

	res, err := f.svc.UpdateStatus(ctx, tx.ID, domain.UpdateTransactionStatusRequest{
		Status: domain.TransactionStatusCompleted, CompletedDate: "2024-05-02",
	}, f.userID)
	require.NoError(t, err)
	require.NotNil(t, res.CompletedDate)
	assert.Equal(t, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), *res.CompletedDate)

	_, err = f.svc.UpdateStatus(ctx, tx.ID, domain.UpdateTransactionStatusRequest{Status: domain.TransactionStatusCancelled}, f.userID)
	assert.ErrorIs(t, err, domain.ErrInvalidStatusTransition)

	select {
	case mail := <-f.mailer.sent:
		assert.Equal(t, "sari@example.com", mail.to)
		assert.Contains(t, mail.body, "Sari")
		assert.Contains(t, mail.body, "https://app.test")
	case <-time.After(time.Second):
		t.Fatal("completion mail was not sent")
	}

	assert.Equal(t, []string{
		domain.EventTransactionCreated,
		domain.EventTransactionStatusChanged,
		domain.EventTransactionStatusChanged,
		domain.EventTransactionStatusChanged,
	}, f.publisher.kinds())
}

func TestUpdateStatus_CompletedDefaultsToNow(t *testing.T) {
	f := newMarketFixture()
	tx := f.sell(t, domain.SellRequest{Type: domain.TransactionTypeSale, AmountKg: 1, BuyerName: "b", PickupAddress: "x"})
	f.repo.items[tx.ID].Status = domain.TransactionStatusPickedUp

	res, err := f.svc.UpdateStatus(context.Background(), tx.ID, domain.UpdateTransactionStatusRequest{Status: domain.TransactionStatusCompleted}, f.userID)
	require.NoError(t, err)
	require.NotNil(t, res.CompletedDate)
	assert.Equal(t, marketNow, *res.CompletedDate)
	<-f.mailer.sent
}

func TestUpdateStatus_CancelFromAnyOpenState(t *testing.T) {
	for _, from := range []string{domain.TransactionStatusPending, domain.TransactionStatusConfirmed, domain.TransactionStatusPickedUp} {
		t.Run(from, func(t *testing.T) {
			f := newMarketFixture()
			tx := f.sell(t, domain.SellRequest{Type: domain.TransactionTypeSale, AmountKg: 1, BuyerName: "b", PickupAddress: "x"})
			f.repo.items[tx.ID].Status = from

			res, err := f.svc.UpdateStatus(context.Background(), tx.ID, domain.UpdateTransactionStatusRequest{Status: domain.TransactionStatusCancelled}, f.userID)
			require.NoError(t, err)
			assert.Equal(t, domain.TransactionStatusCancelled, res.Status)
		})
	}
}

func TestUpdateStatus_Ownership(t *testing.T) {
	f := newMarketFixture()
	tx := f.sell(t, domain.SellRequest{Type: domain.TransactionTypeSale, AmountKg: 1, BuyerName: "b", PickupAddress: "x"})
	req := domain.UpdateTransactionStatusRequest{Status: domain.TransactionStatusConfirmed}

	_, err := f.svc.UpdateStatus(context.Background(), tx.ID, req, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrTransactionForbidden)

	_, err = f.svc.UpdateStatus(context.Background(), "not-a-uuid", req, f.userID)
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestGetTransactions(t *testing.T) {
	f := newMarketFixture()
	f.sell(t, domain.SellRequest{Type: domain.TransactionTypeSale, AmountKg: 2, BuyerName: "b", PickupAddress: "x"})
	f.sell(t, domain.SellRequest{Type: domain.TransactionTypeDonation, AmountKg: 4, BuyerName: "b", PickupAddress: "x"})

	res, err := f.svc.GetTransactions(context.Background(), f.userID, domain.TransactionFilter{Type: domain.TransactionTypeDonation})
	require.NoError(t, err)
	require.Equal(t, 1, res.TotalTransactions)
	assert.Equal(t, 10.0, res.Transactions[0].CO2Saved)

	res, err = f.svc.GetTransactions(context.Background(), uuid.NewString(), domain.TransactionFilter{})
	require.NoError(t, err)
	assert.Equal(t, 0, res.TotalTransactions)
	assert.NotNil(t, res.Transactions)
}

func TestGetTransactionImpact(t *testing.T) {
	f := newMarketFixture()
	tx := f.sell(t, domain.SellRequest{
		Type: domain.TransactionTypeSale, AmountKg: 10, BuyerName: "b", PickupAddress: "x",
		WasteCategory: domain.WasteRecyclable,
	})

	res, err := f.svc.GetTransactionImpact(context.Background(), tx.ID, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 18.0, res.Impact.CO2SavedKg)
	assert.Equal(t, 35.0, res.Impact.EnergySavedKwh)
	assert.Equal(t, 8000.0, res.Impact.WaterSavedLiters)
	assert.NotEmpty(t, res.Message)
}

func TestCreatePayment(t *testing.T) {
	f := newMarketFixture()
	ctx := context.Background()
	tx := f.sell(t, domain.SellRequest{Type: domain.TransactionTypeSale, AmountKg: 2.5, BuyerName: "RecyclePro Industries", PickupAddress: "x"})

	res, err := f.svc.CreatePayment(ctx, tx.ID, f.userID)
	require.NoError(t, err)
	assert.Equal(t, "https://pay.test/"+tx.ID, res.RedirectURL)
	require.Len(t, f.payments.requests, 1)
	assert.Equal(t, int64(63), f.payments.requests[0].Amount)
	assert.Equal(t, "sari@example.com", f.payments.requests[0].Email)
	assert.Equal(t, res.RedirectURL, f.repo.items[tx.ID].PaymentURL)

	_, err = f.svc.CreatePayment(ctx, tx.ID, f.userID)
	assert.ErrorIs(t, err, domain.ErrPaymentAlreadyCreated)
}

func TestCreatePayment_NotAllowed(t *testing.T) {
	f := newMarketFixture()
	donation := f.sell(t, domain.SellRequest{Type: domain.TransactionTypeDonation, AmountKg: 2, BuyerName: "RecyclePro Industries", PickupAddress: "x"})
	free := f.sell(t, domain.SellRequest{Type: domain.TransactionTypeSale, AmountKg: 2, BuyerName: "unknown", PickupAddress: "x"})

	_, err := f.svc.CreatePayment(context.Background(), donation.ID, f.userID)
	assert.ErrorIs(t, err, domain.ErrPaymentNotAllowed)
	_, err = f.svc.CreatePayment(context.Background(), free.ID, f.userID)
	assert.ErrorIs(t, err, domain.ErrPaymentNotAllowed)
	assert.Empty(t, f.payments.requests)
}

func TestHandlePaymentNotification(t *testing.T) {
	f := newMarketFixture()
	ctx := context.Background()
	tx := f.sell(t, domain.SellRequest{Type: domain.TransactionTypeSale, AmountKg: 2, BuyerName: "RecyclePro Industries", PickupAddress: "x"})

	require.NoError(t, f.svc.HandlePaymentNotification(ctx, domain.MidtransWebhookRequest{OrderID: tx.ID}))
	assert.Equal(t, domain.PaymentStatusPaid, f.repo.items[tx.ID].PaymentStatus)
	assert.Equal(t, []string{domain.EventTransactionCreated, domain.EventTransactionPaymentUpdate}, f.publisher.kinds())

	// repeated notification with the same status is a no-op
	require.NoError(t, f.svc.HandlePaymentNotification(ctx, domain.MidtransWebhookRequest{OrderID: tx.ID}))
	assert.Len(t, f.publisher.kinds(), 2)

	err := f.svc.HandlePaymentNotification(ctx, domain.MidtransWebhookRequest{OrderID: uuid.NewString()})
	assert.ErrorIs(t, err, domain.ErrTransactionNotFound)

	f.payments.sigErr = midtrans.ErrInvalidSignature
	err = f.svc.HandlePaymentNotification(ctx, domain.MidtransWebhookRequest{OrderID: tx.ID})
	assert.ErrorIs(t, err, midtrans.ErrInvalidSignature)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(domain.TransactionStatusPending, domain.TransactionStatusConfirmed))
	assert.False(t, CanTransition(domain.TransactionStatusPending, domain.TransactionStatusPickedUp))
	assert.False(t, CanTransition(domain.TransactionStatusCompleted, domain.TransactionStatusCancelled))
	assert.False(t, CanTransition(domain.TransactionStatusCancelled, domain.TransactionStatusPending))
	assert.False(t, CanTransition(domain.TransactionStatusPending, domain.TransactionStatusPending))
}
