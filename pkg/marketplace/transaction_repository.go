package marketplace

import (
	"context"
	"time"

	"gorm.io/gorm"

	"worthy-waste/domain"
	"worthy-waste/entities"
)

type (
	TransactionRepository interface {
		CreateTransaction(ctx context.Context, transaction *entities.Transaction) error
		GetTransactionByID(ctx context.Context, id string) (*entities.Transaction, error)
		UpdateTransaction(ctx context.Context, transaction *entities.Transaction) error
		UpdatePaymentStatus(ctx context.Context, id string, paymentStatus string) error
		GetTransactions(ctx context.Context, sellerID string, filter domain.TransactionFilter) ([]*entities.Transaction, error)
		GetTransactionsSince(ctx context.Context, sellerID string, since time.Time) ([]*entities.Transaction, error)
	}

	transactionRepository struct {
		db *gorm.DB
	}
)

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) CreateTransaction(ctx context.Context, transaction *entities.Transaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

func (r *transactionRepository) GetTransactionByID(ctx context.Context, id string) (*entities.Transaction, error) {
	var transaction entities.Transaction
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&transaction).Error; err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *transactionRepository) UpdateTransaction(ctx context.Context, transaction *entities.Transaction) error {
	return r.db.WithContext(ctx).Save(transaction).Error
}

func (r *transactionRepository) UpdatePaymentStatus(ctx context.Context, id string, paymentStatus string) error {
	res := r.db.WithContext(ctx).Model(&entities.Transaction{}).
		Where("id = ?", id).
		Update("payment_status", paymentStatus)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *transactionRepository) GetTransactions(ctx context.Context, sellerID string, filter domain.TransactionFilter) ([]*entities.Transaction, error) {
	var transactions []*entities.Transaction

	query := r.db.WithContext(ctx).Where("seller_id = ?", sellerID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	if err := query.Order("created_at desc").Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

// GetTransactionsSince returns the seller's transactions created at or after since, oldest first.
func (r *transactionRepository) GetTransactionsSince(ctx context.Context, sellerID string, since time.Time) ([]*entities.Transaction, error) {
	var transactions []*entities.Transaction
	err := r.db.WithContext(ctx).
		Where("seller_id = ? AND created_at >= ?", sellerID, since).
		Order("created_at asc").
		Find(&transactions).Error
	return transactions, err
}
