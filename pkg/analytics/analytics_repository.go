package analytics

import (
	"context"

	"gorm.io/gorm"

	"worthy-waste/domain"
	"worthy-waste/entities"
)

type (
	AnalyticsRepository interface {
		GetLeaderboard(ctx context.Context, column string, limit int) ([]*entities.User, error)
		CountActiveUsers(ctx context.Context) (int64, error)
		CountFoodItems(ctx context.Context) (int64, error)
		CountTransactions(ctx context.Context) (int64, error)
		SumAmountKg(ctx context.Context) (float64, error)
		SumSaleEarnings(ctx context.Context) (float64, error)
	}

	analyticsRepository struct {
		db *gorm.DB
	}
)

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// GetLeaderboard orders active users by column, which must come from
// leaderboardColumns.
func (r *analyticsRepository) GetLeaderboard(ctx context.Context, column string, limit int) ([]*entities.User, error) {
	var users []*entities.User
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order(column + " desc").
		Order("created_at asc").
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (r *analyticsRepository) CountActiveUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.User{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountFoodItems(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.FoodItem{}).Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountTransactions(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Transaction{}).Count(&count).Error
	return count, err
}

func (r *analyticsRepository) SumAmountKg(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&entities.Transaction{}).
		Select("COALESCE(SUM(amount_kg), 0)").
		Scan(&total).Error
	return total, err
}

func (r *analyticsRepository) SumSaleEarnings(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&entities.Transaction{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("type = ?", domain.TransactionTypeSale).
		Scan(&total).Error
	return total, err
}
