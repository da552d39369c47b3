package user

import (
	"context"

	"gorm.io/gorm"

	"worthy-waste/domain"
	"worthy-waste/entities"
)

type (
	UserRepository interface {
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		GetUserByPhone(ctx context.Context, phone string) (*entities.User, error)
		CreateUser(ctx context.Context, user *entities.User) error
		UpdateUser(ctx context.Context, user *entities.User) error
		IncrementCounters(ctx context.Context, userID string, delta domain.CounterDelta) error
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByPhone(ctx context.Context, phone string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// UpdateUser writes only the profile columns. Counters are owned by
// IncrementCounters and must never be written back from a stale read.
func (r *userRepository) UpdateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Model(&entities.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"name":  user.Name,
			"email": user.Email,
		}).Error
}

// IncrementCounters applies delta as a single UPDATE using column arithmetic,
// so concurrent requests never lose each other's increments.
func (r *userRepository) IncrementCounters(ctx context.Context, userID string, delta domain.CounterDelta) error {
	if delta.IsZero() {
		return nil
	}

	updates := map[string]interface{}{}
	if delta.GreenCoins != 0 {
		updates["green_coins"] = gorm.Expr("green_coins + ?", delta.GreenCoins)
	}
	if delta.TotalKgSold != 0 {
		updates["total_kg_sold"] = gorm.Expr("total_kg_sold + ?", delta.TotalKgSold)
	}
	if delta.TotalEarned != 0 {
		updates["total_earned"] = gorm.Expr("total_earned + ?", delta.TotalEarned)
	}
	if delta.SavedFoodCount != 0 {
		updates["saved_food_count"] = gorm.Expr("saved_food_count + ?", delta.SavedFoodCount)
	}

	res := r.db.WithContext(ctx).Model(&entities.User{}).Where("id = ?", userID).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
