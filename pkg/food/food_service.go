package food

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"worthy-waste/domain"
	"worthy-waste/entities"
	"worthy-waste/internal/utils/storage"
)

type (
	FoodService interface {
		AddFoodItem(ctx context.Context, req domain.AddFoodItemRequest, userID string) (domain.FoodItemResponse, error)
		UpdateFoodItem(ctx context.Context, id string, req domain.UpdateFoodItemRequest, userID string) (domain.FoodItemResponse, error)
		DeleteFoodItem(ctx context.Context, id string, userID string) error
		GetFoodItems(ctx context.Context, userID string, filter domain.FoodItemFilter) (domain.FoodItemListResponse, error)
		GetFoodItemByID(ctx context.Context, id string, userID string) (domain.FoodItemResponse, error)
		UploadFoodImage(ctx context.Context, req domain.UploadFoodImageRequest, userID string) (domain.FoodItemResponse, error)
		GetDashboardStats(ctx context.Context, userID string) (domain.DashboardStatsResponse, error)
		RefreshStatuses(ctx context.Context, userID string) error
	}

	// CounterUpdater adjusts the cached per-user counters.
	CounterUpdater interface {
		IncrementCounters(ctx context.Context, userID string, delta domain.CounterDelta) error
	}

	foodService struct {
		foodRepository FoodRepository
		counters       CounterUpdater
		s3             storage.AwsS3
		now            func() time.Time
	}
)

func NewFoodService(foodRepository FoodRepository, counters CounterUpdater, s3 storage.AwsS3) FoodService {
	return &foodService{
		foodRepository: foodRepository,
		counters:       counters,
		s3:             s3,
		now:            time.Now,
	}
}

func (s *foodService) AddFoodItem(ctx context.Context, req domain.AddFoodItemRequest, userID string) (domain.FoodItemResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.FoodItemResponse{}, domain.ErrParseUUID
	}

	purchaseDate, err := ParseDate(req.PurchaseDate)
	if err != nil {
		return domain.FoodItemResponse{}, domain.ErrInvalidPurchaseDate
	}
	expiryDate, err := ParseDate(req.ExpiryDate)
	if err != nil {
		return domain.FoodItemResponse{}, domain.ErrInvalidExpiryDate
	}
	if !expiryDate.After(purchaseDate) {
		return domain.FoodItemResponse{}, domain.ErrExpiryBeforePurchase
	}
	if req.Quantity <= 0 {
		return domain.FoodItemResponse{}, domain.ErrInvalidQuantity
	}

	foodItem := &entities.FoodItem{
		ID:           uuid.New(),
		UserID:       userUUID,
		Name:         strings.TrimSpace(req.Name),
		Quantity:     req.Quantity,
		Unit:         orDefault(req.Unit, domain.DefaultFoodUnit),
		PurchaseDate: purchaseDate,
		ExpiryDate:   expiryDate,
		Storage:      orDefault(req.Storage, domain.DefaultFoodStorage),
		Category:     orDefault(req.Category, domain.DefaultFoodCategory),
		Calories:     req.Calories,
		Status:       ClassifyExpiry(purchaseDate, expiryDate, s.now()).Status,
		Notes:        strings.TrimSpace(req.Notes),
	}

	if err := s.foodRepository.AddFoodItem(ctx, foodItem); err != nil {
		return domain.FoodItemResponse{}, err
	}

	if err := s.counters.IncrementCounters(ctx, userID, domain.CounterDelta{SavedFoodCount: 1}); err != nil {
		log.Warnf("increment saved food count for %s: %v", userID, err)
	}

	return s.toResponse(foodItem), nil
}

func (s *foodService) UpdateFoodItem(ctx context.Context, id string, req domain.UpdateFoodItemRequest, userID string) (domain.FoodItemResponse, error) {
	foodItem, err := s.ownedItem(ctx, id, userID)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	if req.Name != nil {
		foodItem.Name = strings.TrimSpace(*req.Name)
	}
	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			return domain.FoodItemResponse{}, domain.ErrInvalidQuantity
		}
		foodItem.Quantity = *req.Quantity
	}
	if req.Unit != nil {
		foodItem.Unit = orDefault(*req.Unit, domain.DefaultFoodUnit)
	}
	if req.Storage != nil {
		foodItem.Storage = orDefault(*req.Storage, domain.DefaultFoodStorage)
	}
	if req.Category != nil {
		foodItem.Category = orDefault(*req.Category, domain.DefaultFoodCategory)
	}
	if req.Calories != nil {
		foodItem.Calories = *req.Calories
	}
	if req.Notes != nil {
		foodItem.Notes = strings.TrimSpace(*req.Notes)
	}

	datesChanged := false
	if req.PurchaseDate != nil {
		purchaseDate, err := ParseDate(*req.PurchaseDate)
		if err != nil {
			return domain.FoodItemResponse{}, domain.ErrInvalidPurchaseDate
		}
		datesChanged = datesChanged || !purchaseDate.Equal(foodItem.PurchaseDate)
		foodItem.PurchaseDate = purchaseDate
	}
	if req.ExpiryDate != nil {
		expiryDate, err := ParseDate(*req.ExpiryDate)
		if err != nil {
			return domain.FoodItemResponse{}, domain.ErrInvalidExpiryDate
		}
		datesChanged = datesChanged || !expiryDate.Equal(foodItem.ExpiryDate)
		foodItem.ExpiryDate = expiryDate
	}
	if datesChanged && !foodItem.ExpiryDate.After(foodItem.PurchaseDate) {
		return domain.FoodItemResponse{}, domain.ErrExpiryBeforePurchase
	}

	if req.Status != nil {
		foodItem.Status = *req.Status
	}
	if datesChanged {
		foodItem.Status = RefreshStatus(foodItem.Status, foodItem.PurchaseDate, foodItem.ExpiryDate, s.now())
	}

	if err := s.foodRepository.UpdateFoodItem(ctx, foodItem); err != nil {
		return domain.FoodItemResponse{}, err
	}
	return s.toResponse(foodItem), nil
}

func (s *foodService) DeleteFoodItem(ctx context.Context, id string, userID string) error {
	foodItem, err := s.ownedItem(ctx, id, userID)
	if err != nil {
		return err
	}

	if foodItem.ImageURL != "" {
		if objectKey := s.s3.GetObjectKeyFromLink(foodItem.ImageURL); objectKey != "" {
			if err := s.s3.DeleteFile(objectKey); err != nil {
				log.Warnf("delete image %s: %v", objectKey, err)
			}
		}
	}

	if err := s.foodRepository.DeleteFoodItem(ctx, id); err != nil {
		return err
	}

	if err := s.counters.IncrementCounters(ctx, userID, domain.CounterDelta{SavedFoodCount: -1}); err != nil {
		log.Warnf("decrement saved food count for %s: %v", userID, err)
	}
	return nil
}

func (s *foodService) GetFoodItems(ctx context.Context, userID string, filter domain.FoodItemFilter) (domain.FoodItemListResponse, error) {
	if err := s.RefreshStatuses(ctx, userID); err != nil {
		return domain.FoodItemListResponse{}, err
	}

	foodItems, err := s.foodRepository.GetFoodItems(ctx, userID, filter)
	if err != nil {
		return domain.FoodItemListResponse{}, err
	}

	res := domain.FoodItemListResponse{
		Items: make([]domain.FoodItemResponse, 0, len(foodItems)),
		Grouped: domain.GroupedFoodItems{
			Expired:      []domain.FoodItemResponse{},
			ExpiringSoon: []domain.FoodItemResponse{},
			Fresh:        []domain.FoodItemResponse{},
		},
	}
	for _, item := range foodItems {
		r := s.toResponse(item)
		res.Items = append(res.Items, r)
		switch r.Status {
		case domain.FoodStatusExpired:
			res.Grouped.Expired = append(res.Grouped.Expired, r)
		case domain.FoodStatusExpiringSoon:
			res.Grouped.ExpiringSoon = append(res.Grouped.ExpiringSoon, r)
		case domain.FoodStatusFresh:
			res.Grouped.Fresh = append(res.Grouped.Fresh, r)
		}
	}
	res.Total = len(res.Items)
	return res, nil
}

func (s *foodService) GetFoodItemByID(ctx context.Context, id string, userID string) (domain.FoodItemResponse, error) {
	foodItem, err := s.ownedItem(ctx, id, userID)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	if status := RefreshStatus(foodItem.Status, foodItem.PurchaseDate, foodItem.ExpiryDate, s.now()); status != foodItem.Status {
		if err := s.foodRepository.UpdateStatus(ctx, id, status); err != nil {
			return domain.FoodItemResponse{}, err
		}
		foodItem.Status = status
	}
	return s.toResponse(foodItem), nil
}

func (s *foodService) UploadFoodImage(ctx context.Context, req domain.UploadFoodImageRequest, userID string) (domain.FoodItemResponse, error) {
	foodItem, err := s.ownedItem(ctx, req.FoodItemID, userID)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	fileName := fmt.Sprintf("food-item-%s%s", foodItem.ID.String(), strings.ToLower(filepath.Ext(req.Image.Filename)))
	var objectKey string
	var uploadErr error

	if existingKey := s.s3.GetObjectKeyFromLink(foodItem.ImageURL); foodItem.ImageURL != "" && existingKey != "" {
		objectKey, uploadErr = s.s3.UpdateFile(existingKey, req.Image, storage.AllowImage...)
	} else {
		objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "food-items", storage.AllowImage...)
	}
	if uploadErr != nil {
		return domain.FoodItemResponse{}, uploadErr
	}

	foodItem.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	if err := s.foodRepository.UpdateFoodItem(ctx, foodItem); err != nil {
		return domain.FoodItemResponse{}, err
	}
	return s.toResponse(foodItem), nil
}

func (s *foodService) GetDashboardStats(ctx context.Context, userID string) (domain.DashboardStatsResponse, error) {
	if err := s.RefreshStatuses(ctx, userID); err != nil {
		return domain.DashboardStatsResponse{}, err
	}

	counts, err := s.foodRepository.CountByStatus(ctx, userID)
	if err != nil {
		return domain.DashboardStatsResponse{}, err
	}

	var total int64
	for _, c := range counts {
		total += c
	}
	return domain.DashboardStatsResponse{
		TotalItems:        total,
		FreshItems:        counts[domain.FoodStatusFresh],
		ExpiringSoonItems: counts[domain.FoodStatusExpiringSoon],
		ExpiredItems:      counts[domain.FoodStatusExpired],
		ConsumedItems:     counts[domain.FoodStatusConsumed],
		DonatedItems:      counts[domain.FoodStatusDonated],
		SoldItems:         counts[domain.FoodStatusSold],
	}, nil
}

// RefreshStatuses persists the recomputed status of every open item whose
// stored status has drifted since it was last written.
func (s *foodService) RefreshStatuses(ctx context.Context, userID string) error {
	items, err := s.foodRepository.GetOpenFoodItems(ctx, userID)
	if err != nil {
		return err
	}

	now := s.now()
	for _, item := range items {
		status := RefreshStatus(item.Status, item.PurchaseDate, item.ExpiryDate, now)
		if status == item.Status {
			continue
		}
		if err := s.foodRepository.UpdateStatus(ctx, item.ID.String(), status); err != nil {
			return err
		}
	}
	return nil
}

func (s *foodService) ownedItem(ctx context.Context, id string, userID string) (*entities.FoodItem, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrFoodItemNotFound
	}
	foodItem, err := s.foodRepository.GetFoodItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFoodItemNotFound
		}
		return nil, err
	}
	if foodItem.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedAccess
	}
	return foodItem, nil
}

func (s *foodService) toResponse(item *entities.FoodItem) domain.FoodItemResponse {
	c := ClassifyExpiry(item.PurchaseDate, item.ExpiryDate, s.now())
	return domain.FoodItemResponse{
		ID:              item.ID.String(),
		Name:            item.Name,
		Quantity:        item.Quantity,
		Unit:            item.Unit,
		PurchaseDate:    item.PurchaseDate,
		ExpiryDate:      item.ExpiryDate,
		Storage:         item.Storage,
		Category:        item.Category,
		Calories:        item.Calories,
		Status:          item.Status,
		ImageURL:        item.ImageURL,
		Notes:           item.Notes,
		DaysUntilExpiry: c.DaysUntilExpiry,
		IsExpired:       c.IsExpired,
		IsExpiringSoon:  c.IsExpiringSoon,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}
