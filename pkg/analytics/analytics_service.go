package analytics

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"worthy-waste/domain"
	"worthy-waste/entities"
	"worthy-waste/internal/cache"
	"worthy-waste/pkg/impact"
)

const (
	LeaderboardTTL = time.Minute
	GlobalStatsTTL = 5 * time.Minute

	anonymousName = "Anonymous User"
)

var leaderboardColumns = map[string]string{
	domain.LeaderboardMetricGreenCoins:     "green_coins",
	domain.LeaderboardMetricTotalKgSold:    "total_kg_sold",
	domain.LeaderboardMetricTotalEarned:    "total_earned",
	domain.LeaderboardMetricSavedFoodCount: "saved_food_count",
}

type (
	AnalyticsService interface {
		GetUserSummary(ctx context.Context, userID string) (domain.UserSummary, error)
		GetMonthlyImpact(ctx context.Context, userID string) (domain.MonthlyImpactResponse, error)
		GetLeaderboard(ctx context.Context, metric string, limit int) (domain.LeaderboardResponse, error)
		GetGlobalStats(ctx context.Context) (domain.GlobalStats, error)
	}

	UserReader interface {
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
	}

	FoodStats interface {
		CountByStatus(ctx context.Context, userID string) (map[string]int64, error)
		CountCreatedSince(ctx context.Context, userID string, since time.Time) (int64, error)
		GetCreatedDatesSince(ctx context.Context, userID string, since time.Time) ([]time.Time, error)
	}

	StatusRefresher interface {
		RefreshStatuses(ctx context.Context, userID string) error
	}

	TransactionSource interface {
		GetTransactions(ctx context.Context, sellerID string, filter domain.TransactionFilter) ([]*entities.Transaction, error)
		GetTransactionsSince(ctx context.Context, sellerID string, since time.Time) ([]*entities.Transaction, error)
	}

	analyticsService struct {
		analyticsRepository AnalyticsRepository
		users               UserReader
		foodStats           FoodStats
		refresher           StatusRefresher
		transactions        TransactionSource
		cache               cache.Cache
		now                 func() time.Time
	}
)

func NewAnalyticsService(
	analyticsRepository AnalyticsRepository,
	users UserReader,
	foodStats FoodStats,
	refresher StatusRefresher,
	transactions TransactionSource,
	c cache.Cache,
) AnalyticsService {
	return &analyticsService{
		analyticsRepository: analyticsRepository,
		users:               users,
		foodStats:           foodStats,
		refresher:           refresher,
		transactions:        transactions,
		cache:               c,
		now:                 time.Now,
	}
}

func (s *analyticsService) GetUserSummary(ctx context.Context, userID string) (domain.UserSummary, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserSummary{}, domain.ErrUserNotFound
		}
		return domain.UserSummary{}, err
	}

	if err := s.refresher.RefreshStatuses(ctx, userID); err != nil {
		return domain.UserSummary{}, err
	}

	now := s.now()
	counts, err := s.foodStats.CountByStatus(ctx, userID)
	if err != nil {
		return domain.UserSummary{}, err
	}
	recentlyAdded, err := s.foodStats.CountCreatedSince(ctx, userID, now.Add(-RecentItemsWindow))
	if err != nil {
		return domain.UserSummary{}, err
	}
	firstMonth := time.Date(now.Year(), now.Month()-time.Month(TrailingMonths-1), 1, 0, 0, 0, 0, now.Location())
	createdAt, err := s.foodStats.GetCreatedDatesSince(ctx, userID, firstMonth)
	if err != nil {
		return domain.UserSummary{}, err
	}
	transactions, err := s.transactions.GetTransactions(ctx, userID, domain.TransactionFilter{})
	if err != nil {
		return domain.UserSummary{}, err
	}

	var total int64
	for _, c := range counts {
		total += c
	}
	records := make([]domain.TransactionRecord, 0, len(transactions))
	for _, t := range transactions {
		records = append(records, domain.TransactionRecord{
			Type:        t.Type,
			Status:      t.Status,
			AmountKg:    t.AmountKg,
			TotalAmount: t.TotalAmount,
			CreatedAt:   t.CreatedAt,
		})
	}

	return BuildUserSummary(domain.SummaryInput{
		User: domain.UserCounters{
			GreenCoins:     user.GreenCoins,
			TotalKgSold:    user.TotalKgSold,
			TotalEarned:    user.TotalEarned,
			SavedFoodCount: user.SavedFoodCount,
		},
		FoodItems: domain.FoodItemCounts{
			Total:         int(total),
			Expired:       int(counts[domain.FoodStatusExpired]),
			ExpiringSoon:  int(counts[domain.FoodStatusExpiringSoon]),
			RecentlyAdded: int(recentlyAdded),
		},
		FoodItemCreatedAt: createdAt,
		Transactions:      records,
		Now:               now,
	}), nil
}

// GetMonthlyImpact covers the current calendar month. Cancelled
// transactions divert nothing and are left out.
func (s *analyticsService) GetMonthlyImpact(ctx context.Context, userID string) (domain.MonthlyImpactResponse, error) {
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	transactions, err := s.transactions.GetTransactionsSince(ctx, userID, monthStart)
	if err != nil {
		return domain.MonthlyImpactResponse{}, err
	}

	records := make([]domain.ImpactRecord, 0, len(transactions))
	for _, t := range transactions {
		if t.Status == domain.TransactionStatusCancelled {
			continue
		}
		records = append(records, domain.ImpactRecord{AmountKg: t.AmountKg, WasteCategory: t.WasteCategory})
	}

	monthly := impact.ComputeMonthlyImpact(records)
	return domain.MonthlyImpactResponse{
		Month:   monthStart.Format("January 2006"),
		Impact:  monthly,
		Message: impact.MonthlyMessage(monthly),
	}, nil
}

func (s *analyticsService) GetLeaderboard(ctx context.Context, metric string, limit int) (domain.LeaderboardResponse, error) {
	if metric == "" {
		metric = domain.LeaderboardMetricGreenCoins
	}
	column, ok := leaderboardColumns[metric]
	if !ok {
		return domain.LeaderboardResponse{}, domain.ErrInvalidLeaderboardMetric
	}
	if limit <= 0 {
		limit = domain.DefaultLeaderboardLimit
	}
	if limit > domain.MaxLeaderboardLimit {
		limit = domain.MaxLeaderboardLimit
	}

	board, err := s.fullLeaderboard(ctx, metric, column)
	if err != nil {
		return domain.LeaderboardResponse{}, err
	}
	if len(board.Leaderboard) > limit {
		board.Leaderboard = board.Leaderboard[:limit]
	}
	return board, nil
}

// fullLeaderboard loads the top MaxLeaderboardLimit users for a metric. One
// cache entry per metric keeps the key set small enough to invalidate.
func (s *analyticsService) fullLeaderboard(ctx context.Context, metric, column string) (domain.LeaderboardResponse, error) {
	key := cache.LeaderboardKey(metric)
	var cached domain.LeaderboardResponse
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err != nil {
		log.Warnf("read leaderboard cache: %v", err)
	} else if hit {
		return cached, nil
	}

	users, err := s.analyticsRepository.GetLeaderboard(ctx, column, domain.MaxLeaderboardLimit)
	if err != nil {
		return domain.LeaderboardResponse{}, err
	}

	res := domain.LeaderboardResponse{
		Metric:      metric,
		Leaderboard: make([]domain.LeaderboardEntry, 0, len(users)),
	}
	for i, u := range users {
		name := u.Name
		if name == "" {
			name = anonymousName
		}
		res.Leaderboard = append(res.Leaderboard, domain.LeaderboardEntry{
			Rank:           i + 1,
			Name:           name,
			Phone:          MaskPhone(u.Phone),
			GreenCoins:     u.GreenCoins,
			TotalKgSold:    u.TotalKgSold,
			TotalEarned:    u.TotalEarned,
			SavedFoodCount: u.SavedFoodCount,
			MemberSince:    u.CreatedAt,
		})
	}

	if err := s.cache.SetJSON(ctx, key, res, LeaderboardTTL); err != nil {
		log.Warnf("write leaderboard cache: %v", err)
	}
	return res, nil
}

func (s *analyticsService) GetGlobalStats(ctx context.Context) (domain.GlobalStats, error) {
	var cached domain.GlobalStats
	if hit, err := s.cache.GetJSON(ctx, cache.KeyGlobalStats, &cached); err != nil {
		log.Warnf("read global stats cache: %v", err)
	} else if hit {
		return cached, nil
	}

	var stats domain.GlobalStats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalUsers, err = s.analyticsRepository.CountActiveUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalFoodItems, err = s.analyticsRepository.CountFoodItems(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalTransactions, err = s.analyticsRepository.CountTransactions(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalKgProcessed, err = s.analyticsRepository.SumAmountKg(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalEarnings, err = s.analyticsRepository.SumSaleEarnings(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.GlobalStats{}, err
	}

	stats.TotalCO2Saved = impact.Round(stats.TotalKgProcessed*impact.SummaryCO2Factor, 2)
	if stats.TotalUsers > 0 {
		stats.AveragePerUser = domain.UserAverages{
			KgProcessed: impact.Round(stats.TotalKgProcessed/float64(stats.TotalUsers), 2),
			Earnings:    impact.Round(stats.TotalEarnings/float64(stats.TotalUsers), 2),
		}
	}

	if err := s.cache.SetJSON(ctx, cache.KeyGlobalStats, stats, GlobalStatsTTL); err != nil {
		log.Warnf("write global stats cache: %v", err)
	}
	return stats, nil
}

// MaskPhone keeps only the last four digits.
func MaskPhone(phone string) string {
	if phone == "" {
		return "****"
	}
	if len(phone) > 4 {
		phone = phone[len(phone)-4:]
	}
	return "****" + phone
}
