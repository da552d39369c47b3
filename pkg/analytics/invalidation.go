package analytics

import (
	"context"
	"sort"

	"github.com/gofiber/fiber/v2/log"

	"worthy-waste/domain"
	"worthy-waste/entities"
	"worthy-waste/internal/cache"
	"worthy-waste/pkg/user"
)

type invalidatingUserRepository struct {
	user.UserRepository
	cache cache.Cache
}

// NewInvalidatingUserRepository wraps repo so that every write which can move
// a leaderboard or the global stats drops those cache entries.
func NewInvalidatingUserRepository(repo user.UserRepository, c cache.Cache) user.UserRepository {
	return &invalidatingUserRepository{UserRepository: repo, cache: c}
}

// StatsCacheKeys lists the global stats key and one leaderboard key per metric.
func StatsCacheKeys() []string {
	metrics := make([]string, 0, len(leaderboardColumns))
	for metric := range leaderboardColumns {
		metrics = append(metrics, metric)
	}
	sort.Strings(metrics)

	keys := []string{cache.KeyGlobalStats}
	for _, metric := range metrics {
		keys = append(keys, cache.LeaderboardKey(metric))
	}
	return keys
}

func (r *invalidatingUserRepository) CreateUser(ctx context.Context, u *entities.User) error {
	if err := r.UserRepository.CreateUser(ctx, u); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *invalidatingUserRepository) UpdateUser(ctx context.Context, u *entities.User) error {
	if err := r.UserRepository.UpdateUser(ctx, u); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *invalidatingUserRepository) IncrementCounters(ctx context.Context, userID string, delta domain.CounterDelta) error {
	if err := r.UserRepository.IncrementCounters(ctx, userID, delta); err != nil {
		return err
	}
	if !delta.IsZero() {
		r.invalidate(ctx)
	}
	return nil
}

// A failed delete only leaves entries to expire on their TTL.
func (r *invalidatingUserRepository) invalidate(ctx context.Context) {
	if err := r.cache.Delete(ctx, StatsCacheKeys()...); err != nil {
		log.Warnf("invalidate analytics cache: %v", err)
	}
}
