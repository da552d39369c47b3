package food

import (
	"math"
	"time"

	"worthy-waste/domain"
)

const day = 24 * time.Hour

// ClassifyExpiry derives the open lifecycle status of an item at now.
// The caller guarantees expiry is after purchase.
func ClassifyExpiry(purchase, expiry, now time.Time) domain.ExpiryClassification {
	res := domain.ExpiryClassification{
		DaysUntilExpiry: daysUntil(expiry, now),
	}

	switch {
	case expiry.Before(now):
		res.Status = domain.FoodStatusExpired
		res.IsExpired = true
	case !expiry.After(now.Add(domain.ExpiringSoonWindow)):
		res.Status = domain.FoodStatusExpiringSoon
		res.IsExpiringSoon = true
	default:
		res.Status = domain.FoodStatusFresh
	}
	return res
}

// RefreshStatus returns the status an item should carry at now. Terminal
// statuses are returned unchanged.
func RefreshStatus(current string, purchase, expiry, now time.Time) string {
	if domain.IsTerminalFoodStatus(current) {
		return current
	}
	return ClassifyExpiry(purchase, expiry, now).Status
}

func daysUntil(expiry, now time.Time) int {
	return int(math.Ceil(float64(expiry.Sub(now)) / float64(day)))
}

// ParseDate accepts a calendar date or an RFC3339 timestamp.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
