package analytics

import (
	"fmt"
	"math"
	"time"

	"worthy-waste/domain"
	"worthy-waste/pkg/impact"
)

const (
	CoinsPerLevel     = 50
	RecentItemsWindow = 7 * 24 * time.Hour
	RecentTxWindow    = 30 * 24 * time.Hour
	TrailingMonths    = 6
)

type achievementRule struct {
	name    string
	reached func(s *summaryState) bool
}

type summaryState struct {
	greenCoins     int
	kgSold         float64
	donations      int
	preventionRate float64
	co2Saved       float64
}

var achievementRules = []achievementRule{
	{"Green Champion", func(s *summaryState) bool { return s.greenCoins >= 100 }},
	{"Waste Warrior", func(s *summaryState) bool { return s.kgSold >= 50 }},
	{"Community Helper", func(s *summaryState) bool { return s.donations >= 5 }},
	{"Food Saver", func(s *summaryState) bool { return s.preventionRate >= 80 }},
	{"Carbon Reducer", func(s *summaryState) bool { return s.co2Saved >= 100 }},
}

// BuildUserSummary composes the per-user dashboard. Cached user counters and
// totals recomputed from completed sales are reported side by side and may
// disagree.
func BuildUserSummary(in domain.SummaryInput) domain.UserSummary {
	var (
		kgSold, earned                      float64
		completed, sales, donations, recent int
	)
	recentSince := in.Now.Add(-RecentTxWindow)
	for _, t := range in.Transactions {
		if t.Status == domain.TransactionStatusCompleted {
			completed++
			if t.Type == domain.TransactionTypeSale {
				kgSold += t.AmountKg
				earned += t.TotalAmount
			}
		}
		switch t.Type {
		case domain.TransactionTypeSale:
			sales++
		case domain.TransactionTypeDonation:
			donations++
		}
		if !t.CreatedAt.Before(recentSince) {
			recent++
		}
	}

	co2 := kgSold * impact.SummaryCO2Factor
	rate := preventionRate(in.FoodItems)

	state := &summaryState{
		greenCoins:     in.User.GreenCoins,
		kgSold:         kgSold,
		donations:      donations,
		preventionRate: rate,
		co2Saved:       co2,
	}
	achievements := make([]string, 0, len(achievementRules))
	for _, r := range achievementRules {
		if r.reached(state) {
			achievements = append(achievements, r.name)
		}
	}

	level := Level(in.User.GreenCoins)
	txSummary := domain.TransactionSummary{
		Total:     len(in.Transactions),
		Completed: completed,
		Sales:     sales,
		Donations: donations,
		Recent:    recent,
	}
	if txSummary.Total > 0 {
		txSummary.SuccessRate = math.Round(float64(completed) / float64(txSummary.Total) * 100)
	}

	return domain.UserSummary{
		SavedFoodCount:        in.User.SavedFoodCount,
		KgSold:                in.User.TotalKgSold,
		TotalEarned:           in.User.TotalEarned,
		GreenCoinsEarned:      in.User.GreenCoins,
		CalculatedKgSold:      kgSold,
		CalculatedTotalEarned: earned,
		TotalCO2Saved:         impact.Round(co2, 2),
		FoodInventory: domain.InventorySummary{
			Total:               in.FoodItems.Total,
			Expired:             in.FoodItems.Expired,
			ExpiringSoon:        in.FoodItems.ExpiringSoon,
			Fresh:               in.FoodItems.Total - in.FoodItems.Expired - in.FoodItems.ExpiringSoon,
			RecentlyAdded:       in.FoodItems.RecentlyAdded,
			WastePreventionRate: impact.Round(rate, 2),
		},
		Transactions: txSummary,
		EnvironmentalImpact: domain.SummaryImpact{
			CO2Saved:        impact.Round(co2, 2),
			TreesEquivalent: impact.TreesEquivalent(co2),
			WasteReduced:    kgSold,
			WaterSaved:      math.Round(kgSold * impact.SummaryWaterFactor),
		},
		Achievements:   achievements,
		Level:          level,
		NextLevelCoins: level*CoinsPerLevel - in.User.GreenCoins,
		MonthlyData:    monthlyActivity(in),
		Insights:       insights(in.FoodItems, recent, rate),
	}
}

// Level is one plus the number of full CoinsPerLevel blocks earned.
func Level(greenCoins int) int {
	if greenCoins < 0 {
		greenCoins = 0
	}
	return greenCoins/CoinsPerLevel + 1
}

func preventionRate(c domain.FoodItemCounts) float64 {
	if c.Total <= 0 {
		return 0
	}
	return float64(c.Total-c.Expired) / float64(c.Total) * 100
}

// monthlyActivity buckets records into the trailing calendar months, oldest first.
func monthlyActivity(in domain.SummaryInput) []domain.MonthlyActivity {
	out := make([]domain.MonthlyActivity, 0, TrailingMonths)
	for i := TrailingMonths - 1; i >= 0; i-- {
		start := time.Date(in.Now.Year(), in.Now.Month()-time.Month(i), 1, 0, 0, 0, 0, in.Now.Location())
		end := start.AddDate(0, 1, 0)

		m := domain.MonthlyActivity{Month: start.Format("Jan 2006")}
		for _, t := range in.Transactions {
			if inRange(t.CreatedAt, start, end) {
				m.Transactions++
			}
		}
		for _, c := range in.FoodItemCreatedAt {
			if inRange(c, start, end) {
				m.FoodItems++
			}
		}
		out = append(out, m)
	}
	return out
}

func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

func insights(items domain.FoodItemCounts, recent int, rate float64) []string {
	out := []string{}
	if items.Total > 0 && items.Expired == 0 {
		out = append(out, "Great job! No expired food items.")
	}
	if items.ExpiringSoon > 0 {
		out = append(out, fmt.Sprintf("%d items expiring soon - consider selling or donating!", items.ExpiringSoon))
	}
	if recent > 0 {
		out = append(out, fmt.Sprintf("You've been active with %d transactions this month.", recent))
	}
	if rate >= 90 {
		out = append(out, "Excellent waste prevention rate!")
	}
	return out
}
