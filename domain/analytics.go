package domain

import (
	"errors"
	"time"
)

const (
	LeaderboardMetricGreenCoins     = "greenCoins"
	LeaderboardMetricTotalKgSold    = "totalKgSold"
	LeaderboardMetricTotalEarned    = "totalEarned"
	LeaderboardMetricSavedFoodCount = "savedFoodCount"

	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 100
)

var (
	MessageSuccessGetSummary     = "analytics summary retrieved successfully"
	MessageSuccessGetImpact      = "environmental impact retrieved successfully"
	MessageSuccessGetLeaderboard = "leaderboard retrieved successfully"
	MessageSuccessGetGlobalStats = "global statistics retrieved successfully"

	MessageFailedGetSummary     = "failed to retrieve analytics summary"
	MessageFailedGetImpact      = "failed to retrieve environmental impact"
	MessageFailedGetLeaderboard = "failed to retrieve leaderboard"
	MessageFailedGetGlobalStats = "failed to retrieve global statistics"

	ErrInvalidLeaderboardMetric = errors.New("invalid metric. Must be one of: greenCoins, totalKgSold, totalEarned, savedFoodCount")
)

type (
	UserCounters struct {
		GreenCoins     int
		TotalKgSold    float64
		TotalEarned    float64
		SavedFoodCount int
	}

	FoodItemCounts struct {
		Total         int
		Expired       int
		ExpiringSoon  int
		RecentlyAdded int
	}

	TransactionRecord struct {
		Type        string
		Status      string
		AmountKg    float64
		TotalAmount float64
		CreatedAt   time.Time
	}

	SummaryInput struct {
		User              UserCounters
		FoodItems         FoodItemCounts
		FoodItemCreatedAt []time.Time
		Transactions      []TransactionRecord
		Now               time.Time
	}

	UserSummary struct {
		SavedFoodCount        int     `json:"saved_food_count"`
		KgSold                float64 `json:"kg_sold"`
		TotalEarned           float64 `json:"total_earned"`
		GreenCoinsEarned      int     `json:"green_coins_earned"`
		CalculatedKgSold      float64 `json:"calculated_kg_sold"`
		CalculatedTotalEarned float64 `json:"calculated_total_earned"`
		TotalCO2Saved         float64 `json:"total_co2_saved"`

		FoodInventory       InventorySummary   `json:"food_inventory"`
		Transactions        TransactionSummary `json:"transactions"`
		EnvironmentalImpact SummaryImpact      `json:"environmental_impact"`

		Achievements   []string          `json:"achievements"`
		Level          int               `json:"level"`
		NextLevelCoins int               `json:"next_level_coins"`
		MonthlyData    []MonthlyActivity `json:"monthly_data"`
		Insights       []string          `json:"insights"`
	}

	InventorySummary struct {
		Total               int     `json:"total"`
		Expired             int     `json:"expired"`
		ExpiringSoon        int     `json:"expiring_soon"`
		Fresh               int     `json:"fresh"`
		RecentlyAdded       int     `json:"recently_added"`
		WastePreventionRate float64 `json:"waste_prevention_rate"`
	}

	TransactionSummary struct {
		Total       int     `json:"total"`
		Completed   int     `json:"completed"`
		Sales       int     `json:"sales"`
		Donations   int     `json:"donations"`
		Recent      int     `json:"recent"`
		SuccessRate float64 `json:"success_rate"`
	}

	SummaryImpact struct {
		CO2Saved        float64 `json:"co2_saved"`
		TreesEquivalent float64 `json:"trees_equivalent"`
		WasteReduced    float64 `json:"waste_reduced"`
		WaterSaved      float64 `json:"water_saved"`
	}

	MonthlyActivity struct {
		Month        string `json:"month"`
		Transactions int    `json:"transactions"`
		FoodItems    int    `json:"food_items"`
	}

	LeaderboardEntry struct {
		Rank           int       `json:"rank"`
		Name           string    `json:"name"`
		Phone          string    `json:"phone"`
		GreenCoins     int       `json:"green_coins"`
		TotalKgSold    float64   `json:"total_kg_sold"`
		TotalEarned    float64   `json:"total_earned"`
		SavedFoodCount int       `json:"saved_food_count"`
		MemberSince    time.Time `json:"member_since"`
	}

	LeaderboardResponse struct {
		Metric      string             `json:"metric"`
		Leaderboard []LeaderboardEntry `json:"leaderboard"`
	}

	GlobalStats struct {
		TotalUsers        int64        `json:"total_users"`
		TotalFoodItems    int64        `json:"total_food_items"`
		TotalTransactions int64        `json:"total_transactions"`
		TotalKgProcessed  float64      `json:"total_kg_processed"`
		TotalEarnings     float64      `json:"total_earnings"`
		TotalCO2Saved     float64      `json:"total_co2_saved"`
		AveragePerUser    UserAverages `json:"average_per_user"`
	}

	UserAverages struct {
		KgProcessed float64 `json:"kg_processed"`
		Earnings    float64 `json:"earnings"`
	}
)
