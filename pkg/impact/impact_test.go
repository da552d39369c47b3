package impact

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"worthy-waste/domain"
)

func TestComputeImpact_NonPositiveWeight(t *testing.T) {
	for _, w := range []float64{0, -1, -0.5} {
		assert.Equal(t, domain.EnvironmentalImpact{}, ComputeImpact(w, domain.WasteRecyclable))
	}
}

func TestComputeImpact_Recyclable(t *testing.T) {
	got := ComputeImpact(10, domain.WasteRecyclable)

	assert.Equal(t, 18.0, got.CO2SavedKg)
	assert.Equal(t, 8000.0, got.WaterSavedLiters)
	assert.Equal(t, 35.0, got.EnergySavedKwh)
	assert.Equal(t, 0.82, got.TreesEquivalent)
	assert.Equal(t, 0.02, got.LandfillSpaceSavedM3)
}

func TestComputeImpact_Categories(t *testing.T) {
	compost := ComputeImpact(4, domain.WasteCompostable)
	assert.Equal(t, 10.0, compost.CO2SavedKg)
	assert.Equal(t, 4000.0, compost.WaterSavedLiters)
	assert.Zero(t, compost.EnergySavedKwh)
	assert.Equal(t, 0.45, compost.TreesEquivalent)
	assert.Equal(t, 0.008, compost.LandfillSpaceSavedM3)

	nonUsable := ComputeImpact(3, domain.WasteNonUsable)
	assert.Equal(t, 1.5, nonUsable.CO2SavedKg)
	assert.Equal(t, 600.0, nonUsable.WaterSavedLiters)
	assert.Zero(t, nonUsable.EnergySavedKwh)
}

func TestComputeImpact_UnknownCategoryFallsBackToCompostable(t *testing.T) {
	assert.Equal(t, ComputeImpact(2, domain.WasteCompostable), ComputeImpact(2, "glass-ish"))
	assert.Equal(t, ComputeImpact(2, domain.WasteCompostable), ComputeImpact(2, ""))
}

func TestComputeMonthlyImpact(t *testing.T) {
	got := ComputeMonthlyImpact([]domain.ImpactRecord{
		{AmountKg: 10, WasteCategory: domain.WasteCompostable},
		{AmountKg: 20, WasteCategory: domain.WasteCompostable},
	})

	assert.Equal(t, 75.0, got.TotalCO2Saved)
	assert.Equal(t, Round(75.0/22, 2), got.TotalTreesEquivalent)
	assert.Equal(t, 30000.0, got.TotalWaterSaved)
	assert.Zero(t, got.TotalEnergySaved)
	assert.Equal(t, 0.06, got.TotalLandfillSpaceSaved)
	assert.Equal(t, 2, got.TransactionCount)
}

func TestComputeMonthlyImpact_TreesDerivedFromTotal(t *testing.T) {
	records := []domain.ImpactRecord{
		{AmountKg: 1, WasteCategory: domain.WasteCompostable},
		{AmountKg: 1, WasteCategory: domain.WasteCompostable},
		{AmountKg: 1, WasteCategory: domain.WasteCompostable},
	}
	got := ComputeMonthlyImpact(records)

	var summed float64
	for _, r := range records {
		summed += ComputeImpact(r.AmountKg, r.WasteCategory).TreesEquivalent
	}

	assert.Equal(t, 7.5, got.TotalCO2Saved)
	assert.Equal(t, 0.34, got.TotalTreesEquivalent)
	assert.InDelta(t, 0.33, summed, 1e-9)
	assert.NotEqual(t, Round(summed, 2), got.TotalTreesEquivalent)
}

func TestComputeMonthlyImpact_Empty(t *testing.T) {
	assert.Equal(t, domain.MonthlyImpact{}, ComputeMonthlyImpact(nil))
}

func TestComputeMonthlyImpact_MixedCategories(t *testing.T) {
	got := ComputeMonthlyImpact([]domain.ImpactRecord{
		{AmountKg: 10, WasteCategory: domain.WasteRecyclable},
		{AmountKg: 2, WasteCategory: domain.WasteNonUsable},
		{AmountKg: 0, WasteCategory: domain.WasteCompostable},
	})

	assert.Equal(t, 19.0, got.TotalCO2Saved)
	assert.Equal(t, 8400.0, got.TotalWaterSaved)
	assert.Equal(t, 35.0, got.TotalEnergySaved)
	assert.Equal(t, 0.86, got.TotalTreesEquivalent)
	assert.Equal(t, 3, got.TransactionCount)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Start selling or donating waste to see your environmental impact!", Message(domain.EnvironmentalImpact{}))
	assert.Equal(t,
		"You've saved 25kg of CO2 emissions, equivalent to planting 1.14 trees, and saved 10k liters of water!",
		Message(ComputeImpact(10, domain.WasteCompostable)))
	assert.Equal(t, "Great start on your environmental journey!", Message(domain.EnvironmentalImpact{CO2SavedKg: 0.5}))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 0.82, Round(18.0/22, 2))
	assert.Equal(t, 0.002, Round(1.0/500, 3))
	assert.Equal(t, 3.0, Round(2.999, 2))
}
