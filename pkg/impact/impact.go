// Package impact converts diverted waste weight into illustrative
// environmental figures. The factors are fixed demo values, not measured data.
package impact

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"worthy-waste/domain"
)

var (
	// EmissionFactors is kg of CO2 avoided per kg of waste.
	EmissionFactors = map[string]float64{
		domain.WasteCompostable: 2.5,
		domain.WasteRecyclable:  1.8,
		domain.WasteNonUsable:   0.5,
	}

	// WaterFactors is litres of water saved per kg of waste.
	WaterFactors = map[string]float64{
		domain.WasteCompostable: 1000,
		domain.WasteRecyclable:  800,
		domain.WasteNonUsable:   200,
	}
)

const (
	EnergyFactorKwh        = 3.5
	CO2PerTreeKg           = 22.0
	LandfillDensityKgPerM3 = 500.0

	// SummaryCO2Factor is the single factor used by summaries and listings.
	SummaryCO2Factor = 2.5
	// SummaryWaterFactor is litres per kg used by summaries.
	SummaryWaterFactor = 1000.0
)

// NormalizeCategory maps unknown categories to compostable.
func NormalizeCategory(category string) string {
	if _, ok := EmissionFactors[category]; ok {
		return category
	}
	return domain.WasteCompostable
}

// ComputeImpact returns the impact of diverting weightKg of waste.
// Non-positive weights yield a zero impact.
func ComputeImpact(weightKg float64, category string) domain.EnvironmentalImpact {
	if weightKg <= 0 {
		return domain.EnvironmentalImpact{}
	}
	category = NormalizeCategory(category)

	co2 := Round(weightKg*EmissionFactors[category], 2)
	res := domain.EnvironmentalImpact{
		CO2SavedKg:           co2,
		TreesEquivalent:      TreesEquivalent(co2),
		WaterSavedLiters:     math.Round(weightKg * WaterFactors[category]),
		LandfillSpaceSavedM3: Round(weightKg/LandfillDensityKgPerM3, 3),
	}
	if category == domain.WasteRecyclable {
		res.EnergySavedKwh = Round(weightKg*EnergyFactorKwh, 2)
	}
	return res
}

// ComputeMonthlyImpact sums per-record impacts. Trees are derived once from
// the summed CO2 after aggregation, never summed per record.
func ComputeMonthlyImpact(records []domain.ImpactRecord) domain.MonthlyImpact {
	var co2, water, energy, landfill float64
	for _, r := range records {
		i := ComputeImpact(r.AmountKg, r.WasteCategory)
		co2 += i.CO2SavedKg
		water += i.WaterSavedLiters
		energy += i.EnergySavedKwh
		landfill += i.LandfillSpaceSavedM3
	}

	res := domain.MonthlyImpact{
		TotalCO2Saved:           Round(co2, 2),
		TotalWaterSaved:         math.Round(water),
		TotalEnergySaved:        Round(energy, 2),
		TotalLandfillSpaceSaved: Round(landfill, 3),
		TransactionCount:        len(records),
	}
	return deriveTotals(res)
}

func deriveTotals(m domain.MonthlyImpact) domain.MonthlyImpact {
	m.TotalTreesEquivalent = TreesEquivalent(m.TotalCO2Saved)
	return m
}

func TreesEquivalent(co2Kg float64) float64 {
	if co2Kg <= 0 {
		return 0
	}
	return Round(co2Kg/CO2PerTreeKg, 2)
}

// Round rounds v half away from zero to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Message renders a short feedback sentence for an impact.
func Message(i domain.EnvironmentalImpact) string {
	if i.CO2SavedKg <= 0 {
		return "Start selling or donating waste to see your environmental impact!"
	}

	var parts []string
	if i.CO2SavedKg >= 1 {
		parts = append(parts, fmt.Sprintf("You've saved %skg of CO2 emissions", formatNumber(i.CO2SavedKg)))
	}
	if i.TreesEquivalent >= 0.1 {
		parts = append(parts, fmt.Sprintf("equivalent to planting %s trees", formatNumber(i.TreesEquivalent)))
	}
	if i.WaterSavedLiters >= 1000 {
		parts = append(parts, fmt.Sprintf("and saved %dk liters of water", int(math.Round(i.WaterSavedLiters/1000))))
	}
	if len(parts) == 0 {
		return "Great start on your environmental journey!"
	}
	return strings.Join(parts, ", ") + "!"
}

// MonthlyMessage renders the feedback sentence for an aggregated month.
func MonthlyMessage(m domain.MonthlyImpact) string {
	return Message(domain.EnvironmentalImpact{
		CO2SavedKg:       m.TotalCO2Saved,
		TreesEquivalent:  m.TotalTreesEquivalent,
		WaterSavedLiters: m.TotalWaterSaved,
	})
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
