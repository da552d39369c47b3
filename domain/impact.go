package domain

type (
	EnvironmentalImpact struct {
		CO2SavedKg           float64 `json:"co2_saved_kg"`
		TreesEquivalent      float64 `json:"trees_equivalent"`
		WaterSavedLiters     float64 `json:"water_saved_liters"`
		EnergySavedKwh       float64 `json:"energy_saved_kwh"`
		LandfillSpaceSavedM3 float64 `json:"landfill_space_saved_m3"`
	}

	MonthlyImpact struct {
		TotalCO2Saved           float64 `json:"total_co2_saved"`
		TotalTreesEquivalent    float64 `json:"total_trees_equivalent"`
		TotalWaterSaved         float64 `json:"total_water_saved"`
		TotalEnergySaved        float64 `json:"total_energy_saved"`
		TotalLandfillSpaceSaved float64 `json:"total_landfill_space_saved"`
		TransactionCount        int     `json:"transaction_count"`
	}

	ImpactRecord struct {
		AmountKg      float64
		WasteCategory string
	}

	TransactionImpactResponse struct {
		TransactionID string              `json:"transaction_id"`
		WasteCategory string              `json:"waste_category"`
		WeightKg      float64             `json:"weight_kg"`
		Impact        EnvironmentalImpact `json:"impact"`
		Message       string              `json:"message"`
	}

	MonthlyImpactResponse struct {
		Month   string        `json:"month"`
		Impact  MonthlyImpact `json:"impact"`
		Message string        `json:"message"`
	}
)
