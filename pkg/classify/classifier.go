package classify

import (
	"strings"

	"worthy-waste/domain"
)

var (
	CompostableKeywords = []string{
		"fruit", "vegetable", "apple", "banana", "orange", "carrot", "potato",
		"onion", "lettuce", "tomato", "bread", "rice", "pasta", "egg", "shell",
		"coffee", "tea", "leaves", "peel", "core", "organic", "food", "leftovers",
	}
	RecyclableKeywords = []string{
		"bottle", "can", "plastic", "glass", "paper", "cardboard", "metal",
		"aluminum", "steel", "newspaper", "magazine", "box", "container",
		"packaging", "wrapper", "bag", "recyclable",
	}
	NonUsableKeywords = []string{
		"battery", "electronic", "chemical", "paint", "oil", "medicine", "toxic",
		"hazardous", "broken", "damaged", "contaminated", "dirty", "moldy",
		"rotten", "spoiled",
	}

	// organic hints used only when no keyword matched
	fallbackOrganicHints = []string{"food", "kitchen"}
)

const (
	ActionNonUsable           = "Dispose of safely at designated hazardous waste facility. Do not put in regular trash."
	ActionCompostable         = "Add to compost bin or sell to local composting facilities. Great for creating nutrient-rich soil!"
	ActionRecyclable          = "Clean and sort into appropriate recycling bins. Can be sold to recycling centers for extra income."
	ActionFallbackCompostable = "Appears to be organic waste. Add to compost bin or sell to composting facilities."
	ActionFallbackRecyclable  = "Check local recycling guidelines and clean before disposal. Consider selling to recycling centers."
)

// Categories describes the three waste categories for clients.
var Categories = []domain.WasteCategoryInfo{
	{
		Key:         domain.WasteCompostable,
		Name:        "Compostable",
		Description: "Organic waste that can be composted",
		Examples:    []string{"fruit peels", "vegetable scraps", "coffee grounds", "eggshells"},
		Color:       "#4CAF50",
	},
	{
		Key:         domain.WasteRecyclable,
		Name:        "Recyclable",
		Description: "Materials that can be recycled",
		Examples:    []string{"plastic bottles", "glass containers", "paper", "metal cans"},
		Color:       "#2196F3",
	},
	{
		Key:         domain.WasteNonUsable,
		Name:        "Non-usable",
		Description: "Hazardous or non-recyclable waste",
		Examples:    []string{"batteries", "chemicals", "broken electronics", "contaminated items"},
		Color:       "#F44336",
	},
}

// CombineText builds the lowercase text the classifier scores.
func CombineText(filename, note string) string {
	return strings.ToLower(strings.TrimSpace(filename + " " + note))
}

// ClassifyWasteText scores text against the keyword tables. Non-usable
// matches always win; ties between compostable and recyclable go to recyclable.
func ClassifyWasteText(text string) domain.WasteClassification {
	text = strings.ToLower(text)

	nonUsable := score(text, NonUsableKeywords)
	compostable := score(text, CompostableKeywords)
	recyclable := score(text, RecyclableKeywords)

	switch {
	case nonUsable > 0:
		return domain.WasteClassification{Category: domain.WasteNonUsable, Action: ActionNonUsable}
	case compostable > recyclable:
		return domain.WasteClassification{Category: domain.WasteCompostable, Action: ActionCompostable}
	case recyclable > 0:
		return domain.WasteClassification{Category: domain.WasteRecyclable, Action: ActionRecyclable}
	case score(text, fallbackOrganicHints) > 0:
		return domain.WasteClassification{Category: domain.WasteCompostable, Action: ActionFallbackCompostable}
	default:
		return domain.WasteClassification{Category: domain.WasteRecyclable, Action: ActionFallbackRecyclable}
	}
}

// score counts distinct keywords that occur in text.
func score(text string, keywords []string) int {
	n := 0
	for _, k := range keywords {
		if strings.Contains(text, k) {
			n++
		}
	}
	return n
}
