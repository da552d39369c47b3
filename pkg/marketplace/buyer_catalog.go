package marketplace

import (
	"slices"
	"sort"
	"strings"

	"worthy-waste/domain"
)

// BuyerCatalog is the read-only list of buyers offered to sellers. It is
// built once at start-up and shared between requests.
type BuyerCatalog struct {
	buyers []domain.Buyer
}

// NewBuyerCatalog copies buyers into a catalogue. An empty list falls back
// to DefaultBuyers.
func NewBuyerCatalog(buyers []domain.Buyer) *BuyerCatalog {
	if len(buyers) == 0 {
		buyers = DefaultBuyers()
	}
	c := &BuyerCatalog{buyers: make([]domain.Buyer, len(buyers))}
	for i, b := range buyers {
		b.WasteTypes = slices.Clone(b.WasteTypes)
		c.buyers[i] = b
	}
	return c
}

func DefaultBuyers() []domain.Buyer {
	return []domain.Buyer{
		{
			ID: "buyer_001", Name: "GreenEarth Composting Co.", Type: "composter",
			Contact: "+91-9876543210", Email: "contact@greenearth.com", RatePerKg: 15,
			WasteTypes: []string{domain.WasteCompostable}, Location: "Mumbai, Maharashtra",
			Rating: 4.8, Verified: true,
		},
		{
			ID: "buyer_002", Name: "RecyclePro Industries", Type: "recycler",
			Contact: "+91-9876543211", Email: "sales@recyclepro.com", RatePerKg: 25,
			WasteTypes: []string{domain.WasteRecyclable}, Location: "Delhi, NCR",
			Rating: 4.6, Verified: true,
		},
		{
			ID: "buyer_003", Name: "EcoWaste Solutions", Type: "waste_management",
			Contact: "+91-9876543212", Email: "info@ecowaste.com", RatePerKg: 12,
			WasteTypes: []string{domain.WasteCompostable, domain.WasteRecyclable}, Location: "Bangalore, Karnataka",
			Rating: 4.5, Verified: true,
		},
		{
			ID: "buyer_004", Name: "Urban Compost Hub", Type: "composter",
			Contact: "+91-9876543213", Email: "hello@urbancompost.com", RatePerKg: 18,
			WasteTypes: []string{domain.WasteCompostable}, Location: "Pune, Maharashtra",
			Rating: 4.7, Verified: true,
		},
		{
			ID: "buyer_005", Name: "MetalRecycle Corp", Type: "recycler",
			Contact: "+91-9876543214", Email: "purchase@metalrecycle.com", RatePerKg: 35,
			WasteTypes: []string{domain.WasteRecyclable}, Location: "Chennai, Tamil Nadu",
			Rating: 4.4, Verified: true,
		},
		{
			ID: "buyer_006", Name: "Community Green Initiative", Type: "community",
			Contact: "+91-9876543215", Email: "donate@communitygreen.org", RatePerKg: 8,
			WasteTypes: []string{domain.WasteCompostable, domain.WasteRecyclable}, Location: "Hyderabad, Telangana",
			Rating: 4.9, Verified: true,
		},
	}
}

// Find returns the buyer whose name matches exactly.
func (c *BuyerCatalog) Find(name string) (domain.Buyer, bool) {
	for _, b := range c.buyers {
		if b.Name == name {
			return b, true
		}
	}
	return domain.Buyer{}, false
}

// Filter returns matching buyers ordered by rating, then rate, both descending.
func (c *BuyerCatalog) Filter(f domain.BuyerFilter) []domain.Buyer {
	location := strings.ToLower(strings.TrimSpace(f.Location))

	out := make([]domain.Buyer, 0, len(c.buyers))
	for _, b := range c.buyers {
		if f.WasteType != "" && !slices.Contains(b.WasteTypes, f.WasteType) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(b.Location), location) {
			continue
		}
		if f.MinRate != nil && b.RatePerKg < *f.MinRate {
			continue
		}
		if f.MaxRate != nil && b.RatePerKg > *f.MaxRate {
			continue
		}
		out = append(out, b)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].RatePerKg > out[j].RatePerKg
	})
	return out
}
