package entity

// Plan is a subscription tier.
type Plan string

const (
	PlanFree     Plan = "free"
	PlanBasic    Plan = "basic"
	PlanStandard Plan = "standard"
	PlanPremium  Plan = "premium"
)

// DefaultPlan is assigned when signup does not name a tier.
const DefaultPlan = PlanFree

// PlanFeatures is the entitlement bundle of a paid tier.
type PlanFeatures struct {
	MaxDevices   int
	VideoQuality string
	AdFree       bool
	Downloads    bool
}

// PlanOffer is the price (in the smallest display unit) and features of a paid tier.
type PlanOffer struct {
	Price    int
	Features PlanFeatures
}

// PlanCatalog lists every paid tier. The free tier has no offer.
var PlanCatalog = map[Plan]PlanOffer{
	PlanBasic: {
		Price:    199,
		Features: PlanFeatures{MaxDevices: 1, VideoQuality: "HD", AdFree: false, Downloads: false},
	},
	PlanStandard: {
		Price:    499,
		Features: PlanFeatures{MaxDevices: 2, VideoQuality: "Full HD (1080p)", AdFree: true, Downloads: true},
	},
	PlanPremium: {
		Price:    799,
		Features: PlanFeatures{MaxDevices: 4, VideoQuality: "4K Ultra HD + HDR", AdFree: true, Downloads: true},
	},
}

// IsValidPlan reports whether p is a tier an account may hold.
// Signup only accepts an explicit paid tier; free is the implicit default.
func IsValidPlan(p Plan) bool {
	if p == PlanFree {
		return true
	}
	_, ok := PlanCatalog[p]
	return ok
}

// IsPaid reports whether p has an offer in PlanCatalog.
func (p Plan) IsPaid() bool {
	_, ok := PlanCatalog[p]
	return ok
}
