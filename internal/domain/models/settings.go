package models

// Settings is the singleton configuration row. It is written only by the admin
// surface; this engine treats it as read-only.
type Settings struct {
	ID       string   `json:"id"`
	Currency string   `json:"currency"`
	Tax      TaxRules `json:"tax"`
	// CabPricing is kept alongside the tax rules in the same row, mirroring
	// how the admin surface edits it.
	CabPricing   CabPricing    `json:"cabPricing"`
	PricingTiers []PricingTier `json:"pricingTiers"`
}

// TaxRules holds domain-specific GST rates. Rates are fractions (0.05 = 5%).
type TaxRules struct {
	FoodRate   float64        `json:"foodRate"`
	TourRate   float64        `json:"tourRate"`
	CabRate    float64        `json:"cabRate"`
	HotelSlabs []HotelTaxSlab `json:"hotelSlabs"`
}

// HotelTaxSlab maps a per-night price band to a GST rate. UpTo <= 0 means the
// slab is open-ended.
type HotelTaxSlab struct {
	UpTo float64 `json:"upTo"`
	Rate float64 `json:"rate"`
}

// CabPricing is the fare configuration consumed by the estimator.
type CabPricing struct {
	BaseFare    float64     `json:"baseFare"`
	PerKm       float64     `json:"perKm"`
	PerMin      float64     `json:"perMin"`
	SurgeRules  []SurgeRule `json:"surgeRules"`
	NightCharge NightCharge `json:"nightCharge"`
	Tolls       TollPolicy  `json:"tolls"`
}

// SurgeRule is a wall-clock window with a fare multiplier. From/To are "HH:MM";
// a window may wrap past midnight (From > To).
type SurgeRule struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	Multiplier float64 `json:"multiplier"`
}

// NightCharge mirrors SurgeRule for the night window. Zero value means the
// default 22:00-06:00 window with no extra charge.
type NightCharge struct {
	Start      string  `json:"start"`
	End        string  `json:"end"`
	Multiplier float64 `json:"multiplier"`
}

type TollPolicy struct {
	Enabled    bool    `json:"enabled"`
	DefaultFee float64 `json:"defaultFee"`
}

type PricingTier struct {
	Name       string  `json:"name"`
	Multiplier float64 `json:"multiplier"`
}

// DefaultTaxRules are applied when the settings row omits a rate.
func DefaultTaxRules() TaxRules {
	return TaxRules{
		FoodRate: 0.05,
		TourRate: 0.05,
		CabRate:  0.05,
		HotelSlabs: []HotelTaxSlab{
			{UpTo: 1000, Rate: 0},
			{UpTo: 7500, Rate: 0.12},
			{UpTo: 0, Rate: 0.18},
		},
	}
}
