// Package pricing holds the pure calculators: GST breakup, distance heuristic
// and cab fare estimation. Nothing here touches the store.
package pricing

import (
	"backend/internal/domain/models"
	"backend/internal/utils"
)

// TaxBreakup decomposes a GST charge. CGST+SGST always equals GSTAmount
// exactly, even when the amount is an odd number of paise; IGST stays 0 for
// intra-state billing.
type TaxBreakup struct {
	GSTRate      float64 `json:"gstRate"`
	TaxableValue float64 `json:"taxableValue"`
	GSTAmount    float64 `json:"gstAmount"`
	CGST         float64 `json:"cgst"`
	SGST         float64 `json:"sgst"`
	IGST         float64 `json:"igst"`
}

// CalcGST computes the breakup for a non-negative taxable value and a rate in
// [0,1]. Values are clamped rather than rejected; callers validate upstream.
func CalcGST(taxableValue, rate float64) TaxBreakup {
	if taxableValue < 0 {
		taxableValue = 0
	}
	if rate < 0 {
		rate = 0
	}
	if rate > 1 {
		rate = 1
	}
	taxableValue = utils.Round2(taxableValue)
	gst := utils.Round2(taxableValue * rate)
	cgst, sgst := utils.SplitHalves(gst)
	return TaxBreakup{
		GSTRate:      rate,
		TaxableValue: taxableValue,
		GSTAmount:    gst,
		CGST:         cgst,
		SGST:         sgst,
		IGST:         0,
	}
}

// HotelRate resolves the GST rate for a per-night price from the slab table.
// Slabs are ordered; UpTo <= 0 marks the open-ended top slab.
func HotelRate(slabs []models.HotelTaxSlab, pricePerNight float64) float64 {
	if len(slabs) == 0 {
		slabs = models.DefaultTaxRules().HotelSlabs
	}
	for _, slab := range slabs {
		if slab.UpTo <= 0 || pricePerNight <= slab.UpTo {
			return slab.Rate
		}
	}
	return slabs[len(slabs)-1].Rate
}

// RateOrDefault falls back to 5% when a settings row omits a flat rate.
func RateOrDefault(rate float64) float64 {
	if rate <= 0 {
		return 0.05
	}
	return rate
}
