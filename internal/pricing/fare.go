package pricing

import (
	"math"
	"time"

	"backend/internal/domain/models"
	"backend/internal/utils"
)

// FareInput feeds the estimator. Zero At means "now" — callers needing a
// reproducible quote must pass an explicit time.
type FareInput struct {
	Pickup      string
	Drop        string
	At          time.Time
	DistanceKm  float64 // explicit override; 0 = use heuristic
	DurationMin int     // explicit override; 0 = derive from distance
	Provider    *models.CabProvider
	ExcludeToll bool
	HighDemand  bool
}

// FareQuote exposes every intermediate so callers can both quote and audit.
type FareQuote struct {
	DistanceKm      float64    `json:"distanceKm"`
	DurationMin     int        `json:"durationMin"`
	SurgeMultiplier float64    `json:"surgeMultiplier"`
	NightMultiplier float64    `json:"nightMultiplier"`
	IsNight         bool       `json:"isNight"`
	TollFee         float64    `json:"tollFee"`
	Subtotal        float64    `json:"subtotal"`
	Tax             TaxBreakup `json:"tax"`
	Total           float64    `json:"total"`
}

// Breakdown converts the quote into the persisted fare decomposition.
func (q FareQuote) Breakdown() models.FareBreakdown {
	return models.FareBreakdown{
		DistanceKm:      q.DistanceKm,
		DurationMin:     q.DurationMin,
		SurgeMultiplier: q.SurgeMultiplier,
		NightMultiplier: q.NightMultiplier,
		IsNight:         q.IsNight,
		TollFee:         q.TollFee,
		Subtotal:        q.Subtotal,
	}
}

// EstimateFare computes a cab fare from the pricing config. gstRate is the
// cab GST rate already resolved from settings.
func EstimateFare(cfg models.CabPricing, gstRate float64, in FareInput) FareQuote {
	at := in.At
	if at.IsZero() {
		at = time.Now()
	}

	distanceKm := in.DistanceKm
	if distanceKm <= 0 {
		distanceKm = float64(EstimateDistanceKm(in.Pickup, in.Drop))
	}
	durationMin := in.DurationMin
	if durationMin <= 0 {
		durationMin = int(math.Floor(distanceKm*2 + 0.5))
		if durationMin < 10 {
			durationMin = 10
		}
	}

	surge := surgeMultiplier(cfg.SurgeRules, at, in.HighDemand)
	night, isNight := nightMultiplier(cfg.NightCharge, at)

	tollFee := 0.0
	if cfg.Tolls.Enabled && !in.ExcludeToll {
		tollFee = cfg.Tolls.DefaultFee
	}

	rawBase := (cfg.BaseFare+distanceKm*cfg.PerKm+float64(durationMin)*cfg.PerMin)*surge*night + tollFee

	if in.Provider != nil && in.Provider.PriceDropped {
		pct := in.Provider.PriceDropPercent
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		rawBase -= rawBase * pct / 100
	}

	subtotal := utils.Round2(rawBase)
	tax := CalcGST(subtotal, RateOrDefault(gstRate))

	return FareQuote{
		DistanceKm:      distanceKm,
		DurationMin:     durationMin,
		SurgeMultiplier: surge,
		NightMultiplier: night,
		IsNight:         isNight,
		TollFee:         tollFee,
		Subtotal:        subtotal,
		Tax:             tax,
		Total:           utils.Round2(subtotal + tax.GSTAmount),
	}
}

// surgeMultiplier: high demand wins outright, else the first matching rule by
// wall-clock time, else 1.
func surgeMultiplier(rules []models.SurgeRule, at time.Time, highDemand bool) float64 {
	if highDemand {
		return 1.5
	}
	m := utils.MinutesOfDay(at)
	for _, r := range rules {
		from, okF := utils.ParseClock(r.From)
		to, okT := utils.ParseClock(r.To)
		if !okF || !okT || r.Multiplier <= 0 {
			continue
		}
		if utils.InClockWindow(m, from, to) {
			return r.Multiplier
		}
	}
	return 1
}

func nightMultiplier(cfg models.NightCharge, at time.Time) (float64, bool) {
	start, okS := utils.ParseClock(cfg.Start)
	end, okE := utils.ParseClock(cfg.End)
	if !okS || !okE {
		start, _ = utils.ParseClock("22:00")
		end, _ = utils.ParseClock("06:00")
	}
	if !utils.InClockWindow(utils.MinutesOfDay(at), start, end) {
		return 1, false
	}
	if cfg.Multiplier <= 0 {
		return 1, true
	}
	return cfg.Multiplier, true
}
