package services

import (
	"context"
	"sort"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/store"
)

// MetaService assembles the one-shot payload the app loads at startup.
type MetaService struct {
	Store    store.Store
	Settings SettingsService
}

type MetaPayload struct {
	Settings      models.Settings      `json:"settings"`
	CabPricing    models.CabPricing    `json:"cabPricing"`
	Providers     []models.CabProvider `json:"providers"`
	ServiceAreas  []models.ServiceArea `json:"serviceAreas"`
	Coupons       []models.Coupon      `json:"coupons"`
	BikeLocations []string             `json:"bikeLocations"`
	BusLocations  []string             `json:"busLocations"`
}

func (s MetaService) Load(ctx context.Context) (MetaPayload, error) {
	settings, err := s.Settings.Load(ctx)
	if err != nil {
		return MetaPayload{}, domain.InternalError{Err: err}
	}
	out := MetaPayload{
		Settings:   settings,
		CabPricing: settings.CabPricing,
	}

	providerRows, err := s.Store.Select(ctx, store.ColCabProviders)
	if err != nil {
		return MetaPayload{}, domain.InternalError{Err: err}
	}
	for _, row := range providerRows {
		var p models.CabProvider
		if store.Decode(row, &p) == nil && models.IsAvailable(p.Available) {
			out.Providers = append(out.Providers, p)
		}
	}

	areaRows, err := s.Store.Select(ctx, store.ColServiceAreas)
	if err != nil {
		return MetaPayload{}, domain.InternalError{Err: err}
	}
	for _, row := range areaRows {
		var a models.ServiceArea
		if store.Decode(row, &a) == nil {
			out.ServiceAreas = append(out.ServiceAreas, a)
		}
	}

	couponRows, err := s.Store.Select(ctx, store.ColCoupons)
	if err != nil {
		return MetaPayload{}, domain.InternalError{Err: err}
	}
	for _, row := range couponRows {
		var c models.Coupon
		if store.Decode(row, &c) == nil && models.IsAvailable(c.Active) {
			out.Coupons = append(out.Coupons, c)
		}
	}

	bikeRows, err := s.Store.Select(ctx, store.ColBikeRentals)
	if err != nil {
		return MetaPayload{}, domain.InternalError{Err: err}
	}
	bikeSet := map[string]bool{}
	for _, row := range bikeRows {
		var b models.BikeRental
		if store.Decode(row, &b) == nil && b.Location != "" {
			bikeSet[b.Location] = true
		}
	}
	out.BikeLocations = sortedKeys(bikeSet)

	routeRows, err := s.Store.Select(ctx, store.ColBusRoutes)
	if err != nil {
		return MetaPayload{}, domain.InternalError{Err: err}
	}
	busSet := map[string]bool{}
	for _, row := range routeRows {
		var r models.BusRoute
		if store.Decode(row, &r) == nil {
			if r.Origin != "" {
				busSet[r.Origin] = true
			}
			if r.Destination != "" {
				busSet[r.Destination] = true
			}
		}
	}
	out.BusLocations = sortedKeys(busSet)

	return out, nil
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
