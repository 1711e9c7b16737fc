package store

import (
	"context"

	"backend/internal/domain/models"
)

// Seed loads the demo catalog into a backend. The local fallback router runs
// against this data when no real backend is reachable, so it mirrors the
// shapes the admin surface writes.
func Seed(ctx context.Context, s Store) error {
	boolPtr := func(b bool) *bool { return &b }
	intPtr := func(n int) *int { return &n }

	settings := models.Settings{
		ID:       "default",
		Currency: "INR",
		Tax:      models.DefaultTaxRules(),
		CabPricing: models.CabPricing{
			BaseFare: 60,
			PerKm:    14,
			PerMin:   2,
			SurgeRules: []models.SurgeRule{
				{From: "08:00", To: "10:00", Multiplier: 1.2},
				{From: "17:30", To: "20:00", Multiplier: 1.25},
			},
			NightCharge: models.NightCharge{Start: "22:00", End: "06:00", Multiplier: 1.1},
			Tolls:       models.TollPolicy{Enabled: true, DefaultFee: 50},
		},
		PricingTiers: []models.PricingTier{
			{Name: "standard", Multiplier: 1},
			{Name: "peak-season", Multiplier: 1.15},
		},
	}

	tours := []models.Tour{
		{ID: "tour-solang", Name: "Solang Valley Day Trip", Location: "Manali", Price: 1800, Available: boolPtr(true)},
		{ID: "tour-rohtang", Name: "Rohtang Pass Excursion", Location: "Manali", Price: 3200, Available: boolPtr(true), PriceDropped: true, PriceDropPercent: 10},
		{ID: "tour-kasol", Name: "Kasol & Manikaran", Location: "Kullu", Price: 2400},
	}

	hotels := []models.Hotel{
		{
			ID: "hotel-pinewood", Name: "Pinewood Residency", Location: "Manali",
			PricePerNight: 2500, MinNights: 1, MaxNights: 14,
			RoomTypes: []models.RoomType{
				{Name: "standard", PricePerNight: 2500},
				{Name: "deluxe", PricePerNight: 4200},
			},
			RoomsByType: map[string]int{"standard": 12, "deluxe": 6},
			Available:   boolPtr(true),
		},
		{
			ID: "hotel-riverview", Name: "River View Inn", Location: "Kullu",
			PricePerNight: 1600, MinNights: 1, MaxNights: 30,
			RoomTypes: []models.RoomType{{Name: "standard", PricePerNight: 1600}},
			RoomsByType: map[string]int{"standard": 8},
		},
	}

	restaurants := []models.Restaurant{
		{
			ID: "resto-himalayan", Name: "Himalayan Kitchen", Location: "Manali",
			Available: boolPtr(true),
			Menu: []models.MenuItem{
				{ID: "item-thali", Name: "Veg Thali", Price: 120, Available: boolPtr(true), MaxPerOrder: 5},
				{ID: "item-momos", Name: "Steamed Momos", Price: 80, Available: boolPtr(true), MaxPerOrder: 10},
				{ID: "item-trout", Name: "Grilled Trout", Price: 350, MaxPerOrder: 3},
			},
		},
	}

	providers := []models.CabProvider{
		{ID: "cab-swift", Name: "Hill Cabs Swift", VehicleType: "hatchback", Seats: 4, Available: boolPtr(true)},
		{ID: "cab-innova", Name: "Valley Rides Innova", VehicleType: "suv", Seats: 6, Available: boolPtr(true), PriceDropped: true, PriceDropPercent: 5},
		{ID: "cab-sedan", Name: "Mountain Go Sedan", VehicleType: "sedan", Seats: 4},
	}

	routes := []models.BusRoute{
		{
			ID: "bus-mnl-del", Origin: "Manali", Destination: "Delhi",
			DepartureTime: "17:30", FarePerSeat: 1150, TotalSeats: 36,
			Available:         boolPtr(true),
			SeatsBookedByDate: map[string][]string{},
		},
		{
			ID: "bus-mnl-kul", Origin: "Manali", Destination: "Kullu",
			DepartureTime: "09:00", FarePerSeat: 150, TotalSeats: 28,
			SeatsBookedByDate: map[string][]string{},
		},
	}

	bikes := []models.BikeRental{
		{
			ID: "bike-re350", Name: "Royal Enfield Classic 350", Location: "Manali",
			PricePerDay: 900, MaxDays: 10, Available: boolPtr(true),
			AvailableQty: intPtr(4),
		},
		{
			ID: "bike-activa", Name: "Honda Activa", Location: "Kullu",
			MaxDays: 15,
			AvailabilityRates: &models.AvailabilityRates{AvailableQty: 7, PricePerDay: 400},
		},
	}

	areas := []models.ServiceArea{
		{ID: "area-manali", Name: "Manali"},
		{ID: "area-kullu", Name: "Kullu"},
		{ID: "area-shimla", Name: "Shimla"},
	}

	coupons := []models.Coupon{
		{ID: "coupon-first", Code: "FIRSTTRIP", Percent: 10, Active: boolPtr(true)},
		{ID: "coupon-monsoon", Code: "MONSOON5", Percent: 5, Active: boolPtr(false)},
	}

	// Demo login: demo@travel.app / "password".
	users := []Row{{
		"id":            "user-demo",
		"name":          "Demo Traveller",
		"email":         "demo@travel.app",
		"phone":         "9876500000",
		"password_hash": "$2a$10$wffTm5VinhV27Mwd35FgyO/Kwxrl4gXcSS60eCT6ceIPxkydpFTXS",
	}}

	insert := func(collection string, src any) error {
		row, err := Encode(src)
		if err != nil {
			return err
		}
		_, err = s.Insert(ctx, collection, row)
		return err
	}

	if err := insert(ColSettings, settings); err != nil {
		return err
	}
	for _, t := range tours {
		if err := insert(ColTours, t); err != nil {
			return err
		}
	}
	for _, h := range hotels {
		if err := insert(ColHotels, h); err != nil {
			return err
		}
	}
	for _, r := range restaurants {
		if err := insert(ColRestaurants, r); err != nil {
			return err
		}
	}
	for _, p := range providers {
		if err := insert(ColCabProviders, p); err != nil {
			return err
		}
	}
	for _, r := range routes {
		if err := insert(ColBusRoutes, r); err != nil {
			return err
		}
	}
	for _, b := range bikes {
		if err := insert(ColBikeRentals, b); err != nil {
			return err
		}
	}
	for _, a := range areas {
		if err := insert(ColServiceAreas, a); err != nil {
			return err
		}
	}
	for _, c := range coupons {
		if err := insert(ColCoupons, c); err != nil {
			return err
		}
	}
	for _, u := range users {
		if _, err := s.Insert(ctx, ColUsers, u); err != nil {
			return err
		}
	}
	return nil
}
