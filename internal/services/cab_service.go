package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/pricing"
	"backend/internal/store"
	"backend/internal/utils"
)

// CabService quotes and books cab rides.
type CabService struct {
	Store    store.Store
	Settings SettingsService
}

type CabBookingInput struct {
	ProviderID     string `json:"providerId"`
	UserName       string `json:"userName"`
	Phone          string `json:"phone"`
	PickupLocation string `json:"pickupLocation"`
	DropLocation   string `json:"dropLocation"`
	Datetime       string `json:"datetime"`
	Passengers     int    `json:"passengers"`
	IncludeToll    *bool  `json:"includeToll"`
	HighDemand     bool   `json:"highDemand"`
}

type ProviderQuote struct {
	Provider models.CabProvider `json:"provider"`
	Quote    pricing.FareQuote  `json:"quote"`
}

func (s CabService) Book(ctx context.Context, in CabBookingInput) (BookingResult, error) {
	if strings.TrimSpace(in.UserName) == "" {
		return BookingResult{}, domain.Coded(domain.CodeInvalidInput)
	}
	if strings.TrimSpace(in.Phone) == "" {
		return BookingResult{}, domain.Coded(domain.CodePhoneRequired)
	}
	if strings.TrimSpace(in.PickupLocation) == "" || strings.TrimSpace(in.DropLocation) == "" {
		return BookingResult{}, domain.Coded(domain.CodePickupDropRequired)
	}
	if strings.TrimSpace(in.Datetime) == "" {
		return BookingResult{}, domain.Coded(domain.CodeInvalidTrip)
	}
	at, err := utils.ParseDateTime(in.Datetime)
	if err != nil {
		return BookingResult{}, domain.CodedErr(domain.CodeInvalidTrip, err)
	}

	var provider *models.CabProvider
	if strings.TrimSpace(in.ProviderID) != "" {
		row, err := s.Store.Get(ctx, store.ColCabProviders, in.ProviderID)
		if err == store.ErrNotFound {
			return BookingResult{}, domain.Coded(domain.CodeInvalidTrip)
		}
		if err != nil {
			return BookingResult{}, domain.InternalError{Err: err}
		}
		var p models.CabProvider
		if err := store.Decode(row, &p); err != nil {
			return BookingResult{}, domain.InternalError{Err: err}
		}
		provider = &p
	}

	settings, err := s.Settings.Load(ctx)
	if err != nil {
		return BookingResult{}, domain.InternalError{Err: err}
	}
	quote := pricing.EstimateFare(settings.CabPricing, settings.Tax.CabRate, pricing.FareInput{
		Pickup:      in.PickupLocation,
		Drop:        in.DropLocation,
		At:          at,
		Provider:    provider,
		ExcludeToll: in.IncludeToll != nil && !*in.IncludeToll,
		HighDemand:  in.HighDemand,
	})

	passengers := in.Passengers
	if passengers < 1 {
		passengers = 1
	}
	booking := models.CabBooking{
		ProviderID:     strings.TrimSpace(in.ProviderID),
		UserName:       strings.TrimSpace(in.UserName),
		Phone:          strings.TrimSpace(in.Phone),
		PickupLocation: utils.NormalizeSpace(in.PickupLocation),
		DropLocation:   utils.NormalizeSpace(in.DropLocation),
		Datetime:       utils.FormatDateTime(at),
		Passengers:     passengers,
		EstimatedFare:  quote.Total,
		Fare:           quote.Breakdown(),
		Pricing:        snapshot(quote.Subtotal, quote.Tax),
		Status:         models.StatusConfirmed,
		CreatedAt:      utils.FormatDateTime(utils.NowUTC()),
	}
	row, err := store.Encode(booking)
	if err != nil {
		return BookingResult{}, domain.InternalError{Err: err}
	}
	id, err := s.Store.Insert(ctx, store.ColCabBookings, row)
	if err != nil {
		return BookingResult{}, domain.InternalError{Err: err}
	}
	return BookingResult{Success: true, ID: id}, nil
}

// Search quotes every provider that can seat the party, cheapest first.
// Quotes share one timestamp so the ranking is internally consistent.
func (s CabService) Search(ctx context.Context, pickup, drop string, passengers int) ([]ProviderQuote, error) {
	if strings.TrimSpace(pickup) == "" || strings.TrimSpace(drop) == "" {
		return nil, domain.Coded(domain.CodePickupDropRequired)
	}
	if passengers < 1 {
		passengers = 1
	}

	rows, err := s.Store.Select(ctx, store.ColCabProviders)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	settings, err := s.Settings.Load(ctx)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}

	at := time.Now()
	out := []ProviderQuote{}
	for _, row := range rows {
		var p models.CabProvider
		if err := store.Decode(row, &p); err != nil {
			continue
		}
		if !models.IsAvailable(p.Available) {
			continue
		}
		if p.Seats > 0 && p.Seats < passengers {
			continue
		}
		provider := p
		quote := pricing.EstimateFare(settings.CabPricing, settings.Tax.CabRate, pricing.FareInput{
			Pickup:   pickup,
			Drop:     drop,
			At:       at,
			Provider: &provider,
		})
		out = append(out, ProviderQuote{Provider: p, Quote: quote})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Quote.Total < out[j].Quote.Total })
	return out, nil
}
