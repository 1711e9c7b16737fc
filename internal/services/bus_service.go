package services

import (
	"context"
	"fmt"
	"strings"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/store"
	"backend/internal/utils"
)

// BusService books seats on bus routes. The seat map is the most
// contention-sensitive record in the system: every booking appends to
// seatsBookedByDate for one date, so the write goes through a conditional
// update and re-validates on every retry.
type BusService struct {
	Store store.Store
}

type BusBookingInput struct {
	RouteID     string   `json:"routeId"`
	JourneyDate string   `json:"journeyDate"`
	UserName    string   `json:"userName"`
	Phone       string   `json:"phone"`
	Seats       []string `json:"seats"`
}

type SeatAvailability struct {
	RouteID     string   `json:"routeId"`
	JourneyDate string   `json:"journeyDate"`
	Layout      []string `json:"layout"`
	Booked      []string `json:"booked"`
}

func (s BusService) Book(ctx context.Context, in BusBookingInput) (BookingResult, error) {
	if strings.TrimSpace(in.RouteID) == "" {
		return BookingResult{}, domain.Coded(domain.CodeInvalidRoute)
	}
	if strings.TrimSpace(in.JourneyDate) == "" {
		return BookingResult{}, domain.Coded(domain.CodeFromToDateRequired)
	}
	date, err := utils.ParseDate(in.JourneyDate)
	if err != nil {
		return BookingResult{}, domain.CodedErr(domain.CodeInvalidTrip, err)
	}
	journeyDate := utils.FormatDate(date)
	if strings.TrimSpace(in.UserName) == "" {
		return BookingResult{}, domain.Coded(domain.CodeInvalidInput)
	}
	if strings.TrimSpace(in.Phone) == "" {
		return BookingResult{}, domain.Coded(domain.CodePhoneRequired)
	}
	seats := utils.CleanSeatCodes(in.Seats)
	if len(seats) == 0 {
		return BookingResult{}, domain.Coded(domain.CodeInvalidSeatSelection)
	}

	var route models.BusRoute
	for attempt := 0; ; attempt++ {
		row, err := s.Store.Get(ctx, store.ColBusRoutes, in.RouteID)
		if err == store.ErrNotFound {
			return BookingResult{}, domain.Coded(domain.CodeRouteNotFound)
		}
		if err != nil {
			return BookingResult{}, domain.InternalError{Err: err}
		}
		version := store.VersionOf(row)
		if err := store.Decode(row, &route); err != nil {
			return BookingResult{}, domain.InternalError{Err: err}
		}
		if !models.IsAvailable(route.Available) {
			return BookingResult{}, domain.Coded(domain.CodeRouteNotFound)
		}

		layout := SeatLayout(route)
		inLayout := map[string]bool{}
		for _, code := range layout {
			inLayout[code] = true
		}
		for _, code := range seats {
			if !inLayout[code] {
				return BookingResult{}, domain.Coded(domain.CodeInvalidSeatSelection)
			}
		}

		booked := map[string]bool{}
		for _, code := range route.SeatsBookedByDate[journeyDate] {
			booked[strings.ToUpper(code)] = true
		}
		for _, code := range seats {
			if booked[code] {
				return BookingResult{}, domain.Coded(domain.CodeSeatAlreadyBooked)
			}
		}

		merged := map[string][]string{}
		for d, codes := range route.SeatsBookedByDate {
			merged[d] = codes
		}
		merged[journeyDate] = append(append([]string{}, route.SeatsBookedByDate[journeyDate]...), seats...)

		err = s.Store.UpdateIf(ctx, store.ColBusRoutes, route.ID,
			store.Row{"seatsBookedByDate": merged}, version)
		if err == nil {
			break
		}
		if err == store.ErrVersionConflict && attempt < maxMutationRetries {
			// Another booking landed first; re-read and re-check the seats.
			continue
		}
		if err == store.ErrVersionConflict {
			return BookingResult{}, domain.Coded(domain.CodeSeatAlreadyBooked)
		}
		return BookingResult{}, domain.InternalError{Err: err}
	}

	base := utils.Round2(route.FarePerSeat * float64(len(seats)))
	booking := models.BusBooking{
		RouteID:     route.ID,
		JourneyDate: journeyDate,
		UserName:    strings.TrimSpace(in.UserName),
		Phone:       strings.TrimSpace(in.Phone),
		Seats:       seats,
		FarePerSeat: route.FarePerSeat,
		Pricing: models.PricingSnapshot{
			BaseAmount:  base,
			TotalAmount: base,
		},
		Status:    models.StatusConfirmed,
		CreatedAt: utils.FormatDateTime(utils.NowUTC()),
	}
	row, err := store.Encode(booking)
	if err != nil {
		return BookingResult{}, domain.InternalError{Err: err}
	}
	id, err := s.Store.Insert(ctx, store.ColBusBookings, row)
	if err != nil {
		return BookingResult{}, domain.InternalError{Err: err}
	}
	return BookingResult{Success: true, ID: id}, nil
}

// Seats reports the layout and already-booked codes for one journey date.
func (s BusService) Seats(ctx context.Context, routeID, journeyDate string) (SeatAvailability, error) {
	if strings.TrimSpace(routeID) == "" {
		return SeatAvailability{}, domain.Coded(domain.CodeInvalidRoute)
	}
	if strings.TrimSpace(journeyDate) == "" {
		return SeatAvailability{}, domain.Coded(domain.CodeFromToDateRequired)
	}
	date, err := utils.ParseDate(journeyDate)
	if err != nil {
		return SeatAvailability{}, domain.CodedErr(domain.CodeInvalidTrip, err)
	}

	row, err := s.Store.Get(ctx, store.ColBusRoutes, routeID)
	if err == store.ErrNotFound {
		return SeatAvailability{}, domain.Coded(domain.CodeRouteNotFound)
	}
	if err != nil {
		return SeatAvailability{}, domain.InternalError{Err: err}
	}
	var route models.BusRoute
	if err := store.Decode(row, &route); err != nil {
		return SeatAvailability{}, domain.InternalError{Err: err}
	}

	day := utils.FormatDate(date)
	booked := utils.CleanSeatCodes(route.SeatsBookedByDate[day])
	return SeatAvailability{
		RouteID:     route.ID,
		JourneyDate: day,
		Layout:      SeatLayout(route),
		Booked:      booked,
	}, nil
}

// SeatLayout returns the configured layout, or generates the standard
// 4-abreast fallback (A1..D1, A2..D2, ...) up to totalSeats.
func SeatLayout(route models.BusRoute) []string {
	if len(route.SeatLayout) > 0 {
		return utils.CleanSeatCodes(route.SeatLayout)
	}
	total := route.TotalSeats
	if total <= 0 {
		total = 40
	}
	letters := []string{"A", "B", "C", "D"}
	out := make([]string, 0, total)
	for row := 1; len(out) < total; row++ {
		for _, letter := range letters {
			if len(out) >= total {
				break
			}
			out = append(out, fmt.Sprintf("%s%d", letter, row))
		}
	}
	return out
}
