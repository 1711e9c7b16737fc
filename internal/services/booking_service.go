package services

import (
	"context"
	"strings"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/pricing"
	"backend/internal/store"
	"backend/internal/utils"
)

// BookingService handles the hotel and tour booking types.
type BookingService struct {
	Store    store.Store
	Settings SettingsService
}

type BookingInput struct {
	Type     string `json:"type"`
	ItemID   string `json:"itemId"`
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Guests   int    `json:"guests"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	RoomType string `json:"roomType"`
	NumRooms int    `json:"numRooms"`
	TourDate string `json:"tourDate"`
}

type BookingResult struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

// Create dispatches on the booking type.
func (s BookingService) Create(ctx context.Context, in BookingInput) (BookingResult, error) {
	switch strings.ToLower(strings.TrimSpace(in.Type)) {
	case "hotel":
		return s.createHotel(ctx, in)
	case "tour":
		return s.createTour(ctx, in)
	default:
		return BookingResult{}, domain.Coded(domain.CodeInvalidInput)
	}
}

func (s BookingService) createHotel(ctx context.Context, in BookingInput) (BookingResult, error) {
	if strings.TrimSpace(in.ItemID) == "" || strings.TrimSpace(in.UserName) == "" || in.Guests < 1 {
		return BookingResult{}, domain.Coded(domain.CodeInvalidInput)
	}
	if strings.TrimSpace(in.Phone) == "" {
		return BookingResult{}, domain.Coded(domain.CodePhoneRequired)
	}
	if strings.TrimSpace(in.CheckIn) == "" || strings.TrimSpace(in.CheckOut) == "" {
		return BookingResult{}, domain.Coded(domain.CodeFromToDateRequired)
	}
	checkIn, err := utils.ParseDate(in.CheckIn)
	if err != nil {
		return BookingResult{}, domain.CodedErr(domain.CodeInvalidStayRange, err)
	}
	checkOut, err := utils.ParseDate(in.CheckOut)
	if err != nil {
		return BookingResult{}, domain.CodedErr(domain.CodeInvalidStayRange, err)
	}
	nights := utils.WholeNights(checkIn, checkOut)
	if nights <= 0 {
		return BookingResult{}, domain.Coded(domain.CodeInvalidStayRange)
	}
	numRooms := in.NumRooms
	if numRooms < 1 {
		return BookingResult{}, domain.Coded(domain.CodeInvalidInput)
	}
	if strings.TrimSpace(in.RoomType) == "" {
		return BookingResult{}, domain.Coded(domain.CodeInvalidInput)
	}

	row, err := s.Store.Get(ctx, store.ColHotels, in.ItemID)
	if err == store.ErrNotFound {
		return BookingResult{}, domain.Coded(domain.CodeHotelNotFound)
	}
	if err != nil {
		return BookingResult{}, domain.InternalError{Err: err}
	}
	var hotel models.Hotel
	if err := store.Decode(row, &hotel); err != nil {
		return BookingResult{}, domain.InternalError{Err: err}
	}
	if !models.IsAvailable(hotel.Available) {
		return BookingResult{}, domain.Coded(domain.CodeHotelNotFound)
	}
	if hotel.MinNights > 0 && nights < hotel.MinNights {
		return BookingResult{}, domain.Coded(domain.CodeInvalidStayRange)
	}
	if hotel.MaxNights > 0 && nights > hotel.MaxNights {
		return BookingResult{}, domain.Coded(domain.CodeInvalidStayRange)
	}

	pricePerNight := hotel.PricePerNight
	for _, rt := range hotel.RoomTypes {
		if strings.EqualFold(rt.Name, in.RoomType) {
			pricePerNight = rt.PricePerNight
			break
		}
	}
	// Intentionally no capacity check against roomsByType here; the UI reads
	// it as a hint and the source system reconciles elsewhere.

	settings, err := s.Settings.Load(ctx)
	if err != nil {
		return BookingResult{}, domain.InternalError{Err: err}
	}
	base := utils.Round2(pricePerNight * float64(nights) * float64(numRooms))
	tax := pricing.CalcGST(base, pricing.HotelRate(settings.Tax.HotelSlabs, pricePerNight))

	booking := models.Booking{
		Type:     "hotel",
		ItemID:   hotel.ID,
		UserName: strings.TrimSpace(in.UserName),
		Email:    strings.TrimSpace(in.Email),
		Phone:    strings.TrimSpace(in.Phone),
		Guests:   in.Guests,
		CheckIn:  utils.FormatDate(checkIn),
		CheckOut: utils.FormatDate(checkOut),
		RoomType: strings.TrimSpace(in.RoomType),
		NumRooms: numRooms,
		Nights:   nights,
		Pricing:  snapshot(base, tax),
		Status:   models.StatusConfirmed,
		CreatedAt: utils.FormatDateTime(utils.NowUTC()),
	}
	return s.persist(ctx, booking)
}

func (s BookingService) createTour(ctx context.Context, in BookingInput) (BookingResult, error) {
	if strings.TrimSpace(in.ItemID) == "" || strings.TrimSpace(in.UserName) == "" || in.Guests < 1 {
		return BookingResult{}, domain.Coded(domain.CodeInvalidInput)
	}
	if strings.TrimSpace(in.Phone) == "" {
		return BookingResult{}, domain.Coded(domain.CodePhoneRequired)
	}
	if strings.TrimSpace(in.TourDate) == "" {
		return BookingResult{}, domain.Coded(domain.CodeInvalidTourDate)
	}
	tourDate, err := utils.ParseDate(in.TourDate)
	if err != nil {
		return BookingResult{}, domain.CodedErr(domain.CodeInvalidTourDate, err)
	}
	date := utils.FormatDate(tourDate)

	row, err := s.Store.Get(ctx, store.ColTours, in.ItemID)
	if err == store.ErrNotFound {
		return BookingResult{}, domain.Coded(domain.CodeTourNotFound)
	}
	if err != nil {
		return BookingResult{}, domain.InternalError{Err: err}
	}
	var tour models.Tour
	if err := store.Decode(row, &tour); err != nil {
		return BookingResult{}, domain.InternalError{Err: err}
	}
	if !models.IsAvailable(tour.Available) {
		return BookingResult{}, domain.Coded(domain.CodeTourNotFound)
	}
	for _, closed := range tour.ClosedDates {
		if closed == date {
			return BookingResult{}, domain.Coded(domain.CodeInvalidTourDate)
		}
	}
	if cap, ok := tour.CapacityByDate[date]; ok {
		taken, err := s.guestsBookedOn(ctx, tour.ID, date)
		if err != nil {
			return BookingResult{}, domain.InternalError{Err: err}
		}
		if taken+in.Guests > cap {
			return BookingResult{}, domain.Coded(domain.CodeInvalidTourDate)
		}
	}

	price := tour.Price
	if tour.PriceDropped {
		pct := tour.PriceDropPercent
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		price -= price * pct / 100
	}

	settings, err := s.Settings.Load(ctx)
	if err != nil {
		return BookingResult{}, domain.InternalError{Err: err}
	}
	base := utils.Round2(price)
	tax := pricing.CalcGST(base, pricing.RateOrDefault(settings.Tax.TourRate))

	booking := models.Booking{
		Type:     "tour",
		ItemID:   tour.ID,
		UserName: strings.TrimSpace(in.UserName),
		Email:    strings.TrimSpace(in.Email),
		Phone:    strings.TrimSpace(in.Phone),
		Guests:   in.Guests,
		TourDate: date,
		Pricing:  snapshot(base, tax),
		Status:   models.StatusConfirmed,
		CreatedAt: utils.FormatDateTime(utils.NowUTC()),
	}
	return s.persist(ctx, booking)
}

func (s BookingService) guestsBookedOn(ctx context.Context, tourID, date string) (int, error) {
	rows, err := s.Store.Select(ctx, store.ColBookings,
		store.Eq("type", "tour"), store.Eq("itemId", tourID), store.Eq("tourDate", date))
	if err != nil {
		return 0, err
	}
	total := 0
	for _, row := range rows {
		var b models.Booking
		if err := store.Decode(row, &b); err != nil {
			continue
		}
		total += b.Guests
	}
	return total, nil
}

func (s BookingService) persist(ctx context.Context, booking models.Booking) (BookingResult, error) {
	row, err := store.Encode(booking)
	if err != nil {
		return BookingResult{}, domain.InternalError{Err: err}
	}
	id, err := s.Store.Insert(ctx, store.ColBookings, row)
	if err != nil {
		return BookingResult{}, domain.InternalError{Err: err}
	}
	return BookingResult{Success: true, ID: id}, nil
}

func snapshot(base float64, tax pricing.TaxBreakup) models.PricingSnapshot {
	return models.PricingSnapshot{
		BaseAmount:  base,
		GSTRate:     tax.GSTRate,
		GSTAmount:   tax.GSTAmount,
		CGST:        tax.CGST,
		SGST:        tax.SGST,
		TotalAmount: utils.Round2(base + tax.GSTAmount),
	}
}
