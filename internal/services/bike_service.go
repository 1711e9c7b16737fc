package services

import (
	"context"
	"strings"

	"backend/internal/auth"
	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/store"
	"backend/internal/utils"
)

// BikeService books bike rentals and decrements the stock counter. Like the
// bus seat map, the decrement is a conditional update with bounded retries.
type BikeService struct {
	Store store.Store
}

type BikeBookingInput struct {
	BikeRentalID  string `json:"bikeRentalId"`
	UserName      string `json:"userName"`
	Phone         string `json:"phone"`
	StartDateTime string `json:"startDateTime"`
	Days          int    `json:"days"`
	Qty           int    `json:"qty"`
}

func (s BikeService) Book(ctx context.Context, in BikeBookingInput) (BookingResult, error) {
	if strings.TrimSpace(in.BikeRentalID) == "" || strings.TrimSpace(in.UserName) == "" {
		return BookingResult{}, domain.Coded(domain.CodeInvalidInput)
	}
	if strings.TrimSpace(in.Phone) == "" {
		return BookingResult{}, domain.Coded(domain.CodePhoneRequired)
	}
	if in.Days < 1 || in.Qty < 1 {
		return BookingResult{}, domain.Coded(domain.CodeInvalidInput)
	}
	if strings.TrimSpace(in.StartDateTime) == "" {
		return BookingResult{}, domain.Coded(domain.CodeInvalidTrip)
	}
	start, err := utils.ParseDateTime(in.StartDateTime)
	if err != nil {
		return BookingResult{}, domain.CodedErr(domain.CodeInvalidTrip, err)
	}

	identity := auth.IdentityFrom(ctx)
	if !identity.Authenticated() {
		return BookingResult{}, domain.Coded(domain.CodeAuthRequired)
	}
	if identity.Phone != "" && identity.Phone != strings.TrimSpace(in.Phone) {
		return BookingResult{}, domain.Coded(domain.CodeAuthIdentityMismatch)
	}

	var bike models.BikeRental
	for attempt := 0; ; attempt++ {
		row, err := s.Store.Get(ctx, store.ColBikeRentals, in.BikeRentalID)
		if err == store.ErrNotFound {
			return BookingResult{}, domain.Coded(domain.CodeBikeNotFound)
		}
		if err != nil {
			return BookingResult{}, domain.InternalError{Err: err}
		}
		version := store.VersionOf(row)
		if err := store.Decode(row, &bike); err != nil {
			return BookingResult{}, domain.InternalError{Err: err}
		}
		if !models.IsAvailable(bike.Available) {
			return BookingResult{}, domain.Coded(domain.CodeBikeNotFound)
		}
		if bike.MaxDays > 0 && in.Days > bike.MaxDays {
			return BookingResult{}, domain.Coded(domain.CodeMaxDaysExceeded)
		}
		stock := bike.Stock()
		if in.Qty > stock {
			return BookingResult{}, domain.Coded(domain.CodeInsufficientBikeStock)
		}

		// The decrement targets whichever schema the row uses: the flat
		// availableQty column or the nested availability_rates object.
		var patch store.Row
		if bike.AvailableQty != nil {
			patch = store.Row{"availableQty": stock - in.Qty}
		} else {
			patch = store.Row{"availability_rates": models.AvailabilityRates{
				AvailableQty: stock - in.Qty,
				PricePerDay:  bike.AvailabilityRates.PricePerDay,
			}}
		}

		err = s.Store.UpdateIf(ctx, store.ColBikeRentals, bike.ID, patch, version)
		if err == nil {
			break
		}
		if err == store.ErrVersionConflict && attempt < maxMutationRetries {
			continue
		}
		if err == store.ErrVersionConflict {
			return BookingResult{}, domain.Coded(domain.CodeInsufficientBikeStock)
		}
		return BookingResult{}, domain.InternalError{Err: err}
	}

	perDay := bike.DayPrice()
	base := utils.Round2(perDay * float64(in.Days) * float64(in.Qty))
	booking := models.BikeBooking{
		BikeRentalID:  bike.ID,
		UserName:      strings.TrimSpace(in.UserName),
		Phone:         strings.TrimSpace(in.Phone),
		StartDateTime: utils.FormatDateTime(start),
		Days:          in.Days,
		Qty:           in.Qty,
		PricePerDay:   perDay,
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
	id, err := s.Store.Insert(ctx, store.ColBikeBookings, row)
	if err != nil {
		return BookingResult{}, domain.InternalError{Err: err}
	}
	return BookingResult{Success: true, ID: id}, nil
}
