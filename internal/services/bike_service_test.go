package services

import (
	"context"
	"testing"

	"backend/internal/auth"
	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/store"
)

func riderCtx(phone string) context.Context {
	return auth.WithIdentity(context.Background(), auth.Identity{
		UserID: "user-demo",
		Name:   "Demo Traveller",
		Phone:  phone,
	})
}

func validBikeInput() BikeBookingInput {
	return BikeBookingInput{
		BikeRentalID:  "bike-re350",
		UserName:      "Demo Traveller",
		Phone:         "9876500000",
		StartDateTime: "2025-06-21 09:00:00",
		Days:          3,
		Qty:           2,
	}
}

func TestBikeBookingDecrementsFlatStock(t *testing.T) {
	s := seededStore(t)
	svc := BikeService{Store: s}

	out, err := svc.Book(riderCtx("9876500000"), validBikeInput())
	if err != nil {
		t.Fatalf("Book: %v", err)
	}

	row, _ := s.Get(context.Background(), store.ColBikeRentals, "bike-re350")
	var bike models.BikeRental
	if err := store.Decode(row, &bike); err != nil {
		t.Fatal(err)
	}
	if bike.Stock() != 2 { // seeded 4, rented 2
		t.Fatalf("stock = %d, want 2", bike.Stock())
	}

	bRow, _ := s.Get(context.Background(), store.ColBikeBookings, out.ID)
	var b models.BikeBooking
	if err := store.Decode(bRow, &b); err != nil {
		t.Fatal(err)
	}
	// 900/day x 3 days x 2 bikes.
	if b.Pricing.BaseAmount != 5400 || b.PricePerDay != 900 {
		t.Fatalf("booking = %+v", b)
	}
}

func TestBikeBookingDecrementsNestedStock(t *testing.T) {
	s := seededStore(t)
	svc := BikeService{Store: s}

	in := validBikeInput()
	in.BikeRentalID = "bike-activa"
	in.Days = 2
	in.Qty = 3
	out, err := svc.Book(riderCtx("9876500000"), in)
	if err != nil {
		t.Fatalf("Book: %v", err)
	}

	row, _ := s.Get(context.Background(), store.ColBikeRentals, "bike-activa")
	var bike models.BikeRental
	if err := store.Decode(row, &bike); err != nil {
		t.Fatal(err)
	}
	if bike.Stock() != 4 { // seeded 7, rented 3
		t.Fatalf("stock = %d, want 4", bike.Stock())
	}
	if bike.DayPrice() != 400 {
		t.Fatalf("nested day price lost: %v", bike.DayPrice())
	}

	bRow, _ := s.Get(context.Background(), store.ColBikeBookings, out.ID)
	var b models.BikeBooking
	if err := store.Decode(bRow, &b); err != nil {
		t.Fatal(err)
	}
	// 400/day x 2 days x 3 bikes.
	if b.Pricing.BaseAmount != 2400 {
		t.Fatalf("BaseAmount = %v, want 2400", b.Pricing.BaseAmount)
	}
}

func TestBikeBookingInsufficientStockLeavesCounter(t *testing.T) {
	s := seededStore(t)
	svc := BikeService{Store: s}

	in := validBikeInput()
	in.Qty = 5 // only 4 seeded
	_, err := svc.Book(riderCtx("9876500000"), in)
	wantCode(t, err, domain.CodeInsufficientBikeStock)

	row, _ := s.Get(context.Background(), store.ColBikeRentals, "bike-re350")
	var bike models.BikeRental
	if err := store.Decode(row, &bike); err != nil {
		t.Fatal(err)
	}
	if bike.Stock() != 4 {
		t.Fatalf("failed booking touched stock: %d", bike.Stock())
	}
}

func TestBikeBookingRequiresIdentity(t *testing.T) {
	svc := BikeService{Store: seededStore(t)}

	_, err := svc.Book(context.Background(), validBikeInput())
	wantCode(t, err, domain.CodeAuthRequired)
}

func TestBikeBookingPhoneMustMatchIdentity(t *testing.T) {
	svc := BikeService{Store: seededStore(t)}

	_, err := svc.Book(riderCtx("1112223334"), validBikeInput())
	wantCode(t, err, domain.CodeAuthIdentityMismatch)
}

func TestBikeBookingValidation(t *testing.T) {
	svc := BikeService{Store: seededStore(t)}
	ctx := riderCtx("9876500000")

	in := validBikeInput()
	in.Days = 11 // bike-re350 maxDays is 10
	_, err := svc.Book(ctx, in)
	wantCode(t, err, domain.CodeMaxDaysExceeded)

	in = validBikeInput()
	in.BikeRentalID = "bike-ghost"
	_, err = svc.Book(ctx, in)
	wantCode(t, err, domain.CodeBikeNotFound)

	in = validBikeInput()
	in.StartDateTime = "tomorrow-ish"
	_, err = svc.Book(ctx, in)
	wantCode(t, err, domain.CodeInvalidTrip)

	in = validBikeInput()
	in.Qty = 0
	_, err = svc.Book(ctx, in)
	wantCode(t, err, domain.CodeInvalidInput)

	in = validBikeInput()
	in.Phone = ""
	_, err = svc.Book(ctx, in)
	wantCode(t, err, domain.CodePhoneRequired)
}
