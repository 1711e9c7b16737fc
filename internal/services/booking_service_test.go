package services

import (
	"context"
	"testing"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/store"
)

func seededStore(t *testing.T) *store.MemoryStore {
	t.Helper()
	s := store.NewMemoryStore()
	if err := store.Seed(context.Background(), s); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return s
}

func bookingSvc(s store.Store) BookingService {
	return BookingService{Store: s, Settings: SettingsService{Store: s}}
}

func wantCode(t *testing.T, err error, code string) {
	t.Helper()
	if got := domain.CodeOf(err); got != code {
		t.Fatalf("error code = %q (err=%v), want %q", got, err, code)
	}
}

func validHotelInput() BookingInput {
	return BookingInput{
		Type:     "hotel",
		ItemID:   "hotel-pinewood",
		UserName: "Asha",
		Phone:    "9876512345",
		Guests:   2,
		CheckIn:  "2025-06-10",
		CheckOut: "2025-06-12",
		RoomType: "deluxe",
		NumRooms: 1,
	}
}

func TestHotelBookingSnapshot(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)
	svc := bookingSvc(s)

	out, err := svc.Create(ctx, validHotelInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !out.Success || out.ID == "" {
		t.Fatalf("result = %+v", out)
	}

	row, err := s.Get(ctx, store.ColBookings, out.ID)
	if err != nil {
		t.Fatalf("stored booking missing: %v", err)
	}
	var b models.Booking
	if err := store.Decode(row, &b); err != nil {
		t.Fatal(err)
	}

	// deluxe 4200/night x 2 nights x 1 room; 4200 lands in the 12% slab.
	if b.Pricing.BaseAmount != 8400 {
		t.Fatalf("BaseAmount = %v, want 8400", b.Pricing.BaseAmount)
	}
	if b.Pricing.GSTRate != 0.12 || b.Pricing.GSTAmount != 1008 {
		t.Fatalf("pricing = %+v", b.Pricing)
	}
	if b.Pricing.CGST != 504 || b.Pricing.SGST != 504 {
		t.Fatalf("split = %v/%v", b.Pricing.CGST, b.Pricing.SGST)
	}
	if b.Pricing.TotalAmount != 9408 {
		t.Fatalf("TotalAmount = %v, want 9408", b.Pricing.TotalAmount)
	}
	if b.Nights != 2 || b.Status != models.StatusConfirmed {
		t.Fatalf("booking = %+v", b)
	}
}

func TestHotelBookingSnapshotSurvivesPriceEdit(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)
	svc := bookingSvc(s)

	out, err := svc.Create(ctx, validHotelInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Admin reprices the room type afterwards.
	err = s.Update(ctx, store.ColHotels, "hotel-pinewood", store.Row{
		"roomTypes": []models.RoomType{{Name: "deluxe", PricePerNight: 9999}},
	})
	if err != nil {
		t.Fatal(err)
	}

	row, _ := s.Get(ctx, store.ColBookings, out.ID)
	var b models.Booking
	if err := store.Decode(row, &b); err != nil {
		t.Fatal(err)
	}
	if b.Pricing.TotalAmount != 9408 {
		t.Fatalf("snapshot drifted after catalog edit: %v", b.Pricing.TotalAmount)
	}
}

func TestHotelBookingValidation(t *testing.T) {
	ctx := context.Background()
	svc := bookingSvc(seededStore(t))

	in := validHotelInput()
	in.Phone = ""
	_, err := svc.Create(ctx, in)
	wantCode(t, err, domain.CodePhoneRequired)

	in = validHotelInput()
	in.CheckOut = ""
	_, err = svc.Create(ctx, in)
	wantCode(t, err, domain.CodeFromToDateRequired)

	in = validHotelInput()
	in.CheckIn, in.CheckOut = "2025-06-12", "2025-06-10"
	_, err = svc.Create(ctx, in)
	wantCode(t, err, domain.CodeInvalidStayRange)

	in = validHotelInput()
	in.CheckOut = in.CheckIn // zero nights
	_, err = svc.Create(ctx, in)
	wantCode(t, err, domain.CodeInvalidStayRange)

	in = validHotelInput()
	in.CheckOut = "not-a-date"
	_, err = svc.Create(ctx, in)
	wantCode(t, err, domain.CodeInvalidStayRange)

	in = validHotelInput()
	in.ItemID = "hotel-ghost"
	_, err = svc.Create(ctx, in)
	wantCode(t, err, domain.CodeHotelNotFound)

	in = validHotelInput()
	in.Guests = 0
	_, err = svc.Create(ctx, in)
	wantCode(t, err, domain.CodeInvalidInput)
}

func TestHotelBookingMaxNights(t *testing.T) {
	ctx := context.Background()
	svc := bookingSvc(seededStore(t))

	in := validHotelInput()
	in.CheckIn, in.CheckOut = "2025-06-01", "2025-06-20" // 19 nights, max is 14
	_, err := svc.Create(ctx, in)
	wantCode(t, err, domain.CodeInvalidStayRange)
}

func TestHotelBookingUnknownRoomTypeUsesBasePrice(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)
	svc := bookingSvc(s)

	in := validHotelInput()
	in.RoomType = "penthouse"
	out, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	row, _ := s.Get(ctx, store.ColBookings, out.ID)
	var b models.Booking
	if err := store.Decode(row, &b); err != nil {
		t.Fatal(err)
	}
	// Falls back to the hotel's base 2500/night; 2500 is in the 12% slab.
	if b.Pricing.BaseAmount != 5000 {
		t.Fatalf("BaseAmount = %v, want 5000", b.Pricing.BaseAmount)
	}
}

func TestTourBookingAppliesPriceDrop(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)
	svc := bookingSvc(s)

	out, err := svc.Create(ctx, BookingInput{
		Type:     "tour",
		ItemID:   "tour-rohtang",
		UserName: "Ravi",
		Phone:    "9876540000",
		Guests:   2,
		TourDate: "2025-06-15",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	row, _ := s.Get(ctx, store.ColBookings, out.ID)
	var b models.Booking
	if err := store.Decode(row, &b); err != nil {
		t.Fatal(err)
	}
	// 3200 with a 10% drop = 2880; 5% tour GST = 144.
	if b.Pricing.BaseAmount != 2880 || b.Pricing.GSTAmount != 144 || b.Pricing.TotalAmount != 3024 {
		t.Fatalf("pricing = %+v", b.Pricing)
	}
	if b.TourDate != "2025-06-15" {
		t.Fatalf("TourDate = %q", b.TourDate)
	}
}

func TestTourBookingClosedDateAndCapacity(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)
	svc := bookingSvc(s)

	tour, _ := store.Encode(models.Tour{
		ID:             "tour-capped",
		Name:           "Capped Trek",
		Price:          1500,
		ClosedDates:    []string{"2025-07-01"},
		CapacityByDate: map[string]int{"2025-07-02": 3},
	})
	if _, err := s.Insert(ctx, store.ColTours, tour); err != nil {
		t.Fatal(err)
	}

	base := BookingInput{
		Type:     "tour",
		ItemID:   "tour-capped",
		UserName: "Ravi",
		Phone:    "9876540000",
		Guests:   2,
	}

	in := base
	in.TourDate = "2025-07-01"
	_, err := svc.Create(ctx, in)
	wantCode(t, err, domain.CodeInvalidTourDate)

	// First party of 2 fits under the cap of 3.
	in = base
	in.TourDate = "2025-07-02"
	if _, err := svc.Create(ctx, in); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	// Second party of 2 would exceed it.
	_, err = svc.Create(ctx, in)
	wantCode(t, err, domain.CodeInvalidTourDate)
}

func TestTourBookingMissingDate(t *testing.T) {
	ctx := context.Background()
	svc := bookingSvc(seededStore(t))

	_, err := svc.Create(ctx, BookingInput{
		Type: "tour", ItemID: "tour-solang", UserName: "Ravi", Phone: "98765", Guests: 1,
	})
	wantCode(t, err, domain.CodeInvalidTourDate)
}

func TestBookingUnknownType(t *testing.T) {
	ctx := context.Background()
	svc := bookingSvc(seededStore(t))

	_, err := svc.Create(ctx, BookingInput{Type: "yacht", ItemID: "x", UserName: "a", Phone: "1", Guests: 1})
	wantCode(t, err, domain.CodeInvalidInput)
}
