package services

import (
	"context"
	"testing"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/store"
)

func cabSvc(s store.Store) CabService {
	return CabService{Store: s, Settings: SettingsService{Store: s}}
}

func validCabInput() CabBookingInput {
	return CabBookingInput{
		ProviderID:     "cab-swift",
		UserName:       "Dev",
		Phone:          "9876001133",
		PickupLocation: "Manali",
		DropLocation:   "Kullu",
		Datetime:       "2025-06-20 14:00:00",
		Passengers:     2,
	}
}

func TestCabBookingPersistsEstimate(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)
	svc := cabSvc(s)

	out, err := svc.Book(ctx, validCabInput())
	if err != nil {
		t.Fatalf("Book: %v", err)
	}

	row, err := s.Get(ctx, store.ColCabBookings, out.ID)
	if err != nil {
		t.Fatalf("stored booking missing: %v", err)
	}
	var b models.CabBooking
	if err := store.Decode(row, &b); err != nil {
		t.Fatal(err)
	}

	// 14:00 local: no surge, no night; 42 km heuristic + 50 toll.
	if b.Fare.DistanceKm != 42 || b.Fare.DurationMin != 84 {
		t.Fatalf("fare breakdown = %+v", b.Fare)
	}
	if b.Fare.Subtotal != 866 || b.EstimatedFare != 909.30 {
		t.Fatalf("subtotal=%v estimate=%v", b.Fare.Subtotal, b.EstimatedFare)
	}
	if b.Pricing.TotalAmount != 909.30 {
		t.Fatalf("snapshot = %+v", b.Pricing)
	}
	if b.Status != models.StatusConfirmed {
		t.Fatalf("status = %q", b.Status)
	}
}

func TestCabBookingValidation(t *testing.T) {
	ctx := context.Background()
	svc := cabSvc(seededStore(t))

	in := validCabInput()
	in.UserName = ""
	_, err := svc.Book(ctx, in)
	wantCode(t, err, domain.CodeInvalidInput)

	in = validCabInput()
	in.Phone = ""
	_, err = svc.Book(ctx, in)
	wantCode(t, err, domain.CodePhoneRequired)

	in = validCabInput()
	in.DropLocation = ""
	_, err = svc.Book(ctx, in)
	wantCode(t, err, domain.CodePickupDropRequired)

	in = validCabInput()
	in.Datetime = "soonish"
	_, err = svc.Book(ctx, in)
	wantCode(t, err, domain.CodeInvalidTrip)

	in = validCabInput()
	in.ProviderID = "cab-ghost"
	_, err = svc.Book(ctx, in)
	wantCode(t, err, domain.CodeInvalidTrip)
}

func TestCabSearchRanksByTotal(t *testing.T) {
	ctx := context.Background()
	svc := cabSvc(seededStore(t))

	quotes, err := svc.Search(ctx, "Manali", "Kullu", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(quotes) != 3 {
		t.Fatalf("expected all seeded providers, got %d", len(quotes))
	}
	for i := 1; i < len(quotes); i++ {
		if quotes[i-1].Quote.Total > quotes[i].Quote.Total {
			t.Fatalf("quotes not sorted ascending: %v then %v",
				quotes[i-1].Quote.Total, quotes[i].Quote.Total)
		}
	}
	// cab-innova's 5% drop makes it the cheapest.
	if quotes[0].Provider.ID != "cab-innova" {
		t.Fatalf("cheapest = %s", quotes[0].Provider.ID)
	}
}

func TestCabSearchFiltersBySeats(t *testing.T) {
	ctx := context.Background()
	svc := cabSvc(seededStore(t))

	quotes, err := svc.Search(ctx, "Manali", "Kullu", 6)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(quotes) != 1 || quotes[0].Provider.ID != "cab-innova" {
		t.Fatalf("6-passenger search = %+v", quotes)
	}
}

func TestCabSearchRequiresEndpoints(t *testing.T) {
	ctx := context.Background()
	svc := cabSvc(seededStore(t))

	_, err := svc.Search(ctx, "", "Kullu", 1)
	wantCode(t, err, domain.CodePickupDropRequired)
}
