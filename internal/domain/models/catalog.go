package models

// Catalog rows are created and edited by the admin surface only. The engine
// reads them to resolve prices and inventory; the one exception is the
// inventory fields called out below, which the orchestrator mutates at
// booking-creation time.

type Tour struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Location         string   `json:"location"`
	Price            float64  `json:"price"`
	Available        *bool    `json:"available"`
	PriceDropped     bool     `json:"priceDropped"`
	PriceDropPercent float64  `json:"priceDropPercent"`
	ClosedDates      []string `json:"closedDates"`
	CapacityByDate   map[string]int `json:"capacityByDate"`
}

type RoomType struct {
	Name          string  `json:"name"`
	PricePerNight float64 `json:"pricePerNight"`
}

type Hotel struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Location      string     `json:"location"`
	PricePerNight float64    `json:"pricePerNight"`
	RoomTypes     []RoomType `json:"roomTypes"`
	// RoomsByType is surfaced to the UI as a hint only; the booking path does
	// not enforce it (see DESIGN.md).
	RoomsByType map[string]int `json:"roomsByType"`
	Available   *bool          `json:"available"`
	MinNights   int            `json:"minNights"`
	MaxNights   int            `json:"maxNights"`
	ClosedDates []string       `json:"closedDates"`
}

type MenuItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Available   *bool   `json:"available"`
	MaxPerOrder int     `json:"maxPerOrder"`
}

type Restaurant struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Location  string     `json:"location"`
	Available *bool      `json:"available"`
	Menu      []MenuItem `json:"menu"`
}

type CabProvider struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	VehicleType      string  `json:"vehicleType"`
	Seats            int     `json:"seats"`
	Available        *bool   `json:"available"`
	PriceDropped     bool    `json:"priceDropped"`
	PriceDropPercent float64 `json:"priceDropPercent"`
}

// BusRoute owns SeatsBookedByDate: journey date (YYYY-MM-DD) -> codes already
// sold. This is the contention-sensitive map every bus booking appends to.
type BusRoute struct {
	ID                string              `json:"id"`
	Origin            string              `json:"origin"`
	Destination       string              `json:"destination"`
	DepartureTime     string              `json:"departureTime"`
	FarePerSeat       float64             `json:"farePerSeat"`
	TotalSeats        int                 `json:"totalSeats"`
	SeatLayout        []string            `json:"seatLayout"`
	Available         *bool               `json:"available"`
	SeatsBookedByDate map[string][]string `json:"seatsBookedByDate"`
}

// AvailabilityRates is the alternate (snake_case) stock shape used by the
// second bike source table.
type AvailabilityRates struct {
	AvailableQty int     `json:"available_qty"`
	PricePerDay  float64 `json:"price_per_day"`
}

type BikeRental struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	PricePerDay float64 `json:"pricePerDay"`
	Available   *bool   `json:"available"`
	MaxDays     int     `json:"maxDays"`
	// Exactly one of AvailableQty / AvailabilityRates is populated depending
	// on which source table the row came from.
	AvailableQty      *int               `json:"availableQty"`
	AvailabilityRates *AvailabilityRates `json:"availability_rates"`
}

// Stock resolves the available quantity across both schemas.
func (b BikeRental) Stock() int {
	if b.AvailableQty != nil {
		return *b.AvailableQty
	}
	if b.AvailabilityRates != nil {
		return b.AvailabilityRates.AvailableQty
	}
	return 0
}

// DayPrice resolves the per-day price across both schemas.
func (b BikeRental) DayPrice() float64 {
	if b.PricePerDay > 0 {
		return b.PricePerDay
	}
	if b.AvailabilityRates != nil {
		return b.AvailabilityRates.PricePerDay
	}
	return 0
}

type ServiceArea struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Coupon struct {
	ID      string  `json:"id"`
	Code    string  `json:"code"`
	Percent float64 `json:"percent"`
	Active  *bool   `json:"active"`
}

// IsAvailable applies the boolean-or-null default: a missing flag counts as
// available.
func IsAvailable(flag *bool) bool {
	return flag == nil || *flag
}
