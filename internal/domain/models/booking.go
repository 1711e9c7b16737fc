package models

// PricingSnapshot freezes the computed price into the booking row. It is
// written once at creation and never recomputed, so later catalog price edits
// cannot leak into existing bookings.
type PricingSnapshot struct {
	BaseAmount  float64 `json:"baseAmount"`
	GSTRate     float64 `json:"gstRate"`
	GSTAmount   float64 `json:"gstAmount"`
	CGST        float64 `json:"cgst"`
	SGST        float64 `json:"sgst"`
	TotalAmount float64 `json:"totalAmount"`
}

// Booking covers the hotel and tour types; Type discriminates.
type Booking struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"` // hotel | tour
	ItemID    string          `json:"itemId"`
	UserName  string          `json:"userName"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	Guests    int             `json:"guests"`
	CheckIn   string          `json:"checkIn,omitempty"`
	CheckOut  string          `json:"checkOut,omitempty"`
	RoomType  string          `json:"roomType,omitempty"`
	NumRooms  int             `json:"numRooms,omitempty"`
	Nights    int             `json:"nights,omitempty"`
	TourDate  string          `json:"tourDate,omitempty"`
	Pricing   PricingSnapshot `json:"pricing"`
	Status    string          `json:"status"`
	CreatedAt string          `json:"createdAt"`
}

// OrderItem is copied from the live menu item at order time: later menu edits
// must not alter the order.
type OrderItem struct {
	MenuItemID string  `json:"menuItemId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

type FoodOrder struct {
	ID              string          `json:"id"`
	RestaurantID    string          `json:"restaurantId"`
	UserName        string          `json:"userName"`
	Phone           string          `json:"phone"`
	DeliveryAddress string          `json:"deliveryAddress"`
	Items           []OrderItem     `json:"items"`
	Pricing         PricingSnapshot `json:"pricing"`
	Status          string          `json:"status"`
	CreatedAt       string          `json:"createdAt"`
}

// FareBreakdown is the audited decomposition the estimator returns, persisted
// verbatim on the cab booking.
type FareBreakdown struct {
	DistanceKm      float64 `json:"distanceKm"`
	DurationMin     int     `json:"durationMin"`
	SurgeMultiplier float64 `json:"surgeMultiplier"`
	NightMultiplier float64 `json:"nightMultiplier"`
	IsNight         bool    `json:"isNight"`
	TollFee         float64 `json:"tollFee"`
	Subtotal        float64 `json:"subtotal"`
}

type CabBooking struct {
	ID             string          `json:"id"`
	ProviderID     string          `json:"providerId"`
	UserName       string          `json:"userName"`
	Phone          string          `json:"phone"`
	PickupLocation string          `json:"pickupLocation"`
	DropLocation   string          `json:"dropLocation"`
	Datetime       string          `json:"datetime"`
	Passengers     int             `json:"passengers"`
	EstimatedFare  float64         `json:"estimatedFare"`
	Fare           FareBreakdown   `json:"fare"`
	Pricing        PricingSnapshot `json:"pricing"`
	Status         string          `json:"status"`
	CreatedAt      string          `json:"createdAt"`
}

type BusBooking struct {
	ID          string          `json:"id"`
	RouteID     string          `json:"routeId"`
	JourneyDate string          `json:"journeyDate"`
	UserName    string          `json:"userName"`
	Phone       string          `json:"phone"`
	Seats       []string        `json:"seats"`
	FarePerSeat float64         `json:"farePerSeat"`
	Pricing     PricingSnapshot `json:"pricing"`
	Status      string          `json:"status"`
	CreatedAt   string          `json:"createdAt"`
}

type BikeBooking struct {
	ID            string          `json:"id"`
	BikeRentalID  string          `json:"bikeRentalId"`
	UserName      string          `json:"userName"`
	Phone         string          `json:"phone"`
	StartDateTime string          `json:"startDateTime"`
	Days          int             `json:"days"`
	Qty           int             `json:"qty"`
	PricePerDay   float64         `json:"pricePerDay"`
	Pricing       PricingSnapshot `json:"pricing"`
	Status        string          `json:"status"`
	CreatedAt     string          `json:"createdAt"`
}

type Refund struct {
	ID        string  `json:"id"`
	OrderID   string  `json:"orderId"`
	Reason    string  `json:"reason"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"createdAt"`
}

// Booking rows enter life in StatusConfirmed; only an external fulfillment
// process moves them afterwards.
const (
	StatusConfirmed = "confirmed"
	StatusPlaced    = "placed"
	StatusRequested = "requested"
)
