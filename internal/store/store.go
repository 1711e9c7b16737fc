// Package store is the generic row-store accessor every engine component reads
// and writes through. Collections and filter semantics are the wire contract
// to the external store; the backends (memory, MySQL, Supabase REST) are
// interchangeable behind the Store interface.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Collection names. These are shared with the admin surface and the real
// backend, so renaming one breaks the contract.
const (
	ColSettings     = "settings"
	ColTours        = "tours"
	ColHotels       = "hotels"
	ColRestaurants  = "restaurants"
	ColCabProviders = "cab_providers"
	ColBusRoutes    = "bus_routes"
	ColBikeRentals  = "bike_rentals"
	ColBookings     = "bookings"
	ColFoodOrders   = "food_orders"
	ColCabBookings  = "cab_bookings"
	ColBusBookings  = "bus_bookings"
	ColBikeBookings = "bike_bookings"
	ColRefunds      = "refunds"
	ColServiceAreas = "service_areas"
	ColCoupons      = "coupons"
	ColUsers        = "users"
)

// Collections lists every collection a backend must be able to hold.
var Collections = []string{
	ColSettings, ColTours, ColHotels, ColRestaurants, ColCabProviders,
	ColBusRoutes, ColBikeRentals, ColBookings, ColFoodOrders, ColCabBookings,
	ColBusBookings, ColBikeBookings, ColRefunds, ColServiceAreas, ColCoupons,
	ColUsers,
}

var (
	ErrNotFound = errors.New("row not found")
	// ErrVersionConflict signals a lost conditional update; callers re-read
	// and retry instead of overwriting.
	ErrVersionConflict = errors.New("version conflict")
)

// Row is a flat JSON document. "id" is the row key; "_version" is the
// backend-managed concurrency counter and is never written by callers.
type Row map[string]any

// Filter is an equality or membership predicate.
type Filter struct {
	Field string
	Op    string // eq, in
	Value any
}

func Eq(field string, value any) Filter {
	return Filter{Field: field, Op: "eq", Value: value}
}

func In(field string, values []string) Filter {
	return Filter{Field: field, Op: "in", Value: values}
}

type Store interface {
	Select(ctx context.Context, collection string, filters ...Filter) ([]Row, error)
	Get(ctx context.Context, collection, id string) (Row, error)
	Insert(ctx context.Context, collection string, row Row) (string, error)
	Update(ctx context.Context, collection, id string, patch Row) error
	// UpdateIf applies patch only when the row's version still equals
	// expectVersion; otherwise ErrVersionConflict.
	UpdateIf(ctx context.Context, collection, id string, patch Row, expectVersion int64) error
}

// VersionOf reads the concurrency counter off a row.
func VersionOf(row Row) int64 {
	switch v := row["_version"].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	case int:
		return int64(v)
	}
	return 0
}

// IDOf reads the row key.
func IDOf(row Row) string {
	if s, ok := row["id"].(string); ok {
		return s
	}
	return fmt.Sprint(row["id"])
}

// Decode round-trips a row into a typed model.
func Decode(row Row, dst any) error {
	b, err := json.Marshal(row)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}

// Encode round-trips a typed model into a row.
func Encode(src any) (Row, error) {
	b, err := json.Marshal(src)
	if err != nil {
		return nil, err
	}
	var row Row
	if err := json.Unmarshal(b, &row); err != nil {
		return nil, err
	}
	delete(row, "_version")
	return row, nil
}

// Matches applies filters to a row; scalar comparison is stringly on purpose
// since JSON numbers arrive as float64 regardless of source type.
func Matches(row Row, filters []Filter) bool {
	for _, f := range filters {
		got, ok := row[f.Field]
		switch f.Op {
		case "eq":
			if !ok || fmt.Sprint(got) != fmt.Sprint(f.Value) {
				return false
			}
		case "in":
			values, _ := f.Value.([]string)
			found := false
			for _, v := range values {
				if ok && fmt.Sprint(got) == v {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		default:
			return false
		}
	}
	return true
}
