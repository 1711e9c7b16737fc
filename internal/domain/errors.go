package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Wire-level error codes. The app matches on these strings verbatim, so they
// are part of the contract and must not be reworded.
const (
	CodeInvalidInput          = "INVALID_INPUT"
	CodeRestaurantIDRequired  = "RESTAURANT_ID_REQUIRED"
	CodePhoneRequired         = "PHONE_REQUIRED"
	CodeItemsRequired         = "ITEMS_REQUIRED"
	CodeInvalidMenuItem       = "INVALID_MENU_ITEM"
	CodeItemNotAvailable      = "ITEM_NOT_AVAILABLE"
	CodeQuantityExceedsMax    = "QUANTITY_EXCEEDS_MAX_PER_ORDER"
	CodeHotelNotFound         = "HOTEL_NOT_FOUND"
	CodeTourNotFound          = "TOUR_NOT_FOUND"
	CodeInvalidStayRange      = "INVALID_STAY_RANGE"
	CodeInvalidTourDate       = "INVALID_TOUR_DATE"
	CodeFromToDateRequired    = "FROM_TO_DATE_REQUIRED"
	CodeInvalidRoute          = "INVALID_ROUTE"
	CodeRouteNotFound         = "ROUTE_NOT_FOUND"
	CodeInvalidSeatSelection  = "INVALID_SEAT_SELECTION"
	CodeSeatAlreadyBooked     = "SEAT_ALREADY_BOOKED"
	CodeBikeNotFound          = "BIKE_NOT_FOUND"
	CodeInsufficientBikeStock = "INSUFFICIENT_BIKE_STOCK"
	CodeMaxDaysExceeded       = "MAX_DAYS_EXCEEDED"
	CodeAuthRequired          = "AUTH_REQUIRED"
	CodeAuthIdentityMismatch  = "AUTH_IDENTITY_MISMATCH"
	CodePickupDropRequired    = "PICKUP_DROP_REQUIRED"
	CodeInvalidTrip           = "INVALID_TRIP"
	CodeOrderNotFound         = "ORDER_NOT_FOUND"

	codeUnsupportedEndpoint = "UNSUPPORTED_ENDPOINT"
)

// DomainError carries a wire code; the code alone is the caller-facing message.
type DomainError struct {
	Code string
	Err  error
}

func (e DomainError) Error() string {
	if e.Err == nil {
		return e.Code
	}
	if e.Code == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e DomainError) Unwrap() error {
	return e.Err
}

// Coded builds a DomainError from a wire code.
func Coded(code string) DomainError {
	return DomainError{Code: code}
}

// CodedErr attaches an underlying cause to a wire code.
func CodedErr(code string, err error) DomainError {
	return DomainError{Code: code, Err: err}
}

// UnsupportedEndpoint reports an unroutable path. The path rides inside the
// code itself, matching what clients already parse.
func UnsupportedEndpoint(path string) DomainError {
	return DomainError{Code: codeUnsupportedEndpoint + ":" + path}
}

// IsUnsupportedEndpoint reports whether err is an unroutable-path code.
func IsUnsupportedEndpoint(err error) bool {
	return strings.HasPrefix(CodeOf(err), codeUnsupportedEndpoint)
}

// CodeOf extracts the wire code from an error chain, or "" when none is set.
func CodeOf(err error) string {
	var de DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}
