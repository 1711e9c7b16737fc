// Package router maps logical (method, path, body) requests onto the booking
// orchestrator. It is the "server" the client falls back to when no real
// backend is reachable, so its route catalog is the wire contract.
package router

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"backend/internal/auth"
	"backend/internal/domain"
	"backend/internal/services"
	"backend/internal/store"
)

// Request is a transport-neutral call: the gin layer and the dual-mode
// dispatcher both build these.
type Request struct {
	Method   string
	Path     string
	Query    url.Values
	Body     []byte
	Identity auth.Identity
}

type Response struct {
	Status int
	Body   any
}

// endpoint enumerates every logical route; the switch in Handle dispatches on
// it so a new route that misses a case is caught at review, not at runtime.
type endpoint int

const (
	epUnknown endpoint = iota
	epMeta
	epBookings
	epOrders
	epCabBook
	epCabSearch
	epBusBook
	epBusSeats
	epBikeBook
	epRefundRequest
)

type Router struct {
	Meta     services.MetaService
	Bookings services.BookingService
	Orders   services.OrderService
	Cabs     services.CabService
	Buses    services.BusService
	Bikes    services.BikeService
	Refunds  services.RefundService
}

// New wires a router over one store.
func New(st store.Store) *Router {
	settings := services.SettingsService{Store: st}
	return &Router{
		Meta:     services.MetaService{Store: st, Settings: settings},
		Bookings: services.BookingService{Store: st, Settings: settings},
		Orders:   services.OrderService{Store: st, Settings: settings},
		Cabs:     services.CabService{Store: st, Settings: settings},
		Buses:    services.BusService{Store: st},
		Bikes:    services.BikeService{Store: st},
		Refunds:  services.RefundService{Store: st},
	}
}

// Handle executes one logical request in-process.
func (r *Router) Handle(ctx context.Context, req Request) (Response, error) {
	ctx = auth.WithIdentity(ctx, req.Identity)

	ep, params := resolve(req.Method, req.Path)
	switch ep {
	case epMeta:
		payload, err := r.Meta.Load(ctx)
		if err != nil {
			return Response{}, err
		}
		return Response{Status: 200, Body: payload}, nil

	case epBookings:
		var in services.BookingInput
		if err := bind(req.Body, &in); err != nil {
			return Response{}, err
		}
		out, err := r.Bookings.Create(ctx, in)
		if err != nil {
			return Response{}, err
		}
		return Response{Status: 201, Body: out}, nil

	case epOrders:
		var in services.OrderInput
		if err := bind(req.Body, &in); err != nil {
			return Response{}, err
		}
		out, err := r.Orders.Create(ctx, in)
		if err != nil {
			return Response{}, err
		}
		return Response{Status: 201, Body: out}, nil

	case epCabBook:
		var in services.CabBookingInput
		if err := bind(req.Body, &in); err != nil {
			return Response{}, err
		}
		out, err := r.Cabs.Book(ctx, in)
		if err != nil {
			return Response{}, err
		}
		return Response{Status: 201, Body: out}, nil

	case epCabSearch:
		passengers, _ := strconv.Atoi(req.Query.Get("passengers"))
		quotes, err := r.Cabs.Search(ctx, req.Query.Get("pickupLocation"), req.Query.Get("dropLocation"), passengers)
		if err != nil {
			return Response{}, err
		}
		return Response{Status: 200, Body: map[string]any{"success": true, "quotes": quotes}}, nil

	case epBusBook:
		var in services.BusBookingInput
		if err := bind(req.Body, &in); err != nil {
			return Response{}, err
		}
		out, err := r.Buses.Book(ctx, in)
		if err != nil {
			return Response{}, err
		}
		return Response{Status: 201, Body: out}, nil

	case epBusSeats:
		out, err := r.Buses.Seats(ctx, params["id"], req.Query.Get("journeyDate"))
		if err != nil {
			return Response{}, err
		}
		return Response{Status: 200, Body: out}, nil

	case epBikeBook:
		var in services.BikeBookingInput
		if err := bind(req.Body, &in); err != nil {
			return Response{}, err
		}
		out, err := r.Bikes.Book(ctx, in)
		if err != nil {
			return Response{}, err
		}
		return Response{Status: 201, Body: out}, nil

	case epRefundRequest:
		var in services.RefundInput
		if err := bind(req.Body, &in); err != nil {
			return Response{}, err
		}
		out, err := r.Refunds.Request(ctx, in)
		if err != nil {
			return Response{}, err
		}
		return Response{Status: 201, Body: out}, nil

	default:
		return Response{}, domain.UnsupportedEndpoint(req.Path)
	}
}

func resolve(method, path string) (endpoint, map[string]string) {
	method = strings.ToUpper(strings.TrimSpace(method))
	path = strings.TrimSuffix(strings.TrimSpace(path), "/")

	switch {
	case method == "GET" && path == "/api/meta":
		return epMeta, nil
	case method == "POST" && path == "/api/bookings":
		return epBookings, nil
	case method == "POST" && path == "/api/orders":
		return epOrders, nil
	case method == "POST" && path == "/api/cab-bookings":
		return epCabBook, nil
	case method == "GET" && path == "/api/cab-bookings/search":
		return epCabSearch, nil
	case method == "POST" && path == "/api/bus-bookings/book":
		return epBusBook, nil
	case method == "POST" && path == "/api/bike-bookings/book":
		return epBikeBook, nil
	case method == "POST" && path == "/api/refunds/request":
		return epRefundRequest, nil
	}

	// /api/buses/:id/seats
	if method == "GET" {
		parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
		if len(parts) == 4 && parts[0] == "api" && parts[1] == "buses" && parts[3] == "seats" && parts[2] != "" {
			return epBusSeats, map[string]string{"id": parts[2]}
		}
	}
	return epUnknown, nil
}

func bind(body []byte, dst any) error {
	if len(body) == 0 {
		return domain.Coded(domain.CodeInvalidInput)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return domain.CodedErr(domain.CodeInvalidInput, err)
	}
	return nil
}
