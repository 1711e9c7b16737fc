package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/store"
	"backend/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders e-ticket and invoice PDFs from stored booking rows.
type DocsService struct {
	Store     store.Store
	RequestID string
}

// BusETicket renders the e-ticket for a bus booking.
func (s DocsService) BusETicket(ctx context.Context, bookingID string) ([]byte, string, error) {
	row, err := s.Store.Get(ctx, store.ColBusBookings, bookingID)
	if err == store.ErrNotFound {
		return nil, "", domain.Coded(domain.CodeOrderNotFound)
	}
	if err != nil {
		return nil, "", domain.InternalError{Err: err}
	}
	var booking models.BusBooking
	if err := store.Decode(row, &booking); err != nil {
		return nil, "", domain.InternalError{Err: err}
	}

	origin, destination, departure := "-", "-", "-"
	if routeRow, err := s.Store.Get(ctx, store.ColBusRoutes, booking.RouteID); err == nil {
		var route models.BusRoute
		if store.Decode(routeRow, &route) == nil {
			origin = route.Origin
			destination = route.Destination
			departure = route.DepartureTime
		}
	}

	utils.LogEvent(s.RequestID, "docs", "bus_eticket", "booking_id="+bookingID)
	return buildBusETicketPDF(booking, origin, destination, departure)
}

// OrderInvoice renders the invoice for a food order.
func (s DocsService) OrderInvoice(ctx context.Context, orderID string) ([]byte, string, error) {
	row, err := s.Store.Get(ctx, store.ColFoodOrders, orderID)
	if err == store.ErrNotFound {
		return nil, "", domain.Coded(domain.CodeOrderNotFound)
	}
	if err != nil {
		return nil, "", domain.InternalError{Err: err}
	}
	var order models.FoodOrder
	if err := store.Decode(row, &order); err != nil {
		return nil, "", domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "docs", "order_invoice", "order_id="+orderID)
	return buildOrderInvoicePDF(order)
}

func buildBusETicketPDF(b models.BusBooking, origin, destination, departure string) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BUS E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Passenger   : %s", safe(b.UserName)),
		fmt.Sprintf("Phone       : %s", safe(b.Phone)),
		fmt.Sprintf("Route       : %s -> %s", safe(origin), safe(destination)),
		fmt.Sprintf("Journey     : %s %s", safe(b.JourneyDate), safe(departure)),
		fmt.Sprintf("Seats       : %s", safe(strings.Join(b.Seats, ", "))),
		fmt.Sprintf("Fare/Seat   : %s", utils.FormatMoney(b.FarePerSeat)),
		fmt.Sprintf("Total       : %s", utils.FormatMoney(b.Pricing.TotalAmount)),
		fmt.Sprintf("Booking Ref : %s", safe(b.ID)),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please present this ticket at boarding. Seats are held under the booking reference above.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("ETICKET_%s.pdf", b.ID), nil
}

func buildOrderInvoicePDF(o models.FoodOrder) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Invoice No : INV-"+safe(o.ID))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Date       : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Billed To  : "+safe(o.UserName)+" ("+safe(o.Phone)+")")
	pdf.Ln(7)
	pdf.Cell(0, 7, "Deliver To : "+safe(o.DeliveryAddress))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Items:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	for i, item := range o.Items {
		line := fmt.Sprintf("%d) %s x%d @ %s", i+1, item.Name, item.Quantity, utils.FormatMoney(item.Price))
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.Cell(0, 6, "Subtotal : "+utils.FormatMoney(o.Pricing.BaseAmount))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("GST      : %s (CGST %s + SGST %s)",
		utils.FormatMoney(o.Pricing.GSTAmount),
		utils.FormatMoney(o.Pricing.CGST),
		utils.FormatMoney(o.Pricing.SGST)))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Total: "+utils.FormatMoney(o.Pricing.TotalAmount))
	pdf.Ln(8)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("INVOICE_%s.pdf", o.ID), nil
}

func safe(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
