package services

import (
	"context"
	"strings"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/store"
	"backend/internal/utils"
)

// RefundService records refund requests. It never executes a refund; the
// request row is picked up by an external fulfillment process.
type RefundService struct {
	Store store.Store
}

type RefundInput struct {
	OrderID string `json:"orderId"`
	Reason  string `json:"reason"`
}

type RefundResult struct {
	OK       bool    `json:"ok"`
	RefundID string  `json:"refundId"`
	Amount   float64 `json:"amount"`
	Status   string  `json:"status"`
}

func (s RefundService) Request(ctx context.Context, in RefundInput) (RefundResult, error) {
	orderID := strings.TrimSpace(in.OrderID)
	if orderID == "" {
		return RefundResult{}, domain.Coded(domain.CodeInvalidInput)
	}

	amount, found, err := s.lookupAmount(ctx, orderID)
	if err != nil {
		return RefundResult{}, domain.InternalError{Err: err}
	}
	if !found {
		return RefundResult{}, domain.Coded(domain.CodeOrderNotFound)
	}

	refund := models.Refund{
		OrderID:   orderID,
		Reason:    strings.TrimSpace(in.Reason),
		Amount:    amount,
		Status:    models.StatusRequested,
		CreatedAt: utils.FormatDateTime(utils.NowUTC()),
	}
	row, err := store.Encode(refund)
	if err != nil {
		return RefundResult{}, domain.InternalError{Err: err}
	}
	id, err := s.Store.Insert(ctx, store.ColRefunds, row)
	if err != nil {
		return RefundResult{}, domain.InternalError{Err: err}
	}
	return RefundResult{OK: true, RefundID: id, Amount: amount, Status: refund.Status}, nil
}

// lookupAmount checks food orders first, then the generic booking tables, and
// always answers from the frozen pricing snapshot.
func (s RefundService) lookupAmount(ctx context.Context, orderID string) (float64, bool, error) {
	type priced struct {
		Pricing models.PricingSnapshot `json:"pricing"`
	}
	for _, collection := range []string{
		store.ColFoodOrders, store.ColBookings, store.ColCabBookings,
		store.ColBusBookings, store.ColBikeBookings,
	} {
		row, err := s.Store.Get(ctx, collection, orderID)
		if err == store.ErrNotFound {
			continue
		}
		if err != nil {
			return 0, false, err
		}
		var p priced
		if err := store.Decode(row, &p); err != nil {
			return 0, false, err
		}
		return p.Pricing.TotalAmount, true, nil
	}
	return 0, false, nil
}
