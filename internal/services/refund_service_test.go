package services

import (
	"context"
	"testing"

	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/store"
)

func TestRefundReadsSnapshotAmount(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)

	order, err := orderSvc(s).Create(ctx, validOrderInput())
	if err != nil {
		t.Fatalf("order: %v", err)
	}

	out, err := RefundService{Store: s}.Request(ctx, RefundInput{
		OrderID: order.ID,
		Reason:  "delivery never arrived",
	})
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	if !out.OK || out.RefundID == "" {
		t.Fatalf("result = %+v", out)
	}
	if out.Amount != 336 {
		t.Fatalf("Amount = %v, want the order total 336", out.Amount)
	}
	if out.Status != models.StatusRequested {
		t.Fatalf("Status = %q", out.Status)
	}

	row, err := s.Get(ctx, store.ColRefunds, out.RefundID)
	if err != nil {
		t.Fatalf("refund row missing: %v", err)
	}
	var refund models.Refund
	if err := store.Decode(row, &refund); err != nil {
		t.Fatal(err)
	}
	if refund.OrderID != order.ID || refund.Amount != 336 {
		t.Fatalf("refund = %+v", refund)
	}
}

func TestRefundCoversBookingCollections(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)

	cab, err := cabSvc(s).Book(ctx, validCabInput())
	if err != nil {
		t.Fatalf("cab: %v", err)
	}

	out, err := RefundService{Store: s}.Request(ctx, RefundInput{OrderID: cab.ID})
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	if out.Amount != 909.30 {
		t.Fatalf("Amount = %v, want cab total 909.30", out.Amount)
	}
}

func TestRefundUnknownOrder(t *testing.T) {
	ctx := context.Background()
	svc := RefundService{Store: seededStore(t)}

	_, err := svc.Request(ctx, RefundInput{OrderID: "order-ghost"})
	wantCode(t, err, domain.CodeOrderNotFound)

	_, err = svc.Request(ctx, RefundInput{OrderID: "  "})
	wantCode(t, err, domain.CodeInvalidInput)
}
