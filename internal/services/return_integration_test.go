package services

import (
	"context"
	"errors"
	"testing"

	"mobileshop-backend/internal/models"
)

// NOT_INTERESTED records the goods' cost and leaves every balance alone.
func TestReturn_NotInterested(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	batchID, sellerID := env.seedBatch(t)
	order := env.sellOne(t, batchID, sellerID, 150, "S1")

	ret, err := env.returns.CreateReturn(ctx, &models.CreateReturnRequest{
		CashOrderID: order.ID,
		Reason:      models.ReturnReasonNotInterested,
	})
	if err != nil {
		t.Fatalf("create return: %v", err)
	}
	if ret.ReturnAmount != 100 {
		t.Errorf("return amount = %d, want 100 (purchasing price)", ret.ReturnAmount)
	}
	if got := env.mustSeller(t, sellerID).Profit; got != 25 {
		t.Errorf("seller profit = %d, want 25 (unchanged by return)", got)
	}
	// Returns never restock.
	assertCounters(t, env.mustBatch(t, batchID), 4, 1, 0, 0)
}

// ISSUE refunds the sale price and claws back only the seller's cut.
func TestReturn_Issue(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	batchID, sellerID := env.seedBatch(t)
	order := env.sellOne(t, batchID, sellerID, 150, "S1")

	ret, err := env.returns.CreateReturn(ctx, &models.CreateReturnRequest{
		CashOrderID: order.ID,
		Reason:      models.ReturnReasonIssue,
	})
	if err != nil {
		t.Fatalf("create return: %v", err)
	}
	if ret.ReturnAmount != 150 {
		t.Errorf("return amount = %d, want 150 (sale price)", ret.ReturnAmount)
	}
	if got := env.mustSeller(t, sellerID).Profit; got != 0 {
		t.Errorf("seller profit = %d, want 0 (25 clawed back)", got)
	}
	// Owner and business keep their cut.
	company := env.mustCompany(t)
	if company.OwnerBalance != 5 || company.BusinessBalance != 10 {
		t.Errorf("company balances = %d/%d, want 5/10 (untouched by return)",
			company.OwnerBalance, company.BusinessBalance)
	}
}

// CUSTOM corrects the seller's cut to the share of the re-derived profit.
func TestReturn_Custom(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	batchID, sellerID := env.seedBatch(t)
	order := env.sellOne(t, batchID, sellerID, 150, "S1")

	// Refund 120: effective profit becomes 30, seller's cut 15.
	ret, err := env.returns.CreateReturn(ctx, &models.CreateReturnRequest{
		CashOrderID:  order.ID,
		Reason:       models.ReturnReasonCustom,
		ReturnAmount: 120,
	})
	if err != nil {
		t.Fatalf("create return: %v", err)
	}
	if ret.ReturnAmount != 120 {
		t.Errorf("return amount = %d, want 120", ret.ReturnAmount)
	}
	if got := env.mustSeller(t, sellerID).Profit; got != 15 {
		t.Errorf("seller profit = %d, want 15", got)
	}
}

func TestReturn_OncePerOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	batchID, sellerID := env.seedBatch(t)
	order := env.sellOne(t, batchID, sellerID, 150, "S1")

	if _, err := env.returns.CreateReturn(ctx, &models.CreateReturnRequest{
		CashOrderID: order.ID,
		Reason:      models.ReturnReasonIssue,
	}); err != nil {
		t.Fatalf("first return: %v", err)
	}

	_, err := env.returns.CreateReturn(ctx, &models.CreateReturnRequest{
		CashOrderID: order.ID,
		Reason:      models.ReturnReasonNotInterested,
	})
	var invalid *models.InvalidStateError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidStateError for second return, got %v", err)
	}

	// And a returned order cannot be deleted.
	err = env.orders.DeleteOrder(ctx, order.ID)
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidStateError deleting returned order, got %v", err)
	}
}

func TestReturn_UnknownReason(t *testing.T) {
	env := newTestEnv(t)
	batchID, sellerID := env.seedBatch(t)
	order := env.sellOne(t, batchID, sellerID, 150, "S1")

	if _, err := env.returns.CreateReturn(context.Background(), &models.CreateReturnRequest{
		CashOrderID: order.ID,
		Reason:      "DAMAGED",
	}); err == nil {
		t.Fatal("expected error for unknown reason")
	}
}
