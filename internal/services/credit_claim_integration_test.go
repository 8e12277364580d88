package services

import (
	"context"
	"errors"
	"testing"

	"mobileshop-backend/internal/models"
)

func TestCredit_PendingToCleared(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	batchID, _ := env.seedBatch(t)

	credit, err := env.credits.CreateCredit(ctx, &models.CreateCreditRequest{
		CustomerName: "Regular customer",
		Items: []models.CreditLineInput{
			{Serial: "S1", BatchID: batchID, Price: 150},
		},
	})
	if err != nil {
		t.Fatalf("create credit: %v", err)
	}
	if credit.PaymentStatus != models.CreditStatusPending || credit.Quantity != 1 {
		t.Fatalf("credit = %s qty %d, want PENDING qty 1", credit.PaymentStatus, credit.Quantity)
	}
	assertCounters(t, env.mustBatch(t, batchID), 4, 0, 1, 0)

	// Clearing shifts on_credit to sold; available is untouched here.
	credit, err = env.credits.UpdateStatus(ctx, credit.ID, models.CreditStatusCleared)
	if err != nil {
		t.Fatalf("clear credit: %v", err)
	}
	assertCounters(t, env.mustBatch(t, batchID), 4, 1, 0, 0)

	// Clearing again is rejected.
	_, err = env.credits.UpdateStatus(ctx, credit.ID, models.CreditStatusCleared)
	var invalid *models.InvalidStateError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidStateError, got %v", err)
	}

	// And back to PENDING reverses the shift.
	if _, err := env.credits.UpdateStatus(ctx, credit.ID, models.CreditStatusPending); err != nil {
		t.Fatalf("revert credit: %v", err)
	}
	assertCounters(t, env.mustBatch(t, batchID), 4, 0, 1, 0)
}

func TestCredit_DeleteReleasesUnits(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	batchID, sellerID := env.seedBatch(t)

	credit, err := env.credits.CreateCredit(ctx, &models.CreateCreditRequest{
		CustomerName: "Regular customer",
		Items: []models.CreditLineInput{
			{Serial: "S1", BatchID: batchID, Price: 150},
			{Serial: "S2", BatchID: batchID, Price: 150},
		},
	})
	if err != nil {
		t.Fatalf("create credit: %v", err)
	}
	assertCounters(t, env.mustBatch(t, batchID), 3, 0, 2, 0)

	// A unit on credit cannot be sold.
	_, err = env.orders.CreateOrder(ctx, &models.CreateCashOrderRequest{
		CustomerName: "Walk-in",
		SellerID:     sellerID,
		Items:        []models.OrderLineInput{{Serial: "S1", BatchID: batchID, Price: 150}},
	})
	var dup *models.DuplicateUnitError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateUnitError selling credited unit, got %v", err)
	}

	if err := env.credits.DeleteCredit(ctx, credit.ID); err != nil {
		t.Fatalf("delete credit: %v", err)
	}
	assertCounters(t, env.mustBatch(t, batchID), 5, 0, 0, 0)
}

func TestClaim_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	batchID, _ := env.seedBatch(t)

	claim, err := env.claims.CreateClaim(ctx, &models.CreateClaimRequest{
		Serial: "S1",
		Reason: "dead on arrival",
	})
	if err != nil {
		t.Fatalf("create claim: %v", err)
	}
	assertCounters(t, env.mustBatch(t, batchID), 4, 0, 0, 1)

	// The same unit cannot carry two open claims.
	_, err = env.claims.CreateClaim(ctx, &models.CreateClaimRequest{Serial: "S1", Reason: "again"})
	var dup *models.DuplicateUnitError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateUnitError for second open claim, got %v", err)
	}

	claim, err = env.claims.ResolveClaim(ctx, claim.ID)
	if err != nil {
		t.Fatalf("resolve claim: %v", err)
	}
	if !claim.Cleared {
		t.Error("claim not marked cleared")
	}
	assertCounters(t, env.mustBatch(t, batchID), 5, 0, 0, 0)

	// Resolving twice is rejected.
	_, err = env.claims.ResolveClaim(ctx, claim.ID)
	var invalid *models.InvalidStateError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidStateError, got %v", err)
	}

	// Deleting a cleared claim leaves counters alone.
	if err := env.claims.DeleteClaim(ctx, claim.ID); err != nil {
		t.Fatalf("delete claim: %v", err)
	}
	assertCounters(t, env.mustBatch(t, batchID), 5, 0, 0, 0)
}

func TestClaim_DeleteOpenClaimRestocks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	batchID, _ := env.seedBatch(t)

	claim, err := env.claims.CreateClaim(ctx, &models.CreateClaimRequest{
		Serial: "S2",
		Reason: "screen flicker",
	})
	if err != nil {
		t.Fatalf("create claim: %v", err)
	}
	assertCounters(t, env.mustBatch(t, batchID), 4, 0, 0, 1)

	if err := env.claims.DeleteClaim(ctx, claim.ID); err != nil {
		t.Fatalf("delete claim: %v", err)
	}
	assertCounters(t, env.mustBatch(t, batchID), 5, 0, 0, 0)
}

// The four counters always partition the batch's member units.
func TestBatchCounters_SumInvariant(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	batchID, sellerID := env.seedBatch(t)

	check := func(step string) {
		b := env.mustBatch(t, batchID)
		if sum := b.AvailableStock + b.Sold + b.OnCredit + b.OnClaim; sum != 5 {
			t.Fatalf("%s: counter sum = %d, want 5 (%d/%d/%d/%d)",
				step, sum, b.AvailableStock, b.Sold, b.OnCredit, b.OnClaim)
		}
	}

	check("after intake")

	order := env.sellOne(t, batchID, sellerID, 150, "S1")
	check("after sale")

	credit, err := env.credits.CreateCredit(ctx, &models.CreateCreditRequest{
		CustomerName: "Regular",
		Items:        []models.CreditLineInput{{Serial: "S2", BatchID: batchID, Price: 150}},
	})
	if err != nil {
		t.Fatalf("create credit: %v", err)
	}
	check("after credit")

	claim, err := env.claims.CreateClaim(ctx, &models.CreateClaimRequest{Serial: "S3", Reason: "faulty"})
	if err != nil {
		t.Fatalf("create claim: %v", err)
	}
	check("after claim")

	if _, err := env.credits.UpdateStatus(ctx, credit.ID, models.CreditStatusCleared); err != nil {
		t.Fatalf("clear credit: %v", err)
	}
	check("after credit clear")

	if _, err := env.claims.ResolveClaim(ctx, claim.ID); err != nil {
		t.Fatalf("resolve claim: %v", err)
	}
	check("after claim clear")

	if err := env.orders.DeleteOrder(ctx, order.ID); err != nil {
		t.Fatalf("delete order: %v", err)
	}
	check("after order delete")
}

func TestCredit_AddItem(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	batchID, _ := env.seedBatch(t)

	credit, err := env.credits.CreateCredit(ctx, &models.CreateCreditRequest{
		CustomerName: "Regular",
		Items:        []models.CreditLineInput{{Serial: "S1", BatchID: batchID, Price: 150}},
	})
	if err != nil {
		t.Fatalf("create credit: %v", err)
	}

	credit, err = env.credits.AddItem(ctx, credit.ID, &models.CreditLineInput{
		Serial: "S2", BatchID: batchID, Price: 140,
	})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if credit.Quantity != 2 || len(credit.Items) != 2 {
		t.Errorf("quantity = %d, items = %d, want 2/2", credit.Quantity, len(credit.Items))
	}
	assertCounters(t, env.mustBatch(t, batchID), 3, 0, 2, 0)

	// A held unit cannot be added twice.
	if _, err := env.credits.AddItem(ctx, credit.ID, &models.CreditLineInput{
		Serial: "S1", BatchID: batchID, Price: 150,
	}); err == nil {
		t.Fatal("expected error adding an already-credited unit")
	}

	// Cleared credits are closed.
	if _, err := env.credits.UpdateStatus(ctx, credit.ID, models.CreditStatusCleared); err != nil {
		t.Fatalf("clear credit: %v", err)
	}
	var invalidState *models.InvalidStateError
	_, err = env.credits.AddItem(ctx, credit.ID, &models.CreditLineInput{
		Serial: "S3", BatchID: batchID, Price: 130,
	})
	if !errors.As(err, &invalidState) {
		t.Fatalf("expected InvalidStateError adding to cleared credit, got %v", err)
	}
}

func TestLookupSerial(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	batchID, sellerID := env.seedBatch(t)
	env.sellOne(t, batchID, sellerID, 150, "S1")

	sold, err := env.stock.LookupSerial(ctx, "S1")
	if err != nil {
		t.Fatalf("lookup sold unit: %v", err)
	}
	if sold.Status != "already sold" {
		t.Errorf("status = %q, want %q", sold.Status, "already sold")
	}

	free, err := env.stock.LookupSerial(ctx, "S2")
	if err != nil {
		t.Fatalf("lookup free unit: %v", err)
	}
	if free.Status != "available" {
		t.Errorf("status = %q, want %q", free.Status, "available")
	}

	var notFound *models.NotFoundError
	if _, err := env.stock.LookupSerial(ctx, "NOPE"); !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError for unknown serial, got %v", err)
	}
}
