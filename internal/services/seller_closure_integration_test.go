package services

import (
	"context"
	"testing"

	"mobileshop-backend/internal/models"
)

// Raising seller_share 50 -> 60 on a historical profit of 50 moves the
// seller from 25 to 30; cutting business_share 20 -> 10 pulls the matching
// 5 back out of the business balance.
func TestUpdateSellerShare_Retroactive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	batchID, sellerID := env.seedBatch(t)
	env.sellOne(t, batchID, sellerID, 150, "S1")

	if got := env.mustSeller(t, sellerID).Profit; got != 25 {
		t.Fatalf("precondition: seller profit = %d, want 25", got)
	}
	if got := env.mustCompany(t).BusinessBalance; got != 10 {
		t.Fatalf("precondition: business balance = %d, want 10", got)
	}

	seller, err := env.sellers.UpdateSellerShare(ctx, sellerID, &models.UpdateSellerShareRequest{
		SellerShare:   60,
		BusinessShare: 10,
	})
	if err != nil {
		t.Fatalf("update shares: %v", err)
	}
	if seller.SellerShare != 60 || seller.BusinessShare != 10 {
		t.Errorf("shares = %d/%d, want 60/10", seller.SellerShare, seller.BusinessShare)
	}
	if seller.Profit != 30 {
		t.Errorf("seller profit = %d, want 30", seller.Profit)
	}
	if got := env.mustCompany(t).BusinessBalance; got != 5 {
		t.Errorf("business balance = %d, want 5", got)
	}
	// Owner balance is not part of a share edit.
	if got := env.mustCompany(t).OwnerBalance; got != 5 {
		t.Errorf("owner balance = %d, want 5", got)
	}
}

func TestUpdateSellerShare_CoversEveryHistoricalItem(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	batchID, sellerID := env.seedBatch(t)

	// Three sales of profit 50 each.
	for _, serial := range []string{"S1", "S2", "S3"} {
		env.sellOne(t, batchID, sellerID, 150, serial)
	}
	if got := env.mustSeller(t, sellerID).Profit; got != 75 {
		t.Fatalf("precondition: seller profit = %d, want 75", got)
	}

	seller, err := env.sellers.UpdateSellerShare(ctx, sellerID, &models.UpdateSellerShareRequest{
		SellerShare:   40,
		BusinessShare: 20,
	})
	if err != nil {
		t.Fatalf("update shares: %v", err)
	}
	// 3 items x (20 - 25) = -15.
	if seller.Profit != 60 {
		t.Errorf("seller profit = %d, want 60", seller.Profit)
	}
	// Business share unchanged, so the balance stays.
	if got := env.mustCompany(t).BusinessBalance; got != 30 {
		t.Errorf("business balance = %d, want 30", got)
	}
}

func TestClosePeriod(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	batchID, sellerID := env.seedBatch(t)
	env.sellOne(t, batchID, sellerID, 150, "S1")
	env.sellOne(t, batchID, sellerID, 150, "S2")

	// seller.profit = 50, owner = 10, business = 20 at this point.
	closure, err := env.closure.ClosePeriod(ctx)
	if err != nil {
		t.Fatalf("close period: %v", err)
	}
	if closure.TotalProfit != 50 {
		t.Errorf("closure total_profit = %d, want 50", closure.TotalProfit)
	}
	if closure.BusinessProfit != 20 {
		t.Errorf("closure business_profit = %d, want 20", closure.BusinessProfit)
	}

	if got := env.mustSeller(t, sellerID).Profit; got != 0 {
		t.Errorf("seller profit after close = %d, want 0", got)
	}
	company := env.mustCompany(t)
	if company.BusinessBalance != 0 {
		t.Errorf("business balance after close = %d, want 0", company.BusinessBalance)
	}
	// Owner accumulates across periods.
	if company.OwnerBalance != 10 {
		t.Errorf("owner balance after close = %d, want 10", company.OwnerBalance)
	}

	// A second close snapshots the now-empty state.
	second, err := env.closure.ClosePeriod(ctx)
	if err != nil {
		t.Fatalf("second close: %v", err)
	}
	if second.TotalProfit != 0 || second.BusinessProfit != 0 {
		t.Errorf("second closure = %d/%d, want 0/0", second.TotalProfit, second.BusinessProfit)
	}

	closures, err := env.closure.ListClosures(ctx)
	if err != nil {
		t.Fatalf("list closures: %v", err)
	}
	if len(closures) != 2 {
		t.Errorf("closures = %d, want 2", len(closures))
	}
}

func TestQueryAvailable_ExcludesCommittedUnits(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	batchID, sellerID := env.seedBatch(t)

	env.sellOne(t, batchID, sellerID, 150, "S1")
	if _, err := env.credits.CreateCredit(ctx, &models.CreateCreditRequest{
		CustomerName: "Regular",
		Items:        []models.CreditLineInput{{Serial: "S2", BatchID: batchID, Price: 150}},
	}); err != nil {
		t.Fatalf("create credit: %v", err)
	}
	if _, err := env.claims.CreateClaim(ctx, &models.CreateClaimRequest{Serial: "S3", Reason: "faulty"}); err != nil {
		t.Fatalf("create claim: %v", err)
	}

	batch := env.mustBatch(t, batchID)
	serials, err := env.stock.QueryAvailable(ctx, batch.ProductID)
	if err != nil {
		t.Fatalf("query available: %v", err)
	}
	want := []string{"S4", "S5"}
	if len(serials) != len(want) {
		t.Fatalf("available serials = %v, want %v", serials, want)
	}
	for i := range want {
		if serials[i] != want[i] {
			t.Fatalf("available serials = %v, want %v", serials, want)
		}
	}
}
