package services

import (
	"context"
	"errors"
	"testing"

	"mobileshop-backend/internal/models"
)

// Purchasing price 100, sale at 150, shares seller=50 business=20 owner=10:
// profit 50 splits into 25 / 10 / 5.
func TestCreateOrder_SaleScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	batchID, sellerID := env.seedBatch(t)

	order := env.sellOne(t, batchID, sellerID, 150, "S1")

	if order.TotalAmount != 150 || order.TotalProfit != 50 || order.Quantity != 1 {
		t.Fatalf("order totals = amount %d profit %d qty %d, want 150/50/1",
			order.TotalAmount, order.TotalProfit, order.Quantity)
	}
	if order.UniqueID == "" {
		t.Error("order unique_id not assigned")
	}

	assertCounters(t, env.mustBatch(t, batchID), 4, 1, 0, 0)

	tx, err := env.pool.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback(ctx)
	txn, err := env.txnRepo.GetByOrderTx(ctx, tx, order.ID)
	if err != nil {
		t.Fatalf("transaction row missing: %v", err)
	}
	tx.Rollback(ctx)

	if txn.TotalProfit != 50 || txn.SellerProfit != 25 || txn.OwnerProfit != 5 || txn.BusinessProfit != 10 {
		t.Fatalf("distribution = %d/%d/%d/%d, want 50/25/5/10",
			txn.TotalProfit, txn.SellerProfit, txn.OwnerProfit, txn.BusinessProfit)
	}
	if got := env.mustSeller(t, sellerID).Profit; got != 25 {
		t.Errorf("seller profit = %d, want 25", got)
	}
	company := env.mustCompany(t)
	if company.OwnerBalance != 5 || company.BusinessBalance != 10 {
		t.Errorf("company balances = %d/%d, want 5/10", company.OwnerBalance, company.BusinessBalance)
	}

	// Asset only counts available + on_credit units.
	if got := env.mustBatch(t, batchID).Asset; got != 400 {
		t.Errorf("batch asset = %d, want 400", got)
	}
}

// A second distribute for the same order must not double-book.
func TestDistribute_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	batchID, sellerID := env.seedBatch(t)
	order := env.sellOne(t, batchID, sellerID, 150, "S1")

	tx, err := env.pool.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback(ctx)

	seller, err := env.sellerRepo.GetForUpdateTx(ctx, tx, sellerID)
	if err != nil {
		t.Fatalf("lock seller: %v", err)
	}
	full, err := env.orderRepo.GetForUpdateTx(ctx, tx, order.ID)
	if err != nil {
		t.Fatalf("lock order: %v", err)
	}
	if err := env.orders.distributeTx(ctx, tx, full, seller, 10); err != nil {
		t.Fatalf("second distribute: %v", err)
	}
	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}

	if got := env.mustSeller(t, sellerID).Profit; got != 25 {
		t.Errorf("seller profit after second distribute = %d, want 25", got)
	}
	company := env.mustCompany(t)
	if company.OwnerBalance != 5 || company.BusinessBalance != 10 {
		t.Errorf("company balances after second distribute = %d/%d, want 5/10",
			company.OwnerBalance, company.BusinessBalance)
	}

	var count int
	if err := env.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM transactions WHERE cash_order_id=$1`, order.ID).Scan(&count); err != nil {
		t.Fatalf("count transactions: %v", err)
	}
	if count != 1 {
		t.Errorf("transaction rows = %d, want 1", count)
	}
}

func TestDeleteOrder_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	batchID, sellerID := env.seedBatch(t)

	order := env.sellOne(t, batchID, sellerID, 150, "S1")

	if err := env.orders.DeleteOrder(ctx, order.ID); err != nil {
		t.Fatalf("delete order: %v", err)
	}

	assertCounters(t, env.mustBatch(t, batchID), 5, 0, 0, 0)
	if got := env.mustSeller(t, sellerID).Profit; got != 0 {
		t.Errorf("seller profit after delete = %d, want 0", got)
	}
	company := env.mustCompany(t)
	if company.OwnerBalance != 0 || company.BusinessBalance != 0 {
		t.Errorf("company balances after delete = %d/%d, want 0/0",
			company.OwnerBalance, company.BusinessBalance)
	}

	// The unit is sellable again.
	if _, err := env.orders.CreateOrder(ctx, &models.CreateCashOrderRequest{
		CustomerName: "Walk-in",
		SellerID:     sellerID,
		Items:        []models.OrderLineInput{{Serial: "S1", BatchID: batchID, Price: 140}},
	}); err != nil {
		t.Fatalf("resell after delete: %v", err)
	}
}

func TestCreateOrder_RejectsSoldUnit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	batchID, sellerID := env.seedBatch(t)
	env.sellOne(t, batchID, sellerID, 150, "S1")

	_, err := env.orders.CreateOrder(ctx, &models.CreateCashOrderRequest{
		CustomerName: "Walk-in",
		SellerID:     sellerID,
		Items:        []models.OrderLineInput{{Serial: "S1", BatchID: batchID, Price: 150}},
	})
	var dup *models.DuplicateUnitError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateUnitError, got %v", err)
	}
}

func TestCreateOrder_InsufficientStock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	batchID, sellerID := env.seedBatch(t)

	// Drain the batch.
	for _, serial := range []string{"S1", "S2", "S3", "S4", "S5"} {
		env.sellOne(t, batchID, sellerID, 150, serial)
	}

	_, err := env.orders.CreateOrder(ctx, &models.CreateCashOrderRequest{
		CustomerName: "Walk-in",
		SellerID:     sellerID,
		Items:        []models.OrderLineInput{{Serial: "S1", BatchID: batchID, Price: 150}},
	})
	if err == nil {
		t.Fatal("expected sale against drained batch to fail")
	}
	var insufficient *models.InsufficientStockError
	var dup *models.DuplicateUnitError
	if !errors.As(err, &insufficient) && !errors.As(err, &dup) {
		t.Fatalf("expected InsufficientStockError or DuplicateUnitError, got %v", err)
	}
}

func TestCreateOrder_UnknownSeller(t *testing.T) {
	env := newTestEnv(t)
	batchID, _ := env.seedBatch(t)

	_, err := env.orders.CreateOrder(context.Background(), &models.CreateCashOrderRequest{
		CustomerName: "Walk-in",
		SellerID:     9999,
		Items:        []models.OrderLineInput{{Serial: "S1", BatchID: batchID, Price: 150}},
	})
	var notFound *models.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestIntake_DuplicateSerialRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedBatch(t)

	second := &models.Product{Name: "iPhone 13"}
	if err := env.stock.ProductRepo.Create(ctx, second); err != nil {
		t.Fatalf("seed second product: %v", err)
	}

	_, err := env.stock.Intake(ctx, &models.IntakeRequest{
		ProductID:       second.ID,
		VendorID:        1,
		PurchasingPrice: 200,
		UnitSerials:     []string{"S3", "X1"},
	})
	var dup *models.DuplicateUnitError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateUnitError for serial bound to another batch, got %v", err)
	}

	// The rejected intake must not leave a partial batch behind.
	serials, err := env.stock.QueryAvailable(ctx, second.ID)
	if err != nil {
		t.Fatalf("query available: %v", err)
	}
	if len(serials) != 0 {
		t.Errorf("partial intake leaked serials: %v", serials)
	}
}
