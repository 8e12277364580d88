package services

import (
	"context"
	"os"
	"testing"

	"mobileshop-backend/internal/database"
	"mobileshop-backend/internal/models"
	"mobileshop-backend/internal/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

// setupTestDB connects to a dedicated test database, applies migrations and
// wipes all ledger state. Set TEST_DATABASE_URL to run integration tests.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load("../../.env")

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set — skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := database.NewMigrator(pool, "../../migrations").RunMigrations(ctx); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	_, err = pool.Exec(ctx, `
		TRUNCATE TABLE cash_order_items, transactions, return_cash_orders, cash_orders,
		               credit_items, credits, claims, week_closures,
		               units, stock_batches, seller_profiles, products, vendors, users
		RESTART IDENTITY CASCADE;
		UPDATE company_profile SET owner_balance = 0, business_balance = 0 WHERE id = 1;
		UPDATE settings SET owner_share = 10, expense_share = 0 WHERE id = 1;
	`)
	if err != nil {
		t.Fatalf("Failed to reset test database: %v", err)
	}

	return pool
}

type testEnv struct {
	pool    *pgxpool.Pool
	stock   *StockService
	orders  *OrderService
	returns *ReturnService
	credits *CreditService
	claims  *ClaimService
	sellers *SellerService
	closure *ClosureService

	batchRepo   *repositories.StockBatchRepository
	sellerRepo  *repositories.SellerProfileRepository
	companyRepo *repositories.CompanyProfileRepository
	txnRepo     *repositories.TransactionRepository
	orderRepo   *repositories.CashOrderRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	pool := setupTestDB(t)
	t.Cleanup(pool.Close)

	productRepo := repositories.NewProductRepository(pool)
	vendorRepo := repositories.NewVendorRepository(pool)
	unitRepo := repositories.NewUnitRepository(pool)
	batchRepo := repositories.NewStockBatchRepository(pool)
	sellerRepo := repositories.NewSellerProfileRepository(pool)
	companyRepo := repositories.NewCompanyProfileRepository(pool)
	settingRepo := repositories.NewSettingRepository(pool)
	orderRepo := repositories.NewCashOrderRepository(pool)
	txnRepo := repositories.NewTransactionRepository(pool)
	returnRepo := repositories.NewReturnRepository(pool)
	creditRepo := repositories.NewCreditRepository(pool)
	claimRepo := repositories.NewClaimRepository(pool)
	closureRepo := repositories.NewWeekClosureRepository(pool)

	return &testEnv{
		pool:        pool,
		stock:       NewStockService(pool, batchRepo, unitRepo, productRepo, vendorRepo),
		orders:      NewOrderService(pool, orderRepo, txnRepo, batchRepo, unitRepo, sellerRepo, companyRepo, settingRepo, returnRepo),
		returns:     NewReturnService(pool, returnRepo, orderRepo, sellerRepo),
		credits:     NewCreditService(pool, creditRepo, batchRepo, unitRepo),
		claims:      NewClaimService(pool, claimRepo, batchRepo, unitRepo),
		sellers:     NewSellerService(pool, sellerRepo, orderRepo, companyRepo),
		closure:     NewClosureService(pool, closureRepo, sellerRepo, companyRepo),
		batchRepo:   batchRepo,
		sellerRepo:  sellerRepo,
		companyRepo: companyRepo,
		txnRepo:     txnRepo,
		orderRepo:   orderRepo,
	}
}

// seedBatch creates a product, vendor, seller (50/20 shares) and a batch of
// five units at purchasing price 100. Serials are S1..S5.
func (e *testEnv) seedBatch(t *testing.T) (batchID, sellerID int) {
	t.Helper()
	ctx := context.Background()

	product := &models.Product{Name: "Galaxy A14"}
	if err := repositories.NewProductRepository(e.pool).Create(ctx, product); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	vendor := &models.Vendor{Name: "Acme Distributors"}
	if err := repositories.NewVendorRepository(e.pool).Create(ctx, vendor); err != nil {
		t.Fatalf("seed vendor: %v", err)
	}

	seller, err := e.sellers.CreateSeller(ctx, &models.CreateSellerRequest{
		Username:      "ravi",
		SellerShare:   50,
		BusinessShare: 20,
	})
	if err != nil {
		t.Fatalf("seed seller: %v", err)
	}

	batch, err := e.stock.Intake(ctx, &models.IntakeRequest{
		ProductID:       product.ID,
		VendorID:        vendor.ID,
		PurchasingPrice: 100,
		UnitSerials:     []string{"S1", "S2", "S3", "S4", "S5"},
	})
	if err != nil {
		t.Fatalf("seed intake: %v", err)
	}
	return batch.ID, seller.ID
}

func (e *testEnv) mustBatch(t *testing.T, id int) *models.StockBatch {
	t.Helper()
	batch, err := e.batchRepo.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get batch %d: %v", id, err)
	}
	return batch
}

func (e *testEnv) mustSeller(t *testing.T, id int) *models.SellerProfile {
	t.Helper()
	seller, err := e.sellerRepo.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get seller %d: %v", id, err)
	}
	return seller
}

func (e *testEnv) mustCompany(t *testing.T) *models.CompanyProfile {
	t.Helper()
	company, err := e.companyRepo.Get(context.Background())
	if err != nil {
		t.Fatalf("get company profile: %v", err)
	}
	return company
}

func (e *testEnv) sellOne(t *testing.T, batchID, sellerID int, price int64, serial string) *models.CashOrder {
	t.Helper()
	order, err := e.orders.CreateOrder(context.Background(), &models.CreateCashOrderRequest{
		CustomerName: "Walk-in",
		SellerID:     sellerID,
		Warranty:     "6 months",
		Items: []models.OrderLineInput{
			{Serial: serial, BatchID: batchID, Price: price},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	return order
}

func assertCounters(t *testing.T, b *models.StockBatch, available, sold, onCredit, onClaim int) {
	t.Helper()
	if b.AvailableStock != available || b.Sold != sold || b.OnCredit != onCredit || b.OnClaim != onClaim {
		t.Fatalf("batch %d counters = %d/%d/%d/%d, want %d/%d/%d/%d",
			b.ID, b.AvailableStock, b.Sold, b.OnCredit, b.OnClaim,
			available, sold, onCredit, onClaim)
	}
}
