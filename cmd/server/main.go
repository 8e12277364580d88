package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"mobileshop-backend/internal/auth"
	"mobileshop-backend/internal/cache"
	"mobileshop-backend/internal/config"
	"mobileshop-backend/internal/database"
	"mobileshop-backend/internal/db"
	"mobileshop-backend/internal/handlers"
	"mobileshop-backend/internal/health"
	router "mobileshop-backend/internal/http"
	"mobileshop-backend/internal/middleware"
	"mobileshop-backend/internal/monitoring"
	"mobileshop-backend/internal/repositories"
	"mobileshop-backend/internal/services"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	pool := db.Connect(cfg)
	defer pool.Close()

	migrator := database.NewMigrator(pool, "migrations")
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Migrations failed: %v", err)
	}

	if err := cache.Init(); err != nil {
		log.Printf("[Main] Redis unavailable, running without cache: %v", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
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

	// Services
	jwtManager := auth.NewJWTManager(cfg)
	userService := services.NewUserService(userRepo, jwtManager)
	catalogService := services.NewCatalogService(productRepo, vendorRepo)
	stockService := services.NewStockService(pool, batchRepo, unitRepo, productRepo, vendorRepo)
	orderService := services.NewOrderService(pool, orderRepo, txnRepo, batchRepo, unitRepo,
		sellerRepo, companyRepo, settingRepo, returnRepo)
	returnService := services.NewReturnService(pool, returnRepo, orderRepo, sellerRepo)
	creditService := services.NewCreditService(pool, creditRepo, batchRepo, unitRepo)
	claimService := services.NewClaimService(pool, claimRepo, batchRepo, unitRepo)
	sellerService := services.NewSellerService(pool, sellerRepo, orderRepo, companyRepo)
	settingService := services.NewSettingService(settingRepo, companyRepo)
	closureService := services.NewClosureService(pool, closureRepo, sellerRepo, companyRepo)
	exportService := services.NewExportService(orderService, returnService, sellerService,
		cfg.NewR2Client(ctx), cfg.R2.Bucket)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	stockHandler := handlers.NewStockHandler(stockService)
	orderHandler := handlers.NewCashOrderHandler(orderService)
	returnHandler := handlers.NewReturnHandler(returnService)
	creditHandler := handlers.NewCreditHandler(creditService)
	claimHandler := handlers.NewClaimHandler(claimService)
	sellerHandler := handlers.NewSellerHandler(sellerService)
	settingHandler := handlers.NewSettingHandler(settingService)
	closureHandler := handlers.NewClosureHandler(closureService)
	exportHandler := handlers.NewExportHandler(exportService)
	healthHandler := handlers.NewHealthHandler(health.NewHealthChecker(pool))

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)

	r := router.NewRouter(
		authHandler,
		catalogHandler,
		stockHandler,
		orderHandler,
		returnHandler,
		creditHandler,
		claimHandler,
		sellerHandler,
		settingHandler,
		closureHandler,
		exportHandler,
		healthHandler,
		authMiddleware,
	)

	sampler := monitoring.NewSampler(15 * time.Second)
	sampler.Start()
	defer sampler.Stop()

	corsHandler := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsHandler(r)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("[Main] Listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
