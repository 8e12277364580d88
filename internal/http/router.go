package http

import (
	"net/http"

	"mobileshop-backend/internal/handlers"
	"mobileshop-backend/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	catalogHandler *handlers.CatalogHandler,
	stockHandler *handlers.StockHandler,
	orderHandler *handlers.CashOrderHandler,
	returnHandler *handlers.ReturnHandler,
	creditHandler *handlers.CreditHandler,
	claimHandler *handlers.ClaimHandler,
	sellerHandler *handlers.SellerHandler,
	settingHandler *handlers.SettingHandler,
	closureHandler *handlers.ClosureHandler,
	exportHandler *handlers.ExportHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	admin := authMiddleware.RequireRole("admin")

	// Catalog
	productsAPI := r.PathPrefix("/api/products").Subrouter()
	productsAPI.Use(authMiddleware.Authenticate)
	productsAPI.HandleFunc("", catalogHandler.ListProducts).Methods("GET")
	productsAPI.HandleFunc("", catalogHandler.CreateProduct).Methods("POST")
	productsAPI.HandleFunc("/{id}", catalogHandler.GetProduct).Methods("GET")
	productsAPI.HandleFunc("/{product_id}/available", stockHandler.QueryAvailable).Methods("GET")

	vendorsAPI := r.PathPrefix("/api/vendors").Subrouter()
	vendorsAPI.Use(authMiddleware.Authenticate)
	vendorsAPI.HandleFunc("", catalogHandler.ListVendors).Methods("GET")
	vendorsAPI.HandleFunc("", catalogHandler.CreateVendor).Methods("POST")
	vendorsAPI.HandleFunc("/{id}", catalogHandler.GetVendor).Methods("GET")

	// Stock ledger
	stockAPI := r.PathPrefix("/api/stock").Subrouter()
	stockAPI.Use(authMiddleware.Authenticate)
	stockAPI.HandleFunc("/batches", stockHandler.ListBatches).Methods("GET")
	stockAPI.HandleFunc("/batches", stockHandler.Intake).Methods("POST")
	stockAPI.HandleFunc("/batches/{id}", stockHandler.GetBatch).Methods("GET")
	stockAPI.HandleFunc("/batches/{id}", admin(http.HandlerFunc(stockHandler.AdjustBatch)).ServeHTTP).Methods("PATCH")
	stockAPI.HandleFunc("/units/{serial}", stockHandler.LookupSerial).Methods("GET")
	stockAPI.HandleFunc("/asset", stockHandler.TotalAsset).Methods("GET")

	// Sales
	ordersAPI := r.PathPrefix("/api/orders").Subrouter()
	ordersAPI.Use(authMiddleware.Authenticate)
	ordersAPI.HandleFunc("", orderHandler.ListOrders).Methods("GET")
	ordersAPI.HandleFunc("", orderHandler.CreateOrder).Methods("POST")
	ordersAPI.HandleFunc("/{id}", orderHandler.GetOrder).Methods("GET")
	ordersAPI.HandleFunc("/{id}", orderHandler.UpdateOrder).Methods("PUT")
	ordersAPI.HandleFunc("/{id}", orderHandler.DeleteOrder).Methods("DELETE")

	transactionsAPI := r.PathPrefix("/api/transactions").Subrouter()
	transactionsAPI.Use(authMiddleware.Authenticate)
	transactionsAPI.HandleFunc("", orderHandler.ListTransactions).Methods("GET")

	// Returns
	returnsAPI := r.PathPrefix("/api/returns").Subrouter()
	returnsAPI.Use(authMiddleware.Authenticate)
	returnsAPI.HandleFunc("", returnHandler.ListReturns).Methods("GET")
	returnsAPI.HandleFunc("", returnHandler.CreateReturn).Methods("POST")

	// Credits
	creditsAPI := r.PathPrefix("/api/credits").Subrouter()
	creditsAPI.Use(authMiddleware.Authenticate)
	creditsAPI.HandleFunc("", creditHandler.ListCredits).Methods("GET")
	creditsAPI.HandleFunc("", creditHandler.CreateCredit).Methods("POST")
	creditsAPI.HandleFunc("/{id}", creditHandler.GetCredit).Methods("GET")
	creditsAPI.HandleFunc("/{id}/items", creditHandler.AddItem).Methods("POST")
	creditsAPI.HandleFunc("/{id}/status", creditHandler.UpdateStatus).Methods("PATCH")
	creditsAPI.HandleFunc("/{id}", creditHandler.DeleteCredit).Methods("DELETE")

	// Claims
	claimsAPI := r.PathPrefix("/api/claims").Subrouter()
	claimsAPI.Use(authMiddleware.Authenticate)
	claimsAPI.HandleFunc("", claimHandler.ListClaims).Methods("GET")
	claimsAPI.HandleFunc("", claimHandler.CreateClaim).Methods("POST")
	claimsAPI.HandleFunc("/{id}", claimHandler.GetClaim).Methods("GET")
	claimsAPI.HandleFunc("/{id}/resolve", claimHandler.ResolveClaim).Methods("PATCH")
	claimsAPI.HandleFunc("/{id}", claimHandler.DeleteClaim).Methods("DELETE")

	// Sellers
	sellersAPI := r.PathPrefix("/api/sellers").Subrouter()
	sellersAPI.Use(authMiddleware.Authenticate)
	sellersAPI.HandleFunc("", sellerHandler.ListSellers).Methods("GET")
	sellersAPI.HandleFunc("", sellerHandler.CreateSeller).Methods("POST")
	sellersAPI.HandleFunc("/{id}", sellerHandler.GetSeller).Methods("GET")
	sellersAPI.HandleFunc("/{id}/shares", admin(http.HandlerFunc(sellerHandler.UpdateShares)).ServeHTTP).Methods("PUT")

	// Settings and company balances (admin only for writes)
	settingsAPI := r.PathPrefix("/api/settings").Subrouter()
	settingsAPI.Use(authMiddleware.Authenticate)
	settingsAPI.HandleFunc("", settingHandler.GetSetting).Methods("GET")
	settingsAPI.HandleFunc("", admin(http.HandlerFunc(settingHandler.UpdateSetting)).ServeHTTP).Methods("PUT")

	companyAPI := r.PathPrefix("/api/company").Subrouter()
	companyAPI.Use(authMiddleware.Authenticate)
	companyAPI.HandleFunc("", settingHandler.GetCompanyProfile).Methods("GET")

	// Period close
	closuresAPI := r.PathPrefix("/api/closures").Subrouter()
	closuresAPI.Use(authMiddleware.Authenticate)
	closuresAPI.HandleFunc("", closureHandler.ListClosures).Methods("GET")
	closuresAPI.HandleFunc("", admin(http.HandlerFunc(closureHandler.ClosePeriod)).ServeHTTP).Methods("POST")

	// Exports
	exportsAPI := r.PathPrefix("/api/exports").Subrouter()
	exportsAPI.Use(authMiddleware.Authenticate)
	exportsAPI.HandleFunc("/orders.csv", exportHandler.OrdersCSV).Methods("GET")
	exportsAPI.HandleFunc("/orders.pdf", exportHandler.OrdersPDF).Methods("GET")
	exportsAPI.HandleFunc("/returns.csv", exportHandler.ReturnsCSV).Methods("GET")
	exportsAPI.HandleFunc("/sellers.csv", exportHandler.SellersCSV).Methods("GET")

	return r
}
