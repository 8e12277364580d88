package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"mobileshop-backend/internal/models"
	"mobileshop-backend/internal/services"
	"mobileshop-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type CatalogHandler struct {
	Service *services.CatalogService
}

func NewCatalogHandler(s *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{Service: s}
}

func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	product, err := h.Service.CreateProduct(r.Context(), &req)
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, product)
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	product, err := h.Service.GetProduct(r.Context(), id)
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Service.ListProducts(r.Context())
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) CreateVendor(w http.ResponseWriter, r *http.Request) {
	var req models.CreateVendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	vendor, err := h.Service.CreateVendor(r.Context(), &req)
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, vendor)
}

func (h *CatalogHandler) GetVendor(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	vendor, err := h.Service.GetVendor(r.Context(), id)
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, vendor)
}

func (h *CatalogHandler) ListVendors(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.Service.ListVendors(r.Context())
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, vendors)
}
