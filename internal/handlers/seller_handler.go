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

type SellerHandler struct {
	Service *services.SellerService
}

func NewSellerHandler(s *services.SellerService) *SellerHandler {
	return &SellerHandler{Service: s}
}

func (h *SellerHandler) CreateSeller(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSellerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	seller, err := h.Service.CreateSeller(r.Context(), &req)
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, seller)
}

func (h *SellerHandler) GetSeller(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	seller, err := h.Service.GetSeller(r.Context(), id)
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, seller)
}

func (h *SellerHandler) ListSellers(w http.ResponseWriter, r *http.Request) {
	sellers, err := h.Service.ListSellers(r.Context())
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, sellers)
}

func (h *SellerHandler) UpdateShares(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateSellerShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	seller, err := h.Service.UpdateSellerShare(r.Context(), id, &req)
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, seller)
}
