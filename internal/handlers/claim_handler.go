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

type ClaimHandler struct {
	Service *services.ClaimService
}

func NewClaimHandler(s *services.ClaimService) *ClaimHandler {
	return &ClaimHandler{Service: s}
}

func (h *ClaimHandler) CreateClaim(w http.ResponseWriter, r *http.Request) {
	var req models.CreateClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	claim, err := h.Service.CreateClaim(r.Context(), &req)
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, claim)
}

func (h *ClaimHandler) GetClaim(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	claim, err := h.Service.GetClaim(r.Context(), id)
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, claim)
}

func (h *ClaimHandler) ListClaims(w http.ResponseWriter, r *http.Request) {
	claims, err := h.Service.ListClaims(r.Context())
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, claims)
}

func (h *ClaimHandler) ResolveClaim(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	claim, err := h.Service.ResolveClaim(r.Context(), id)
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, claim)
}

func (h *ClaimHandler) DeleteClaim(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteClaim(r.Context(), id); err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Claim deleted"})
}
