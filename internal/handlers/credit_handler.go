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

type CreditHandler struct {
	Service *services.CreditService
}

func NewCreditHandler(s *services.CreditService) *CreditHandler {
	return &CreditHandler{Service: s}
}

func (h *CreditHandler) CreateCredit(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	credit, err := h.Service.CreateCredit(r.Context(), &req)
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, credit)
}

func (h *CreditHandler) GetCredit(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	credit, err := h.Service.GetCredit(r.Context(), id)
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, credit)
}

func (h *CreditHandler) ListCredits(w http.ResponseWriter, r *http.Request) {
	credits, err := h.Service.ListCredits(r.Context())
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, credits)
}

func (h *CreditHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.CreditLineInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	credit, err := h.Service.AddItem(r.Context(), id, &req)
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, credit)
}

func (h *CreditHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateCreditStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	credit, err := h.Service.UpdateStatus(r.Context(), id, req.PaymentStatus)
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, credit)
}

func (h *CreditHandler) DeleteCredit(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteCredit(r.Context(), id); err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Credit deleted"})
}
