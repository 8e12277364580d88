package handlers

import (
	"encoding/json"
	"net/http"

	"mobileshop-backend/internal/models"
	"mobileshop-backend/internal/services"
	"mobileshop-backend/pkg/utils"
)

type ReturnHandler struct {
	Service *services.ReturnService
}

func NewReturnHandler(s *services.ReturnService) *ReturnHandler {
	return &ReturnHandler{Service: s}
}

func (h *ReturnHandler) CreateReturn(w http.ResponseWriter, r *http.Request) {
	var req models.CreateReturnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ret, err := h.Service.CreateReturn(r.Context(), &req)
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, ret)
}

func (h *ReturnHandler) ListReturns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	returns, err := h.Service.ListReturns(r.Context(), q.Get("from"), q.Get("to"))
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, returns)
}
