package handlers

import (
	"net/http"

	"mobileshop-backend/internal/services"
	"mobileshop-backend/pkg/utils"
)

type ClosureHandler struct {
	Service *services.ClosureService
}

func NewClosureHandler(s *services.ClosureService) *ClosureHandler {
	return &ClosureHandler{Service: s}
}

func (h *ClosureHandler) ClosePeriod(w http.ResponseWriter, r *http.Request) {
	closure, err := h.Service.ClosePeriod(r.Context())
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, closure)
}

func (h *ClosureHandler) ListClosures(w http.ResponseWriter, r *http.Request) {
	closures, err := h.Service.ListClosures(r.Context())
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, closures)
}
