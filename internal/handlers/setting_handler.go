package handlers

import (
	"encoding/json"
	"net/http"

	"mobileshop-backend/internal/models"
	"mobileshop-backend/internal/services"
	"mobileshop-backend/pkg/utils"
)

type SettingHandler struct {
	Service *services.SettingService
}

func NewSettingHandler(s *services.SettingService) *SettingHandler {
	return &SettingHandler{Service: s}
}

func (h *SettingHandler) GetSetting(w http.ResponseWriter, r *http.Request) {
	setting, err := h.Service.GetSetting(r.Context())
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, setting)
}

func (h *SettingHandler) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	setting, err := h.Service.UpdateSetting(r.Context(), &req)
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, setting)
}

func (h *SettingHandler) GetCompanyProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Service.GetCompanyProfile(r.Context())
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, profile)
}
