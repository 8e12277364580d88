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

type StockHandler struct {
	Service *services.StockService
}

func NewStockHandler(s *services.StockService) *StockHandler {
	return &StockHandler{Service: s}
}

func (h *StockHandler) Intake(w http.ResponseWriter, r *http.Request) {
	var req models.IntakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	batch, err := h.Service.Intake(r.Context(), &req)
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, batch)
}

func (h *StockHandler) AdjustBatch(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.AdjustBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	batch, err := h.Service.AdjustBatch(r.Context(), id, &req)
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, batch)
}

func (h *StockHandler) GetBatch(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	batch, err := h.Service.GetBatch(r.Context(), id)
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, batch)
}

func (h *StockHandler) ListBatches(w http.ResponseWriter, r *http.Request) {
	batches, err := h.Service.ListBatches(r.Context())
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, batches)
}

func (h *StockHandler) QueryAvailable(w http.ResponseWriter, r *http.Request) {
	productID, _ := strconv.Atoi(mux.Vars(r)["product_id"])

	serials, err := h.Service.QueryAvailable(r.Context(), productID)
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"product_id": productID,
		"serials":    serials,
	})
}

func (h *StockHandler) LookupSerial(w http.ResponseWriter, r *http.Request) {
	serial := mux.Vars(r)["serial"]

	status, err := h.Service.LookupSerial(r.Context(), serial)
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, status)
}

func (h *StockHandler) TotalAsset(w http.ResponseWriter, r *http.Request) {
	total, err := h.Service.TotalAsset(r.Context())
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]int64{"total_asset": total})
}
