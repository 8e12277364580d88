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

type CashOrderHandler struct {
	Service *services.OrderService
}

func NewCashOrderHandler(s *services.OrderService) *CashOrderHandler {
	return &CashOrderHandler{Service: s}
}

func (h *CashOrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCashOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.Service.CreateOrder(r.Context(), &req)
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, order)
}

func (h *CashOrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	order, err := h.Service.GetOrder(r.Context(), id)
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, order)
}

func (h *CashOrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	orders, err := h.Service.ListOrders(r.Context(), q.Get("from"), q.Get("to"))
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, orders)
}

func (h *CashOrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.UpdateOrder(r.Context(), id); err != nil {
		utils.DomainError(w, err)
		return
	}
}

func (h *CashOrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteOrder(r.Context(), id); err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Order deleted"})
}

func (h *CashOrderHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	txs, err := h.Service.ListTransactions(r.Context(), q.Get("from"), q.Get("to"))
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, txs)
}
