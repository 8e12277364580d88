package handlers

import (
	"fmt"
	"net/http"

	"mobileshop-backend/internal/services"
	"mobileshop-backend/internal/timeutil"
	"mobileshop-backend/pkg/utils"
)

type ExportHandler struct {
	Service *services.ExportService
}

func NewExportHandler(s *services.ExportService) *ExportHandler {
	return &ExportHandler{Service: s}
}

func (h *ExportHandler) OrdersCSV(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data, err := h.Service.OrdersCSV(r.Context(), q.Get("from"), q.Get("to"))
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	serveFile(w, data, "text/csv", "orders")
}

func (h *ExportHandler) OrdersPDF(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data, err := h.Service.OrdersPDF(r.Context(), q.Get("from"), q.Get("to"))
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	serveFile(w, data, "application/pdf", "orders")
}

func (h *ExportHandler) ReturnsCSV(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data, err := h.Service.ReturnsCSV(r.Context(), q.Get("from"), q.Get("to"))
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	serveFile(w, data, "text/csv", "returns")
}

func (h *ExportHandler) SellersCSV(w http.ResponseWriter, r *http.Request) {
	data, err := h.Service.SellersCSV(r.Context())
	if err != nil {
		utils.DomainError(w, err)
		return
	}
	serveFile(w, data, "text/csv", "sellers")
}

func serveFile(w http.ResponseWriter, data []byte, contentType, name string) {
	ext := "csv"
	if contentType == "application/pdf" {
		ext = "pdf"
	}
	filename := fmt.Sprintf("%s-%s.%s", name, timeutil.Now().Format("20060102"), ext)

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
