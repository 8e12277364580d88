package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"mobileshop-backend/internal/models"
)

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// DomainError maps core error types to HTTP responses so handlers stay thin.
func DomainError(w http.ResponseWriter, err error) {
	var notFound *models.NotFoundError
	var invalidState *models.InvalidStateError
	var insufficient *models.InsufficientStockError
	var duplicate *models.DuplicateUnitError

	switch {
	case errors.As(err, &notFound):
		Error(w, http.StatusNotFound, err.Error())
	case errors.As(err, &invalidState):
		Error(w, http.StatusConflict, err.Error())
	case errors.As(err, &insufficient):
		Error(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &duplicate):
		Error(w, http.StatusConflict, err.Error())
	default:
		Error(w, http.StatusInternalServerError, err.Error())
	}
}
