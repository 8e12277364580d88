package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"mobileshop-backend/internal/models"
)

func TestDomainError_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", &models.NotFoundError{Entity: "seller", ID: "7"}, http.StatusNotFound},
		{"invalid state", &models.InvalidStateError{Entity: "order", ID: "3", Reason: "already returned"}, http.StatusConflict},
		{"insufficient stock", &models.InsufficientStockError{BatchID: 2, Available: 1}, http.StatusUnprocessableEntity},
		{"duplicate unit", &models.DuplicateUnitError{Serial: "S1", Reason: "already sold"}, http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			DomainError(rec, tc.err)

			if rec.Code != tc.status {
				t.Errorf("status = %d, want %d", rec.Code, tc.status)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("content type = %q, want application/json", ct)
			}
			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body["error"] == "" {
				t.Error("expected non-empty error message")
			}
		})
	}
}

func TestJSON_WritesPayload(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]int{"id": 42})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	var body map[string]int
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["id"] != 42 {
		t.Errorf("id = %d, want 42", body["id"])
	}
}
