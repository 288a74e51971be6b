package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xavierca1/buyer-intake/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"error":   code,
		"message": message,
	})
}

func writeValidationErrors(w http.ResponseWriter, errs usecase.ValidationErrors) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error":  usecase.CodeValidation,
		"errors": errs,
	})
}
