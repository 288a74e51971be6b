package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/xavierca1/buyer-intake/internal/infra/http/middleware"
	"github.com/xavierca1/buyer-intake/internal/usecase"
)

const maxUploadBytes = 1 << 20 // plenty for 200 rows

type ImportExportHandler struct {
	ImportUC *usecase.ImportBuyersUseCase
	ExportUC *usecase.ExportBuyersUseCase

	rateLimiter *RateLimiter
}

func NewImportExportHandler(importUC *usecase.ImportBuyersUseCase, exportUC *usecase.ExportBuyersUseCase) *ImportExportHandler {
	return &ImportExportHandler{
		ImportUC:    importUC,
		ExportUC:    exportUC,
		rateLimiter: NewRateLimiter(10, time.Minute),
	}
}

func (h *ImportExportHandler) Import(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(getClientIP(r)) {
		writeErrorResponse(w, http.StatusTooManyRequests, "RATE_LIMITED", "too many imports, please try again later")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "NO_FILE", "no file uploaded")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "NO_FILE", "failed to read uploaded file")
		return
	}

	outcome, err := h.ImportUC.Execute(r.Context(), string(content), ownerID(r))
	if err != nil {
		var derr *usecase.DomainError
		if errors.As(err, &derr) {
			writeErrorResponse(w, http.StatusBadRequest, derr.Code, derr.Message)
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, usecase.CodeDatabaseError, err.Error())
		return
	}

	middleware.RecordImport(outcome.Inserted, len(outcome.Errors))
	writeJSON(w, http.StatusOK, outcome)
}

func (h *ImportExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	text, err := h.ExportUC.Execute(r.Context(), parseFilter(r))
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, usecase.CodeDatabaseError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="buyers.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(text))
}
