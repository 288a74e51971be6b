package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/buyer-intake/internal/entity"
	"github.com/xavierca1/buyer-intake/internal/infra/http/middleware"
	"github.com/xavierca1/buyer-intake/internal/usecase"
)

type BuyerHandler struct {
	CreateUC *usecase.CreateBuyerUseCase
	UpdateUC *usecase.UpdateBuyerUseCase
	ListUC   *usecase.ListBuyersUseCase
	Repo     usecase.BuyerStore
	History  entity.HistoryRepositoryInterface
}

func NewBuyerHandler(
	createUC *usecase.CreateBuyerUseCase,
	updateUC *usecase.UpdateBuyerUseCase,
	listUC *usecase.ListBuyersUseCase,
	repo usecase.BuyerStore,
	history entity.HistoryRepositoryInterface,
) *BuyerHandler {
	return &BuyerHandler{
		CreateUC: createUC,
		UpdateUC: updateUC,
		ListUC:   listUC,
		Repo:     repo,
		History:  history,
	}
}

func (h *BuyerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON body: "+err.Error())
		return
	}

	buyer, err := h.CreateUC.Execute(r.Context(), fields, ownerID(r))
	if err != nil {
		var verrs usecase.ValidationErrors
		if errors.As(err, &verrs) {
			writeValidationErrors(w, verrs)
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, usecase.CodeDatabaseError, err.Error())
		return
	}

	middleware.RecordLeadCreated(buyer.Source)
	writeJSON(w, http.StatusCreated, buyer)
}

func (h *BuyerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	buyer, err := h.Repo.GetByID(r.Context(), id)
	if errors.Is(err, entity.ErrNotFound) {
		writeErrorResponse(w, http.StatusNotFound, "NOT_FOUND", "buyer not found")
		return
	}
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, usecase.CodeDatabaseError, err.Error())
		return
	}

	history, err := h.History.ListByBuyer(r.Context(), id, 5)
	if err != nil {
		// the record itself is the answer; history is extra
		history = []entity.BuyerHistory{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"buyer":   buyer,
		"history": history,
	})
}

func (h *BuyerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON body: "+err.Error())
		return
	}

	token, _ := fields["updatedAt"].(string)
	delete(fields, "updatedAt")
	delete(fields, "id")
	delete(fields, "ownerId")

	buyer, err := h.UpdateUC.Execute(r.Context(), id, fields, token, ownerID(r))
	if err != nil {
		var verrs usecase.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			writeValidationErrors(w, verrs)
		case errors.Is(err, entity.ErrNotFound):
			writeErrorResponse(w, http.StatusNotFound, "NOT_FOUND", "buyer not found")
		case errors.Is(err, entity.ErrConflict):
			middleware.RecordUpdateConflict()
			writeErrorResponse(w, http.StatusConflict, "CONFLICT", "record changed, please refresh")
		default:
			writeErrorResponse(w, http.StatusInternalServerError, usecase.CodeDatabaseError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, buyer)
}

func (h *BuyerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.Repo.Delete(r.Context(), id)
	if errors.Is(err, entity.ErrNotFound) {
		writeErrorResponse(w, http.StatusNotFound, "NOT_FOUND", "buyer not found")
		return
	}
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, usecase.CodeDatabaseError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *BuyerHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	out, err := h.ListUC.Execute(r.Context(), parseFilter(r), page)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, usecase.CodeDatabaseError, err.Error())
		return
	}
	if out.Items == nil {
		out.Items = []entity.Buyer{}
	}

	writeJSON(w, http.StatusOK, out)
}

func parseFilter(r *http.Request) usecase.BuyerFilter {
	q := r.URL.Query()
	return usecase.BuyerFilter{
		Search:       q.Get("q"),
		City:         q.Get("city"),
		PropertyType: q.Get("propertyType"),
		Status:       q.Get("status"),
		Timeline:     q.Get("timeline"),
	}
}

// ownerID resolves the acting user. Sessions are handled upstream; the proxy
// forwards the identity in a header.
func ownerID(r *http.Request) string {
	if id := r.Header.Get("X-User-ID"); id != "" {
		return id
	}
	return "demo-user"
}
