package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/buyer-intake/internal/entity"
	"github.com/xavierca1/buyer-intake/internal/usecase"
)

// fakeBuyerStore is an in-memory stand-in with the same contract as the
// Postgres repository, version-token check included.
type fakeBuyerStore struct {
	buyers []entity.Buyer
	nextID int
	now    time.Time
}

func newFakeBuyerStore() *fakeBuyerStore {
	return &fakeBuyerStore{now: time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)}
}

func (s *fakeBuyerStore) tick() time.Time {
	s.now = s.now.Add(time.Second)
	return s.now
}

func (s *fakeBuyerStore) GetByID(_ context.Context, id string) (*entity.Buyer, error) {
	for i := range s.buyers {
		if s.buyers[i].ID == id {
			b := s.buyers[i]
			return &b, nil
		}
	}
	return nil, entity.ErrNotFound
}

func (s *fakeBuyerStore) List(_ context.Context) ([]entity.Buyer, error) {
	out := make([]entity.Buyer, len(s.buyers))
	copy(out, s.buyers)
	return out, nil
}

func (s *fakeBuyerStore) Create(_ context.Context, b *entity.Buyer) error {
	s.nextID++
	b.ID = fmt.Sprintf("buyer-%d", s.nextID)
	b.UpdatedAt = s.tick()
	s.buyers = append(s.buyers, *b)
	return nil
}

func (s *fakeBuyerStore) Update(_ context.Context, b *entity.Buyer, expected time.Time) (*entity.Buyer, error) {
	for i := range s.buyers {
		if s.buyers[i].ID != b.ID {
			continue
		}
		if !s.buyers[i].UpdatedAt.Equal(expected) {
			return nil, entity.ErrConflict
		}
		b.UpdatedAt = s.tick()
		s.buyers[i] = *b
		out := *b
		return &out, nil
	}
	return nil, entity.ErrNotFound
}

func (s *fakeBuyerStore) Delete(_ context.Context, id string) error {
	for i := range s.buyers {
		if s.buyers[i].ID == id {
			s.buyers = append(s.buyers[:i], s.buyers[i+1:]...)
			return nil
		}
	}
	return entity.ErrNotFound
}

func (s *fakeBuyerStore) BulkCreate(ctx context.Context, buyers []entity.Buyer) (int, error) {
	for i := range buyers {
		if err := s.Create(ctx, &buyers[i]); err != nil {
			return i, err
		}
	}
	return len(buyers), nil
}

type fakeHistoryRepo struct {
	entries []entity.BuyerHistory
}

func (f *fakeHistoryRepo) Append(_ context.Context, h *entity.BuyerHistory) error {
	f.entries = append(f.entries, *h)
	return nil
}

func (f *fakeHistoryRepo) ListByBuyer(_ context.Context, buyerID string, limit int) ([]entity.BuyerHistory, error) {
	var out []entity.BuyerHistory
	for i := len(f.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if f.entries[i].BuyerID == buyerID {
			out = append(out, f.entries[i])
		}
	}
	return out, nil
}

func newTestRouter(store *fakeBuyerStore) *chi.Mux {
	history := &fakeHistoryRepo{}
	h := NewBuyerHandler(
		usecase.NewCreateBuyerUseCase(store, history, nil),
		usecase.NewUpdateBuyerUseCase(store, history),
		usecase.NewListBuyersUseCase(store),
		store,
		history,
	)
	io := NewImportExportHandler(
		usecase.NewImportBuyersUseCase(store, nil),
		usecase.NewExportBuyersUseCase(store),
	)

	r := chi.NewRouter()
	r.Route("/buyers", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Post("/import", io.Import)
		r.Get("/export", io.Export)
		r.Get("/{id}", h.Get)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
	return r
}

func postJSON(t *testing.T, router http.Handler, path string, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func validBody() map[string]any {
	return map[string]any{
		"fullName":     "Priya Sharma",
		"phone":        "9876543210",
		"city":         "Mohali",
		"propertyType": "Apartment",
		"bhk":          "2",
		"purpose":      "Buy",
		"budgetMin":    5000000,
		"budgetMax":    8000000,
		"timeline":     "0-3m",
		"source":       "Website",
	}
}

func TestCreateBuyerEndpoint(t *testing.T) {
	router := newTestRouter(newFakeBuyerStore())

	rec := postJSON(t, router, "/buyers", validBody())

	require.Equal(t, http.StatusCreated, rec.Code)
	var got entity.Buyer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "buyer-1", got.ID)
	assert.Equal(t, "New", got.Status)
	assert.Equal(t, "demo-user", got.OwnerID)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestCreateBuyerEndpointValidationFailure(t *testing.T) {
	router := newTestRouter(newFakeBuyerStore())

	body := validBody()
	body["phone"] = "12"
	delete(body, "bhk")
	rec := postJSON(t, router, "/buyers", body)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp struct {
		Error  string `json:"error"`
		Errors []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, usecase.CodeValidation, resp.Error)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "phone", resp.Errors[0].Field)
}

func TestCreateBuyerEndpointRejectsBadJSON(t *testing.T) {
	router := newTestRouter(newFakeBuyerStore())

	req := httptest.NewRequest(http.MethodPost, "/buyers", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetBuyerEndpointIncludesHistory(t *testing.T) {
	store := newFakeBuyerStore()
	router := newTestRouter(store)
	postJSON(t, router, "/buyers", validBody())

	req := httptest.NewRequest(http.MethodGet, "/buyers/buyer-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Buyer   entity.Buyer          `json:"buyer"`
		History []entity.BuyerHistory `json:"history"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Priya Sharma", resp.Buyer.FullName)
	require.Len(t, resp.History, 1) // the creation entry
	assert.Equal(t, "demo-user", resp.History[0].ChangedBy)
}

func TestGetBuyerEndpointNotFound(t *testing.T) {
	router := newTestRouter(newFakeBuyerStore())

	req := httptest.NewRequest(http.MethodGet, "/buyers/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateBuyerEndpoint(t *testing.T) {
	store := newFakeBuyerStore()
	router := newTestRouter(store)
	postJSON(t, router, "/buyers", validBody())

	current, err := store.GetByID(context.Background(), "buyer-1")
	require.NoError(t, err)

	rec := postPatch(t, router, "/buyers/buyer-1", map[string]any{
		"status":    "Qualified",
		"updatedAt": current.VersionToken(),
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var got entity.Buyer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Qualified", got.Status)
	assert.True(t, got.UpdatedAt.After(current.UpdatedAt))
}

func TestUpdateBuyerEndpointStaleTokenConflicts(t *testing.T) {
	store := newFakeBuyerStore()
	router := newTestRouter(store)
	postJSON(t, router, "/buyers", validBody())

	current, err := store.GetByID(context.Background(), "buyer-1")
	require.NoError(t, err)
	stale := current.VersionToken()

	// first writer wins
	rec := postPatch(t, router, "/buyers/buyer-1", map[string]any{
		"status":    "Qualified",
		"updatedAt": stale,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// second writer still holds the old token
	rec = postPatch(t, router, "/buyers/buyer-1", map[string]any{
		"status":    "Dropped",
		"updatedAt": stale,
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "CONFLICT", resp["error"])
}

func TestUpdateBuyerEndpointMissingToken(t *testing.T) {
	store := newFakeBuyerStore()
	router := newTestRouter(store)
	postJSON(t, router, "/buyers", validBody())

	rec := postPatch(t, router, "/buyers/buyer-1", map[string]any{"status": "Qualified"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteBuyerEndpoint(t *testing.T) {
	store := newFakeBuyerStore()
	router := newTestRouter(store)
	postJSON(t, router, "/buyers", validBody())

	req := httptest.NewRequest(http.MethodDelete, "/buyers/buyer-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.buyers)

	// a second delete finds nothing
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListBuyersEndpointFilters(t *testing.T) {
	store := newFakeBuyerStore()
	router := newTestRouter(store)
	postJSON(t, router, "/buyers", validBody())
	other := validBody()
	other["fullName"] = "Rahul Gupta"
	other["city"] = "Chandigarh"
	postJSON(t, router, "/buyers", other)

	req := httptest.NewRequest(http.MethodGet, "/buyers?city=Chandigarh", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp usecase.ListBuyersOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Rahul Gupta", resp.Items[0].FullName)
}

func TestListBuyersEndpointEmptySetReturnsEmptyArray(t *testing.T) {
	router := newTestRouter(newFakeBuyerStore())

	req := httptest.NewRequest(http.MethodGet, "/buyers", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"items":[]`)
}

func TestOwnerIDHeaderOverridesDefault(t *testing.T) {
	router := newTestRouter(newFakeBuyerStore())

	raw, err := json.Marshal(validBody())
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/buyers", bytes.NewReader(raw))
	req.Header.Set("X-User-ID", "agent-42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got entity.Buyer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "agent-42", got.OwnerID)
}

func postPatch(t *testing.T, router http.Handler, path string, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPatch, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}
