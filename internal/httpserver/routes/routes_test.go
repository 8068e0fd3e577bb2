package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youlearn/youlearn/internal/catalog"
	"github.com/youlearn/youlearn/internal/domain"
	"github.com/youlearn/youlearn/internal/draft"
	"github.com/youlearn/youlearn/internal/httpserver/deps"
	"github.com/youlearn/youlearn/internal/logger"
	"github.com/youlearn/youlearn/internal/search"
)

type scriptedSearcher struct {
	results map[string]*search.Suggestion
}

func (s *scriptedSearcher) Search(_ context.Context, query string) (*search.Suggestion, error) {
	return s.results[query], nil
}

func (s *scriptedSearcher) Lookup(_ context.Context, query string) (json.RawMessage, error) {
	if s.results[query] == nil {
		return nil, nil
	}
	return json.RawMessage(`{"id":{"videoId":"f6kdp27TYZs"}}`), nil
}

// newTestRouter wires the whole route registry against in-memory
// dependencies, the same shape app.New builds in production.
func newTestRouter(t *testing.T, searcher *scriptedSearcher) (*chi.Mux, deps.Deps) {
	t.Helper()

	log := logger.New("error", false)
	cat := catalog.New(catalog.NewMemorySnapshot(), log)
	placeholder := domain.Video{
		ID:          "placeholder",
		Title:       "New MIT study says most AI projects are doomed",
		Description: "Fireship",
		URL:         "https://www.youtube.com/watch?v=ly6YKz9UfQ4",
	}

	d := deps.Deps{
		Logger:    log,
		StartTime: time.Now(),
		TimeNow:   time.Now,
		Catalog:   cat,
		Selection: catalog.NewSelection(cat, catalog.FallbackPlaceholder, placeholder),
		Draft:     draft.NewController(searcher, cat, 10*time.Millisecond, time.Second, log),
		Search:    searcher,
	}

	r := chi.NewRouter()
	RegisterAll(r, d)
	return r, d
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func draftView(t *testing.T, rec *httptest.ResponseRecorder) draft.View {
	t.Helper()
	var v draft.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

// The golden path: type a query, accept the suggestion, submit, find
// the entry in the catalog and make it active.
func TestAddVideoFlow(t *testing.T) {
	searcher := &scriptedSearcher{results: map[string]*search.Suggestion{
		"go concurrency": {
			Title:       "Google I/O 2012 - Go Concurrency Patterns",
			Description: "Rob Pike",
			URL:         "https://www.youtube.com/embed/f6kdp27TYZs",
		},
	}}
	r, d := newTestRouter(t, searcher)

	rec := do(t, r, http.MethodPut, "/api/draft", `{"suggestion":"go concurrency"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, draft.StateSearching, draftView(t, rec).State)

	// The debounced query lands asynchronously.
	require.Eventually(t, func() bool {
		rec := do(t, r, http.MethodGet, "/api/draft", "")
		return draftView(t, rec).State == draft.StateSuggested
	}, time.Second, 5*time.Millisecond)

	rec = do(t, r, http.MethodGet, "/api/draft", "")
	view := draftView(t, rec)
	assert.Equal(t, "Google I/O 2012 - Go Concurrency Patterns", view.Title)
	assert.Equal(t, "https://www.youtube.com/embed/f6kdp27TYZs", view.URL)
	assert.False(t, view.Loading)

	rec = do(t, r, http.MethodPost, "/api/draft/submit", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	var committed domain.Video
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &committed))
	assert.NotEmpty(t, committed.ID)
	assert.Equal(t, "go concurrency", committed.Suggestion)

	// Draft is blank again after a successful submit.
	rec = do(t, r, http.MethodGet, "/api/draft", "")
	assert.Equal(t, draft.StateEmpty, draftView(t, rec).State)

	require.Equal(t, 1, d.Catalog.Len())

	rec = do(t, r, http.MethodPut, "/api/catalog/active", `{"id":"`+committed.ID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var active domain.Video
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &active))
	assert.Equal(t, committed.ID, active.ID)
}

func TestSubmitInvalidDraftKeepsErrorsVisible(t *testing.T) {
	r, d := newTestRouter(t, &scriptedSearcher{})

	rec := do(t, r, http.MethodPut, "/api/draft", `{"title":"only a title"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, r, http.MethodPost, "/api/draft/submit", "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Errors domain.FieldErrors `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotContains(t, body.Errors, "title")
	assert.Equal(t, "Enter description", body.Errors["description"])
	assert.Equal(t, "Must be a valid YouTube video URL", body.Errors["url"])
	assert.Equal(t, 0, d.Catalog.Len())

	// The rejected fields remain in the draft for correction.
	rec = do(t, r, http.MethodGet, "/api/draft", "")
	view := draftView(t, rec)
	assert.Equal(t, "only a title", view.Title)
	assert.Equal(t, "Enter description", view.Errors["description"])
}

func TestCancelDraftOverHTTP(t *testing.T) {
	searcher := &scriptedSearcher{results: map[string]*search.Suggestion{
		"abc": {Title: "t", Description: "d", URL: "https://www.youtube.com/embed/x"},
	}}
	r, _ := newTestRouter(t, searcher)

	do(t, r, http.MethodPut, "/api/draft", `{"suggestion":"abc"}`)
	rec := do(t, r, http.MethodDelete, "/api/draft", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, r, http.MethodGet, "/api/draft", "")
	view := draftView(t, rec)
	assert.Equal(t, draft.StateEmpty, view.State)
	assert.Empty(t, view.Suggestion)
}

func TestHealthEndpoints(t *testing.T) {
	r, _ := newTestRouter(t, &scriptedSearcher{})

	rec := do(t, r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, r, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestInfraReportsMemoryMode(t *testing.T) {
	r, _ := newTestRouter(t, &scriptedSearcher{})

	rec := do(t, r, http.MethodGet, "/infra", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		PersistenceMode string `json:"persistence_mode"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.PersistenceMode)
}
