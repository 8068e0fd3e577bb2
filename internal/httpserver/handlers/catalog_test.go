package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youlearn/youlearn/internal/catalog"
	"github.com/youlearn/youlearn/internal/domain"
	"github.com/youlearn/youlearn/internal/httpserver/deps"
	"github.com/youlearn/youlearn/internal/logger"
)

var testPlaceholder = domain.Video{
	ID:          "placeholder",
	Title:       "New MIT study says most AI projects are doomed",
	Description: "Fireship",
	URL:         "https://www.youtube.com/watch?v=ly6YKz9UfQ4",
}

func newCatalogRouter(t *testing.T) (*chi.Mux, deps.Deps) {
	t.Helper()

	log := logger.New("error", false)
	cat := catalog.New(catalog.NewMemorySnapshot(), log)
	sel := catalog.NewSelection(cat, catalog.FallbackPlaceholder, testPlaceholder)

	d := deps.Deps{
		Logger:    log,
		Catalog:   cat,
		Selection: sel,
	}

	r := chi.NewRouter()
	r.Get("/api/catalog", ListCatalog(d))
	r.Post("/api/catalog", CreateEntry(d))
	r.Post("/api/catalog/clear", ClearCatalog(d))
	r.Delete("/api/catalog/{id}", DeleteEntry(d))
	r.Get("/api/catalog/active", Active(d))
	r.Put("/api/catalog/active", SetActive(d))
	return r, d
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateEntryValidatesFields(t *testing.T) {
	r, d := newCatalogRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/catalog",
		`{"title":"","description":"","url":"https://vimeo.com/12345"}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body validationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Enter title", body.Errors["title"])
	assert.Equal(t, "Enter description", body.Errors["description"])
	assert.Equal(t, "Must be a valid YouTube video URL", body.Errors["url"])
	assert.Equal(t, 0, d.Catalog.Len())
}

func TestCreateThenListThenDelete(t *testing.T) {
	r, d := newCatalogRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/catalog",
		`{"title":"Go Concurrency Patterns","description":"Rob Pike at Google I/O","url":"https://www.youtube.com/watch?v=f6kdp27TYZs"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Video
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Go Concurrency Patterns", created.Title)

	rec = doJSON(t, r, http.MethodGet, "/api/catalog", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []domain.Video
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	rec = doJSON(t, r, http.MethodDelete, "/api/catalog/"+created.ID, "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, d.Catalog.Len())

	// Deleting an absent id is a harmless no-op.
	rec = doJSON(t, r, http.MethodDelete, "/api/catalog/"+created.ID, "")
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestActiveFallsBackToPlaceholder(t *testing.T) {
	r, _ := newCatalogRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/api/catalog/active", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var active domain.Video
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &active))
	assert.Equal(t, testPlaceholder.URL, active.URL)
	assert.Equal(t, testPlaceholder.Title, active.Title)
}

func TestSetActiveRejectsNonMember(t *testing.T) {
	r, _ := newCatalogRouter(t)

	rec := doJSON(t, r, http.MethodPut, "/api/catalog/active", `{"id":"nope"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"entry not in catalog"}`, rec.Body.String())
}

func TestSelectThenDeleteActiveFallsBack(t *testing.T) {
	r, _ := newCatalogRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/catalog",
		`{"title":"A","description":"a","url":"https://youtu.be/aaa"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var v domain.Video
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))

	rec = doJSON(t, r, http.MethodPut, "/api/catalog/active", `{"id":"`+v.ID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var active domain.Video
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &active))
	assert.Equal(t, v.ID, active.ID)

	rec = doJSON(t, r, http.MethodDelete, "/api/catalog/"+v.ID, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/api/catalog/active", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &active))
	assert.Equal(t, testPlaceholder.URL, active.URL)
}

func TestClearCatalog(t *testing.T) {
	r, d := newCatalogRouter(t)

	for _, u := range []string{"https://youtu.be/a", "https://youtu.be/b"} {
		rec := doJSON(t, r, http.MethodPost, "/api/catalog",
			`{"title":"t","description":"d","url":"`+u+`"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	require.Equal(t, 2, d.Catalog.Len())

	rec := doJSON(t, r, http.MethodPost, "/api/catalog/clear", "")
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, d.Catalog.Len())
}
