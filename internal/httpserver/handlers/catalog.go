package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/youlearn/youlearn/internal/catalog"
	"github.com/youlearn/youlearn/internal/domain"
	"github.com/youlearn/youlearn/internal/httpserver/deps"
	"github.com/youlearn/youlearn/internal/logger"
)

type createRequest struct {
	Suggestion  string             `json:"suggestion"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	URL         string             `json:"url"`
	Thumbnails  *domain.Thumbnails `json:"thumbnails"`
}

type validationResponse struct {
	Errors domain.FieldErrors `json:"errors"`
}

// ListCatalog returns the current ordered catalog.
func ListCatalog(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Catalog.List())
	}
}

// CreateEntry appends a fully-specified entry, bypassing the draft.
// The same validation rules apply as on a draft submit.
func CreateEntry(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		if errs := domain.ValidateEntry(req.Title, req.Description, req.URL); !errs.Valid() {
			writeJSON(w, http.StatusUnprocessableEntity, validationResponse{Errors: errs})
			return
		}

		v := domain.Video{
			ID:          uuid.NewString(),
			Suggestion:  req.Suggestion,
			Title:       req.Title,
			Description: req.Description,
			URL:         req.URL,
			Thumbnails:  req.Thumbnails,
		}
		if err := d.Catalog.Append(r.Context(), v); err != nil {
			d.Logger.Error("failed to append entry",
				logger.String("id", v.ID),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to save entry")
			return
		}

		d.Logger.Info("entry added",
			logger.String("id", v.ID),
			logger.String("title", v.Title))
		writeJSON(w, http.StatusCreated, v)
	}
}

// DeleteEntry removes an entry by id. Absent ids are a no-op.
func DeleteEntry(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		d.Catalog.RemoveByID(r.Context(), id)
		d.Logger.Info("entry removed",
			logger.String("id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}

// ClearCatalog wipes the whole catalog. Not exposed in the UI, but a
// safe operation on the store.
func ClearCatalog(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Catalog.Clear(r.Context()); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to clear catalog")
			return
		}
		d.Logger.Info("catalog cleared")
		w.WriteHeader(http.StatusNoContent)
	}
}

type selectRequest struct {
	ID string `json:"id"`
}

// Active returns the entry the playback widget should show. It always
// resolves to some entry, falling back per the configured policy.
func Active(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Selection.Current())
	}
}

// SetActive selects a catalog member as the active entry.
func SetActive(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req selectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		if err := d.Selection.Select(req.ID); err != nil {
			if errors.Is(err, catalog.ErrNotInCatalog) {
				writeError(w, http.StatusNotFound, "entry not in catalog")
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to select entry")
			return
		}

		writeJSON(w, http.StatusOK, d.Selection.Current())
	}
}
