package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/youlearn/youlearn/internal/draft"
	"github.com/youlearn/youlearn/internal/httpserver/deps"
	"github.com/youlearn/youlearn/internal/logger"
)

// GetDraft returns the in-progress draft for rendering, including
// live validation errors and the search-assist loading flag.
func GetDraft(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Draft.View())
	}
}

// UpdateDraft applies a partial field update. Changing the suggestion
// text schedules a debounced metadata query.
func UpdateDraft(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p draft.Patch
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		writeJSON(w, http.StatusOK, d.Draft.Apply(p))
	}
}

// SubmitDraft validates the draft and commits it to the catalog.
func SubmitDraft(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := d.Draft.Submit(r.Context())
		if err != nil {
			var verr *draft.ValidationError
			if errors.As(err, &verr) {
				writeJSON(w, http.StatusUnprocessableEntity, validationResponse{Errors: verr.Fields})
				return
			}
			d.Logger.Error("draft submit failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to save entry")
			return
		}

		writeJSON(w, http.StatusCreated, v)
	}
}

// CancelDraft discards the draft without committing anything.
func CancelDraft(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Draft.Cancel()
		w.WriteHeader(http.StatusNoContent)
	}
}
