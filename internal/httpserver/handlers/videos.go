package handlers

import (
	"net/http"

	"github.com/youlearn/youlearn/internal/httpserver/deps"
	"github.com/youlearn/youlearn/internal/logger"
)

// Videos is the metadata search proxy used by the search-assist
// pipeline. It forwards the free-text query upstream and returns the
// raw best-match item, or null when nothing was found.
func Videos(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		if q == "" {
			writeError(w, http.StatusBadRequest, "Query parameter 'q' is required")
			return
		}

		item, err := d.Search.Lookup(r.Context(), q)
		if err != nil {
			d.Logger.Warn("metadata lookup failed",
				logger.String("query", q),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if item == nil {
			_, _ = w.Write([]byte("null"))
			return
		}
		_, _ = w.Write(item)
	}
}
