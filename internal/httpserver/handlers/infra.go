package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/youlearn/youlearn/internal/httpserver/deps"
)

type componentStatus struct {
	OK      bool   `json:"ok"`
	Entries *int   `json:"entries,omitempty"`
	Mode    string `json:"mode,omitempty"`
	Impact  string `json:"impact,omitempty"`
	Error   string `json:"error,omitempty"`
}

type infraResponse struct {
	PersistenceMode string                     `json:"persistence_mode"`
	Components      map[string]componentStatus `json:"components"`
}

// Infra reports component health: catalog size, redis reachability and
// whether the session is durable or degraded to memory-only. A degraded
// session is documented behavior, not a silent failure, so it is
// surfaced here.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		entries := d.Catalog.Len()
		redisStatus := checkRedis(d)

		catalogMode := "redis"
		if d.RedisClient == nil || d.Catalog.Degraded() {
			catalogMode = "memory"
		}

		components := map[string]componentStatus{
			"catalog": {
				OK:      true,
				Entries: &entries,
				Mode:    catalogMode,
			},
			"redis": redisStatus,
			"search": {
				OK:   true,
				Mode: "youtube-data-api",
			},
		}

		response := infraResponse{
			PersistenceMode: persistenceMode(catalogMode),
			Components:      components,
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

func persistenceMode(catalogMode string) string {
	if catalogMode == "redis" {
		return "durable"
	}
	// Memory-only: mutations work, data is lost on restart.
	return "degraded"
}

func checkRedis(d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     false,
			Mode:   "disabled",
			Impact: "catalog-not-durable",
			Error:  "client not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "catalog-not-durable",
			Error:  "timeout",
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "catalog-durable",
		Error:  "none",
	}
}
