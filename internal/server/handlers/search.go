package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/accountlens/accountlens/internal/core"
	"github.com/accountlens/accountlens/internal/core/catalog"
	"github.com/accountlens/accountlens/internal/core/engine"
	"github.com/accountlens/accountlens/internal/observability"
)

// API bundles the engine and catalogs behind the HTTP handlers.
type API struct {
	Engine        *engine.Orchestrator
	Platforms     *catalog.Platforms
	MinConfidence int
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message})
}

// PlatformsHandler lists the platform catalog.
func (a *API) PlatformsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(a.Platforms.All())
}

// SearchHandler runs a search and streams every result as one NDJSON line,
// in completion order. The client is expected to consume each line exactly
// once and do its own filtering; negative results are streamed too so
// progress counting stays 1:1 with the work list.
func (a *API) SearchHandler(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.URL.Query().Get("username"))
	if username == "" {
		writeError(w, http.StatusBadRequest, "username is required")
		return
	}

	req := core.SearchRequest{
		Username:      username,
		MinConfidence: a.MinConfidence,
		DeepSearch:    r.URL.Query().Get("deep") == "true",
	}

	if raw := r.URL.Query().Get("tiers"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			tier, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || tier < 1 || tier > 3 {
				writeError(w, http.StatusBadRequest, "tiers must be integers between 1 and 3")
				return
			}
			req.Tiers = append(req.Tiers, tier)
		}
	}
	if raw := r.URL.Query().Get("min_confidence"); raw != "" {
		minConfidence, err := strconv.Atoi(raw)
		if err != nil || minConfidence < 0 || minConfidence > 100 {
			writeError(w, http.StatusBadRequest, "min_confidence must be between 0 and 100")
			return
		}
		req.MinConfidence = minConfidence
	}

	flusher, _ := w.(http.Flusher)
	w.Header().Set("Content-Type", "application/x-ndjson")
	w.WriteHeader(http.StatusOK)

	encoder := json.NewEncoder(w)
	results := a.Engine.Search(r.Context(), req)
	for result := range results {
		if err := encoder.Encode(result); err != nil {
			// Client went away; request ctx cancellation stops in-flight
			// probes, drain what remains.
			observability.ServerLogger.Debug("search stream closed early",
				zap.String("username", username),
				zap.Error(err))
			for range results {
			}
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}
