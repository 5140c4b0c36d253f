package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/accountlens/accountlens/internal/core"
	"github.com/accountlens/accountlens/internal/core/catalog"
	"github.com/accountlens/accountlens/internal/core/engine"
	"github.com/accountlens/accountlens/internal/server/handlers"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(upstream.Close)

	platforms := catalog.NewPlatforms([]catalog.Platform{
		{ID: "sitea", Name: "Site A", Tier: 1, Enabled: true, URLTemplate: upstream.URL + "/{username}", Method: core.MethodEndpoint, APIEndpoint: upstream.URL + "/api/{username}"},
	})

	api := &handlers.API{
		Engine: &engine.Orchestrator{
			Platforms: platforms,
			Sites:     catalog.EmptySites(),
			Client:    upstream.Client(),
		},
		Platforms: platforms,
	}
	return New("localhost", 0, api)
}

func TestRoutesRegistered(t *testing.T) {
	srv := testServer(t)

	for _, path := range []string{"/api/health", "/api/version", "/api/platforms", "/api/search?username=ann"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestUnknownRoute(t *testing.T) {
	srv := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/missing", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
