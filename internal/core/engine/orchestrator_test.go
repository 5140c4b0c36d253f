package engine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/accountlens/accountlens/internal/core"
	"github.com/accountlens/accountlens/internal/core/catalog"
)

func testPlatforms(server *httptest.Server, ids ...string) *catalog.Platforms {
	platforms := make([]catalog.Platform, 0, len(ids))
	for _, id := range ids {
		platforms = append(platforms, catalog.Platform{
			ID:          id,
			Name:        id,
			Tier:        1,
			Enabled:     true,
			URLTemplate: server.URL + "/" + id + "/{username}",
			Method:      core.MethodEndpoint,
			APIEndpoint: server.URL + "/" + id + "/api/{username}",
		})
	}
	return catalog.NewPlatforms(platforms)
}

func drain(stream <-chan *core.VerificationResult) []*core.VerificationResult {
	results := make([]*core.VerificationResult, 0)
	for r := range stream {
		results = append(results, r)
	}
	return results
}

func TestSearchOneResultPerPlatform(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/siteb/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	o := &Orchestrator{
		Platforms: testPlatforms(server, "sitea", "siteb", "sitec"),
		Sites:     catalog.EmptySites(),
		Client:    server.Client(),
	}

	results := drain(o.Search(context.Background(), core.SearchRequest{Username: "ann"}))
	require.Len(t, results, 3)

	byID := make(map[string]*core.VerificationResult, len(results))
	for _, r := range results {
		byID[r.PlatformID] = r
	}
	require.True(t, byID["sitea"].Found)
	require.False(t, byID["siteb"].Found)
	require.Equal(t, 0, byID["siteb"].Confidence)
	require.True(t, byID["sitec"].Found)
}

func TestSearchRespectsConcurrencyBudget(t *testing.T) {
	var inFlight, peak int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cur := atomic.AddInt64(&inFlight, 1)
		for {
			old := atomic.LoadInt64(&peak)
			if cur <= old || atomic.CompareAndSwapInt64(&peak, old, cur) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt64(&inFlight, -1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	o := &Orchestrator{
		Platforms:   testPlatforms(server, "s1", "s2", "s3", "s4", "s5", "s6"),
		Sites:       catalog.EmptySites(),
		Client:      server.Client(),
		Concurrency: 2,
	}

	results := drain(o.Search(context.Background(), core.SearchRequest{Username: "ann"}))
	require.Len(t, results, 6)
	require.LessOrEqual(t, atomic.LoadInt64(&peak), int64(2))
}

func TestSearchSerializedWithCapacityOne(t *testing.T) {
	var inFlight, peak int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cur := atomic.AddInt64(&inFlight, 1)
		for {
			old := atomic.LoadInt64(&peak)
			if cur <= old || atomic.CompareAndSwapInt64(&peak, old, cur) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt64(&inFlight, -1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	o := &Orchestrator{
		Platforms:   testPlatforms(server, "s1", "s2", "s3"),
		Sites:       catalog.EmptySites(),
		Client:      server.Client(),
		Concurrency: 1,
	}

	results := drain(o.Search(context.Background(), core.SearchRequest{Username: "ann"}))
	require.Len(t, results, 3)
	require.Equal(t, int64(1), atomic.LoadInt64(&peak))
}

func TestSearchDeepAddsSitesWithoutShadowing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	sites, err := catalog.ReadSites(strings.NewReader(`{"sites":[
		{"name":"sitea","uri_check":"` + server.URL + `/wmn-sitea/{account}"},
		{"name":"Other Site","uri_check":"` + server.URL + `/wmn-other/{account}"}
	]}`))
	require.NoError(t, err)

	o := &Orchestrator{
		Platforms: testPlatforms(server, "sitea"),
		Sites:     sites,
		Client:    server.Client(),
	}

	results := drain(o.Search(context.Background(), core.SearchRequest{Username: "ann", DeepSearch: true}))
	require.Len(t, results, 2)

	methods := make(map[string]core.DetectionMethod, len(results))
	for _, r := range results {
		methods[r.PlatformID] = r.Method
	}
	// The curated probe wins the shared id; only the non-shadowed site runs.
	require.Equal(t, core.MethodEndpoint, methods["sitea"])
	require.Equal(t, core.MethodPattern, methods["other_site"])
}

func TestSearchShallowIgnoresSites(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	sites, err := catalog.ReadSites(strings.NewReader(`{"sites":[
		{"name":"Other Site","uri_check":"` + server.URL + `/wmn-other/{account}"}
	]}`))
	require.NoError(t, err)

	o := &Orchestrator{
		Platforms: testPlatforms(server, "sitea"),
		Sites:     sites,
		Client:    server.Client(),
	}

	results := drain(o.Search(context.Background(), core.SearchRequest{Username: "ann"}))
	require.Len(t, results, 1)
	require.Equal(t, "sitea", results[0].PlatformID)
}

func TestSearchTierFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	platforms := catalog.NewPlatforms([]catalog.Platform{
		{ID: "tier1", Name: "tier1", Tier: 1, Enabled: true, URLTemplate: server.URL + "/{username}", Method: core.MethodEndpoint, APIEndpoint: server.URL + "/api/{username}"},
		{ID: "tier3", Name: "tier3", Tier: 3, Enabled: true, URLTemplate: server.URL + "/{username}", Method: core.MethodContent},
	})

	o := &Orchestrator{Platforms: platforms, Sites: catalog.EmptySites(), Client: server.Client()}

	results := drain(o.Search(context.Background(), core.SearchRequest{Username: "ann", Tiers: []int{1}}))
	require.Len(t, results, 1)
	require.Equal(t, "tier1", results[0].PlatformID)
}

func TestSearchCanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	o := &Orchestrator{
		Platforms: testPlatforms(server, "s1", "s2"),
		Sites:     catalog.EmptySites(),
		Client:    server.Client(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := drain(o.Search(ctx, core.SearchRequest{Username: "ann"}))
	require.Len(t, results, 2)
	for _, r := range results {
		require.False(t, r.Found)
		require.Equal(t, 0, r.Confidence)
		require.NotEmpty(t, r.Error)
	}
}

func TestOrderPlatformsPriorityFirst(t *testing.T) {
	platforms := []catalog.Platform{
		{ID: "obscure"},
		{ID: "twitter"},
		{ID: "another"},
		{ID: "github"},
	}
	orderPlatforms(platforms)

	require.Equal(t, "github", platforms[0].ID)
	require.Equal(t, "twitter", platforms[1].ID)
	// Unmatched platforms keep their relative order.
	require.Equal(t, "obscure", platforms[2].ID)
	require.Equal(t, "another", platforms[3].ID)
}

func TestOrderSitesPriorityFirst(t *testing.T) {
	sites := []catalog.Site{
		{Name: "Zed Forum"},
		{Name: "Telegram"},
		{Name: "Alpha Wiki"},
		{Name: "GitHub"},
	}
	orderSites(sites)

	require.Equal(t, "github", sites[0].ID())
	require.Equal(t, "telegram", sites[1].ID())
	require.Equal(t, "zed_forum", sites[2].ID())
	require.Equal(t, "alpha_wiki", sites[3].ID())
}
