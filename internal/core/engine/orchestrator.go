// Package engine schedules verification work across the catalogs under a
// global concurrency budget and streams results in completion order.
package engine

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/accountlens/accountlens/internal/core"
	"github.com/accountlens/accountlens/internal/core/catalog"
	"github.com/accountlens/accountlens/internal/core/verifier"
)

// DefaultConcurrency is the global probe budget when none is configured.
// Aggressive on purpose: most platforms answer quickly and every probe has
// its own short timeout.
const DefaultConcurrency = 200

// DefaultProbeTimeout bounds each individual probe.
const DefaultProbeTimeout = 5 * time.Second

// workItem pairs a descriptor with the verifier that will probe it. It is
// owned exclusively by the goroutine that executes it.
type workItem struct {
	id       string
	verifier verifier.Verifier
}

// Orchestrator fans a search out over the platform catalog (and, for deep
// searches, the site-definition catalog), bounded by a weighted semaphore.
type Orchestrator struct {
	Platforms    *catalog.Platforms
	Sites        *catalog.Sites
	Renderer     verifier.Renderer
	Client       *http.Client
	Concurrency  int64
	ProbeTimeout time.Duration
	Clock        func() time.Time
}

// Search builds the work list for the request and returns a channel that
// yields one VerificationResult per work item, in completion order. The
// channel is closed once every probe has finished. Cancelling ctx stops
// in-flight probes; their results still arrive (as timeout/canceled
// errors) so the 1:1 item-to-result contract holds for consumed streams.
func (o *Orchestrator) Search(ctx context.Context, req core.SearchRequest) <-chan *core.VerificationResult {
	if ctx == nil {
		ctx = context.Background()
	}

	items := o.buildWorkList(req)
	results := make(chan *core.VerificationResult, len(items))

	sem := semaphore.NewWeighted(o.concurrency())
	var wg sync.WaitGroup

	for _, item := range items {
		wg.Add(1)
		go func(item workItem) {
			defer wg.Done()

			if err := sem.Acquire(ctx, 1); err != nil {
				results <- o.abortedResult(item, req.Username, err)
				return
			}
			defer sem.Release(1)

			probeCtx, cancel := context.WithTimeout(ctx, o.probeTimeout())
			defer cancel()

			results <- item.verifier.Verify(probeCtx, req.Username)
		}(item)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// buildWorkList assembles and priority-orders the probes for a request:
// enabled platforms filtered by tier always, site definitions only for deep
// searches and only when their id does not shadow a selected platform.
func (o *Orchestrator) buildWorkList(req core.SearchRequest) []workItem {
	platforms := o.Platforms.Enabled(req.Tiers)
	items := make([]workItem, 0, len(platforms))

	orderPlatforms(platforms)

	selected := make(map[string]bool, len(platforms))
	for _, p := range platforms {
		selected[strings.ToLower(p.ID)] = true
		items = append(items, workItem{id: p.ID, verifier: o.verifierFor(p)})
	}

	if req.DeepSearch && o.Sites != nil {
		sites := o.Sites.All()
		orderSites(sites)
		for _, s := range sites {
			if selected[strings.ToLower(s.ID())] {
				continue
			}
			items = append(items, workItem{id: s.ID(), verifier: &verifier.PatternVerifier{
				Site:    s,
				Client:  o.Client,
				Timeout: o.probeTimeout(),
				Clock:   o.Clock,
			}})
		}
	}

	return items
}

// verifierFor selects the strategy for a platform's detection method. The
// choice is made once per work item.
func (o *Orchestrator) verifierFor(p catalog.Platform) verifier.Verifier {
	switch p.Method {
	case core.MethodEndpoint:
		return &verifier.EndpointVerifier{Platform: p, Client: o.Client, Timeout: o.probeTimeout(), Clock: o.Clock}
	case core.MethodPage:
		return &verifier.PageVerifier{Platform: p, Renderer: o.Renderer, Timeout: o.probeTimeout(), Clock: o.Clock}
	default:
		return &verifier.ContentVerifier{Platform: p, Client: o.Client, Timeout: o.probeTimeout(), Clock: o.Clock}
	}
}

func (o *Orchestrator) abortedResult(item workItem, username string, err error) *core.VerificationResult {
	now := time.Now().UTC()
	if o.Clock != nil {
		now = o.Clock()
	}
	return &core.VerificationResult{
		PlatformID:  item.id,
		Username:    username,
		Found:       false,
		Method:      item.verifier.Method(),
		Error:       err.Error(),
		RequestedAt: now,
		ResolvedAt:  now,
	}
}

func (o *Orchestrator) concurrency() int64 {
	if o.Concurrency > 0 {
		return o.Concurrency
	}
	return DefaultConcurrency
}

func (o *Orchestrator) probeTimeout() time.Duration {
	if o.ProbeTimeout > 0 {
		return o.ProbeTimeout
	}
	return DefaultProbeTimeout
}
