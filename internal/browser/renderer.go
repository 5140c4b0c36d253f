// Package browser implements the rendered-page capability on top of a
// shared headless Chrome instance. The browser is launched lazily and
// reused for every probe; each probe gets its own incognito context so
// cookies and state never leak between verifications.
package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/accountlens/accountlens/internal/core/verifier"
)

// Config holds browser configuration.
type Config struct {
	Bin            string        `mapstructure:"bin"`
	Headless       bool          `mapstructure:"headless"`
	ViewportWidth  int           `mapstructure:"viewport_width"`
	ViewportHeight int           `mapstructure:"viewport_height"`
	RenderDelay    time.Duration `mapstructure:"render_delay"`
}

// DefaultConfig returns sensible defaults for probe rendering.
func DefaultConfig() Config {
	return Config{
		Headless:       true,
		ViewportWidth:  1280,
		ViewportHeight: 720,
		RenderDelay:    time.Second,
	}
}

// Renderer owns the shared Chrome instance. It satisfies
// verifier.Renderer.
type Renderer struct {
	cfg     Config
	mu      sync.Mutex
	browser *rod.Browser
}

var _ verifier.Renderer = (*Renderer)(nil)

// New creates a renderer; the browser is not launched until the first
// Render call.
func New(cfg Config) *Renderer {
	return &Renderer{cfg: cfg}
}

// ensureStarted launches or reuses the shared browser, reconnecting if a
// previous instance died.
func (r *Renderer) ensureStarted() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		if _, err := r.browser.Version(); err == nil {
			return r.browser, nil
		}
		_ = r.browser.Close()
		r.browser = nil
	}

	launch := launcher.New().Headless(r.cfg.Headless)
	if r.cfg.Bin != "" {
		launch = launch.Bin(r.cfg.Bin)
	}
	controlURL, err := launch.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chrome: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}

	r.browser = browser
	return browser, nil
}

// Render navigates an isolated incognito page to the URL and returns the
// final URL, title, and rendered HTML.
func (r *Renderer) Render(ctx context.Context, url string, timeout time.Duration) (*verifier.RenderedPage, error) {
	browser, err := r.ensureStarted()
	if err != nil {
		return nil, err
	}

	incognito, err := browser.Incognito()
	if err != nil {
		return nil, fmt.Errorf("incognito context: %w", err)
	}

	page, err := incognito.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer page.Close()

	page = page.Context(ctx)
	if timeout > 0 {
		page = page.Timeout(timeout)
	}

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:  viewport(r.cfg.ViewportWidth, 1280),
		Height: viewport(r.cfg.ViewportHeight, 720),
	}); err != nil {
		return nil, fmt.Errorf("set viewport: %w", err)
	}
	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	}); err != nil {
		return nil, fmt.Errorf("set user agent: %w", err)
	}

	if err := page.Navigate(url); err != nil {
		return nil, fmt.Errorf("navigate: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait load: %w", err)
	}

	// Give client-side scripts a moment to paint profile data.
	if r.cfg.RenderDelay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.cfg.RenderDelay):
		}
	}

	html, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}

	info, err := page.Info()
	if err != nil {
		return nil, fmt.Errorf("page info: %w", err)
	}

	return &verifier.RenderedPage{
		FinalURL: info.URL,
		Title:    info.Title,
		Content:  html,
	}, nil
}

// Close shuts the shared browser down. Safe to call when nothing was ever
// launched.
func (r *Renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	r.browser = nil
	return err
}

func viewport(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
