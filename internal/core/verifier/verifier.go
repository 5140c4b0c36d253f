// Package verifier implements the per-platform verification strategies.
// Every strategy converts failures into found=false results carrying an
// error string; nothing propagates past the Verify boundary.
package verifier

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/accountlens/accountlens/internal/core"
)

// Confidence levels per detection tier. Structured endpoint data is
// authoritative; rendered pages and raw content are progressively weaker
// evidence.
const (
	ConfidenceEndpoint        = 100
	ConfidenceEndpointGeneric = 95
	ConfidenceMediumFallback  = 85
	ConfidencePage            = 85
	ConfidenceContent         = 70
	ContentUsernameBonus      = 10
	ConfidenceContentCap      = 90
	ConfidencePatternBase     = 70
	PatternCodeBonus          = 10
	PatternStringBonus        = 15
	ConfidencePatternCap      = 95
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Verifier is the contract every verification strategy implements.
type Verifier interface {
	// Verify probes one platform for the username. It never panics and
	// never returns nil; failures come back as found=false results with an
	// error string.
	Verify(ctx context.Context, username string) *core.VerificationResult

	// Method reports the detection method this strategy implements.
	Method() core.DetectionMethod
}

// resultSeed carries the per-platform identity fields shared by every
// result a strategy produces.
type resultSeed struct {
	platformID   string
	platformName string
	method       core.DetectionMethod
	requestedAt  time.Time
}

func newSeed(platformID, platformName string, method core.DetectionMethod, clock func() time.Time) resultSeed {
	return resultSeed{
		platformID:   platformID,
		platformName: platformName,
		method:       method,
		requestedAt:  now(clock),
	}
}

// found builds a positive result. Confidence is clamped to 1..100.
func (s resultSeed) found(username, profileURL string, confidence int, clock func() time.Time) *core.VerificationResult {
	if confidence < 1 {
		confidence = 1
	}
	if confidence > 100 {
		confidence = 100
	}
	return &core.VerificationResult{
		CheckID:      uuid.New().String(),
		PlatformID:   s.platformID,
		PlatformName: s.platformName,
		Username:     username,
		Found:        true,
		Confidence:   confidence,
		ProfileURL:   profileURL,
		Method:       s.method,
		RequestedAt:  s.requestedAt,
		ResolvedAt:   now(clock),
	}
}

// missing builds a negative result; errMsg may be empty. Confidence is
// always zero when nothing was found.
func (s resultSeed) missing(username, profileURL, errMsg string, clock func() time.Time) *core.VerificationResult {
	return &core.VerificationResult{
		CheckID:      uuid.New().String(),
		PlatformID:   s.platformID,
		PlatformName: s.platformName,
		Username:     username,
		Found:        false,
		Confidence:   0,
		ProfileURL:   profileURL,
		Method:       s.method,
		Error:        errMsg,
		RequestedAt:  s.requestedAt,
		ResolvedAt:   now(clock),
	}
}

func now(clock func() time.Time) time.Time {
	if clock != nil {
		return clock()
	}
	return time.Now().UTC()
}

func httpClient(c *http.Client, timeout time.Duration) *http.Client {
	if c != nil {
		return c
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// errorMessage normalizes transport failures into short human-readable
// strings; context expiry maps to "timeout".
func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	return err.Error()
}
