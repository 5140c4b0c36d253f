package verifier

import (
	"context"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/accountlens/accountlens/internal/core"
	"github.com/accountlens/accountlens/internal/core/catalog"
)

// PatternVerifier classifies a site-definition probe using the site's
// status/string signatures. Matching is order-sensitive: missing signatures
// short-circuit before exists signatures are consulted.
type PatternVerifier struct {
	Site    catalog.Site
	Client  *http.Client
	Timeout time.Duration
	Clock   func() time.Time
}

// Method reports the detection method.
func (v *PatternVerifier) Method() core.DetectionMethod {
	return core.MethodPattern
}

// Verify probes the site's check URL and applies its signatures.
func (v *PatternVerifier) Verify(ctx context.Context, username string) *core.VerificationResult {
	seed := newSeed(v.Site.ID(), v.Site.Name, core.MethodPattern, v.Clock)
	profileURL := v.Site.ProfileURL(username)
	if ctx == nil {
		ctx = context.Background()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.Site.URLFor(username), nil)
	if err != nil {
		return seed.missing(username, profileURL, errorMessage(err), v.Clock)
	}
	if len(v.Site.Headers) > 0 {
		for k, val := range v.Site.Headers {
			req.Header.Set(k, val)
		}
	} else {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := httpClient(v.Client, v.Timeout).Do(req)
	if err != nil {
		return seed.missing(username, profileURL, errorMessage(err), v.Clock)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return seed.missing(username, profileURL, errorMessage(err), v.Clock)
	}
	content := string(body)

	if !v.exists(resp.StatusCode, content) {
		return seed.missing(username, profileURL, "", v.Clock)
	}
	return seed.found(username, profileURL, v.confidence(resp.StatusCode, content), v.Clock)
}

// exists applies the signature checks in order: the missing code and string
// each short-circuit to "not found", then both exists signatures must hold.
func (v *PatternVerifier) exists(statusCode int, content string) bool {
	if v.Site.MissingCode != 0 && statusCode == v.Site.MissingCode {
		return false
	}
	if v.Site.MissingString != "" && patternMatch(v.Site.MissingString, content) {
		return false
	}
	if v.Site.ExistsCode != 0 && statusCode != v.Site.ExistsCode {
		return false
	}
	if v.Site.ExistsString != "" && !patternMatch(v.Site.ExistsString, content) {
		return false
	}
	return true
}

func (v *PatternVerifier) confidence(statusCode int, content string) int {
	confidence := ConfidencePatternBase
	if v.Site.ExistsCode != 0 && statusCode == v.Site.ExistsCode {
		confidence += PatternCodeBonus
	}
	if v.Site.ExistsString != "" && patternMatch(v.Site.ExistsString, content) {
		confidence += PatternStringBonus
	}
	if confidence > ConfidencePatternCap {
		confidence = ConfidencePatternCap
	}
	return confidence
}

// patternMatch tries the pattern as a case-insensitive regex, falling back
// to plain substring matching when it does not compile. Site-definition
// datasets mix literal strings and regexes freely.
func patternMatch(pattern, content string) bool {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return strings.Contains(strings.ToLower(content), strings.ToLower(pattern))
	}
	return re.MatchString(content)
}
