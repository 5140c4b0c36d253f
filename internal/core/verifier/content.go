package verifier

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/accountlens/accountlens/internal/core"
	"github.com/accountlens/accountlens/internal/core/catalog"
	"github.com/accountlens/accountlens/internal/core/variations"
)

// defaultNotFoundFragments are the phrases checked when a platform defines
// no list of its own.
var defaultNotFoundFragments = []string{
	"page not found",
	"user not found",
	"profile not found",
	"doesn't exist",
	"does not exist",
	"no user",
	"404",
	"not available",
	"account suspended",
	"account deleted",
}

const maxBioLength = 200

// ContentVerifier fetches the profile page over plain HTTP and classifies
// the raw body, without executing scripts. Moderate confidence: content
// evidence is weaker than structured endpoints or rendered pages.
type ContentVerifier struct {
	Platform catalog.Platform
	Client   *http.Client
	Timeout  time.Duration
	Clock    func() time.Time
}

// Method reports the detection method.
func (v *ContentVerifier) Method() core.DetectionMethod {
	return core.MethodContent
}

// Verify fetches and classifies the profile page, trying handle variations
// when the platform is on the variation allow-list.
func (v *ContentVerifier) Verify(ctx context.Context, username string) *core.VerificationResult {
	seed := newSeed(v.Platform.ID, v.Platform.Name, core.MethodContent, v.Clock)
	if ctx == nil {
		ctx = context.Background()
	}

	candidates := []string{username}
	if variations.ShouldTry(v.Platform.ID) {
		candidates = variations.Generate(username, v.Platform.ID)
	}

	client := httpClient(v.Client, v.Timeout)
	var lastErr string

	for _, candidate := range candidates {
		if ctx.Err() != nil {
			return seed.missing(username, v.Platform.ProfileURL(username), errorMessage(ctx.Err()), v.Clock)
		}
		result, err := v.probe(ctx, client, seed, candidate)
		if err != nil {
			lastErr = errorMessage(err)
			continue
		}
		if result != nil {
			return result
		}
	}

	return seed.missing(username, v.Platform.ProfileURL(username), lastErr, v.Clock)
}

// probe fetches one candidate. A nil result with nil error means "candidate
// not found, try the next one".
func (v *ContentVerifier) probe(ctx context.Context, client *http.Client, seed resultSeed, candidate string) (*core.VerificationResult, error) {
	url := v.Platform.ProfileURL(candidate)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return nil, err
	}
	content := strings.ToLower(string(body))

	fragments := v.Platform.NotFoundFragments
	if len(fragments) == 0 {
		fragments = defaultNotFoundFragments
	}
	for _, fragment := range fragments {
		if strings.Contains(content, strings.ToLower(fragment)) {
			return nil, nil
		}
	}

	confidence := ConfidenceContent
	if strings.Contains(content, strings.ToLower(candidate)) {
		confidence += ContentUsernameBonus
	}
	if confidence > ConfidenceContentCap {
		confidence = ConfidenceContentCap
	}

	result := seed.found(candidate, url, confidence, v.Clock)
	result.DisplayName = firstMeta(content, "og:title", "twitter:title")
	result.AvatarURL = firstMeta(content, "og:image", "twitter:image")
	if bio := firstMeta(content, "og:description", "description"); bio != "" {
		result.Bio = truncate(bio, maxBioLength)
	}
	return result, nil
}

func firstMeta(content string, names ...string) string {
	for _, name := range names {
		if value := extractMeta(content, name); value != "" {
			return value
		}
	}
	return ""
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
