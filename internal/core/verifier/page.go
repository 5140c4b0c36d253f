package verifier

import (
	"context"
	"strings"
	"time"

	"github.com/accountlens/accountlens/internal/core"
	"github.com/accountlens/accountlens/internal/core/catalog"
)

// RenderedPage is what the browser capability returns for a profile URL.
type RenderedPage struct {
	FinalURL string
	Title    string
	Content  string
}

// Renderer is the external browser capability: fetch a URL with scripts
// executed and return the final URL, document title, and rendered HTML.
type Renderer interface {
	Render(ctx context.Context, url string, timeout time.Duration) (*RenderedPage, error)
}

// minPlausibleContent is the blocked/JS-redirect heuristic: a rendered
// profile page shorter than this did not really load.
const minPlausibleContent = 1000

// PageVerifier drives the shared browser to render a profile page and
// classifies the result with a small per-platform decision table.
type PageVerifier struct {
	Platform catalog.Platform
	Renderer Renderer
	Timeout  time.Duration
	Clock    func() time.Time
}

// Method reports the detection method.
func (v *PageVerifier) Method() core.DetectionMethod {
	return core.MethodPage
}

// Verify renders the profile URL and classifies the page.
func (v *PageVerifier) Verify(ctx context.Context, username string) *core.VerificationResult {
	seed := newSeed(v.Platform.ID, v.Platform.Name, core.MethodPage, v.Clock)
	profileURL := v.Platform.ProfileURL(username)

	if v.Renderer == nil {
		return seed.missing(username, profileURL, "no renderer configured", v.Clock)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	page, err := v.Renderer.Render(ctx, profileURL, v.Timeout)
	if err != nil {
		return seed.missing(username, profileURL, errorMessage(err), v.Clock)
	}

	finalURL := strings.ToLower(page.FinalURL)
	content := strings.ToLower(page.Content)

	// Redirects to login or error pages mean the profile is not reachable.
	if v.Platform.ID != "instagram" {
		if strings.Contains(finalURL, "login") || strings.Contains(finalURL, "error") || strings.Contains(finalURL, "/404") {
			return seed.missing(username, profileURL, "", v.Clock)
		}
	}

	switch v.Platform.ID {
	case "twitter":
		return v.checkTwitter(seed, username, profileURL, content, page.Title)
	case "instagram":
		return v.checkInstagram(seed, username, profileURL, finalURL, content, page.Title)
	case "tiktok":
		return v.checkTikTok(seed, username, profileURL, finalURL, content, page.Title)
	case "facebook":
		return v.checkFacebook(seed, username, profileURL, content, page.Title)
	case "linkedin":
		return v.checkLinkedIn(seed, username, profileURL, content, page.Title)
	case "youtube":
		return v.checkYouTube(seed, username, profileURL, content, page.Title)
	case "twitch":
		return v.checkSuffixTitled(seed, username, profileURL, content, page.Title, " - Twitch")
	case "pinterest":
		return v.checkPinterest(seed, username, profileURL, content, page.Title)
	default:
		return v.checkGeneric(seed, username, profileURL, content)
	}
}

func (v *PageVerifier) fragments(fallback []string) []string {
	if len(v.Platform.NotFoundFragments) > 0 {
		return v.Platform.NotFoundFragments
	}
	return fallback
}

func containsAny(content string, fragments []string) bool {
	for _, fragment := range fragments {
		if strings.Contains(content, strings.ToLower(fragment)) {
			return true
		}
	}
	return false
}

func (v *PageVerifier) checkTwitter(seed resultSeed, username, profileURL, content, title string) *core.VerificationResult {
	notFound := v.fragments([]string{
		"this account doesn't exist",
		"account suspended",
		"hmm...this page doesn't exist",
		"something went wrong",
	})
	if containsAny(content, notFound) {
		return seed.missing(username, profileURL, "", v.Clock)
	}

	lower := strings.ToLower(username)
	if strings.Contains(content, "@"+lower) || strings.Contains(content, `"screen_name":"`+lower+`"`) {
		result := seed.found(username, profileURL, ConfidencePage, v.Clock)
		if open := strings.Index(title, "("); open > 0 && strings.Contains(title, ")") {
			result.DisplayName = strings.TrimSpace(title[:open])
		}
		return result
	}
	return seed.missing(username, profileURL, "", v.Clock)
}

func (v *PageVerifier) checkInstagram(seed resultSeed, username, profileURL, finalURL, content, title string) *core.VerificationResult {
	// Instagram blocks headless browsers by bouncing to the login or
	// challenge flow.
	if strings.Contains(finalURL, "/accounts/login") || strings.Contains(finalURL, "challenge") {
		return seed.missing(username, profileURL, "blocked: redirected to login", v.Clock)
	}
	if len(content) < minPlausibleContent {
		return seed.missing(username, profileURL, "page blocked", v.Clock)
	}
	if containsAny(content, v.fragments(nil)) {
		return seed.missing(username, profileURL, "", v.Clock)
	}

	if strings.Contains(content, strings.ToLower(username)) {
		result := seed.found(username, profileURL, ConfidencePage, v.Clock)
		if open := strings.Index(title, "("); open > 0 {
			result.DisplayName = strings.TrimSpace(title[:open])
		} else if sep := strings.Index(title, " • "); sep > 0 {
			result.DisplayName = strings.TrimSpace(title[:sep])
		}
		return result
	}
	return seed.missing(username, profileURL, "", v.Clock)
}

func (v *PageVerifier) checkTikTok(seed resultSeed, username, profileURL, finalURL, content, title string) *core.VerificationResult {
	// TikTok bundles every error string into shared script content, so
	// positive evidence has to be checked before not-found phrases.
	lowerTitle := strings.ToLower(title)
	lower := strings.ToLower(username)
	if strings.Contains(lowerTitle, "@"+lower) && strings.Contains(lowerTitle, "| tiktok") {
		result := seed.found(username, profileURL, ConfidencePage, v.Clock)
		if open := strings.Index(title, "("); open > 0 {
			result.DisplayName = strings.TrimSpace(title[:open])
		}
		return result
	}

	// Nonexistent profiles bounce to the feed or an explicit not-found URL.
	if strings.Contains(finalURL, "/foryou") || strings.Contains(finalURL, "notfound") {
		return seed.missing(username, profileURL, "", v.Clock)
	}

	if (strings.Contains(content, lower) || strings.Contains(content, "@"+lower)) && len(content) > 10000 {
		return seed.found(username, profileURL, ConfidencePage, v.Clock)
	}
	return seed.missing(username, profileURL, "", v.Clock)
}

func (v *PageVerifier) checkFacebook(seed resultSeed, username, profileURL, content, title string) *core.VerificationResult {
	// A generic "Facebook" title means no profile rendered; the __isProfile
	// marker only appears in real profile payloads.
	if title == "Facebook" || strings.Contains(content, "<title>facebook</title>") {
		return seed.missing(username, profileURL, "", v.Clock)
	}
	if strings.Contains(content, "__isprofile") {
		result := seed.found(username, profileURL, ConfidencePage, v.Clock)
		if sep := strings.Index(title, " | "); sep > 0 {
			result.DisplayName = strings.TrimSpace(title[:sep])
		} else if sep := strings.Index(title, " - "); sep > 0 {
			result.DisplayName = strings.TrimSpace(title[:sep])
		}
		return result
	}

	if containsAny(content, v.fragments(nil)) {
		return seed.missing(username, profileURL, "", v.Clock)
	}
	if strings.Contains(content, strings.ToLower(username)) && len(content) > 5000 {
		return seed.found(username, profileURL, ConfidencePage, v.Clock)
	}
	return seed.missing(username, profileURL, "", v.Clock)
}

func (v *PageVerifier) checkLinkedIn(seed resultSeed, username, profileURL, content, title string) *core.VerificationResult {
	if containsAny(content, v.fragments(nil)) {
		return seed.missing(username, profileURL, "", v.Clock)
	}

	lower := strings.ToLower(username)
	if strings.Contains(content, "join linkedin") || strings.Contains(content, "sign in") {
		if !strings.Contains(content, lower) {
			return seed.missing(username, profileURL, "login wall", v.Clock)
		}
	}

	if strings.Contains(content, lower) {
		result := seed.found(username, profileURL, ConfidencePage, v.Clock)
		if sep := strings.Index(title, " | "); sep > 0 {
			result.DisplayName = strings.TrimSpace(title[:sep])
		} else if sep := strings.Index(title, " - "); sep > 0 {
			result.DisplayName = strings.TrimSpace(title[:sep])
		}
		return result
	}
	return seed.missing(username, profileURL, "", v.Clock)
}

func (v *PageVerifier) checkYouTube(seed resultSeed, username, profileURL, content, title string) *core.VerificationResult {
	if containsAny(content, v.fragments(nil)) {
		return seed.missing(username, profileURL, "", v.Clock)
	}

	lower := strings.ToLower(username)
	if strings.Contains(content, lower) || strings.Contains(content, "@"+lower) {
		result := seed.found(username, profileURL, ConfidencePage, v.Clock)
		if strings.Contains(title, " - YouTube") {
			result.DisplayName = strings.TrimSpace(strings.Replace(title, " - YouTube", "", 1))
		}
		return result
	}
	return seed.missing(username, profileURL, "", v.Clock)
}

// checkSuffixTitled covers platforms whose profile titles end in a fixed
// " - Site" suffix.
func (v *PageVerifier) checkSuffixTitled(seed resultSeed, username, profileURL, content, title, suffix string) *core.VerificationResult {
	if containsAny(content, v.fragments(nil)) {
		return seed.missing(username, profileURL, "", v.Clock)
	}
	if strings.Contains(content, strings.ToLower(username)) {
		result := seed.found(username, profileURL, ConfidencePage, v.Clock)
		if strings.Contains(title, suffix) {
			result.DisplayName = strings.TrimSpace(strings.Replace(title, suffix, "", 1))
		}
		return result
	}
	return seed.missing(username, profileURL, "", v.Clock)
}

func (v *PageVerifier) checkPinterest(seed resultSeed, username, profileURL, content, title string) *core.VerificationResult {
	if containsAny(content, v.fragments(nil)) {
		return seed.missing(username, profileURL, "", v.Clock)
	}
	if strings.Contains(content, strings.ToLower(username)) {
		result := seed.found(username, profileURL, ConfidencePage, v.Clock)
		if open := strings.Index(title, " ("); open > 0 {
			result.DisplayName = strings.TrimSpace(title[:open])
		}
		return result
	}
	return seed.missing(username, profileURL, "", v.Clock)
}

func (v *PageVerifier) checkGeneric(seed resultSeed, username, profileURL, content string) *core.VerificationResult {
	notFound := v.fragments([]string{
		"not found",
		"doesn't exist",
		"does not exist",
		"404",
		"page not available",
	})
	if containsAny(content, notFound) {
		return seed.missing(username, profileURL, "", v.Clock)
	}
	if strings.Contains(content, strings.ToLower(username)) {
		return seed.found(username, profileURL, ConfidencePage, v.Clock)
	}
	return seed.missing(username, profileURL, "", v.Clock)
}
