package verifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/accountlens/accountlens/internal/core"
	"github.com/accountlens/accountlens/internal/core/catalog"
	"github.com/accountlens/accountlens/internal/core/variations"
)

// mediumPrefix is the anti-JSON-hijacking prefix Medium prepends to its
// JSON responses. It must be stripped before parsing.
const mediumPrefix = "])}while(1);</x>"

// EndpointVerifier probes a platform's own data endpoint. Structured
// responses are authoritative, so positives score at or near maximum
// confidence. Username variations are tried in order until one yields a
// positive signal or the list is exhausted.
type EndpointVerifier struct {
	Platform catalog.Platform
	Client   *http.Client
	Timeout  time.Duration
	Clock    func() time.Time
}

// Method reports the detection method.
func (v *EndpointVerifier) Method() core.DetectionMethod {
	return core.MethodEndpoint
}

// Verify checks the username against the platform endpoint.
func (v *EndpointVerifier) Verify(ctx context.Context, username string) *core.VerificationResult {
	seed := newSeed(v.Platform.ID, v.Platform.Name, core.MethodEndpoint, v.Clock)
	profileURL := v.Platform.ProfileURL(username)

	if strings.TrimSpace(v.Platform.APIEndpoint) == "" {
		return seed.missing(username, profileURL, "no API endpoint configured", v.Clock)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	client := httpClient(v.Client, v.Timeout)

	switch v.Platform.ID {
	case "github":
		return v.verifyVariations(ctx, client, seed, username, v.checkGitHub)
	case "reddit":
		return v.verifyVariations(ctx, client, seed, username, v.checkReddit)
	case "bluesky":
		return v.verifyVariations(ctx, client, seed, username, v.checkBluesky)
	case "medium":
		return v.verifySingle(ctx, client, seed, username, v.checkMedium)
	case "tiktok":
		return v.verifySingle(ctx, client, seed, username, v.checkTikTok)
	case "twitter":
		return v.verifySingle(ctx, client, seed, username, v.checkTwitter)
	case "npm":
		return v.verifySingle(ctx, client, seed, username, v.checkNPM)
	case "vimeo":
		return v.verifySingle(ctx, client, seed, username, v.checkVimeo)
	default:
		return v.verifySingle(ctx, client, seed, username, v.checkGeneric)
	}
}

// endpointCheck probes one candidate handle. A nil result with done=false
// means "try the next variation".
type endpointCheck func(ctx context.Context, client *http.Client, seed resultSeed, candidate string) (result *core.VerificationResult, done bool)

func (v *EndpointVerifier) verifyVariations(ctx context.Context, client *http.Client, seed resultSeed, username string, check endpointCheck) *core.VerificationResult {
	for _, candidate := range variations.Generate(username, v.Platform.ID) {
		if ctx.Err() != nil {
			return seed.missing(username, v.Platform.ProfileURL(username), errorMessage(ctx.Err()), v.Clock)
		}
		if result, done := check(ctx, client, seed, candidate); done {
			return result
		}
	}
	return seed.missing(username, v.Platform.ProfileURL(username), "", v.Clock)
}

func (v *EndpointVerifier) verifySingle(ctx context.Context, client *http.Client, seed resultSeed, username string, check endpointCheck) *core.VerificationResult {
	if result, done := check(ctx, client, seed, username); done {
		return result
	}
	return seed.missing(username, v.Platform.ProfileURL(username), "", v.Clock)
}

func (v *EndpointVerifier) get(ctx context.Context, client *http.Client, url string, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	for k, val := range headers {
		req.Header.Set(k, val)
	}
	return client.Do(req)
}

func (v *EndpointVerifier) checkGitHub(ctx context.Context, client *http.Client, seed resultSeed, candidate string) (*core.VerificationResult, bool) {
	resp, err := v.get(ctx, client, v.Platform.EndpointURL(candidate), map[string]string{
		"Accept": "application/vnd.github.v3+json",
	})
	if err != nil {
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false
	}

	var payload struct {
		Name      string `json:"name"`
		Bio       string `json:"bio"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, false
	}

	result := seed.found(candidate, v.Platform.ProfileURL(candidate), ConfidenceEndpoint, v.Clock)
	result.DisplayName = payload.Name
	result.Bio = payload.Bio
	result.AvatarURL = payload.AvatarURL
	return result, true
}

func (v *EndpointVerifier) checkReddit(ctx context.Context, client *http.Client, seed resultSeed, candidate string) (*core.VerificationResult, bool) {
	resp, err := v.get(ctx, client, v.Platform.EndpointURL(candidate), nil)
	if err != nil {
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false
	}

	var payload struct {
		Data struct {
			IconImg   string `json:"icon_img"`
			Subreddit struct {
				Title             string `json:"title"`
				PublicDescription string `json:"public_description"`
			} `json:"subreddit"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, false
	}

	result := seed.found(candidate, v.Platform.ProfileURL(candidate), ConfidenceEndpoint, v.Clock)
	result.DisplayName = payload.Data.Subreddit.Title
	result.Bio = payload.Data.Subreddit.PublicDescription
	if icon := payload.Data.IconImg; icon != "" {
		// Reddit icon URLs carry HTML-escaped query strings.
		result.AvatarURL = strings.SplitN(icon, "?", 2)[0]
	}
	return result, true
}

func (v *EndpointVerifier) checkBluesky(ctx context.Context, client *http.Client, seed resultSeed, candidate string) (*core.VerificationResult, bool) {
	resp, err := v.get(ctx, client, v.Platform.EndpointURL(candidate), nil)
	if err != nil {
		return nil, false
	}
	defer resp.Body.Close()

	// 400 is Bluesky's "profile not found"; move on to the next handle form.
	if resp.StatusCode != http.StatusOK {
		return nil, false
	}

	var payload struct {
		DisplayName string `json:"displayName"`
		Description string `json:"description"`
		Avatar      string `json:"avatar"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, false
	}

	result := seed.found(candidate, v.Platform.ProfileURL(candidate), ConfidenceEndpoint, v.Clock)
	result.DisplayName = payload.DisplayName
	result.Bio = payload.Description
	result.AvatarURL = payload.Avatar
	return result, true
}

func (v *EndpointVerifier) checkMedium(ctx context.Context, client *http.Client, seed resultSeed, candidate string) (*core.VerificationResult, bool) {
	profileURL := v.Platform.ProfileURL(candidate)
	resp, err := v.get(ctx, client, v.Platform.EndpointURL(candidate), nil)
	if err != nil {
		return seed.missing(candidate, profileURL, errorMessage(err), v.Clock), true
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err == nil {
			text := strings.TrimPrefix(string(body), mediumPrefix)
			var payload struct {
				Payload struct {
					User struct {
						Name    string `json:"name"`
						Bio     string `json:"bio"`
						ImageID string `json:"imageId"`
					} `json:"user"`
				} `json:"payload"`
			}
			if jsonErr := json.Unmarshal([]byte(text), &payload); jsonErr == nil && payload.Payload.User.Name != "" {
				result := seed.found(candidate, profileURL, ConfidenceEndpointGeneric, v.Clock)
				result.DisplayName = payload.Payload.User.Name
				result.Bio = payload.Payload.User.Bio
				result.AvatarURL = payload.Payload.User.ImageID
				return result, true
			}
		}
		// A 200 without parseable profile data still indicates the account
		// page exists, just with less certainty.
		return seed.found(candidate, profileURL, ConfidenceMediumFallback, v.Clock), true
	case http.StatusNotFound:
		return seed.missing(candidate, profileURL, "", v.Clock), true
	default:
		return seed.missing(candidate, profileURL, fmt.Sprintf("HTTP %d", resp.StatusCode), v.Clock), true
	}
}

func (v *EndpointVerifier) checkTikTok(ctx context.Context, client *http.Client, seed resultSeed, candidate string) (*core.VerificationResult, bool) {
	profileURL := v.Platform.ProfileURL(candidate)
	resp, err := v.get(ctx, client, v.Platform.EndpointURL(candidate), nil)
	if err != nil {
		return seed.missing(candidate, profileURL, errorMessage(err), v.Clock), true
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		var payload struct {
			AuthorURL  string `json:"author_url"`
			AuthorName string `json:"author_name"`
			Title      string `json:"title"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.AuthorURL != "" {
			result := seed.found(candidate, profileURL, ConfidenceEndpoint, v.Clock)
			result.DisplayName = payload.AuthorName
			result.Bio = payload.Title
			return result, true
		}
	}
	// The oEmbed endpoint answers 400 for nonexistent accounts.
	return seed.missing(candidate, profileURL, "", v.Clock), true
}

func (v *EndpointVerifier) checkTwitter(ctx context.Context, client *http.Client, seed resultSeed, candidate string) (*core.VerificationResult, bool) {
	profileURL := v.Platform.ProfileURL(candidate)
	resp, err := v.get(ctx, client, v.Platform.EndpointURL(candidate), nil)
	if err != nil {
		return seed.missing(candidate, profileURL, errorMessage(err), v.Clock), true
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		var payload struct {
			Reason string `json:"reason"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
			// "taken" means the handle belongs to an account; "available"
			// means it does not exist.
			switch payload.Reason {
			case "taken":
				return seed.found(candidate, profileURL, ConfidenceEndpoint, v.Clock), true
			case "available":
				return seed.missing(candidate, profileURL, "", v.Clock), true
			}
		}
	}
	return seed.missing(candidate, profileURL, "", v.Clock), true
}

func (v *EndpointVerifier) checkNPM(ctx context.Context, client *http.Client, seed resultSeed, candidate string) (*core.VerificationResult, bool) {
	profileURL := v.Platform.ProfileURL(candidate)
	resp, err := v.get(ctx, client, v.Platform.EndpointURL(candidate), map[string]string{
		"Accept": "application/json",
	})
	if err != nil {
		return seed.missing(candidate, profileURL, errorMessage(err), v.Clock), true
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var payload struct {
			Name            string `json:"name"`
			FullName        string `json:"fullname"`
			GitHub          string `json:"github"`
			TwitterUsername string `json:"twitterUsername"`
			AvatarURL       string `json:"avatarUrl"`
		}
		result := seed.found(candidate, profileURL, ConfidenceEndpoint, v.Clock)
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
			if payload.Name != "" {
				result.DisplayName = payload.Name
			} else {
				result.DisplayName = payload.FullName
			}
			if payload.TwitterUsername != "" {
				result.Bio = payload.TwitterUsername
			} else {
				result.Bio = payload.GitHub
			}
			result.AvatarURL = payload.AvatarURL
		}
		return result, true
	case http.StatusNotFound:
		return seed.missing(candidate, profileURL, "", v.Clock), true
	default:
		return seed.missing(candidate, profileURL, fmt.Sprintf("HTTP %d", resp.StatusCode), v.Clock), true
	}
}

func (v *EndpointVerifier) checkVimeo(ctx context.Context, client *http.Client, seed resultSeed, candidate string) (*core.VerificationResult, bool) {
	profileURL := v.Platform.ProfileURL(candidate)
	resp, err := v.get(ctx, client, v.Platform.EndpointURL(candidate), nil)
	if err != nil {
		return seed.missing(candidate, profileURL, errorMessage(err), v.Clock), true
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var payload struct {
			DisplayName    string `json:"display_name"`
			Bio            string `json:"bio"`
			PortraitMedium string `json:"portrait_medium"`
		}
		result := seed.found(candidate, profileURL, ConfidenceEndpoint, v.Clock)
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
			result.DisplayName = payload.DisplayName
			result.Bio = payload.Bio
			result.AvatarURL = payload.PortraitMedium
		}
		return result, true
	case http.StatusNotFound:
		return seed.missing(candidate, profileURL, "", v.Clock), true
	default:
		return seed.missing(candidate, profileURL, fmt.Sprintf("HTTP %d", resp.StatusCode), v.Clock), true
	}
}

func (v *EndpointVerifier) checkGeneric(ctx context.Context, client *http.Client, seed resultSeed, candidate string) (*core.VerificationResult, bool) {
	profileURL := v.Platform.ProfileURL(candidate)
	resp, err := v.get(ctx, client, v.Platform.EndpointURL(candidate), nil)
	if err != nil {
		return seed.missing(candidate, profileURL, errorMessage(err), v.Clock), true
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return seed.found(candidate, profileURL, ConfidenceEndpointGeneric, v.Clock), true
	case http.StatusNotFound:
		return seed.missing(candidate, profileURL, "", v.Clock), true
	default:
		return seed.missing(candidate, profileURL, fmt.Sprintf("HTTP %d", resp.StatusCode), v.Clock), true
	}
}
