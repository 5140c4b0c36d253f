package verifier

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/accountlens/accountlens/internal/core"
	"github.com/accountlens/accountlens/internal/core/catalog"
)

func patternSite(server *httptest.Server) catalog.Site {
	return catalog.Site{
		Name:        "Example Site",
		CheckURL:    server.URL + "/{account}",
		ExistsCode:  200,
		MissingCode: 404,
	}
}

func TestPatternVerifierMissingCodeShortCircuits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		// Body contains the exists string, which must not rescue a 404.
		_, _ = w.Write([]byte(`welcome to the profile`))
	}))
	defer server.Close()

	site := patternSite(server)
	site.ExistsString = "profile"

	v := &PatternVerifier{Site: site, Client: server.Client()}

	result := v.Verify(context.Background(), "ann")
	require.False(t, result.Found)
	require.Equal(t, 0, result.Confidence)
	require.Equal(t, core.MethodPattern, result.Method)
}

func TestPatternVerifierMissingStringShortCircuits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>This user does not exist</html>`))
	}))
	defer server.Close()

	site := patternSite(server)
	site.MissingString = "does not exist"

	v := &PatternVerifier{Site: site, Client: server.Client()}

	result := v.Verify(context.Background(), "ann")
	require.False(t, result.Found)
}

func TestPatternVerifierCodeOnlyConfidence(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>profile</html>`))
	}))
	defer server.Close()

	v := &PatternVerifier{Site: patternSite(server), Client: server.Client()}

	result := v.Verify(context.Background(), "ann")
	require.True(t, result.Found)
	require.Equal(t, ConfidencePatternBase+PatternCodeBonus, result.Confidence)
}

func TestPatternVerifierBothSignaturesCapped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><div class="profile-card">ann</div></html>`))
	}))
	defer server.Close()

	site := patternSite(server)
	site.ExistsString = "profile-card"

	v := &PatternVerifier{Site: site, Client: server.Client()}

	result := v.Verify(context.Background(), "ann")
	require.True(t, result.Found)
	require.Equal(t, ConfidencePatternCap, result.Confidence)
}

func TestPatternVerifierExistsStringRequired(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>generic landing page</html>`))
	}))
	defer server.Close()

	site := patternSite(server)
	site.ExistsString = "profile-card"

	v := &PatternVerifier{Site: site, Client: server.Client()}

	result := v.Verify(context.Background(), "ann")
	require.False(t, result.Found)
}

func TestPatternVerifierRegexSignature(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>Joined March 2024</html>`))
	}))
	defer server.Close()

	site := patternSite(server)
	site.ExistsString = `joined \w+ \d{4}`

	v := &PatternVerifier{Site: site, Client: server.Client()}

	result := v.Verify(context.Background(), "ann")
	require.True(t, result.Found)
}

func TestPatternVerifierInvalidRegexFallsBackToSubstring(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>literal [marker</html>`))
	}))
	defer server.Close()

	site := patternSite(server)
	site.ExistsString = "literal [marker"

	v := &PatternVerifier{Site: site, Client: server.Client()}

	result := v.Verify(context.Background(), "ann")
	require.True(t, result.Found)
}

func TestPatternVerifierSiteHeaders(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`profile`))
	}))
	defer server.Close()

	site := patternSite(server)
	site.Headers = map[string]string{"User-Agent": "custom-agent"}

	v := &PatternVerifier{Site: site, Client: server.Client()}

	result := v.Verify(context.Background(), "ann")
	require.True(t, result.Found)
	require.Equal(t, "custom-agent", gotAgent)
}

func TestPatternVerifierTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	v := &PatternVerifier{Site: patternSite(server), Client: &http.Client{}}

	result := v.Verify(context.Background(), "ann")
	require.False(t, result.Found)
	require.Equal(t, 0, result.Confidence)
	require.NotEmpty(t, result.Error)
}
