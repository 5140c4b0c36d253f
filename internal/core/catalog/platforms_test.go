package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/accountlens/accountlens/internal/core"
)

func TestLoadPlatformsBuiltins(t *testing.T) {
	platforms, err := LoadPlatforms("")
	require.NoError(t, err)

	github, ok := platforms.Get("github")
	require.True(t, ok)
	require.Equal(t, 1, github.Tier)
	require.Equal(t, core.MethodEndpoint, github.Method)
	require.NotEmpty(t, github.APIEndpoint)

	instagram, ok := platforms.Get("instagram")
	require.True(t, ok)
	require.Equal(t, core.MethodPage, instagram.Method)

	require.Greater(t, platforms.EnabledCount(), 25)
}

func TestLoadPlatformsOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "platforms.yaml")
	data := `platforms:
  - id: github
    name: GitHub Enterprise
    category: development
    tier: 1
    enabled: true
    url_template: "https://git.example.com/{username}"
    method: endpoint
    api_endpoint: "https://git.example.com/api/users/{username}"
  - id: examplehub
    name: ExampleHub
    category: community
    tier: 3
    enabled: true
    url_template: "https://examplehub.test/{username}"
    method: generic-content
  - id: ""
    name: Invalid
    url_template: "https://invalid.test/{username}"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	platforms, err := LoadPlatforms(path)
	require.NoError(t, err)

	github, ok := platforms.Get("github")
	require.True(t, ok)
	require.Equal(t, "GitHub Enterprise", github.Name)
	require.Equal(t, "https://git.example.com/alice", github.ProfileURL("alice"))

	custom, ok := platforms.Get("examplehub")
	require.True(t, ok)
	require.Equal(t, core.MethodContent, custom.Method)

	_, ok = platforms.Get("")
	require.False(t, ok)
}

func TestEnabledFiltersAndSorts(t *testing.T) {
	platforms, err := LoadPlatforms("")
	require.NoError(t, err)

	tier1 := platforms.Enabled([]int{1})
	require.NotEmpty(t, tier1)
	for _, p := range tier1 {
		require.Equal(t, 1, p.Tier)
		require.True(t, p.Enabled)
	}

	all := platforms.Enabled(nil)
	require.Greater(t, len(all), len(tier1))
	for i := 1; i < len(all); i++ {
		prev, cur := all[i-1], all[i]
		require.LessOrEqual(t, prev.Tier, cur.Tier)
		if prev.Tier == cur.Tier {
			require.LessOrEqual(t, prev.Name, cur.Name)
		}
	}
}

func TestPlatformURLTemplates(t *testing.T) {
	p := Platform{
		URLTemplate: "https://example.com/{username}",
		APIEndpoint: "https://api.example.com/v1/{username}/profile",
	}
	require.Equal(t, "https://example.com/alice", p.ProfileURL("alice"))
	require.Equal(t, "https://api.example.com/v1/alice/profile", p.EndpointURL("alice"))
}

func TestLoadPlatformsMissingFile(t *testing.T) {
	_, err := LoadPlatforms(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
