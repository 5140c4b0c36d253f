package variations

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateOriginalFirst(t *testing.T) {
	for _, platform := range []string{"github", "twitter", "instagram", "reddit", "linkedin"} {
		candidates := Generate("john.doe", platform)
		require.NotEmpty(t, candidates, platform)
		require.Equal(t, "john.doe", candidates[0], platform)
	}
}

func TestGenerateContainsOriginalExactlyOnce(t *testing.T) {
	candidates := Generate("john.doe", "github")
	seen := 0
	for _, c := range candidates {
		if c == "john.doe" {
			seen++
		}
	}
	require.Equal(t, 1, seen)
}

func TestGenerateDeduplicates(t *testing.T) {
	candidates := Generate("johndoe", "reddit")
	unique := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		require.False(t, unique[c], "duplicate candidate %q", c)
		unique[c] = true
	}
}

func TestGenerateBounded(t *testing.T) {
	for _, platform := range []string{"bluesky", "github", "twitter", "instagram", "reddit", "linkedin", "tiktok", "youtube", "steam"} {
		candidates := Generate("johndoe", platform)
		require.LessOrEqual(t, len(candidates), 12, platform)
	}
}

func TestGenerateBlueskySuffixFirst(t *testing.T) {
	candidates := Generate("alice", "bluesky")
	require.Equal(t, "alice.bsky.social", candidates[0])
	require.Contains(t, candidates, "alice")
	require.Contains(t, candidates, "alice.com")
}

func TestGenerateDotSubstitutions(t *testing.T) {
	candidates := Generate("john.doe", "github")
	require.Contains(t, candidates, "john-doe")
	require.Contains(t, candidates, "john_doe")
	require.Contains(t, candidates, "johndoe")
}

func TestGenerateTwitterSkipsWhenUnderscorePresent(t *testing.T) {
	candidates := Generate("john_doe", "twitter")
	require.Equal(t, "john_doe", candidates[0])
	require.NotContains(t, candidates, "john_doe_")
	require.NotContains(t, candidates, "_john_doe")
}

func TestGenerateUnknownPlatform(t *testing.T) {
	candidates := Generate("johndoe", "unknownsite")
	require.Equal(t, []string{"johndoe"}, candidates)
}

func TestGenerateDeterministic(t *testing.T) {
	first := Generate("john.doe", "instagram")
	for i := 0; i < 5; i++ {
		require.Equal(t, first, Generate("john.doe", "instagram"))
	}
}

func TestShouldTry(t *testing.T) {
	require.True(t, ShouldTry("github"))
	require.True(t, ShouldTry("bluesky"))
	require.False(t, ShouldTry("hackernews"))
	require.False(t, ShouldTry(""))
}
