package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/accountlens/accountlens/internal/core"
)

func TestValidateUsername(t *testing.T) {
	require.NoError(t, validateUsername("ann"))
	require.NoError(t, validateUsername("ann.doe"))
	require.NoError(t, validateUsername("Ann_Doe-99"))

	require.Error(t, validateUsername(""))
	require.Error(t, validateUsername(".ann"))
	require.Error(t, validateUsername("ann doe"))
	require.Error(t, validateUsername("ann/doe"))
	require.Error(t, validateUsername(strings.Repeat("a", 65)))
}

func TestValidateTiers(t *testing.T) {
	require.NoError(t, validateTiers(nil))
	require.NoError(t, validateTiers([]int{1, 2, 3}))
	require.Error(t, validateTiers([]int{0}))
	require.Error(t, validateTiers([]int{4}))
}

func TestFilterFound(t *testing.T) {
	results := []*core.VerificationResult{
		{PlatformID: "a", Found: true, Confidence: 70},
		{PlatformID: "b", Found: false},
		{PlatformID: "c", Found: true, Confidence: 95},
		nil,
	}

	filtered := filterFound(results, 0)
	require.Len(t, filtered, 2)
	require.Equal(t, "c", filtered[0].PlatformID)
	require.Equal(t, "a", filtered[1].PlatformID)

	filtered = filterFound(results, 80)
	require.Len(t, filtered, 1)
	require.Equal(t, "c", filtered[0].PlatformID)
}
