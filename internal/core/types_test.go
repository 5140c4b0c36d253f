package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSummarizeCounts(t *testing.T) {
	results := []*VerificationResult{
		{PlatformID: "a", Found: true, Confidence: 95},
		{PlatformID: "b", Found: true, Confidence: 70},
		{PlatformID: "c", Found: false, Confidence: 0},
		{PlatformID: "d", Found: false, Confidence: 0, Error: "timeout"},
		nil,
	}

	summary := Summarize("ann", results, 0)
	require.Equal(t, "ann", summary.Username)
	require.Equal(t, 5, summary.Checked)
	require.Equal(t, 2, summary.Found)
	require.False(t, summary.CompletedAt.IsZero())
}

func TestSummarizeMinConfidenceFloor(t *testing.T) {
	results := []*VerificationResult{
		{PlatformID: "a", Found: true, Confidence: 95},
		{PlatformID: "b", Found: true, Confidence: 70},
	}

	summary := Summarize("ann", results, 80)
	require.Equal(t, 2, summary.Checked)
	require.Equal(t, 1, summary.Found)
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize("ann", nil, 0)
	require.Equal(t, 0, summary.Checked)
	require.Equal(t, 0, summary.Found)
	require.Empty(t, summary.Results)
}
