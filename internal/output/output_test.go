package output

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/accountlens/accountlens/internal/core"
)

func sampleSummary() *core.SearchSummary {
	return &core.SearchSummary{
		Username: "ann",
		Results: []*core.VerificationResult{
			{
				PlatformID:   "github",
				PlatformName: "GitHub",
				Username:     "ann",
				Found:        true,
				Confidence:   100,
				ProfileURL:   "https://github.com/ann",
				Method:       core.MethodEndpoint,
				DisplayName:  "Ann Doe",
			},
			{
				PlatformID:   "reddit",
				PlatformName: "Reddit",
				Username:     "ann",
				Found:        false,
				Method:       core.MethodEndpoint,
			},
			{
				PlatformID:   "instagram",
				PlatformName: "Instagram",
				Username:     "ann",
				Found:        false,
				Method:       core.MethodPage,
				Error:        "timeout",
			},
		},
		Checked:     3,
		Found:       1,
		CompletedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat("")
	require.NoError(t, err)
	require.Equal(t, FormatTable, format)

	format, err = ParseFormat(" JSON ")
	require.NoError(t, err)
	require.Equal(t, FormatJSON, format)

	format, err = ParseFormat("markdown")
	require.NoError(t, err)
	require.Equal(t, FormatMarkdown, format)

	_, err = ParseFormat("yaml")
	require.Error(t, err)
}

func TestTableFormatter(t *testing.T) {
	rendered, err := (&TableFormatter{}).FormatSummary(sampleSummary())
	require.NoError(t, err)
	require.Contains(t, rendered, "GitHub")
	require.Contains(t, rendered, "found (100%)")
	require.Contains(t, rendered, "not found")
	require.Contains(t, rendered, "error")
	require.Contains(t, rendered, "1 found / 3 checked")
}

func TestJSONFormatterRoundTrips(t *testing.T) {
	rendered, err := (&JSONFormatter{Indent: true}).FormatSummary(sampleSummary())
	require.NoError(t, err)

	var parsed core.SearchSummary
	require.NoError(t, json.Unmarshal([]byte(rendered), &parsed))
	require.Equal(t, "ann", parsed.Username)
	require.Len(t, parsed.Results, 3)
	require.Equal(t, 1, parsed.Found)
	require.Equal(t, "timeout", parsed.Results[2].Error)
}

func TestMarkdownFormatter(t *testing.T) {
	rendered, err := (&MarkdownFormatter{}).FormatSummary(sampleSummary())
	require.NoError(t, err)
	require.Contains(t, rendered, "## Accounts for ann")
	require.Contains(t, rendered, "| GitHub | ann | endpoint | found (100%) |")
	require.Contains(t, rendered, "**Total**: 1 found / 3 checked")
}

func TestMarkdownEscapesCells(t *testing.T) {
	summary := sampleSummary()
	summary.Results[0].PlatformName = "Git|Hub"

	rendered, err := (&MarkdownFormatter{}).FormatSummary(summary)
	require.NoError(t, err)
	require.Contains(t, rendered, `Git\|Hub`)
}

func TestNotesJoinsNameAndURL(t *testing.T) {
	r := sampleSummary().Results[0]
	require.Equal(t, "Ann Doe | https://github.com/ann", notes(r))

	r.DisplayName = ""
	require.Equal(t, "https://github.com/ann", notes(r))
}

func TestFormattersHandleNilSummary(t *testing.T) {
	for _, f := range []Formatter{&TableFormatter{}, &JSONFormatter{}, &MarkdownFormatter{}} {
		rendered, err := f.FormatSummary(nil)
		require.NoError(t, err)
		require.Empty(t, rendered)
	}
}
