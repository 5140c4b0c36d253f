package output

import (
	"fmt"
	"strings"

	"github.com/accountlens/accountlens/internal/core"
)

// Format represents an output format.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Formatter renders a completed search.
type Formatter interface {
	FormatSummary(summary *core.SearchSummary) (string, error)
}

// ParseFormat validates and normalizes a format string.
func ParseFormat(value string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "", string(FormatTable):
		return FormatTable, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatMarkdown):
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", value)
	}
}

// NewFormatter returns a formatter for the requested format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	default:
		return &TableFormatter{}
	}
}

func statusLabel(r *core.VerificationResult) string {
	switch {
	case r.Error != "":
		return "error"
	case r.Found:
		return fmt.Sprintf("found (%d%%)", r.Confidence)
	default:
		return "not found"
	}
}

func notes(r *core.VerificationResult) string {
	if r.Error != "" {
		return r.Error
	}
	if !r.Found {
		return ""
	}
	parts := make([]string, 0, 2)
	if r.DisplayName != "" {
		parts = append(parts, r.DisplayName)
	}
	if r.ProfileURL != "" {
		parts = append(parts, r.ProfileURL)
	}
	return strings.Join(parts, " | ")
}
