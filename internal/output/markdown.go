package output

import (
	"fmt"
	"strings"

	"github.com/accountlens/accountlens/internal/core"
)

// MarkdownFormatter renders results as a markdown table.
type MarkdownFormatter struct{}

// FormatSummary renders a search summary as Markdown.
func (f *MarkdownFormatter) FormatSummary(summary *core.SearchSummary) (string, error) {
	if summary == nil {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Accounts for %s\n\n", escapeMarkdownCell(summary.Username)))
	sb.WriteString("| Platform | Username | Method | Status | Notes |\n")
	sb.WriteString("|----------|----------|--------|--------|-------|\n")

	for _, r := range summary.Results {
		if r == nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
			escapeMarkdownCell(r.PlatformName),
			escapeMarkdownCell(r.Username),
			escapeMarkdownCell(string(r.Method)),
			escapeMarkdownCell(statusLabel(r)),
			escapeMarkdownCell(notes(r)),
		))
	}

	sb.WriteString(fmt.Sprintf("\n**Total**: %d found / %d checked\n", summary.Found, summary.Checked))
	return sb.String(), nil
}

func escapeMarkdownCell(value string) string {
	value = strings.ReplaceAll(value, "|", "\\|")
	value = strings.ReplaceAll(value, "\n", " ")
	return value
}
