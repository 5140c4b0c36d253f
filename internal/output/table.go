package output

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/accountlens/accountlens/internal/core"
)

// TableFormatter renders results as an ASCII table.
type TableFormatter struct{}

// FormatSummary renders a search summary as a table.
func (f *TableFormatter) FormatSummary(summary *core.SearchSummary) (string, error) {
	if summary == nil {
		return "", nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Platform", "Username", "Method", "Status", "Notes"})

	for _, r := range summary.Results {
		if r == nil {
			continue
		}
		t.AppendRow(table.Row{
			r.PlatformName,
			r.Username,
			string(r.Method),
			statusLabel(r),
			notes(r),
		})
	}

	t.AppendFooter(table.Row{
		"",
		"",
		"",
		fmt.Sprintf("%d found / %d checked", summary.Found, summary.Checked),
		"",
	})

	return t.Render(), nil
}
