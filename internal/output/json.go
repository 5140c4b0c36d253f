package output

import (
	"encoding/json"

	"github.com/accountlens/accountlens/internal/core"
)

// JSONFormatter renders results as JSON.
type JSONFormatter struct {
	Indent bool
}

// FormatSummary renders a search summary as JSON.
func (f *JSONFormatter) FormatSummary(summary *core.SearchSummary) (string, error) {
	if summary == nil {
		return "", nil
	}

	var (
		data []byte
		err  error
	)

	if f.Indent {
		data, err = json.MarshalIndent(summary, "", "  ")
	} else {
		data, err = json.Marshal(summary)
	}
	if err != nil {
		return "", err
	}

	return string(data), nil
}
