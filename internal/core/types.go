package core

import "time"

// DetectionMethod identifies the strategy family used to probe a platform.
type DetectionMethod string

const (
	MethodEndpoint DetectionMethod = "endpoint"
	MethodPage     DetectionMethod = "rendered-page"
	MethodContent  DetectionMethod = "generic-content"
	MethodPattern  DetectionMethod = "pattern"
)

// VerificationResult reports the verdict for a single platform probe.
// Found == false implies Confidence == 0, and a non-empty Error implies
// Found == false.
type VerificationResult struct {
	CheckID      string          `json:"check_id"`
	PlatformID   string          `json:"platform_id"`
	PlatformName string          `json:"platform_name"`
	Username     string          `json:"username"`
	Found        bool            `json:"found"`
	Confidence   int             `json:"confidence"`
	ProfileURL   string          `json:"profile_url"`
	Method       DetectionMethod `json:"method"`
	DisplayName  string          `json:"display_name,omitempty"`
	Bio          string          `json:"bio,omitempty"`
	AvatarURL    string          `json:"avatar_url,omitempty"`
	Error        string          `json:"error,omitempty"`
	RequestedAt  time.Time       `json:"requested_at"`
	ResolvedAt   time.Time       `json:"resolved_at"`
}

// SearchRequest describes a username search across the catalogs.
type SearchRequest struct {
	Username      string `json:"username"`
	Tiers         []int  `json:"tiers,omitempty"`
	MinConfidence int    `json:"min_confidence"`
	DeepSearch    bool   `json:"deep_search"`
}

// SearchSummary aggregates a completed search for batch-style output.
type SearchSummary struct {
	Username    string                `json:"username"`
	Results     []*VerificationResult `json:"results"`
	Checked     int                   `json:"checked"`
	Found       int                   `json:"found"`
	CompletedAt time.Time             `json:"completed_at"`
}

// Summarize collects a drained result stream into a summary. Results below
// minConfidence still count as checked but not as found.
func Summarize(username string, results []*VerificationResult, minConfidence int) *SearchSummary {
	summary := &SearchSummary{
		Username:    username,
		Results:     results,
		Checked:     len(results),
		CompletedAt: time.Now().UTC(),
	}
	for _, r := range results {
		if r != nil && r.Found && r.Confidence >= minConfidence {
			summary.Found++
		}
	}
	return summary
}
