package models

// ScoreBreakdown exposes the per-signal sub-scores behind a combined score,
// so callers can see why a document ranked where it did.
type ScoreBreakdown struct {
	Semantic   float64 `json:"semantic"`
	TextMatch  float64 `json:"textMatch"`
	LabelMatch float64 `json:"labelMatch"`
	Popularity float64 `json:"popularity"`
	Combined   float64 `json:"combined"`
}

// ScoredResult is a single ranked hit. Constructed fresh per query and never
// persisted.
type ScoredResult struct {
	Document  *Document      `json:"document"`
	Breakdown ScoreBreakdown `json:"scoreBreakdown"`
	Reason    string         `json:"reason,omitempty"`
	Rank      int            `json:"rank"`
}

// SearchMetrics summarizes score distribution of a result set.
type SearchMetrics struct {
	AvgScore float64 `json:"avgScore"`
	MaxScore float64 `json:"maxScore"`
}

// SearchResponse is the response for a search request.
// A zero-hit search and a failed corpus fetch are distinct states: the
// former has an empty Diagnostic, the latter carries a diagnostic message.
type SearchResponse struct {
	Results      []*ScoredResult `json:"results"`
	Query        string          `json:"query"`
	TotalResults int             `json:"totalResults"`
	Metrics      SearchMetrics   `json:"searchMetrics"`
	QueryTime    int64           `json:"query_time_ms"`
	Diagnostic   string          `json:"diagnostic,omitempty"`
}

// Suggestion response types, one per suggestion mode.
const (
	SuggestionTypePersonalized = "personalized"
	SuggestionTypeRandom       = "random"
)

// SuggestionResponse is the response for a suggestions request.
type SuggestionResponse struct {
	Suggestions []*ScoredResult `json:"suggestions"`
	UserProfile *UserProfile    `json:"userProfile"`
	Type        string          `json:"type"`
	Diagnostic  string          `json:"diagnostic,omitempty"`
}
