package models

import (
	"errors"
	"strings"
)

// ErrEmptyQuery is returned when a search request arrives without query text.
var ErrEmptyQuery = errors.New("search query cannot be empty")

// SearchFilters are hard structured filters applied before scoring.
// Populated fields are matched case-insensitively as substrings; all
// populated fields must match (logical AND).
type SearchFilters struct {
	Subject      string `json:"subject,omitempty"`
	Class        string `json:"class,omitempty"`
	Semester     string `json:"semester,omitempty"`
	UploaderType string `json:"uploaderType,omitempty"`
}

// Empty reports whether no filter field is populated.
func (f SearchFilters) Empty() bool {
	return f.Subject == "" && f.Class == "" && f.Semester == "" && f.UploaderType == ""
}

// SearchQuery represents a search request with optional filters.
type SearchQuery struct {
	Text    string        `json:"query"`
	Filters SearchFilters `json:"filters,omitempty"`
	Limit   int           `json:"limit,omitempty"`
}

// MaxSearchResults caps how many results a single search may return.
const MaxSearchResults = 50

// Validate ensures the query has text and normalizes the limit.
// Returns ErrEmptyQuery when the text is empty; query text is required in
// search mode (suggestion mode has no query).
func (q *SearchQuery) Validate() error {
	q.Text = strings.TrimSpace(q.Text)
	if q.Text == "" {
		return ErrEmptyQuery
	}
	if q.Limit <= 0 || q.Limit > MaxSearchResults {
		q.Limit = MaxSearchResults
	}
	return nil
}
