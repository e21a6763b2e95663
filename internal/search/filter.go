package search

import (
	"strings"

	"github.com/campushare/relevance/internal/models"
)

// FilterDocuments applies the hard structured filters and the visibility
// rule before scoring. Every populated filter field must match its document
// field by case-insensitive substring (logical AND); unpopulated fields
// impose no constraint. Private documents survive only for their uploader.
func FilterDocuments(docs []*models.Document, filters models.SearchFilters, callerID string) []*models.Document {
	out := make([]*models.Document, 0, len(docs))
	for _, doc := range docs {
		if doc == nil || !doc.VisibleTo(callerID) {
			continue
		}
		if !fieldMatches(doc.Labels.Subject, filters.Subject) {
			continue
		}
		if !fieldMatches(doc.Labels.Class, filters.Class) {
			continue
		}
		if !fieldMatches(doc.Labels.Semester, filters.Semester) {
			continue
		}
		if !fieldMatches(doc.Labels.UploaderType, filters.UploaderType) {
			continue
		}
		out = append(out, doc)
	}
	return out
}

// fieldMatches reports whether the document field satisfies the filter
// value. An empty filter always matches.
func fieldMatches(field, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(field), strings.ToLower(filter))
}
