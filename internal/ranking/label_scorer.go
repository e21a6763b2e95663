package ranking

import (
	"strings"

	"github.com/campushare/relevance/internal/models"
)

// Exact token equality against a label field counts double versus a
// substring-only match.
const (
	exactLabelWeight     = 2.0
	substringLabelWeight = 1.0
)

// LabelMatchScorer scores by token overlap against the structured label
// fields: subject, topic, and tags. The score is normalized by query token
// count times the number of non-empty label fields, so sparse-labeled
// documents are not rewarded for having fewer fields to miss. The fixed
// bound is [0,2]: exact matches everywhere score 2.
type LabelMatchScorer struct{}

// NewLabelMatchScorer creates a LabelMatchScorer.
func NewLabelMatchScorer() *LabelMatchScorer {
	return &LabelMatchScorer{}
}

// Name returns the signal name.
func (s *LabelMatchScorer) Name() string {
	return "label_match"
}

// Score returns totalMatchWeight / (queryTokens × nonEmptyFields), or 0 when
// the document has no label fields or the query has no qualifying tokens.
func (s *LabelMatchScorer) Score(ctx *ScoringContext) float64 {
	if ctx.Document == nil || ctx.Query == nil {
		return 0
	}
	queryTokens := ctx.Query.LabelTokens
	if len(queryTokens) == 0 {
		return 0
	}

	fields := labelFields(ctx.Document.Labels)
	if len(fields) == 0 {
		return 0
	}

	total := 0.0
	for _, field := range fields {
		fieldTokens := TokenizeLabels(field)
		for _, q := range queryTokens {
			switch {
			case containsExact(q, fieldTokens):
				total += exactLabelWeight
			case overlapsAny(q, fieldTokens):
				total += substringLabelWeight
			}
		}
	}
	return total / (float64(len(queryTokens)) * float64(len(fields)))
}

// labelFields returns the non-empty label field values examined for
// matching: subject, topic, and the tag list as one field.
func labelFields(labels models.Labels) []string {
	var fields []string
	if labels.Subject != "" {
		fields = append(fields, labels.Subject)
	}
	if labels.Topic != "" {
		fields = append(fields, labels.Topic)
	}
	if len(labels.Tags) > 0 {
		fields = append(fields, strings.Join(labels.Tags, " "))
	}
	return fields
}
