package ranking

// TextMatchScorer scores by token overlap between the query and the
// document's extracted text. A query token matches when it contains, or is
// contained by, any document token.
type TextMatchScorer struct{}

// NewTextMatchScorer creates a TextMatchScorer.
func NewTextMatchScorer() *TextMatchScorer {
	return &TextMatchScorer{}
}

// Name returns the signal name.
func (s *TextMatchScorer) Name() string {
	return "text_match"
}

// Score returns matchedQueryTokens/totalQueryTokens in [0,1]. Empty document
// text or a query with no qualifying tokens scores 0.
func (s *TextMatchScorer) Score(ctx *ScoringContext) float64 {
	if ctx.Document == nil || ctx.Query == nil {
		return 0
	}
	queryTokens := ctx.Query.ContentTokens
	if len(queryTokens) == 0 || ctx.Document.ExtractedText == "" {
		return 0
	}
	docTokens := Tokenize(ctx.Document.ExtractedText)
	if len(docTokens) == 0 {
		return 0
	}
	matched := 0
	for _, q := range queryTokens {
		if overlapsAny(q, docTokens) {
			matched++
		}
	}
	return float64(matched) / float64(len(queryTokens))
}
