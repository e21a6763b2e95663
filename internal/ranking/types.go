package ranking

import (
	"time"

	"github.com/campushare/relevance/internal/models"
)

// Query holds the analyzed form of a search query, computed once per request
// and shared across all per-document scoring calls.
type Query struct {
	// Raw is the original query string.
	Raw string
	// ContentTokens are the normalized tokens for content matching.
	ContentTokens []string
	// LabelTokens are the normalized tokens for label matching.
	LabelTokens []string
	// Embedding is the query's hash embedding.
	Embedding []float32
}

// AnalyzeQuery tokenizes and embeds a query string.
func AnalyzeQuery(text string) *Query {
	return &Query{
		Raw:           text,
		ContentTokens: Tokenize(text),
		LabelTokens:   TokenizeLabels(text),
		Embedding:     Embed(text),
	}
}

// ScoringContext carries everything a scorer needs for one document.
// Now is injected so recency scoring is reproducible in tests.
type ScoringContext struct {
	Query    *Query
	Document *models.Document
	Now      time.Time
}

// Scorer is one independent scoring signal. Scorers never fail: missing or
// malformed optional fields degrade the signal to 0.
type Scorer interface {
	// Score returns the signal value for the document.
	Score(ctx *ScoringContext) float64
	// Name returns the signal name for breakdowns and logging.
	Name() string
}
