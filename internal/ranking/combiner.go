package ranking

import (
	"strings"

	"github.com/campushare/relevance/internal/models"
)

// Combiner folds the four sub-scores into one combined score according to
// the active ranking profile.
type Combiner struct {
	config *Config
}

// NewCombiner creates a Combiner with the given config.
func NewCombiner(config *Config) *Combiner {
	return &Combiner{config: config}
}

// Combine computes the combined score from a breakdown.
//
// ProfileText: 0.4·semantic + 0.3·textMatch + 0.3·labelMatch, with the
// popularity sub-score folded in as an additive boost capped at +0.1 rather
// than a weight inside the 1.0 budget.
//
// ProfileLabel (metadata-only corpora): 0.6·labelMatch + 0.3·textMatch +
// a filename bonus when the query appears verbatim in the display name.
func (c *Combiner) Combine(ctx *ScoringContext, b models.ScoreBreakdown) float64 {
	if c.config.Profile == ProfileLabel {
		score := c.config.LabelOnlyLabelWeight*b.LabelMatch +
			c.config.LabelOnlyTextWeight*b.TextMatch
		if filenameMatches(ctx) {
			score += c.config.FilenameBonus
		}
		return score
	}

	score := c.config.SemanticWeight*b.Semantic +
		c.config.TextMatchWeight*b.TextMatch +
		c.config.LabelMatchWeight*b.LabelMatch

	boost := c.config.PopularityBoostCap * b.Popularity
	if boost > c.config.PopularityBoostCap {
		boost = c.config.PopularityBoostCap
	}
	return score + boost
}

// filenameMatches reports whether the raw query is a case-insensitive
// substring of the document display name.
func filenameMatches(ctx *ScoringContext) bool {
	if ctx == nil || ctx.Query == nil || ctx.Document == nil {
		return false
	}
	q := strings.TrimSpace(strings.ToLower(ctx.Query.Raw))
	if q == "" || ctx.Document.DisplayName == "" {
		return false
	}
	return strings.Contains(strings.ToLower(ctx.Document.DisplayName), q)
}
