package ranking

import "time"

// PopularityScorer is the query-independent quality signal: rating average,
// a linear recency boost over a fixed window, and a saturating view-count
// boost, weighted per Config and bounded to [0,1].
type PopularityScorer struct {
	config *Config
}

// NewPopularityScorer creates a PopularityScorer with the given config.
func NewPopularityScorer(config *Config) *PopularityScorer {
	return &PopularityScorer{config: config}
}

// Name returns the signal name.
func (s *PopularityScorer) Name() string {
	return "popularity"
}

// Score returns the weighted popularity sub-score.
func (s *PopularityScorer) Score(ctx *ScoringContext) float64 {
	if ctx.Document == nil {
		return 0
	}
	doc := ctx.Document

	ratingScore := doc.RatingAverage() / 5

	now := ctx.Now
	if now.IsZero() {
		now = time.Now()
	}
	recencyScore := s.recency(doc.CreatedAt, now)

	viewScore := s.views(doc.ViewCount)

	return s.config.RatingWeight*ratingScore +
		s.config.RecencyWeight*recencyScore +
		s.config.ViewsWeight*viewScore
}

// recency decays linearly from 1 at upload time to 0 at the window edge.
// Never negative; a zero CreatedAt contributes nothing.
func (s *PopularityScorer) recency(createdAt, now time.Time) float64 {
	if createdAt.IsZero() {
		return 0
	}
	window := time.Duration(s.config.RecencyWindowDays) * 24 * time.Hour
	age := now.Sub(createdAt)
	if age < 0 {
		age = 0
	}
	if age >= window {
		return 0
	}
	return 1 - float64(age)/float64(window)
}

// views saturates at the configured view count.
func (s *PopularityScorer) views(count int) float64 {
	if count <= 0 {
		return 0
	}
	if count >= s.config.ViewSaturation {
		return 1
	}
	return float64(count) / float64(s.config.ViewSaturation)
}
