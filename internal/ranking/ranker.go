package ranking

import (
	"context"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/campushare/relevance/internal/models"
)

// Ranker runs the signal scorers over a corpus, combines the sub-scores, and
// produces a deterministically ordered result list. It is stateless per
// request: scoring reads an immutable corpus snapshot and mutates nothing
// shared, so concurrent Rank calls need no locking.
type Ranker struct {
	config     *Config
	semantic   *SemanticScorer
	textMatch  *TextMatchScorer
	labelMatch *LabelMatchScorer
	popularity *PopularityScorer
	combiner   *Combiner
	now        func() time.Time
}

// NewRanker creates a Ranker with the given configuration.
func NewRanker(config *Config) *Ranker {
	if config == nil {
		config = DefaultConfig()
	}
	config.ApplyDefaults()
	return &Ranker{
		config:     config,
		semantic:   NewSemanticScorer(),
		textMatch:  NewTextMatchScorer(),
		labelMatch: NewLabelMatchScorer(),
		popularity: NewPopularityScorer(config),
		combiner:   NewCombiner(config),
		now:        time.Now,
	}
}

// WithClock overrides the time source, for reproducible recency scoring in
// tests.
func (r *Ranker) WithClock(now func() time.Time) *Ranker {
	r.now = now
	return r
}

// Config returns the ranking configuration.
func (r *Ranker) Config() *Config {
	return r.config
}

// PopularityScore returns just the popularity sub-score for a document.
// The suggestion engine blends it with interest bonuses.
func (r *Ranker) PopularityScore(doc *models.Document) float64 {
	return r.popularity.Score(&ScoringContext{Document: doc, Now: r.now()})
}

// ScoreDocument computes the full breakdown for one document.
func (r *Ranker) ScoreDocument(query *Query, doc *models.Document) models.ScoreBreakdown {
	sctx := &ScoringContext{Query: query, Document: doc, Now: r.now()}
	b := models.ScoreBreakdown{
		Semantic:   r.semantic.Score(sctx),
		TextMatch:  r.textMatch.Score(sctx),
		LabelMatch: r.labelMatch.Score(sctx),
		Popularity: r.popularity.Score(sctx),
	}
	b.Combined = r.combiner.Combine(sctx, b)
	return b
}

// Rank scores all documents against the query, drops those at or below the
// relevance cutoff, sorts, and truncates to limit. Per-document scoring is
// data-parallel; the sort is the only synchronization point.
func (r *Ranker) Rank(ctx context.Context, query *Query, docs []*models.Document, limit int) ([]*models.ScoredResult, error) {
	breakdowns := make([]models.ScoreBreakdown, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range docs {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			breakdowns[i] = r.ScoreDocument(query, docs[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]*models.ScoredResult, 0, len(docs))
	for i, doc := range docs {
		if breakdowns[i].Combined <= r.config.MinScore {
			continue
		}
		results = append(results, &models.ScoredResult{
			Document:  doc,
			Breakdown: breakdowns[i],
		})
	}

	SortResults(results)

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	for i, res := range results {
		res.Rank = i + 1
	}
	return results, nil
}

// SortResults orders results by combined score descending, breaking ties by
// rating average descending, then creation time descending (newest first),
// then document ID ascending for full determinism.
func SortResults(results []*models.ScoredResult) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Breakdown.Combined != b.Breakdown.Combined {
			return a.Breakdown.Combined > b.Breakdown.Combined
		}
		if a.Document.RatingAverage() != b.Document.RatingAverage() {
			return a.Document.RatingAverage() > b.Document.RatingAverage()
		}
		if !a.Document.CreatedAt.Equal(b.Document.CreatedAt) {
			return a.Document.CreatedAt.After(b.Document.CreatedAt)
		}
		return a.Document.ID < b.Document.ID
	})
}
