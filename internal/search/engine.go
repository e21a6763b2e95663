// Package search orchestrates a search request: validate, snapshot the
// corpus, filter, score, and rank.
package search

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/campushare/relevance/internal/corpus"
	"github.com/campushare/relevance/internal/models"
	"github.com/campushare/relevance/internal/ranking"
	"github.com/campushare/relevance/pkg/utils"
)

const corpusDiagnostic = "document corpus is unavailable, please retry later"

// Engine runs ranked search over an externally-supplied corpus. It holds no
// mutable state per request and is safe for concurrent use.
type Engine struct {
	provider corpus.Provider
	ranker   *ranking.Ranker
	logger   *zap.Logger
}

// NewEngine creates a search engine with the given collaborators.
func NewEngine(provider corpus.Provider, ranker *ranking.Ranker, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		provider: provider,
		ranker:   ranker,
		logger:   logger,
	}
}

// Ranker returns the engine's ranker, shared with the suggestion engine.
func (e *Engine) Ranker() *ranking.Ranker {
	return e.ranker
}

// Search validates the query and returns the ranked result list. An invalid
// query is reported as an error; a corpus retrieval failure degrades to an
// empty response with a diagnostic message, distinct from the zero-hit case.
func (e *Engine) Search(ctx context.Context, query *models.SearchQuery, callerID string) (*models.SearchResponse, error) {
	start := time.Now()
	if err := query.Validate(); err != nil {
		return nil, err
	}

	resp := &models.SearchResponse{
		Results: []*models.ScoredResult{},
		Query:   query.Text,
	}

	docs, err := e.provider.Snapshot(ctx)
	if err != nil {
		e.logger.Error("corpus snapshot failed", zap.Error(err))
		resp.Diagnostic = corpusDiagnostic
		resp.QueryTime = time.Since(start).Milliseconds()
		return resp, nil
	}

	filtered := FilterDocuments(docs, query.Filters, callerID)
	analyzed := ranking.AnalyzeQuery(query.Text)
	results, err := e.ranker.Rank(ctx, analyzed, filtered, query.Limit)
	if err != nil {
		return nil, err
	}

	resp.Results = results
	resp.TotalResults = len(results)
	resp.Metrics = computeMetrics(results)
	resp.QueryTime = time.Since(start).Milliseconds()

	e.logger.Debug("search completed",
		zap.String("query", utils.Truncate(query.Text, 120)),
		zap.Int("corpus_size", len(docs)),
		zap.Int("filtered", len(filtered)),
		zap.Int("results", len(results)),
	)
	return resp, nil
}

// Facets aggregates the distinct label values across the corpus for filter
// UIs. No scoring involved.
func (e *Engine) Facets(ctx context.Context) (*models.FacetSet, error) {
	docs, err := e.provider.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	subjects := make(map[string]struct{})
	topics := make(map[string]struct{})
	classes := make(map[string]struct{})
	semesters := make(map[string]struct{})
	uploaderTypes := make(map[string]struct{})
	tags := make(map[string]struct{})

	for _, doc := range docs {
		addNonEmpty(subjects, doc.Labels.Subject)
		addNonEmpty(topics, doc.Labels.Topic)
		addNonEmpty(classes, doc.Labels.Class)
		addNonEmpty(semesters, doc.Labels.Semester)
		addNonEmpty(uploaderTypes, doc.Labels.UploaderType)
		for _, tag := range doc.Labels.Tags {
			addNonEmpty(tags, tag)
		}
	}

	return &models.FacetSet{
		Subjects:      sortedKeys(subjects),
		Topics:        sortedKeys(topics),
		Classes:       sortedKeys(classes),
		Semesters:     sortedKeys(semesters),
		UploaderTypes: sortedKeys(uploaderTypes),
		Tags:          sortedKeys(tags),
	}, nil
}

func computeMetrics(results []*models.ScoredResult) models.SearchMetrics {
	var m models.SearchMetrics
	if len(results) == 0 {
		return m
	}
	sum := 0.0
	for _, r := range results {
		sum += r.Breakdown.Combined
		if r.Breakdown.Combined > m.MaxScore {
			m.MaxScore = r.Breakdown.Combined
		}
	}
	m.AvgScore = sum / float64(len(results))
	return m
}

func addNonEmpty(set map[string]struct{}, v string) {
	if v != "" {
		set[v] = struct{}{}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
