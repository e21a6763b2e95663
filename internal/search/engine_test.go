package search

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/campushare/relevance/internal/corpus"
	"github.com/campushare/relevance/internal/models"
	"github.com/campushare/relevance/internal/ranking"
)

func testCorpus() []*models.Document {
	created := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	return []*models.Document{
		{
			ID:            "calc-notes",
			DisplayName:   "calculus-notes.pdf",
			ExtractedText: "calculus derivatives limits continuity",
			Embedding:     ranking.Embed("calculus derivatives limits continuity"),
			Labels:        models.Labels{Subject: "Mathematics", Topic: "Calculus", Class: "11a"},
			Rating:        models.Rating{Average: 4.5, Count: 12},
			ViewCount:     30,
			CreatedAt:     created,
			IsPublic:      true,
		},
		{
			ID:            "mech-notes",
			DisplayName:   "mechanics.pdf",
			ExtractedText: "newtonian forces motion acceleration",
			Embedding:     ranking.Embed("newtonian forces motion acceleration"),
			Labels:        models.Labels{Subject: "Physics", Topic: "Mechanics", Class: "11a"},
			Rating:        models.Rating{Average: 3.5, Count: 4},
			CreatedAt:     created,
			IsPublic:      true,
		},
	}
}

func testEngine(provider corpus.Provider) *Engine {
	ranker := ranking.NewRanker(nil).WithClock(func() time.Time {
		return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	})
	return NewEngine(provider, ranker, nil)
}

func TestSearch(t *testing.T) {
	engine := testEngine(corpus.NewMemoryProvider(testCorpus()...))

	resp, err := engine.Search(context.Background(), &models.SearchQuery{Text: "calculus limits"}, "")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if resp.Diagnostic != "" {
		t.Fatalf("unexpected diagnostic: %q", resp.Diagnostic)
	}
	if len(resp.Results) == 0 {
		t.Fatal("expected results")
	}
	if resp.Results[0].Document.ID != "calc-notes" {
		t.Errorf("expected calc-notes first, got %q", resp.Results[0].Document.ID)
	}
	if resp.TotalResults != len(resp.Results) {
		t.Errorf("TotalResults = %d, results = %d", resp.TotalResults, len(resp.Results))
	}
	if resp.Metrics.MaxScore < resp.Metrics.AvgScore {
		t.Errorf("max %v below avg %v", resp.Metrics.MaxScore, resp.Metrics.AvgScore)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	engine := testEngine(corpus.NewMemoryProvider(testCorpus()...))

	for _, text := range []string{"", "   "} {
		_, err := engine.Search(context.Background(), &models.SearchQuery{Text: text}, "")
		if !errors.Is(err, models.ErrEmptyQuery) {
			t.Errorf("query %q: expected ErrEmptyQuery, got %v", text, err)
		}
	}
}

func TestSearchWithFilters(t *testing.T) {
	engine := testEngine(corpus.NewMemoryProvider(testCorpus()...))

	query := &models.SearchQuery{
		Text:    "calculus",
		Filters: models.SearchFilters{Subject: "physics"},
	}
	resp, err := engine.Search(context.Background(), query, "")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	for _, res := range resp.Results {
		if res.Document.Labels.Subject != "Physics" {
			t.Errorf("filter leaked document %q", res.Document.ID)
		}
	}
}

// A failing corpus degrades to an empty response carrying a diagnostic; it is
// never surfaced as an error, and stays distinguishable from a zero-hit search.
func TestSearchCorpusFailureDegrades(t *testing.T) {
	provider := corpus.NewMemoryProvider(testCorpus()...)
	provider.SetError(corpus.ErrUnavailable)
	engine := testEngine(provider)

	resp, err := engine.Search(context.Background(), &models.SearchQuery{Text: "calculus"}, "")
	if err != nil {
		t.Fatalf("corpus failure must not surface as an error: %v", err)
	}
	if resp.Diagnostic == "" {
		t.Error("expected a diagnostic message")
	}
	if len(resp.Results) != 0 {
		t.Errorf("expected empty results, got %d", len(resp.Results))
	}

	// Zero hits on a healthy corpus carries no diagnostic.
	provider.SetError(nil)
	resp, err = engine.Search(context.Background(), &models.SearchQuery{Text: "xylophone maintenance"}, "")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if resp.Diagnostic != "" {
		t.Errorf("zero hits must not carry a diagnostic, got %q", resp.Diagnostic)
	}
}

func TestSearchResultCap(t *testing.T) {
	var docs []*models.Document
	for i := 0; i < 80; i++ {
		docs = append(docs, &models.Document{
			ID:            string(rune('a'+i%26)) + string(rune('0'+i/26)),
			ExtractedText: "calculus derivatives limits",
			Embedding:     ranking.Embed("calculus derivatives limits"),
			IsPublic:      true,
		})
	}
	engine := testEngine(corpus.NewMemoryProvider(docs...))

	resp, err := engine.Search(context.Background(), &models.SearchQuery{Text: "calculus limits"}, "")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(resp.Results) != models.MaxSearchResults {
		t.Errorf("expected cap of %d results, got %d", models.MaxSearchResults, len(resp.Results))
	}
}

func TestFacets(t *testing.T) {
	docs := testCorpus()
	docs = append(docs, &models.Document{
		ID:       "tagged",
		IsPublic: true,
		Labels:   models.Labels{Subject: "Mathematics", Tags: []string{"exam", "2024"}},
	})
	engine := testEngine(corpus.NewMemoryProvider(docs...))

	facets, err := engine.Facets(context.Background())
	if err != nil {
		t.Fatalf("Facets failed: %v", err)
	}
	if want := []string{"Mathematics", "Physics"}; !reflect.DeepEqual(facets.Subjects, want) {
		t.Errorf("Subjects = %v, want %v", facets.Subjects, want)
	}
	if want := []string{"Calculus", "Mechanics"}; !reflect.DeepEqual(facets.Topics, want) {
		t.Errorf("Topics = %v, want %v", facets.Topics, want)
	}
	if want := []string{"2024", "exam"}; !reflect.DeepEqual(facets.Tags, want) {
		t.Errorf("Tags = %v, want %v", facets.Tags, want)
	}
	if want := []string{"11a"}; !reflect.DeepEqual(facets.Classes, want) {
		t.Errorf("Classes = %v, want %v", facets.Classes, want)
	}
}

func TestFacetsCorpusFailure(t *testing.T) {
	provider := corpus.NewMemoryProvider()
	provider.SetError(corpus.ErrUnavailable)
	engine := testEngine(provider)

	if _, err := engine.Facets(context.Background()); !errors.Is(err, corpus.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestComputeMetrics(t *testing.T) {
	results := []*models.ScoredResult{
		{Breakdown: models.ScoreBreakdown{Combined: 0.8}},
		{Breakdown: models.ScoreBreakdown{Combined: 0.4}},
	}
	m := computeMetrics(results)
	if m.AvgScore != 0.6 {
		t.Errorf("AvgScore = %v, want 0.6", m.AvgScore)
	}
	if m.MaxScore != 0.8 {
		t.Errorf("MaxScore = %v, want 0.8", m.MaxScore)
	}

	empty := computeMetrics(nil)
	if empty.AvgScore != 0 || empty.MaxScore != 0 {
		t.Errorf("empty metrics should be zero, got %+v", empty)
	}
}
