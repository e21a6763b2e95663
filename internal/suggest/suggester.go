// Package suggest implements the suggestion variant of the ranking engine:
// random guest suggestions and interest-based personalized suggestions.
package suggest

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/campushare/relevance/internal/corpus"
	"github.com/campushare/relevance/internal/models"
	"github.com/campushare/relevance/internal/ranking"
)

// Result caps per suggestion mode.
const (
	GuestLimit        = 20
	PersonalizedLimit = 10
)

// Interest bonus weights. The interest sub-score is clamped to [0,1] and
// blended half-and-half with the popularity sub-score, so the suggestion
// score stays in [0,1].
const (
	subjectBonus  = 0.4
	topicBonus    = 0.3
	classBonus    = 0.2
	educatorBonus = 0.1

	interestBlend   = 0.5
	popularityBlend = 0.5
)

const guestReason = "Popular in community"

const corpusDiagnostic = "document corpus is unavailable, please retry later"

// Suggester produces document suggestions. Unlike query-mode search, it
// applies no relevance cutoff: it selects top-N (or a random sample for
// guests) regardless of absolute score.
type Suggester struct {
	provider corpus.Provider
	ranker   *ranking.Ranker
	logger   *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSuggester creates a Suggester. The random source is seeded from the
// clock; tests override it with WithRand.
func NewSuggester(provider corpus.Provider, ranker *ranking.Ranker, logger *zap.Logger) *Suggester {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Suggester{
		provider: provider,
		ranker:   ranker,
		logger:   logger,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithRand replaces the random source, for deterministic tests.
func (s *Suggester) WithRand(rng *rand.Rand) *Suggester {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng = rng
	return s
}

// Suggest returns suggestions for the given user, or guest suggestions when
// profile is nil. Corpus failure degrades to an empty response with a
// diagnostic, never an error.
func (s *Suggester) Suggest(ctx context.Context, profile *models.UserProfile) (*models.SuggestionResponse, error) {
	resp := &models.SuggestionResponse{
		Suggestions: []*models.ScoredResult{},
		Type:        models.SuggestionTypeRandom,
	}
	if profile != nil {
		resp.Type = models.SuggestionTypePersonalized
		resp.UserProfile = profile
	}

	docs, err := s.provider.Snapshot(ctx)
	if err != nil {
		s.logger.Error("corpus snapshot failed", zap.Error(err))
		resp.Diagnostic = corpusDiagnostic
		return resp, nil
	}

	if profile == nil {
		resp.Suggestions = s.guestSuggestions(docs)
	} else {
		resp.Suggestions = s.personalizedSuggestions(docs, profile)
	}
	return resp, nil
}

// guestSuggestions returns an unbiased random sample of the public corpus.
func (s *Suggester) guestSuggestions(docs []*models.Document) []*models.ScoredResult {
	public := publicOnly(docs)

	s.mu.Lock()
	s.rng.Shuffle(len(public), func(i, j int) {
		public[i], public[j] = public[j], public[i]
	})
	scores := make([]float64, len(public))
	for i := range scores {
		scores[i] = 0.5 + s.rng.Float64()*0.5
	}
	s.mu.Unlock()

	if len(public) > GuestLimit {
		public = public[:GuestLimit]
	}
	results := make([]*models.ScoredResult, len(public))
	for i, doc := range public {
		results[i] = &models.ScoredResult{
			Document:  doc,
			Breakdown: models.ScoreBreakdown{Combined: scores[i]},
			Reason:    guestReason,
			Rank:      i + 1,
		}
	}
	return results
}

// personalizedSuggestions scores every other public document with the
// popularity signal plus interest-overlap bonuses and a reason string
// summarizing which bonuses fired.
func (s *Suggester) personalizedSuggestions(docs []*models.Document, profile *models.UserProfile) []*models.ScoredResult {
	interests := buildInterestProfile(profile)

	results := make([]*models.ScoredResult, 0, len(docs))
	for _, doc := range docs {
		if doc == nil || !doc.IsPublic || doc.UploaderID == profile.UserID {
			continue
		}
		res := s.scoreSuggestion(doc, interests)
		results = append(results, res)
	}

	ranking.SortResults(results)
	if len(results) > PersonalizedLimit {
		results = results[:PersonalizedLimit]
	}
	for i, res := range results {
		res.Rank = i + 1
	}
	return results
}

func (s *Suggester) scoreSuggestion(doc *models.Document, interests *interestProfile) *models.ScoredResult {
	var reasons []string
	interest := 0.0

	if interests.matchesSubject(doc.Labels.Subject) {
		interest += subjectBonus
		reasons = append(reasons, fmt.Sprintf("matches your interest in %s", doc.Labels.Subject))
	}
	if interests.matchesTopic(doc.Labels.Topic) {
		interest += topicBonus
		reasons = append(reasons, fmt.Sprintf("related to %s", doc.Labels.Topic))
	}
	if interests.matchesClass(doc.Labels.Class) {
		interest += classBonus
		reasons = append(reasons, "for your class")
	}
	if interests.fromEducator(doc.Labels.UploaderType) {
		interest += educatorBonus
		reasons = append(reasons, "from a verified educator")
	}
	if interest > 1 {
		interest = 1
	}

	popularity := s.ranker.PopularityScore(doc)
	if doc.RatingAverage() >= 4 {
		reasons = append(reasons, "highly rated")
	} else if doc.ViewCount > 10 {
		reasons = append(reasons, "popular content")
	}

	if len(reasons) == 0 {
		reasons = append(reasons, strings.ToLower(guestReason))
	}

	return &models.ScoredResult{
		Document: doc,
		Breakdown: models.ScoreBreakdown{
			Popularity: popularity,
			Combined:   interestBlend*interest + popularityBlend*popularity,
		},
		Reason: formatReason(reasons),
	}
}

// formatReason joins reason fragments into one sentence-cased string, e.g.
// "Matches your interest in Mathematics, highly rated".
func formatReason(parts []string) string {
	joined := strings.Join(parts, ", ")
	if joined == "" {
		return ""
	}
	return strings.ToUpper(joined[:1]) + joined[1:]
}

func publicOnly(docs []*models.Document) []*models.Document {
	out := make([]*models.Document, 0, len(docs))
	for _, doc := range docs {
		if doc != nil && doc.IsPublic {
			out = append(out, doc)
		}
	}
	return out
}
