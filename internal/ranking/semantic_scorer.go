package ranking

// SemanticScorer scores by cosine similarity between the query embedding and
// the document embedding.
type SemanticScorer struct{}

// NewSemanticScorer creates a SemanticScorer.
func NewSemanticScorer() *SemanticScorer {
	return &SemanticScorer{}
}

// Name returns the signal name.
func (s *SemanticScorer) Name() string {
	return "semantic"
}

// Score returns the cosine similarity, or 0 when the document has no usable
// embedding (absent or wrong length). Hash embeddings are non-negative, so
// the result stays in [0,1].
func (s *SemanticScorer) Score(ctx *ScoringContext) float64 {
	if ctx.Document == nil || ctx.Query == nil || !ctx.Document.HasEmbedding() {
		return 0
	}
	return Cosine(ctx.Query.Embedding, ctx.Document.Embedding)
}
