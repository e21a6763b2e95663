package ranking

import (
	"math"

	"github.com/campushare/relevance/internal/models"
)

// Embed produces a fixed-length bag-of-hashed-words vector for text. Each
// token is reduced to a bucket via an additive character-code hash, and the
// bucket accumulates 1/(tokenCount+1). This is a cheap lexical signal, not a
// trained semantic model. Deterministic for identical input; empty text
// yields the zero vector.
func Embed(text string) []float32 {
	vec := make([]float32, models.EmbeddingDimensions)
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return vec
	}
	weight := float32(1) / float32(len(tokens)+1)
	for _, tok := range tokens {
		vec[hashToken(tok)%models.EmbeddingDimensions] += weight
	}
	return vec
}

// hashToken is a simple additive character-code hash.
func hashToken(tok string) int {
	h := 0
	for _, r := range tok {
		h += int(r)
	}
	return h
}

// Cosine returns the cosine similarity of two vectors. Mismatched lengths or
// a zero-magnitude operand yield 0, never NaN.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
