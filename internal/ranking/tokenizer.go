// Package ranking implements the multi-signal relevance scoring engine:
// tokenization, hash embeddings, the four signal scorers, the weighted
// combiner, and the deterministic ranker.
package ranking

import (
	"strings"
	"unicode"
)

// Minimum token lengths per matching context. Content matching drops short
// noise tokens; label matching keeps shorter tokens because short codes
// (e.g. class "7B") are meaningful labels.
const (
	MinContentTokenLen = 3
	MinLabelTokenLen   = 2
)

// Tokenize splits text on non-alphanumeric runs and returns lowercase tokens
// of at least MinContentTokenLen characters. Pure and deterministic.
func Tokenize(text string) []string {
	return tokenize(text, MinContentTokenLen)
}

// TokenizeLabels tokenizes label field values, keeping tokens of at least
// MinLabelTokenLen characters.
func TokenizeLabels(text string) []string {
	return tokenize(text, MinLabelTokenLen)
}

func tokenize(text string, minLen int) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := fields[:0]
	for _, f := range fields {
		if len(f) >= minLen {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// tokensOverlap reports whether two tokens match by bidirectional substring
// containment: either contains the other.
func tokensOverlap(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// overlapsAny reports whether token matches any token in set by substring
// containment.
func overlapsAny(token string, set []string) bool {
	for _, s := range set {
		if tokensOverlap(token, s) {
			return true
		}
	}
	return false
}

// containsExact reports whether token appears verbatim in set.
func containsExact(token string, set []string) bool {
	for _, s := range set {
		if s == token {
			return true
		}
	}
	return false
}
