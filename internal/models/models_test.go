package models

import (
	"errors"
	"testing"
)

func TestSearchQueryValidate(t *testing.T) {
	tests := []struct {
		name      string
		query     SearchQuery
		wantErr   error
		wantLimit int
	}{
		{
			name:      "valid query gets default limit",
			query:     SearchQuery{Text: "calculus"},
			wantLimit: MaxSearchResults,
		},
		{
			name:      "explicit limit respected",
			query:     SearchQuery{Text: "calculus", Limit: 10},
			wantLimit: 10,
		},
		{
			name:      "oversized limit capped",
			query:     SearchQuery{Text: "calculus", Limit: 500},
			wantLimit: MaxSearchResults,
		},
		{
			name:      "negative limit normalized",
			query:     SearchQuery{Text: "calculus", Limit: -1},
			wantLimit: MaxSearchResults,
		},
		{
			name:    "empty text rejected",
			query:   SearchQuery{},
			wantErr: ErrEmptyQuery,
		},
		{
			name:    "whitespace-only text rejected",
			query:   SearchQuery{Text: "   \t"},
			wantErr: ErrEmptyQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && tt.query.Limit != tt.wantLimit {
				t.Errorf("Limit = %d, want %d", tt.query.Limit, tt.wantLimit)
			}
		})
	}
}

func TestDocumentHasEmbedding(t *testing.T) {
	tests := []struct {
		name string
		vec  []float32
		want bool
	}{
		{"nil", nil, false},
		{"wrong length", make([]float32, 10), false},
		{"correct length", make([]float32, EmbeddingDimensions), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Document{Embedding: tt.vec}
			if got := doc.HasEmbedding(); got != tt.want {
				t.Errorf("HasEmbedding = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDocumentRatingAverage(t *testing.T) {
	tests := []struct {
		avg  float64
		want float64
	}{
		{4.5, 4.5},
		{-1, 0},
		{7.2, 5},
		{0, 0},
	}
	for _, tt := range tests {
		doc := Document{Rating: Rating{Average: tt.avg, Count: 1}}
		if got := doc.RatingAverage(); got != tt.want {
			t.Errorf("RatingAverage(%v) = %v, want %v", tt.avg, got, tt.want)
		}
	}
}

func TestDocumentVisibleTo(t *testing.T) {
	public := Document{IsPublic: true, UploaderID: "owner"}
	private := Document{IsPublic: false, UploaderID: "owner"}

	if !public.VisibleTo("") {
		t.Error("public document should be visible to anonymous callers")
	}
	if !public.VisibleTo("someone") {
		t.Error("public document should be visible to any caller")
	}
	if private.VisibleTo("someone") {
		t.Error("private document should be hidden from other callers")
	}
	if !private.VisibleTo("owner") {
		t.Error("private document should be visible to its uploader")
	}
	if private.VisibleTo("") {
		t.Error("private document should be hidden from anonymous callers")
	}
}

func TestSearchFiltersEmpty(t *testing.T) {
	if !(SearchFilters{}).Empty() {
		t.Error("zero filters should be empty")
	}
	if (SearchFilters{Subject: "math"}).Empty() {
		t.Error("populated filters should not be empty")
	}
}
