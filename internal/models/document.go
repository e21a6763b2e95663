// Package models defines core data structures for documents, queries, and search results.
package models

import "time"

// EmbeddingDimensions is the fixed length of document embeddings. Vectors of
// any other length are treated as absent rather than rejected.
const EmbeddingDimensions = 384

// Labels is the structured metadata attached to a document by its uploader.
type Labels struct {
	Subject      string   `json:"subject" db:"subject"`
	Topic        string   `json:"topic" db:"topic"`
	Class        string   `json:"class,omitempty" db:"class"`
	Semester     string   `json:"semester,omitempty" db:"semester"`
	UploaderType string   `json:"uploaderType,omitempty" db:"uploader_type"`
	Tags         []string `json:"tags,omitempty" db:"tags"`
}

// Rating aggregates the community rating of a document.
type Rating struct {
	Average float64 `json:"average" db:"rating_average"`
	Count   int     `json:"count" db:"rating_count"`
}

// Document represents an already-extracted document record supplied by the
// corpus provider. The ranking engine treats it as read-only.
type Document struct {
	ID            string    `json:"id" db:"id"`
	DisplayName   string    `json:"displayName" db:"display_name"`
	ExtractedText string    `json:"extractedText,omitempty" db:"extracted_text"`
	Embedding     []float32 `json:"-" db:"-"`
	Labels        Labels    `json:"labels" db:"labels"`
	Rating        Rating    `json:"rating" db:"rating"`
	ViewCount     int       `json:"viewCount" db:"view_count"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	IsPublic      bool      `json:"isPublic" db:"is_public"`
	UploaderID    string    `json:"uploaderId,omitempty" db:"uploader_id"`
}

// HasEmbedding reports whether the document carries a usable embedding.
// Mismatched-length vectors count as absent.
func (d *Document) HasEmbedding() bool {
	return len(d.Embedding) == EmbeddingDimensions
}

// RatingAverage returns the rating average clamped to [0,5]. Malformed
// records degrade to a neutral value instead of poisoning the ranking pass.
func (d *Document) RatingAverage() float64 {
	avg := d.Rating.Average
	if avg < 0 {
		return 0
	}
	if avg > 5 {
		return 5
	}
	return avg
}

// VisibleTo reports whether the document may be shown to the given user.
// Private documents are visible only to their uploader.
func (d *Document) VisibleTo(userID string) bool {
	if d.IsPublic {
		return true
	}
	return userID != "" && d.UploaderID == userID
}

// FacetSet is the distinct set of label values observed across the corpus,
// used to populate filter UIs. Each slice is sorted and deduplicated.
type FacetSet struct {
	Subjects      []string `json:"subjects"`
	Topics        []string `json:"topics"`
	Classes       []string `json:"classes"`
	Semesters     []string `json:"semesters"`
	UploaderTypes []string `json:"uploaderTypes"`
	Tags          []string `json:"tags"`
}
