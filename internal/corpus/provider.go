// Package corpus defines the corpus provider interface and its SQLite,
// in-memory, and watched-directory implementations.
package corpus

import (
	"context"
	"errors"

	"github.com/campushare/relevance/internal/models"
)

// ErrUnavailable indicates the corpus source could not be read. The engine
// surfaces it as an empty result set with a diagnostic, never as a crash.
var ErrUnavailable = errors.New("corpus unavailable")

// Provider supplies an immutable snapshot of the document corpus for one
// ranking pass. Implementations own persistence; the ranking engine never
// mutates returned documents.
type Provider interface {
	// Snapshot returns all document records.
	Snapshot(ctx context.Context) ([]*models.Document, error)
	// DocumentsByUploader returns the documents uploaded by a user, used to
	// derive the implicit interest profile in suggestion mode.
	DocumentsByUploader(ctx context.Context, uploaderID string) ([]*models.Document, error)
}
