package corpus

import (
	"context"
	"sync"

	"github.com/campushare/relevance/internal/models"
)

// MemoryProvider is an in-memory Provider for tests and small fixtures.
type MemoryProvider struct {
	mu   sync.RWMutex
	docs []*models.Document
	err  error
}

// NewMemoryProvider creates a provider over the given documents.
func NewMemoryProvider(docs ...*models.Document) *MemoryProvider {
	return &MemoryProvider{docs: docs}
}

// SetDocuments replaces the corpus contents.
func (p *MemoryProvider) SetDocuments(docs []*models.Document) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.docs = docs
}

// SetError makes subsequent Snapshot calls fail, for testing degradation.
func (p *MemoryProvider) SetError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

// Snapshot returns the current documents.
func (p *MemoryProvider) Snapshot(ctx context.Context) ([]*models.Document, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.err != nil {
		return nil, p.err
	}
	out := make([]*models.Document, len(p.docs))
	copy(out, p.docs)
	return out, nil
}

// DocumentsByUploader returns documents with the given uploader ID.
func (p *MemoryProvider) DocumentsByUploader(ctx context.Context, uploaderID string) ([]*models.Document, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.err != nil {
		return nil, p.err
	}
	var out []*models.Document
	for _, doc := range p.docs {
		if doc.UploaderID == uploaderID {
			out = append(out, doc)
		}
	}
	return out, nil
}
