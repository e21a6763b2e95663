package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/campushare/relevance/internal/models"
	"github.com/campushare/relevance/internal/ranking"
)

const reloadDebounce = 400 * time.Millisecond

// DirProvider serves a corpus from a directory of JSON document records
// (one document per *.json file), reloading the snapshot when the directory
// changes. Intended for development corpora and fixtures.
type DirProvider struct {
	dir     string
	logger  *zap.Logger
	watcher *fsnotify.Watcher

	mu    sync.RWMutex
	docs  []*models.Document
	timer *time.Timer

	done     chan struct{}
	stopOnce sync.Once
}

// NewDirProvider creates a provider over dir and performs the initial load.
func NewDirProvider(dir string, logger *zap.Logger) (*DirProvider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &DirProvider{
		dir:    dir,
		logger: logger,
		done:   make(chan struct{}),
	}
	if err := p.reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// Start begins watching the directory. It runs until ctx is cancelled or
// Close is called.
func (p *DirProvider) Start(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Add(p.dir); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to watch %s: %w", p.dir, err)
	}
	p.watcher = w

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case <-p.done:
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if strings.HasSuffix(event.Name, ".json") {
					p.scheduleReload()
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				p.logger.Warn("corpus watch error", zap.Error(err))
			}
		}
	}()
	return nil
}

// scheduleReload debounces bursts of filesystem events into one reload.
func (p *DirProvider) scheduleReload() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = time.AfterFunc(reloadDebounce, func() {
		if err := p.reload(); err != nil {
			p.logger.Warn("corpus reload failed", zap.Error(err))
		}
	})
}

// reload re-reads every *.json record in the directory. Unreadable or
// malformed files are skipped with a warning; one bad record must not take
// down the corpus.
func (p *DirProvider) reload() error {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var docs []*models.Document
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(p.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			p.logger.Warn("skipping unreadable document", zap.String("path", path), zap.Error(err))
			continue
		}
		var doc models.Document
		if err := json.Unmarshal(data, &doc); err != nil {
			p.logger.Warn("skipping malformed document", zap.String("path", path), zap.Error(err))
			continue
		}
		if doc.ID == "" {
			doc.ID = strings.TrimSuffix(entry.Name(), ".json")
		}
		// Embeddings are not part of the record format; derive them from
		// the extracted text at load time.
		if doc.ExtractedText != "" {
			doc.Embedding = ranking.Embed(doc.ExtractedText)
		}
		docs = append(docs, &doc)
	}

	p.mu.Lock()
	p.docs = docs
	p.mu.Unlock()
	p.logger.Debug("corpus reloaded", zap.Int("documents", len(docs)))
	return nil
}

// Snapshot returns the most recently loaded documents.
func (p *DirProvider) Snapshot(ctx context.Context) ([]*models.Document, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]*models.Document, len(p.docs))
	copy(out, p.docs)
	return out, nil
}

// DocumentsByUploader returns documents with the given uploader ID.
func (p *DirProvider) DocumentsByUploader(ctx context.Context, uploaderID string) ([]*models.Document, error) {
	docs, err := p.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	var out []*models.Document
	for _, doc := range docs {
		if doc.UploaderID == uploaderID {
			out = append(out, doc)
		}
	}
	return out, nil
}

// Close stops watching.
func (p *DirProvider) Close() error {
	p.stopOnce.Do(func() { close(p.done) })
	return nil
}
