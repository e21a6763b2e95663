package corpus

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/campushare/relevance/internal/models"
	"github.com/campushare/relevance/internal/ranking"
)

// SQLiteStore is a Provider backed by a SQLite database. Labels and
// embeddings are stored as JSON columns alongside the scalar fields.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates a SQLite database at dbPath and
// initializes the schema. Parent directories are created if they do not
// exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		display_name TEXT NOT NULL,
		extracted_text TEXT,
		embedding TEXT,
		labels TEXT,
		rating_average REAL DEFAULT 0,
		rating_count INTEGER DEFAULT 0,
		view_count INTEGER DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		is_public INTEGER DEFAULT 1,
		uploader_id TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents(created_at);
	CREATE INDEX IF NOT EXISTS idx_documents_uploader ON documents(uploader_id);
	`
	_, err := db.Exec(schema)
	return err
}

// CreateDocument inserts a document, assigning an ID when empty.
func (s *SQLiteStore) CreateDocument(ctx context.Context, doc *models.Document) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}
	if len(doc.Embedding) == 0 && doc.ExtractedText != "" {
		doc.Embedding = ranking.Embed(doc.ExtractedText)
	}
	labelsJSON, err := json.Marshal(doc.Labels)
	if err != nil {
		return fmt.Errorf("failed to marshal labels: %w", err)
	}
	embeddingJSON, err := json.Marshal(doc.Embedding)
	if err != nil {
		return fmt.Errorf("failed to marshal embedding: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents
		 (id, display_name, extracted_text, embedding, labels,
		  rating_average, rating_count, view_count, created_at, is_public, uploader_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.ID, doc.DisplayName, doc.ExtractedText, string(embeddingJSON), string(labelsJSON),
		doc.Rating.Average, doc.Rating.Count, doc.ViewCount, doc.CreatedAt,
		boolToInt(doc.IsPublic), doc.UploaderID,
	)
	return err
}

// GetDocument returns a document by ID.
func (s *SQLiteStore) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` FROM documents WHERE id = ?`, id)
	doc, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("document not found: %s", id)
	}
	return doc, err
}

// DeleteDocument removes a document by ID.
func (s *SQLiteStore) DeleteDocument(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	return err
}

// IncrementViewCount bumps the view counter for a document.
func (s *SQLiteStore) IncrementViewCount(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE documents SET view_count = view_count + 1 WHERE id = ?`, id)
	return err
}

// UpdateRating replaces the aggregated rating for a document.
func (s *SQLiteStore) UpdateRating(ctx context.Context, id string, rating models.Rating) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE documents SET rating_average = ?, rating_count = ? WHERE id = ?`,
		rating.Average, rating.Count, id)
	return err
}

// Snapshot returns all documents, newest first.
func (s *SQLiteStore) Snapshot(ctx context.Context) ([]*models.Document, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` FROM documents ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer rows.Close()
	return scanDocuments(rows)
}

// DocumentsByUploader returns the documents uploaded by a user.
func (s *SQLiteStore) DocumentsByUploader(ctx context.Context, uploaderID string) ([]*models.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		selectColumns+` FROM documents WHERE uploader_id = ? ORDER BY created_at DESC`, uploaderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer rows.Close()
	return scanDocuments(rows)
}

// CountDocuments returns the number of stored documents.
func (s *SQLiteStore) CountDocuments(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&n)
	return n, err
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const selectColumns = `SELECT id, display_name, extracted_text, embedding, labels,
	rating_average, rating_count, view_count, created_at, is_public, uploader_id`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDocument(row rowScanner) (*models.Document, error) {
	var doc models.Document
	var embeddingJSON, labelsJSON sql.NullString
	var isPublic int
	if err := row.Scan(
		&doc.ID, &doc.DisplayName, &doc.ExtractedText, &embeddingJSON, &labelsJSON,
		&doc.Rating.Average, &doc.Rating.Count, &doc.ViewCount, &doc.CreatedAt,
		&isPublic, &doc.UploaderID,
	); err != nil {
		return nil, err
	}
	doc.IsPublic = isPublic != 0

	// Malformed JSON columns degrade to absent fields rather than failing
	// the whole snapshot.
	if labelsJSON.Valid && labelsJSON.String != "" {
		_ = json.Unmarshal([]byte(labelsJSON.String), &doc.Labels)
	}
	if embeddingJSON.Valid && embeddingJSON.String != "" {
		_ = json.Unmarshal([]byte(embeddingJSON.String), &doc.Embedding)
	}
	return &doc, nil
}

func scanDocuments(rows *sql.Rows) ([]*models.Document, error) {
	var docs []*models.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
