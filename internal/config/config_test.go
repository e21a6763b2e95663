package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/campushare/relevance/internal/ranking"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
debug: true
server:
  host: 0.0.0.0
  port: 9090
corpus:
  backend: dir
  directory: /srv/corpus
ranking:
  profile: label
  min_score: 0.2
auth:
  tokens:
    dev-token:
      user_id: user-1
      user_type: student
      subject: Mathematics
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.Debug {
		t.Error("Debug not set")
	}
	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 9090 {
		t.Errorf("server config = %+v", cfg.Server)
	}
	if cfg.Corpus.Backend != CorpusBackendDir {
		t.Errorf("Backend = %q", cfg.Corpus.Backend)
	}
	if cfg.Corpus.Directory != "/srv/corpus" {
		t.Errorf("Directory = %q", cfg.Corpus.Directory)
	}
	if cfg.Ranking.Profile != ranking.ProfileLabel {
		t.Errorf("Profile = %q", cfg.Ranking.Profile)
	}
	if cfg.Ranking.MinScore != 0.2 {
		t.Errorf("MinScore = %v", cfg.Ranking.MinScore)
	}

	id, ok := cfg.Auth.Tokens["dev-token"]
	if !ok {
		t.Fatal("token table not loaded")
	}
	if id.UserID != "user-1" || id.Subject != "Mathematics" {
		t.Errorf("identity = %+v", id)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "debug: false\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Host != "localhost" || cfg.Server.Port != 8080 {
		t.Errorf("server defaults not applied: %+v", cfg.Server)
	}
	if cfg.Corpus.Backend != CorpusBackendSQLite {
		t.Errorf("Backend = %q", cfg.Corpus.Backend)
	}
	if cfg.Corpus.DatabasePath == "" {
		t.Error("DatabasePath default not applied")
	}
	if cfg.Ranking.SemanticWeight != 0.4 {
		t.Errorf("ranking defaults not applied: %+v", cfg.Ranking)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "debug: [unclosed")); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestLoadExpandsRelativePaths(t *testing.T) {
	path := writeConfig(t, `
corpus:
  database_path: ./data/documents.db
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := filepath.Join(filepath.Dir(path), "data/documents.db")
	if cfg.Corpus.DatabasePath != want {
		t.Errorf("DatabasePath = %q, want %q", cfg.Corpus.DatabasePath, want)
	}
}
