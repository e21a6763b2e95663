// Package config provides configuration loading and structs for the
// relevance server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/campushare/relevance/internal/auth"
	"github.com/campushare/relevance/internal/ranking"
)

// Config holds all configuration for the application.
type Config struct {
	Debug   bool           `yaml:"debug"`
	Server  ServerConfig   `yaml:"server"`
	Corpus  CorpusConfig   `yaml:"corpus"`
	Ranking ranking.Config `yaml:"ranking"`
	Auth    AuthConfig     `yaml:"auth"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Corpus backends.
const (
	CorpusBackendSQLite = "sqlite"
	CorpusBackendDir    = "dir"
)

// CorpusConfig selects and configures the corpus provider.
type CorpusConfig struct {
	// Backend is "sqlite" (default) or "dir" (watched JSON directory).
	Backend      string `yaml:"backend"`
	DatabasePath string `yaml:"database_path"`
	Directory    string `yaml:"directory"`
}

// AuthConfig holds the static token table for the dev validator. Production
// deployments replace this with the platform's session validator.
type AuthConfig struct {
	Tokens map[string]*auth.Identity `yaml:"tokens"`
}

// Load reads and parses the config file at path, expands paths, and applies
// defaults. Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Corpus.DatabasePath = expandPath(cfg.Corpus.DatabasePath, configDir)
	if cfg.Corpus.Directory != "" {
		cfg.Corpus.Directory = expandPath(cfg.Corpus.Directory, configDir)
	}

	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are
// relative to configDir; other relative paths are relative to the home
// directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
