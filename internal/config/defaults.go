package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Corpus.Backend == "" {
		cfg.Corpus.Backend = CorpusBackendSQLite
	}
	if cfg.Corpus.DatabasePath == "" {
		cfg.Corpus.DatabasePath = "/usr/local/var/relevance/data/documents.db"
	}
	cfg.Ranking.ApplyDefaults()
}
