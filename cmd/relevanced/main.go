// Package main is the relevanced CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/campushare/relevance/internal/auth"
	"github.com/campushare/relevance/internal/config"
	"github.com/campushare/relevance/internal/corpus"
	"github.com/campushare/relevance/internal/metrics"
	"github.com/campushare/relevance/internal/models"
	"github.com/campushare/relevance/internal/ranking"
	"github.com/campushare/relevance/internal/search"
	"github.com/campushare/relevance/internal/server"
	"github.com/campushare/relevance/internal/suggest"
	"github.com/campushare/relevance/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/relevanced/config.yaml"

// loadConfig loads config from path. When path is the default, it first
// looks for config.yaml in the current directory (for development); if that
// exists it is used.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	switch os.Args[1] {
	case "server":
		runServer()
	case "search":
		runSearch()
	case "suggest":
		runSuggest()
	case "facets":
		runFacets()
	case "version", "--version", "-v":
		fmt.Printf("relevanced version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`Usage: relevanced <command> [flags]

Commands:
  server    Run the relevance HTTP server
  search    Run a one-off ranked search against the configured corpus
  suggest   Print guest suggestions from the configured corpus
  facets    Print the distinct label values observed in the corpus
  version   Print version
`)
}

// newProvider builds the corpus provider selected by config. The returned
// close function releases the backing resources.
func newProvider(cfg *config.Config, logger *zap.Logger) (corpus.Provider, func(), error) {
	switch cfg.Corpus.Backend {
	case config.CorpusBackendDir:
		p, err := corpus.NewDirProvider(cfg.Corpus.Directory, logger)
		if err != nil {
			return nil, nil, err
		}
		return p, func() { _ = p.Close() }, nil
	default:
		store, err := corpus.NewSQLiteStore(cfg.Corpus.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.String("corpus_backend", cfg.Corpus.Backend),
		zap.String("ranking_profile", string(cfg.Ranking.Profile)),
		zap.Bool("debug", debugMode),
	)

	provider, closeProvider, err := newProvider(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize corpus provider", zap.Error(err))
	}
	defer closeProvider()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if dir, ok := provider.(*corpus.DirProvider); ok {
		if err := dir.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start corpus watcher", zap.Error(err))
		}
	}

	ranker := ranking.NewRanker(&cfg.Ranking)
	engine := search.NewEngine(provider, ranker, logger)
	suggester := suggest.NewSuggester(provider, ranker, logger)
	validator := auth.NewStaticValidator(cfg.Auth.Tokens)

	srv := server.NewServer(engine, suggester, provider, validator, &cfg.Server, logger, metrics.New())
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runSearch() {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	subject := fs.String("subject", "", "filter by subject")
	class := fs.String("class", "", "filter by class")
	semester := fs.String("semester", "", "filter by semester")
	uploaderType := fs.String("uploader-type", "", "filter by uploader type")
	limit := fs.Int("limit", 0, "maximum results")
	_ = fs.Parse(os.Args[2:])

	queryText := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if queryText == "" {
		fmt.Println("Usage: relevanced search [flags] <query>")
		os.Exit(1)
	}

	engine, cleanup := mustEngine(*configPath)
	defer cleanup()

	query := &models.SearchQuery{
		Text: queryText,
		Filters: models.SearchFilters{
			Subject:      *subject,
			Class:        *class,
			Semester:     *semester,
			UploaderType: *uploaderType,
		},
		Limit: *limit,
	}
	resp, err := engine.Search(context.Background(), query, "")
	if err != nil {
		fmt.Printf("Search failed: %v\n", err)
		os.Exit(1)
	}
	printJSON(resp)
}

func runSuggest() {
	fs := flag.NewFlagSet("suggest", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	provider, closeProvider, err := newProvider(cfg, zap.NewNop())
	if err != nil {
		fmt.Printf("Failed to open corpus: %v\n", err)
		os.Exit(1)
	}
	defer closeProvider()

	ranker := ranking.NewRanker(&cfg.Ranking)
	suggester := suggest.NewSuggester(provider, ranker, zap.NewNop())
	resp, err := suggester.Suggest(context.Background(), nil)
	if err != nil {
		fmt.Printf("Suggestions failed: %v\n", err)
		os.Exit(1)
	}
	printJSON(resp)
}

func runFacets() {
	fs := flag.NewFlagSet("facets", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	engine, cleanup := mustEngine(*configPath)
	defer cleanup()

	facets, err := engine.Facets(context.Background())
	if err != nil {
		fmt.Printf("Facet aggregation failed: %v\n", err)
		os.Exit(1)
	}
	printJSON(facets)
}

func mustEngine(configPath string) (*search.Engine, func()) {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	provider, closeProvider, err := newProvider(cfg, zap.NewNop())
	if err != nil {
		fmt.Printf("Failed to open corpus: %v\n", err)
		os.Exit(1)
	}
	ranker := ranking.NewRanker(&cfg.Ranking)
	return search.NewEngine(provider, ranker, zap.NewNop()), closeProvider
}

func printJSON(v interface{}) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to encode output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
