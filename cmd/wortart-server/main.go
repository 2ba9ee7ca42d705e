// Command wortart-server exposes the classifier as a JSON REST API.
//
// Endpoints:
//
//	GET  /healthz
//	GET  /api/classify?word=<token>[&sentence=<text>]
//	POST /api/annotate          body: {"text":"..."}
//	POST /api/annotate/html     body: an HTML document
//	GET  /api/adjective?word=<form>
//	GET  /api/paradigm?lemma=<infinitive>
//	GET  /api/lexicon/words
//	POST /api/lexicon/words     body: {"word":"...","type":"noun"}
//	GET  /api/history[?token=<token>&limit=<n>]
//
// Settings come from flags, then WORTART_* variables, then a .env file in
// the working directory.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/cognicore/wortart/internal/logging"
	"github.com/cognicore/wortart/pkg/wortart"
	"github.com/cognicore/wortart/pkg/wortart/config"
	"github.com/cognicore/wortart/pkg/wortart/store"
	"github.com/cognicore/wortart/pkg/wortart/store/memstore"
	"github.com/cognicore/wortart/pkg/wortart/store/sqlite"
)

type serverConfig struct {
	addr      string
	dbPath    string
	origins   []string
	record    bool
	logLevel  string
	logJSON   bool
	cacheSize int
	loader    config.Loader
}

func main() {
	// .env is optional; real environment variables take precedence.
	envErr := godotenv.Load()

	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logging.Init(cfg.logJSON, logging.ParseLevel(cfg.logLevel))
	if envErr != nil {
		slog.Debug("no .env file loaded", "error", envErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, cfg); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) (serverConfig, error) {
	var cfg serverConfig
	var origins string
	fs := flag.NewFlagSet("wortart-server", flag.ContinueOnError)
	fs.StringVar(&cfg.addr, "addr", getenv("WORTART_ADDR", ":8080"), "Listen address")
	fs.StringVar(&cfg.dbPath, "db", getenv("WORTART_DB", ""), "SQLite database (default: in-memory store)")
	fs.StringVar(&origins, "cors-origins", getenv("WORTART_CORS_ORIGINS", "*"), "Comma-separated allowed CORS origins")
	fs.BoolVar(&cfg.record, "record", getenvBool("WORTART_RECORD", true), "Log classifications to the store")
	fs.StringVar(&cfg.logLevel, "log-level", getenv("WORTART_LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.logJSON, "log-json", getenvBool("WORTART_LOG_JSON", true), "JSON log output")
	fs.IntVar(&cfg.cacheSize, "cache", getenvInt("WORTART_CACHE_SIZE", 0), "Classification cache size (0 = default, -1 = off)")
	fs.StringVar(&cfg.loader.LexiconPath, "lexicon", getenv("WORTART_LEXICON", ""), "Lexicon YAML (default: built-in)")
	fs.StringVar(&cfg.loader.VerbsPath, "verbs", getenv("WORTART_VERBS", ""), "Verb tables YAML (default: built-in)")
	fs.StringVar(&cfg.loader.AdjectivesPath, "adjectives", getenv("WORTART_ADJECTIVES", ""), "Adjective tables YAML (default: built-in)")
	fs.StringVar(&cfg.loader.PhrasesPath, "phrases", getenv("WORTART_PHRASES", ""), "Phrase list YAML (default: built-in)")
	if err := fs.Parse(args); err != nil {
		return serverConfig{}, err
	}
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.origins = append(cfg.origins, o)
		}
	}
	return cfg, nil
}

// buildWortart loads the data tables and opens the store. Without a
// database path the user lexicon and history live in memory.
func buildWortart(ctx context.Context, cfg serverConfig) (*wortart.Wortart, error) {
	comp, err := cfg.loader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	var st store.Store
	if cfg.dbPath != "" {
		if st, err = sqlite.OpenSQLite(ctx, cfg.dbPath); err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
	} else {
		st = memstore.New()
	}

	w, err := wortart.New(ctx, wortart.Options{
		Components: comp,
		Store:      st,
		CacheSize:  cfg.cacheSize,
		Record:     cfg.record,
	})
	if err != nil {
		st.Close()
		return nil, err
	}
	return w, nil
}

func serve(ctx context.Context, cfg serverConfig) error {
	w, err := buildWortart(ctx, cfg)
	if err != nil {
		return err
	}
	defer w.Close()

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              cfg.addr,
		Handler:           newHandler(w, cfg.origins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", cfg.addr, "db", cfg.dbPath, "record", cfg.record)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return n
}
