package cmd

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/brandkit/internal/brand"
	"github.com/brandkit/internal/config"
	"github.com/brandkit/internal/feedback"
	"github.com/brandkit/internal/retry"
)

var brandFlag = &cli.StringFlag{
	Name:    "brand",
	Aliases: []string{"b"},
	Usage:   "Brand configuration `FILE` (overrides brand.path)",
}

// loadAppConfig reads the file named by the global --config flag.
func loadAppConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func brandPath(c *cli.Context, cfg *config.Config) string {
	if p := c.String("brand"); p != "" {
		return p
	}
	return cfg.Brand.Path
}

// loadBrandOrDefault loads the brand file if present. A missing file means
// the built-in palette and font; an unreadable or invalid one is an error.
func loadBrandOrDefault(path string) (*brand.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		log.Warn().Str("path", path).Msg("brand configuration not found; using defaults")
		return nil, nil
	}
	cfg, err := brand.Load(path)
	if err != nil {
		return nil, err
	}
	res := cfg.Validate()
	for _, w := range res.Warnings {
		log.Warn().Str("path", path).Msg(w)
	}
	if !res.Valid() {
		return nil, fmt.Errorf("%w: %v", brand.ErrInvalidConfig, res.Errors)
	}
	return cfg, nil
}

// openFeedbackService builds the configured feedback store. The returned
// close func releases any database handle.
func openFeedbackService(c *cli.Context, cfg *config.Config) (*feedback.Service, func() error, error) {
	noop := func() error { return nil }
	fc := cfg.Feedback
	switch fc.Store {
	case config.StoreMemory:
		return feedback.NewService(feedback.NewInMemoryStore(fc.Retention)), noop, nil
	case config.StoreFile:
		return feedback.NewService(feedback.NewFileStore(fc.Path, fc.Retention)), noop, nil
	case config.StorePostgres:
		db, err := sql.Open("postgres", fc.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open feedback database: %w", err)
		}
		if res := retry.Do(c.Context, "feedback database ping", retry.DatabaseConfig(), db.PingContext); !res.Success {
			db.Close()
			return nil, nil, fmt.Errorf("connect feedback database: %w", res.LastError)
		}
		store := feedback.NewPostgresStore(db, fc.Retention)
		if err := store.EnsureSchema(c.Context); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("prepare feedback schema: %w", err)
		}
		return feedback.NewService(store), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown feedback store %q", fc.Store)
	}
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
