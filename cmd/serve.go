package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/brandkit/internal/api"
	"github.com/brandkit/internal/brand"
)

// ServeCommand returns the CLI command for starting the API server
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the BrandKit API server",
		Flags: []cli.Flag{
			brandFlag,
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port for the API server (overrides server.port)",
			},
		},
		Action: runServe,
	}
}

func runServe(c *cli.Context) error {
	cfg, err := loadAppConfig(c)
	if err != nil {
		return err
	}
	port := cfg.Server.Port
	if c.IsSet("port") {
		port = c.Int("port")
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, err := brandSource(ctx, brandPath(c, cfg))
	if err != nil {
		return err
	}

	svc, closeFn, err := openFeedbackService(c, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	server, err := api.NewServer(api.Options{
		Port:             port,
		RateLimit:        cfg.Server.RateLimit,
		Brand:            source,
		Feedback:         svc,
		AuditConcurrency: cfg.Audit.Concurrency,
		Registry:         reg,
	})
	if err != nil {
		return err
	}
	return server.Start(ctx)
}

// brandSource watches path for changes when it exists and falls back to the
// built-in defaults otherwise. The watcher stops with ctx.
func brandSource(ctx context.Context, path string) (api.BrandSource, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		log.Warn().Str("path", path).Msg("brand configuration not found; serving defaults")
		return api.StaticBrand{}, nil
	}
	if _, err := loadBrandOrDefault(path); err != nil {
		return nil, err
	}
	w, err := brand.NewWatcher(path)
	if err != nil {
		return nil, err
	}
	if err := w.Start(ctx); err != nil {
		w.Stop()
		return nil, err
	}
	w.OnReload(func(cfg *brand.Config) {
		log.Info().Str("brand", cfg.Brand.Name).Msg("serving reloaded brand")
	})
	go func() {
		<-ctx.Done()
		w.Stop()
	}()
	return w, nil
}
