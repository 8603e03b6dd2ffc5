package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/brandkit/internal/audit"
	"github.com/brandkit/internal/brand"
	"github.com/brandkit/internal/feedback"
)

// BrandSource yields the brand configuration in effect. brand.Watcher
// satisfies it.
type BrandSource interface {
	Current() *brand.Config
}

// StaticBrand is a BrandSource that never changes.
type StaticBrand struct{ Config *brand.Config }

func (s StaticBrand) Current() *brand.Config { return s.Config }

// Options wires the server's collaborators.
type Options struct {
	Port             int
	RateLimit        float64 // requests per second; zero disables limiting
	Brand            BrandSource
	Feedback         *feedback.Service
	AuditConcurrency int
	Registry         *prometheus.Registry
}

// Server represents the API server
type Server struct {
	echo     *echo.Echo
	port     int
	brand    BrandSource
	feedback *feedback.Service
	recorder audit.Recorder
	workers  int
}

// NewServer creates a new API server
func NewServer(opts Options) (*Server, error) {
	if opts.Brand == nil {
		opts.Brand = StaticBrand{}
	}
	if opts.Feedback == nil {
		opts.Feedback = feedback.NewService(feedback.NewInMemoryStore(feedback.DefaultRetention))
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	recorder, err := audit.NewPrometheusRecorder("brandkit", opts.Registry)
	if err != nil {
		return nil, fmt.Errorf("register audit metrics: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = newRequestValidator()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	if opts.RateLimit > 0 {
		e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(opts.RateLimit))))
	}

	server := &Server{
		echo:     e,
		port:     opts.Port,
		brand:    opts.Brand,
		feedback: opts.Feedback,
		recorder: recorder,
		workers:  opts.AuditConcurrency,
	}

	server.setupRoutes(opts.Registry)

	return server, nil
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes(reg *prometheus.Registry) {
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status": "healthy",
		})
	})
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	v1 := s.echo.Group("/api/v1")

	v1.POST("/analyze", s.analyze)
	v1.POST("/generate", s.generate)
	v1.POST("/audit", s.audit)
	v1.POST("/audit/batch", s.auditBatch)
	v1.GET("/brand", s.getBrand)

	v1.POST("/feedback", s.submitFeedback)
	v1.GET("/feedback/summary", s.feedbackSummary)
}

// ServeHTTP lets the server be mounted or exercised without a listener.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start serves until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", s.port).Msg("api server listening")
		if err := s.echo.Start(fmt.Sprintf(":%d", s.port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("api server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info().Msg("shutting down api server")
	return s.echo.Shutdown(shutdownCtx)
}

func (s *Server) auditEngine() *audit.Engine {
	opts := []audit.Option{audit.WithRecorder(s.recorder)}
	if cfg := s.brand.Current(); cfg != nil {
		opts = append(opts, audit.WithFonts(cfg.Fonts()))
	}
	if s.workers > 0 {
		opts = append(opts, audit.WithConcurrency(s.workers))
	}
	return audit.NewEngine(opts...)
}
