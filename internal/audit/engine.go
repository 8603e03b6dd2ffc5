// Package audit runs brand-compliance checks against document trees and
// scores the results.
package audit

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/brandkit/internal/document"
	"github.com/brandkit/internal/layers"
)

// Severity of a failed check.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Check is the outcome of one compliance rule.
type Check struct {
	Name     string   `json:"name"`
	Passed   bool     `json:"passed"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Result is the audit of a single document.
type Result struct {
	NodeID    string    `json:"nodeId"`
	NodeName  string    `json:"nodeName"`
	Passed    bool      `json:"passed"`
	Score     int       `json:"score"`
	Checks    []Check   `json:"checks"`
	Warnings  []string  `json:"warnings"`
	Timestamp time.Time `json:"timestamp"`
}

// Recorder observes finished audits.
type Recorder interface {
	ObserveAudit(Result)
}

// Engine runs a fixed, ordered battery of checks.
type Engine struct {
	checkers    []Checker
	recorder    Recorder
	now         func() time.Time
	concurrency int
}

// Option configures an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	fonts       []string
	overrides   []Checker
	recorder    Recorder
	now         func() time.Time
	concurrency int
}

// WithFonts sets the allowed font families for the typography check.
func WithFonts(fonts []string) Option {
	return func(o *engineOptions) { o.fonts = fonts }
}

// WithChecker replaces the built-in check that has the same name. Checkers
// with unknown names are ignored so the battery stays fixed.
func WithChecker(c Checker) Option {
	return func(o *engineOptions) { o.overrides = append(o.overrides, c) }
}

// WithRecorder sets a Recorder notified after every audit.
func WithRecorder(r Recorder) Option {
	return func(o *engineOptions) { o.recorder = r }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(o *engineOptions) { o.now = now }
}

// WithConcurrency bounds the parallelism of AuditBatch.
func WithConcurrency(n int) Option {
	return func(o *engineOptions) { o.concurrency = n }
}

// NewEngine builds an Engine with the seven built-in checks.
func NewEngine(opts ...Option) *Engine {
	o := engineOptions{now: time.Now, concurrency: 4}
	for _, opt := range opts {
		opt(&o)
	}
	checkers := defaultCheckers(o.fonts, layers.NewManager())
	for _, override := range o.overrides {
		for i, c := range checkers {
			if c.Name() == override.Name() {
				checkers[i] = override
			}
		}
	}
	if o.concurrency < 1 {
		o.concurrency = 1
	}
	return &Engine{checkers: checkers, recorder: o.recorder, now: o.now, concurrency: o.concurrency}
}

// CheckNames returns the names of the configured checks in run order.
func (e *Engine) CheckNames() []string {
	names := make([]string, len(e.checkers))
	for i, c := range e.checkers {
		names[i] = c.Name()
	}
	return names
}

// Audit runs every check against root and aggregates the outcome.
func (e *Engine) Audit(root *document.Node) Result {
	res := Result{
		Checks:    make([]Check, 0, len(e.checkers)),
		Warnings:  []string{},
		Timestamp: e.now(),
		Passed:    true,
	}
	if root != nil {
		res.NodeID, res.NodeName = root.ID, root.Name
	}

	passed := 0
	for _, c := range e.checkers {
		check := c.Run(root)
		check.Name = c.Name()
		res.Checks = append(res.Checks, check)
		if check.Passed {
			passed++
			continue
		}
		switch check.Severity {
		case SeverityError:
			res.Passed = false
		case SeverityWarning:
			res.Warnings = append(res.Warnings, check.Message)
		}
	}
	res.Score = score(passed, len(e.checkers))

	log.Debug().
		Str("node", res.NodeName).
		Int("score", res.Score).
		Bool("passed", res.Passed).
		Msg("audit complete")

	if e.recorder != nil {
		e.recorder.ObserveAudit(res)
	}
	return res
}

// AuditBatch audits each root concurrently. Results keep the input order.
func (e *Engine) AuditBatch(ctx context.Context, roots []*document.Node) ([]Result, error) {
	results := make([]Result, len(roots))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, root := range roots {
		i, root := i, root
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = e.Audit(root)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func score(passed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(passed) / float64(total)))
}
