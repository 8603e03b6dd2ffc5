// Package feedback records human review outcomes for generated assets and
// summarises them over a rolling window.
package feedback

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DefaultWindowDays is the summary window used when none is given.
const DefaultWindowDays = 30

const topIssueCount = 5

// ErrInvalidEntry is returned for submissions that fail validation.
var ErrInvalidEntry = errors.New("invalid feedback entry")

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service { return &Service{store: store, now: time.Now} }

// WithClock returns a copy of the service that reads time from now.
func (s *Service) WithClock(now func() time.Time) *Service {
	cp := *s
	cp.now = now
	return &cp
}

// Submit validates e and appends it to the log. A missing ID or timestamp is
// filled in.
func (s *Service) Submit(ctx context.Context, e Entry) (*Entry, error) {
	if err := validateEntry(e); err != nil {
		return nil, err
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = s.now().UTC()
	}
	if err := s.store.Append(ctx, &e); err != nil {
		return nil, fmt.Errorf("store feedback: %w", err)
	}
	log.Info().
		Str("asset_id", e.AssetID).
		Str("outcome", string(e.Outcome)).
		Float64("rating", e.OverallRating).
		Int("issues", len(e.Issues)).
		Msg("feedback recorded")
	return &e, nil
}

func validateEntry(e Entry) error {
	switch {
	case strings.TrimSpace(e.AssetID) == "":
		return fmt.Errorf("%w: asset id is required", ErrInvalidEntry)
	case e.OverallRating < 1 || e.OverallRating > 5:
		return fmt.Errorf("%w: rating %.1f must be between 1 and 5", ErrInvalidEntry, e.OverallRating)
	case !e.Outcome.Valid():
		return fmt.Errorf("%w: unknown outcome %q", ErrInvalidEntry, e.Outcome)
	}
	return nil
}

// GetSummary aggregates the entries of the last windowDays days. A
// non-positive window uses DefaultWindowDays.
func (s *Service) GetSummary(ctx context.Context, windowDays int) (Summary, error) {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	end := s.now().UTC()
	start := end.Add(-time.Duration(windowDays) * 24 * time.Hour)

	entries, err := s.store.List(ctx, start)
	if err != nil {
		return Summary{}, fmt.Errorf("list feedback: %w", err)
	}
	sum := Summarize(entries)
	sum.WindowDays = windowDays
	sum.WindowStart = start
	sum.WindowEnd = end
	return sum, nil
}

// Summarize computes outcome counts, the mean rating and the most common
// issues for entries. Issue ties keep first-seen order.
func Summarize(entries []*Entry) Summary {
	sum := Summary{CommonIssues: []string{}}
	if len(entries) == 0 {
		return sum
	}

	var total float64
	counts := map[string]int{}
	var order []string
	for _, e := range entries {
		sum.TotalEntries++
		total += e.OverallRating
		switch e.Outcome {
		case OutcomeApproved:
			sum.Approved++
		case OutcomeRevised:
			sum.Revised++
		case OutcomeRejected:
			sum.Rejected++
		}
		for _, is := range e.Issues {
			key := is.Category + ": " + is.Description
			if _, seen := counts[key]; !seen {
				order = append(order, key)
			}
			counts[key]++
		}
	}
	sum.AverageRating = round1(total / float64(sum.TotalEntries))
	sum.ApprovalRate = round1(100 * float64(sum.Approved) / float64(sum.TotalEntries))

	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if len(order) > topIssueCount {
		order = order[:topIssueCount]
	}
	sum.CommonIssues = append(sum.CommonIssues, order...)
	return sum
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
