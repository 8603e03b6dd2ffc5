package feedback

import "time"

type Outcome string

const (
	OutcomeApproved Outcome = "approved"
	OutcomeRevised  Outcome = "revised"
	OutcomeRejected Outcome = "rejected"
)

// Valid reports whether o is a known outcome.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeApproved, OutcomeRevised, OutcomeRejected:
		return true
	}
	return false
}

// Issue is one problem a reviewer flagged on an asset.
type Issue struct {
	Category    string `json:"category"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

// Entry records a human review of one generated asset. Entries are
// append-only.
type Entry struct {
	ID            string    `json:"id"`
	AssetID       string    `json:"asset_id"`
	Timestamp     time.Time `json:"timestamp"`
	Reviewer      string    `json:"reviewer"`
	OverallRating float64   `json:"overall_rating"`
	Issues        []Issue   `json:"issues"`
	Outcome       Outcome   `json:"outcome"`
	Notes         string    `json:"notes,omitempty"`
}

// Summary aggregates the entries of a rolling window.
type Summary struct {
	TotalEntries  int       `json:"total_entries"`
	Approved      int       `json:"approved"`
	Revised       int       `json:"revised"`
	Rejected      int       `json:"rejected"`
	ApprovalRate  float64   `json:"approval_rate"`
	AverageRating float64   `json:"average_rating"`
	CommonIssues  []string  `json:"common_issues"`
	WindowDays    int       `json:"window_days"`
	WindowStart   time.Time `json:"window_start"`
	WindowEnd     time.Time `json:"window_end"`
}

func cloneEntry(e *Entry) *Entry {
	if e == nil {
		return nil
	}
	cp := *e
	cp.Issues = append([]Issue(nil), e.Issues...)
	return &cp
}
