package feedback

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

const feedbackSchema = `
CREATE TABLE IF NOT EXISTS feedback_entries (
    id             TEXT PRIMARY KEY,
    seq            BIGSERIAL,
    asset_id       TEXT NOT NULL,
    reviewed_at    TIMESTAMPTZ NOT NULL,
    reviewer       TEXT NOT NULL DEFAULT '',
    overall_rating DOUBLE PRECISION NOT NULL,
    outcome        TEXT NOT NULL,
    issues         JSONB NOT NULL DEFAULT '[]',
    notes          TEXT NOT NULL DEFAULT ''
);
ALTER TABLE feedback_entries ADD COLUMN IF NOT EXISTS seq BIGSERIAL;
ALTER TABLE feedback_entries DROP COLUMN IF EXISTS issue_categories;
CREATE INDEX IF NOT EXISTS feedback_entries_reviewed_at_idx ON feedback_entries (reviewed_at, seq);
`

// PostgresStore keeps the log in a table. seq records insertion order so
// entries with equal timestamps list and trim the way the other stores do.
type PostgresStore struct {
	db        *sql.DB
	retention int
}

func NewPostgresStore(db *sql.DB, retention int) *PostgresStore {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &PostgresStore{db: db, retention: retention}
}

// EnsureSchema creates the feedback table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, feedbackSchema); err != nil {
		return fmt.Errorf("create feedback schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Append(ctx context.Context, e *Entry) error {
	issues, err := json.Marshal(ensureIssues(e.Issues))
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
        INSERT INTO feedback_entries (id, asset_id, reviewed_at, reviewer, overall_rating, outcome, issues, notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    `, e.ID, e.AssetID, e.Timestamp, e.Reviewer, e.OverallRating, string(e.Outcome), issues, e.Notes)
	if err != nil {
		return fmt.Errorf("insert feedback entry: %w", err)
	}
	_, err = tx.ExecContext(ctx, `
        DELETE FROM feedback_entries
        WHERE id NOT IN (SELECT id FROM feedback_entries ORDER BY reviewed_at DESC, seq DESC LIMIT $1)
    `, s.retention)
	if err != nil {
		return fmt.Errorf("trim feedback log: %w", err)
	}
	return tx.Commit()
}

func (s *PostgresStore) List(ctx context.Context, since time.Time) ([]*Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, asset_id, reviewed_at, reviewer, overall_rating, outcome, issues, notes
        FROM feedback_entries WHERE reviewed_at >= $1 ORDER BY reviewed_at ASC, seq ASC
    `, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Entry
	for rows.Next() {
		var (
			e       Entry
			outcome string
			issues  []byte
		)
		if err := rows.Scan(&e.ID, &e.AssetID, &e.Timestamp, &e.Reviewer, &e.OverallRating, &outcome, &issues, &e.Notes); err != nil {
			return nil, err
		}
		e.Outcome = Outcome(outcome)
		if len(issues) > 0 {
			if err := json.Unmarshal(issues, &e.Issues); err != nil {
				return nil, fmt.Errorf("decode issues for %s: %w", e.ID, err)
			}
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

func ensureIssues(in []Issue) []Issue {
	if in == nil {
		return []Issue{}
	}
	return in
}
