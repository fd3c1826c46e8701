package storage

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/runnerr0/recap/internal/activity"
)

// Store defines the interface for the run archive.
type Store interface {
	SaveRun(ctx context.Context, run *Run) error
	GetRun(ctx context.Context, id string) (*Run, error)
	ListRuns(ctx context.Context, q ListQuery) ([]Run, error)
	DeleteRun(ctx context.Context, id string) error
	PruneExpired(ctx context.Context, olderThan time.Time) (int64, error)
	PurgeAll(ctx context.Context) error
	GetStats(ctx context.Context) (*Stats, error)
	Close() error
}

// SQLiteStore implements Store backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB

	// Prepared statements
	insertRun   *sql.Stmt
	insertEvent *sql.Stmt
	insertPrmpt *sql.Stmt
	getRun      *sql.Stmt
	deleteRun   *sql.Stmt
}

// NewSQLiteStore creates a new SQLiteStore from an already-opened and
// migrated database.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}
	if err := s.prepareStatements(); err != nil {
		return nil, fmt.Errorf("prepare statements: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.insertRun, err = s.db.Prepare(`
		INSERT INTO runs (id, day, tier, event_count, collapsed_count, focus_score, passed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}

	s.insertEvent, err = s.db.Prepare(`
		INSERT INTO run_events (run_id, seq, ts, source, activity_type, topics, entities, intent, confidence, category, summary)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}

	s.insertPrmpt, err = s.db.Prepare(`
		INSERT INTO prompts (run_id, tier, body) VALUES (?, ?, ?)
	`)
	if err != nil {
		return err
	}

	s.getRun, err = s.db.Prepare(`
		SELECT id, day, tier, event_count, collapsed_count, focus_score, passed, created_at
		FROM runs WHERE id = ?
	`)
	if err != nil {
		return err
	}

	s.deleteRun, err = s.db.Prepare(`DELETE FROM runs WHERE id = ?`)
	if err != nil {
		return err
	}

	return nil
}

// newRunID creates a ULID run identifier.
func newRunID(now time.Time) string {
	return ulid.MustNew(ulid.Timestamp(now), rand.Reader).String()
}

// parseTimestamp tries several common SQLite timestamp formats.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse timestamp: %s", s)
}

// SaveRun inserts a run, its events, and its prompt in one transaction.
// The run's ID and CreatedAt are populated automatically.
func (s *SQLiteStore) SaveRun(ctx context.Context, run *Run) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	run.ID = newRunID(run.CreatedAt)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.StmtContext(ctx, s.insertRun).ExecContext(ctx,
		run.ID, run.Date, run.Tier, run.EventCount, run.CollapsedCount,
		run.FocusScore, run.Passed, run.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, ev := range run.Events {
		topics, err := json.Marshal(ev.Topics)
		if err != nil {
			return fmt.Errorf("marshal topics: %w", err)
		}
		entities, err := json.Marshal(ev.Entities)
		if err != nil {
			return fmt.Errorf("marshal entities: %w", err)
		}
		_, err = tx.StmtContext(ctx, s.insertEvent).ExecContext(ctx,
			run.ID, i, ev.Timestamp, ev.Source, ev.ActivityType,
			string(topics), string(entities), ev.Intent, ev.Confidence,
			string(ev.Category), ev.Summary,
		)
		if err != nil {
			return fmt.Errorf("insert run event: %w", err)
		}
	}

	if run.Prompt != "" {
		if _, err := tx.StmtContext(ctx, s.insertPrmpt).ExecContext(ctx, run.ID, run.Tier, run.Prompt); err != nil {
			return fmt.Errorf("insert prompt: %w", err)
		}
	}

	return tx.Commit()
}

// GetRun retrieves a run with its events and prompt.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*Run, error) {
	var r Run
	var createdStr string

	err := s.getRun.QueryRowContext(ctx, id).Scan(
		&r.ID, &r.Date, &r.Tier, &r.EventCount, &r.CollapsedCount,
		&r.FocusScore, &r.Passed, &createdStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("run %s not found", id)
		}
		return nil, fmt.Errorf("get run: %w", err)
	}
	r.CreatedAt, _ = parseTimestamp(createdStr)

	rows, err := s.db.QueryContext(ctx, `
		SELECT ts, source, activity_type, topics, entities, intent, confidence, category, summary
		FROM run_events WHERE run_id = ? ORDER BY seq
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query run events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ev activity.StructuredEvent
		var topics, entities, category string
		if err := rows.Scan(&ev.Timestamp, &ev.Source, &ev.ActivityType,
			&topics, &entities, &ev.Intent, &ev.Confidence, &category, &ev.Summary); err != nil {
			return nil, fmt.Errorf("scan run event: %w", err)
		}
		if err := json.Unmarshal([]byte(topics), &ev.Topics); err != nil {
			return nil, fmt.Errorf("decode topics: %w", err)
		}
		if err := json.Unmarshal([]byte(entities), &ev.Entities); err != nil {
			return nil, fmt.Errorf("decode entities: %w", err)
		}
		ev.Category = activity.Category(category)
		r.Events = append(r.Events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var body sql.NullString
	err = s.db.QueryRowContext(ctx, "SELECT body FROM prompts WHERE run_id = ?", id).Scan(&body)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("get prompt: %w", err)
	}
	if body.Valid {
		r.Prompt = body.String
	}

	return &r, nil
}

// ListRuns queries runs with optional filters, newest first. Events and
// prompts are not loaded; use GetRun for the full record.
func (s *SQLiteStore) ListRuns(ctx context.Context, q ListQuery) ([]Run, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}

	var clauses []string
	var args []interface{}

	if q.Tier != "" {
		clauses = append(clauses, "tier = ?")
		args = append(args, q.Tier)
	}
	if !q.Since.IsZero() {
		clauses = append(clauses, "created_at >= ?")
		args = append(args, q.Since.UTC().Format(time.RFC3339))
	}
	if !q.Until.IsZero() {
		clauses = append(clauses, "created_at <= ?")
		args = append(args, q.Until.UTC().Format(time.RFC3339))
	}

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	query := `
		SELECT id, day, tier, event_count, collapsed_count, focus_score, passed, created_at
		FROM runs` + where + " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, q.Limit, q.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var r Run
		var createdStr string
		if err := rows.Scan(&r.ID, &r.Date, &r.Tier, &r.EventCount,
			&r.CollapsedCount, &r.FocusScore, &r.Passed, &createdStr); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.CreatedAt, _ = parseTimestamp(createdStr)
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

// DeleteRun removes a run by ID. Events and prompts cascade.
func (s *SQLiteStore) DeleteRun(ctx context.Context, id string) error {
	res, err := s.deleteRun.ExecContext(ctx, id)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("run %s not found", id)
	}
	return nil
}

// PruneExpired deletes runs created before olderThan.
func (s *SQLiteStore) PruneExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM runs WHERE created_at < ?",
		olderThan.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	return res.RowsAffected()
}

// PurgeAll deletes all archived runs, events, and prompts.
func (s *SQLiteStore) PurgeAll(ctx context.Context) error {
	stmts := []string{
		"DELETE FROM prompts",
		"DELETE FROM run_events",
		"DELETE FROM runs",
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("purge (%s): %w", stmt, err)
		}
	}
	return nil
}

// GetStats returns aggregate statistics about the archive.
func (s *SQLiteStore) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs").Scan(&stats.TotalRuns); err != nil {
		return nil, fmt.Errorf("count runs: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM run_events").Scan(&stats.TotalEvents); err != nil {
		return nil, fmt.Errorf("count run events: %w", err)
	}

	if stats.TotalRuns > 0 {
		var oldestStr, newestStr string
		err := s.db.QueryRowContext(ctx, "SELECT MIN(created_at), MAX(created_at) FROM runs").Scan(&oldestStr, &newestStr)
		if err != nil {
			return nil, fmt.Errorf("run time range: %w", err)
		}
		stats.OldestRun, _ = parseTimestamp(oldestStr)
		stats.NewestRun, _ = parseTimestamp(newestStr)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT activity_type, COUNT(*) as cnt FROM run_events GROUP BY activity_type ORDER BY cnt DESC LIMIT 10",
	)
	if err != nil {
		return nil, fmt.Errorf("top activity types: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ac ActivityTypeCount
		if err := rows.Scan(&ac.ActivityType, &ac.Count); err != nil {
			return nil, err
		}
		stats.TopActivityTypes = append(stats.TopActivityTypes, ac)
	}

	return stats, rows.Err()
}

// Close releases all prepared statements. The underlying *sql.DB is NOT
// closed; that is the caller's responsibility.
func (s *SQLiteStore) Close() error {
	stmts := []*sql.Stmt{
		s.insertRun, s.insertEvent, s.insertPrmpt, s.getRun, s.deleteRun,
	}
	for _, stmt := range stmts {
		if stmt != nil {
			stmt.Close()
		}
	}
	return nil
}
