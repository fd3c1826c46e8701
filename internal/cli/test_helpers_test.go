package cli

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/recap/internal/config"
	"github.com/runnerr0/recap/internal/history"
	"github.com/runnerr0/recap/internal/storage"
)

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// newTestStore creates a migrated in-memory archive.
func newTestStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	runner := storage.NewMigrationRunner(db)
	require.NoError(t, runner.Run())

	store, err := storage.NewSQLiteStore(db)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

// newTestHistStore returns a history store backed by a temp file.
func newTestHistStore(t *testing.T) *history.Store {
	t.Helper()
	return history.NewStore(filepath.Join(t.TempDir(), "topic-history.json"))
}

// seedRun archives a minimal run with the given creation time.
func seedRun(t *testing.T, store *storage.SQLiteStore, createdAt time.Time) *storage.Run {
	t.Helper()
	run := &storage.Run{
		Date:       createdAt.Format("2006-01-02"),
		Tier:       "classified",
		EventCount: 1,
		Passed:     true,
		CreatedAt:  createdAt,
	}
	require.NoError(t, store.SaveRun(context.Background(), run))
	return run
}

// writeRecordsFile writes a collected-records JSON file and returns its path.
func writeRecordsFile(t *testing.T, records map[string]any) string {
	t.Helper()
	data, err := json.Marshal(records)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "records.json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

// sampleRecords is a small mixed-source day of activity.
func sampleRecords() map[string]any {
	return map[string]any{
		"visits": []map[string]any{
			{"url": "https://github.com/owner/repo/pulls", "title": "Pull Requests", "time": "2026-03-02T09:15:00Z", "domain": "github.com"},
			{"url": "https://github.com/owner/repo/pulls?page=2", "title": "Pull Requests", "time": "2026-03-02T09:20:00Z", "domain": "github.com"},
			{"url": "https://stackoverflow.com/questions/123/context-cancel", "title": "How to cancel a context", "time": "2026-03-02T10:05:00Z", "domain": "stackoverflow.com"},
		},
		"searches": []map[string]any{
			{"query": "sqlite wal mode tradeoffs", "time": "2026-03-02T10:00:00Z", "engine": "google"},
		},
		"commands": []map[string]any{
			{"cmd": "git rebase main", "time": "2026-03-02T09:30:00Z"},
		},
		"sessions": []map[string]any{
			{"prompt": "why does my worker pool deadlock", "time": "2026-03-02T11:00:00Z", "project": "pipeline"},
		},
		"commits": []map[string]any{
			{"hash": "abc1234", "message": "fix: close idle connections", "time": "2026-03-02T11:30:00Z", "repo": "pipeline", "insertions": 12, "deletions": 4},
		},
	}
}

// testAnalyzeCommand wires an AnalyzeCommand to in-memory collaborators.
func testAnalyzeCommand(t *testing.T, inputPath string) (*AnalyzeCommand, *storage.SQLiteStore, *history.Store) {
	t.Helper()
	store := newTestStore(t)
	histStore := newTestHistStore(t)
	cmd := &AnalyzeCommand{
		Input:     inputPath,
		Date:      "2026-03-02",
		globals:   &GlobalFlags{},
		version:   "test",
		cfg:       config.DefaultConfig(),
		store:     store,
		histStore: histStore,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	return cmd, store, histStore
}
