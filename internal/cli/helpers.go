package cli

import (
	"bufio"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/runnerr0/recap/internal/activity"
	"github.com/runnerr0/recap/internal/config"
	"github.com/runnerr0/recap/internal/storage"
)

// loadConfig resolves the active config: an injected one, then the
// --config path, then the default path (created on first run).
func loadConfig(injected *config.Config, globals *GlobalFlags) (*config.Config, error) {
	if injected != nil {
		return injected, nil
	}
	if globals != nil && globals.Config != "" {
		return config.Load(globals.Config)
	}
	return config.LoadOrCreate()
}

// openStore opens the run archive for the given config, running
// migrations first. The caller owns both returned handles.
func openStore(cfg *config.Config) (*storage.SQLiteStore, *sql.DB, error) {
	dbPath, err := cfg.DBPath()
	if err != nil {
		return nil, nil, err
	}
	dir, err := cfg.DataDir()
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	runner := storage.NewMigrationRunner(db)
	if err := runner.Run(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	store, err := storage.NewSQLiteStore(db)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("create store: %w", err)
	}

	return store, db, nil
}

// rawRecords mirrors activity.Records but with free-form timestamp
// strings, since collectors emit whatever their source stored.
type rawRecords struct {
	Visits []struct {
		URL    string `json:"url"`
		Title  string `json:"title"`
		Time   string `json:"time"`
		Domain string `json:"domain"`
	} `json:"visits"`
	Searches []struct {
		Query  string `json:"query"`
		Time   string `json:"time"`
		Engine string `json:"engine"`
	} `json:"searches"`
	Commands []struct {
		Cmd  string `json:"cmd"`
		Time string `json:"time"`
	} `json:"commands"`
	Sessions []struct {
		Prompt  string `json:"prompt"`
		Time    string `json:"time"`
		Project string `json:"project"`
	} `json:"sessions"`
	Commits []struct {
		Hash       string `json:"hash"`
		Message    string `json:"message"`
		Time       string `json:"time"`
		Repo       string `json:"repo"`
		Insertions int    `json:"insertions"`
		Deletions  int    `json:"deletions"`
	} `json:"commits"`
}

// loadRecords reads a collected-records JSON file. A timestamp that fails
// to parse leaves the record with a zero time: excluded from temporal
// operations, still classified and counted.
func loadRecords(path string) (activity.Records, error) {
	var records activity.Records

	data, err := os.ReadFile(path)
	if err != nil {
		return records, fmt.Errorf("read records file: %w", err)
	}

	var raw rawRecords
	if err := json.Unmarshal(data, &raw); err != nil {
		return records, fmt.Errorf("parse records file: %w", err)
	}

	parseTime := func(s string) time.Time {
		if s == "" {
			return time.Time{}
		}
		t, err := activity.ParseTimestamp(s)
		if err != nil {
			return time.Time{}
		}
		return t
	}

	for _, v := range raw.Visits {
		records.Visits = append(records.Visits, activity.BrowserVisit{
			URL: v.URL, Title: v.Title, Time: parseTime(v.Time), Domain: v.Domain,
		})
	}
	for _, s := range raw.Searches {
		records.Searches = append(records.Searches, activity.SearchQuery{
			Query: s.Query, Time: parseTime(s.Time), Engine: s.Engine,
		})
	}
	for _, c := range raw.Commands {
		records.Commands = append(records.Commands, activity.ShellCommand{
			Command: c.Cmd, Time: parseTime(c.Time),
		})
	}
	for _, s := range raw.Sessions {
		records.Sessions = append(records.Sessions, activity.AssistantSession{
			Prompt: s.Prompt, Time: parseTime(s.Time), Project: s.Project,
		})
	}
	for _, c := range raw.Commits {
		records.Commits = append(records.Commits, activity.GitCommit{
			Hash: c.Hash, Message: c.Message, Time: parseTime(c.Time),
			Repo: c.Repo, Insertions: c.Insertions, Deletions: c.Deletions,
		})
	}

	return records, nil
}

// parseDuration parses a human-friendly duration string like "30d", "7d",
// "24h", "2w".
func parseDuration(s string) (time.Duration, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid duration: %q", s)
	}

	suffix := s[len(s)-1]
	numStr := s[:len(s)-1]

	n, err := strconv.Atoi(numStr)
	if err != nil {
		return 0, fmt.Errorf("invalid duration: %q", s)
	}

	switch suffix {
	case 'd':
		return time.Duration(n) * 24 * time.Hour, nil
	case 'h':
		return time.Duration(n) * time.Hour, nil
	case 'w':
		return time.Duration(n) * 7 * 24 * time.Hour, nil
	case 'm':
		return time.Duration(n) * time.Minute, nil
	default:
		return 0, fmt.Errorf("invalid duration: %q (use d, h, w, or m suffix)", s)
	}
}

// formatDurationHuman formats a duration into a human-readable string like "30 days".
func formatDurationHuman(d time.Duration) string {
	days := int(d.Hours() / 24)
	if days > 0 {
		if days == 1 {
			return "1 day"
		}
		return fmt.Sprintf("%d days", days)
	}
	hours := int(d.Hours())
	if hours > 0 {
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}
	return d.String()
}

// confirm prompts the user for a y/n answer on the given reader.
func confirm(prompt string, in io.Reader) bool {
	if in == nil {
		in = os.Stdin
	}
	fmt.Printf("%s [y/N]: ", prompt)
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}
