package cli

import (
	"io"
	"log/slog"

	"github.com/runnerr0/recap/internal/config"
	"github.com/runnerr0/recap/internal/history"
	"github.com/runnerr0/recap/internal/storage"
)

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// AnalyzeCommand — run the full pipeline over a collected-records file.
type AnalyzeCommand struct {
	Input      string `long:"input" short:"i" description:"Path to collected records JSON (required)"`
	Date       string `long:"date" description:"Analysis day, YYYY-MM-DD (default: today)"`
	Tier       string `long:"tier" description:"Privacy tier: standard | rag | classified | deidentified"`
	DryRun     bool   `long:"dry-run" description:"Run the pipeline without persisting history or archive"`
	ShowPrompt bool   `long:"show-prompt" description:"Print the generated tier prompt"`

	globals *GlobalFlags
	version string

	// injectable for testing; nil means load/open defaults
	cfg       *config.Config
	store     storage.Store
	histStore *history.Store
	logger    *slog.Logger
}

// ValidateCommand — leak-check a piece of text against a tier.
type ValidateCommand struct {
	Text string `long:"text" description:"Text to validate"`
	File string `long:"file" description:"Path to a file to validate"`
	Tier string `long:"tier" description:"Privacy tier to validate against" default:"classified"`

	globals *GlobalFlags
	version string
}

// HistoryCommand — show the cross-day topic history.
type HistoryCommand struct {
	Topic string `long:"topic" description:"Show a single topic's record"`
	Limit int    `long:"limit" description:"Maximum topics to show" default:"20"`

	globals *GlobalFlags
	version string

	cfg       *config.Config
	histStore *history.Store
}

// StatusCommand — show archive statistics and configuration summary.
type StatusCommand struct {
	globals *GlobalFlags
	version string

	cfg   *config.Config
	store storage.Store
}

// PruneCommand — apply TTL pruning to archived runs.
type PruneCommand struct {
	OlderThan string `long:"older-than" description:"Override retention period (e.g., 30d)"`
	DryRun    bool   `long:"dry-run" description:"Show what would be pruned without deleting"`
	Force     bool   `long:"force" description:"Skip safety confirmation prompt"`

	globals *GlobalFlags
	version string

	cfg   *config.Config
	store storage.Store
	stdin io.Reader
}

// PurgeCommand — delete ALL recap data with safety confirmation.
type PurgeCommand struct {
	All   bool `long:"all" description:"Required flag to confirm purge intent"`
	Force bool `long:"force" description:"Skip safety confirmation prompt"`

	globals *GlobalFlags
	version string

	cfg       *config.Config
	store     storage.Store
	histStore *history.Store
	stdin     io.Reader
}
