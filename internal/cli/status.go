package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/runnerr0/recap/internal/config"
	"github.com/runnerr0/recap/internal/storage"
)

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	TotalRuns        int64            `json:"total_runs"`
	TotalEvents      int64            `json:"total_events"`
	OldestRun        string           `json:"oldest_run,omitempty"`
	NewestRun        string           `json:"newest_run,omitempty"`
	DatabaseSize     int64            `json:"database_size_bytes"`
	TopActivityTypes map[string]int64 `json:"top_activity_types"`
	Config           statusConfigJSON `json:"config"`
}

type statusConfigJSON struct {
	DefaultTier   string `json:"default_tier"`
	RetentionDays int    `json:"retention_days"`
	LLMEnabled    bool   `json:"llm_enabled"`
	DataDir       string `json:"data_dir"`
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.cfg, c.globals)
	if err != nil {
		return err
	}

	store := c.store
	if store == nil {
		s, db, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		defer s.Close()
		store = s
	}

	stats, err := store.GetStats(context.Background())
	if err != nil {
		return fmt.Errorf("get stats: %w", err)
	}

	dataDir, err := cfg.DataDir()
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		return c.printJSON(cfg, stats, dataDir)
	}
	return c.printHuman(cfg, stats, dataDir)
}

func (c *StatusCommand) printJSON(cfg *config.Config, stats *storage.Stats, dataDir string) error {
	out := statusJSON{
		TotalRuns:        stats.TotalRuns,
		TotalEvents:      stats.TotalEvents,
		DatabaseSize:     stats.DatabaseSizeBytes,
		TopActivityTypes: make(map[string]int64, len(stats.TopActivityTypes)),
		Config: statusConfigJSON{
			DefaultTier:   cfg.Privacy.DefaultTier,
			RetentionDays: cfg.Storage.RetentionDays,
			LLMEnabled:    cfg.LLM.Enabled,
			DataDir:       dataDir,
		},
	}
	if !stats.OldestRun.IsZero() {
		out.OldestRun = stats.OldestRun.Format("2006-01-02")
	}
	if !stats.NewestRun.IsZero() {
		out.NewestRun = stats.NewestRun.Format("2006-01-02")
	}
	for _, tc := range stats.TopActivityTypes {
		out.TopActivityTypes[tc.ActivityType] = tc.Count
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func (c *StatusCommand) printHuman(cfg *config.Config, stats *storage.Stats, dataDir string) error {
	fmt.Println("Recap Archive")
	fmt.Println("=============")
	fmt.Printf("Runs:          %s\n", formatNumber(stats.TotalRuns))
	fmt.Printf("Events:        %s\n", formatNumber(stats.TotalEvents))
	if !stats.OldestRun.IsZero() {
		fmt.Printf("Oldest run:    %s\n", stats.OldestRun.Format("2006-01-02"))
	}
	if !stats.NewestRun.IsZero() {
		fmt.Printf("Newest run:    %s\n", stats.NewestRun.Format("2006-01-02"))
	}
	fmt.Printf("Database size: %s\n", formatBytes(stats.DatabaseSizeBytes))

	if len(stats.TopActivityTypes) > 0 {
		fmt.Println("\nTop activity types:")
		for _, tc := range stats.TopActivityTypes {
			fmt.Printf("  %-24s %s\n", tc.ActivityType, formatNumber(tc.Count))
		}
	}

	fmt.Println("\nConfiguration")
	fmt.Println("=============")
	fmt.Printf("Data directory: %s\n", dataDir)
	fmt.Printf("Default tier:   %s\n", cfg.Privacy.DefaultTier)
	fmt.Printf("Retention:      %d days\n", cfg.Storage.RetentionDays)
	if cfg.LLM.Enabled {
		fmt.Printf("LLM refinement: enabled (%s)\n", cfg.LLM.Model)
	} else {
		fmt.Println("LLM refinement: disabled")
	}
	return nil
}

// formatBytes formats a byte count in human-readable units.
func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}

// formatNumber adds thousands separators to a number.
func formatNumber(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return string(out)
}
