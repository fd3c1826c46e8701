package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/runnerr0/recap/internal/storage"
)

// Execute implements the go-flags Commander interface for PruneCommand.
func (c *PruneCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.cfg, c.globals)
	if err != nil {
		return err
	}

	retention := time.Duration(cfg.Storage.RetentionDays) * 24 * time.Hour
	if c.OlderThan != "" {
		retention, err = parseDuration(c.OlderThan)
		if err != nil {
			return err
		}
	}
	if retention <= 0 {
		return fmt.Errorf("retention must be positive")
	}
	cutoff := time.Now().Add(-retention)

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

	ctx := context.Background()

	if c.DryRun {
		// Count without deleting by listing runs older than the cutoff.
		runs, err := store.ListRuns(ctx, listOlderThan(cutoff))
		if err != nil {
			return fmt.Errorf("list runs: %w", err)
		}
		if c.globals != nil && c.globals.JSON {
			return printJSONOut(map[string]any{
				"dry_run":     true,
				"would_prune": len(runs),
				"older_than":  formatDurationHuman(retention),
			})
		}
		fmt.Printf("[DRY RUN] would prune %d run(s) older than %s\n", len(runs), formatDurationHuman(retention))
		return nil
	}

	if !c.Force {
		msg := fmt.Sprintf("Prune archived runs older than %s?", formatDurationHuman(retention))
		if !confirm(msg, c.stdin) {
			fmt.Println("Aborted.")
			return nil
		}
	}

	pruned, err := store.PruneExpired(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("prune runs: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		return printJSONOut(map[string]any{
			"pruned":     pruned,
			"older_than": formatDurationHuman(retention),
		})
	}
	fmt.Printf("Pruned %d run(s) older than %s\n", pruned, formatDurationHuman(retention))
	return nil
}

// listOlderThan builds a query matching every run created before cutoff.
func listOlderThan(cutoff time.Time) storage.ListQuery {
	return storage.ListQuery{Until: cutoff, Limit: 1 << 30}
}

func printJSONOut(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
