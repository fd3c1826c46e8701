package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/runnerr0/recap/internal/history"
)

// Execute implements the go-flags Commander interface for PurgeCommand.
func (c *PurgeCommand) Execute(args []string) error {
	if !c.All {
		return fmt.Errorf("purge requires --all to confirm intent")
	}

	cfg, err := loadConfig(c.cfg, c.globals)
	if err != nil {
		return err
	}

	if !c.Force {
		fmt.Println("This will permanently delete ALL archived runs, prompts, and the topic history.")
		if !confirm("Continue?", c.stdin) {
			fmt.Println("Aborted.")
			return nil
		}
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

	if err := store.PurgeAll(context.Background()); err != nil {
		return fmt.Errorf("purge archive: %w", err)
	}

	// The topic history lives outside the database; remove it too so no
	// cross-day state survives a purge.
	if c.histStore != nil {
		if err := c.histStore.Save(history.Empty()); err != nil {
			return fmt.Errorf("reset topic history: %w", err)
		}
	} else {
		path, err := cfg.HistoryPath()
		if err != nil {
			return err
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove topic history: %w", err)
		}
	}

	fmt.Println("All recap data purged.")
	return nil
}
