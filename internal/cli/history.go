package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/runnerr0/recap/internal/history"
)

// topicRow is one topic's line in the history listing.
type topicRow struct {
	Topic     string `json:"topic"`
	DayCount  int    `json:"day_count"`
	FirstSeen string `json:"first_seen"`
	LastSeen  string `json:"last_seen"`
}

// Execute implements the go-flags Commander interface for HistoryCommand.
func (c *HistoryCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.cfg, c.globals)
	if err != nil {
		return err
	}

	histStore := c.histStore
	if histStore == nil {
		path, err := cfg.HistoryPath()
		if err != nil {
			return err
		}
		histStore = history.NewStore(path)
	}

	snap, err := histStore.Load()
	if err != nil {
		return fmt.Errorf("load topic history: %w", err)
	}

	if c.Topic != "" {
		return c.printTopic(snap)
	}
	return c.printAll(snap)
}

func (c *HistoryCommand) printTopic(snap history.Snapshot) error {
	stats, ok := snap.Get(c.Topic)
	if !ok {
		return fmt.Errorf("topic %q not found in history", c.Topic)
	}

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	fmt.Printf("Topic:      %s\n", c.Topic)
	fmt.Printf("First seen: %s\n", stats.FirstSeen)
	fmt.Printf("Last seen:  %s\n", stats.LastSeen)
	fmt.Printf("Days seen:  %d\n", stats.DayCount)
	if len(stats.RecentDays) > 0 {
		fmt.Println("Recent days:")
		for _, d := range stats.RecentDays {
			fmt.Printf("  %s\n", d)
		}
	}
	return nil
}

func (c *HistoryCommand) printAll(snap history.Snapshot) error {
	rows := make([]topicRow, 0, snap.Len())
	for topic, stats := range snap.Topics {
		rows = append(rows, topicRow{
			Topic:     topic,
			DayCount:  stats.DayCount,
			FirstSeen: stats.FirstSeen,
			LastSeen:  stats.LastSeen,
		})
	}
	// Most persistent topics first; ties broken alphabetically.
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].DayCount != rows[j].DayCount {
			return rows[i].DayCount > rows[j].DayCount
		}
		return rows[i].Topic < rows[j].Topic
	})
	if c.Limit > 0 && len(rows) > c.Limit {
		rows = rows[:c.Limit]
	}

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	if len(rows) == 0 {
		fmt.Println("No topic history yet. Run 'recap analyze' first.")
		return nil
	}

	fmt.Printf("%-32s %6s   %-10s   %-10s\n", "TOPIC", "DAYS", "FIRST", "LAST")
	for _, row := range rows {
		fmt.Printf("%-32s %6d   %-10s   %-10s\n", row.Topic, row.DayCount, row.FirstSeen, row.LastSeen)
	}
	return nil
}
