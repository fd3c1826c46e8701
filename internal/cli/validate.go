package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/runnerr0/recap/internal/privacy"
)

// Execute implements the go-flags Commander interface for ValidateCommand.
func (c *ValidateCommand) Execute(args []string) error {
	if c.Text == "" && c.File == "" {
		return fmt.Errorf("provide --text or --file")
	}
	if c.Text != "" && c.File != "" {
		return fmt.Errorf("--text and --file are mutually exclusive")
	}

	tier, err := privacy.ParseTier(c.Tier)
	if err != nil {
		return err
	}

	text := c.Text
	if c.File != "" {
		data, err := os.ReadFile(c.File)
		if err != nil {
			return fmt.Errorf("read input file: %w", err)
		}
		text = string(data)
	}

	report := privacy.Validate(text, tier)

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	if report.Passed {
		fmt.Printf("PASS: text is clean for tier %s\n", tier)
		return nil
	}

	fmt.Printf("FAIL: %d violation(s) at tier %s\n", len(report.Violations), tier)
	for _, v := range report.Violations {
		fmt.Printf("  - %s\n", v)
	}
	return nil
}
