package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Analyze  *AnalyzeCommand
	Validate *ValidateCommand
	History  *HistoryCommand
	Status   *StatusCommand
	Prune    *PruneCommand
	Purge    *PurgeCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "recap"
	parser.LongDescription = "Privacy-graded analysis of personal activity records: dedup, sanitize, classify, extract patterns, and validate before anything leaves the machine."

	cmds := &commands{
		Analyze:  &AnalyzeCommand{globals: &globals, version: version},
		Validate: &ValidateCommand{globals: &globals, version: version},
		History:  &HistoryCommand{globals: &globals, version: version},
		Status:   &StatusCommand{globals: &globals, version: version},
		Prune:    &PruneCommand{globals: &globals, version: version},
		Purge:    &PurgeCommand{globals: &globals, version: version},
	}

	parser.AddCommand("analyze", "Run the analysis pipeline over collected records", "Run the full pipeline (dedup, sanitize, classify, patterns, tier prompt, leak validation) over a records JSON file.", cmds.Analyze)
	parser.AddCommand("validate", "Leak-check text against a privacy tier", "Scan a piece of tier-bound text against that tier's forbidden-content rules.", cmds.Validate)
	parser.AddCommand("history", "Show the cross-day topic history", "Show tracked topics, day counts, and recency from the topic history.", cmds.History)
	parser.AddCommand("status", "Show archive statistics", "Show run archive statistics and configuration summary.", cmds.Status)
	parser.AddCommand("prune", "Apply TTL pruning to archived runs", "Apply TTL pruning to remove old archived runs.", cmds.Prune)
	parser.AddCommand("purge", "Delete ALL recap data", "Delete ALL recap data. Destructive operation with safety prompt.", cmds.Purge)

	return parser, &globals, cmds
}

// Run is the main entry point for the recap CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("recap %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
