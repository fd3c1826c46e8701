package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/runnerr0/recap/internal/activity"
	"github.com/runnerr0/recap/internal/classify"
	"github.com/runnerr0/recap/internal/config"
	"github.com/runnerr0/recap/internal/dedupe"
	"github.com/runnerr0/recap/internal/history"
	"github.com/runnerr0/recap/internal/logging"
	"github.com/runnerr0/recap/internal/patterns"
	"github.com/runnerr0/recap/internal/privacy"
	"github.com/runnerr0/recap/internal/sanitize"
	"github.com/runnerr0/recap/internal/storage"
)

// analyzeJSON is the JSON output structure for the analyze command.
type analyzeJSON struct {
	Date           string                   `json:"date"`
	Tier           string                   `json:"tier"`
	EventCount     int                      `json:"event_count"`
	CollapsedCount int                      `json:"collapsed_count"`
	Analysis       patterns.PatternAnalysis `json:"analysis"`
	Leak           privacy.LeakReport       `json:"leak_report"`
	Prompt         string                   `json:"prompt,omitempty"`
	DryRun         bool                     `json:"dry_run"`
	RunID          string                   `json:"run_id,omitempty"`
}

// Execute implements the go-flags Commander interface for AnalyzeCommand.
func (c *AnalyzeCommand) Execute(args []string) error {
	if c.Input == "" {
		return fmt.Errorf("--input is required")
	}

	cfg, err := loadConfig(c.cfg, c.globals)
	if err != nil {
		return err
	}

	logger := c.logger
	if logger == nil {
		var closeLog func() error
		logger, closeLog, err = logging.New(cfg.Logging.Level, cfg.Logging.File)
		if err != nil {
			return err
		}
		defer closeLog() //nolint:errcheck
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

	histStore := c.histStore
	if histStore == nil {
		path, err := cfg.HistoryPath()
		if err != nil {
			return err
		}
		histStore = history.NewStore(path)
	}

	return c.run(cfg, store, histStore, logger)
}

// run executes the pipeline against provided collaborators (for testing).
func (c *AnalyzeCommand) run(cfg *config.Config, store storage.Store, histStore *history.Store, logger *slog.Logger) error {
	tierName := c.Tier
	if tierName == "" {
		tierName = cfg.Privacy.DefaultTier
	}
	tier, err := privacy.ParseTier(tierName)
	if err != nil {
		return err
	}

	day := time.Now()
	if c.Date != "" {
		day, err = time.Parse("2006-01-02", c.Date)
		if err != nil {
			return fmt.Errorf("invalid --date %q: %w", c.Date, err)
		}
	}

	records, err := loadRecords(c.Input)
	if err != nil {
		return err
	}
	rawTotal := records.Total()

	san := sanitize.New(sanitize.Options{
		Level:           sanitize.Level(cfg.Sanitize.Level),
		RedactEmails:    cfg.Sanitize.RedactEmails,
		CollapseHome:    cfg.Sanitize.CollapseHome,
		ExcludedDomains: cfg.Sanitize.ExcludedDomains,
	})

	// Dedupe runs on raw URLs so canonical keys see the original visit,
	// then the survivors are sanitized. Domain exclusion happens first so
	// denied visits never influence per-domain caps.
	records.Visits = filterExcludedVisits(records.Visits, san)
	dd := dedupe.Dedupe(records.Visits, dedupe.Options{
		MaxPerDomain:  cfg.Dedup.MaxVisitsPerDomain,
		MaxOtherTotal: cfg.Dedup.MaxOtherTotal,
	})
	records.Visits = dd.Visits
	logger.Info("deduplicated visits", "kept", len(dd.Visits), "collapsed", dd.Collapsed)

	records = sanitizeRecords(records, san)

	categorized := activity.Categorize(records.Visits, activity.TableCategorizer{})
	events := classify.New().All(categorized, records)
	events = c.refineWithLLM(cfg, events, logger)
	logger.Info("classified records", "raw", rawTotal, "events", len(events))

	hist, err := histStore.Load()
	if err != nil {
		// Proceed with an empty in-memory history rather than lose the run.
		logger.Warn("topic history unavailable, starting empty", "error", err)
		hist = history.Empty()
	}

	analysis := patterns.Analyze(events, hist, day, patterns.Config{
		CooccurrenceWindow: time.Duration(cfg.Analysis.CooccurrenceWindowMinutes) * time.Minute,
		MinClusterSize:     cfg.Analysis.MinClusterSize,
		TrackRecurrence:    cfg.Analysis.TrackRecurrence,
	})

	prompt := privacy.BuildPrompt(tier, events, analysis)
	report := privacy.Validate(prompt, tier)
	if !report.Passed {
		logger.Warn("leak validation failed", "tier", tier, "violations", len(report.Violations))
	}

	run := &storage.Run{
		Date:           day.Format("2006-01-02"),
		Tier:           string(tier),
		EventCount:     len(events),
		CollapsedCount: dd.Collapsed,
		FocusScore:     analysis.FocusScore,
		Passed:         report.Passed,
		Events:         events,
		Prompt:         prompt,
	}

	if !c.DryRun {
		if cfg.Analysis.TrackRecurrence {
			updated := history.Update(hist, patterns.Topics(events), day)
			if err := histStore.Save(updated); err != nil {
				logger.Warn("failed to persist topic history", "error", err)
			}
		}
		if err := store.SaveRun(context.Background(), run); err != nil {
			return fmt.Errorf("archive run: %w", err)
		}
	}

	if c.globals != nil && c.globals.JSON {
		out := analyzeJSON{
			Date:           run.Date,
			Tier:           run.Tier,
			EventCount:     run.EventCount,
			CollapsedCount: run.CollapsedCount,
			Analysis:       analysis,
			Leak:           report,
			DryRun:         c.DryRun,
			RunID:          run.ID,
		}
		if c.ShowPrompt {
			out.Prompt = prompt
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	return c.printHuman(run, analysis, report, prompt)
}

func (c *AnalyzeCommand) printHuman(run *storage.Run, analysis patterns.PatternAnalysis, report privacy.LeakReport, prompt string) error {
	fmt.Printf("Analyzed %s (tier %s)\n", run.Date, run.Tier)
	fmt.Printf("Events:          %d (%d visits collapsed)\n", run.EventCount, run.CollapsedCount)
	fmt.Printf("Focus score:     %.2f\n", analysis.FocusScore)
	fmt.Printf("Concentration:   %.2f\n", analysis.ActivityConcentrationScore)
	if len(analysis.TopActivityTypes) > 0 {
		fmt.Printf("Top activities:  %s\n", strings.Join(analysis.TopActivityTypes, ", "))
	}
	if len(analysis.Clusters) > 0 {
		fmt.Println("\nActivity blocks:")
		for _, cl := range analysis.Clusters {
			fmt.Printf("  %s\n", cl.Label)
		}
	}
	if len(analysis.Recurrence) > 0 {
		fmt.Println("\nRecurrence:")
		for _, sig := range analysis.Recurrence {
			fmt.Printf("  %-24s %s (day %d)\n", sig.Topic, sig.Trend, sig.DayCount)
		}
	}

	if report.Passed {
		fmt.Println("\nLeak validation: passed")
	} else {
		fmt.Printf("\nLeak validation: FAILED (%d violations)\n", len(report.Violations))
		for _, v := range report.Violations {
			fmt.Printf("  - %s\n", v)
		}
	}

	if c.DryRun {
		fmt.Println("\n[DRY RUN] nothing persisted")
	} else if run.ID != "" {
		fmt.Printf("\nArchived as %s\n", run.ID)
	}

	if c.ShowPrompt {
		fmt.Println("\n--- prompt ---")
		fmt.Println(prompt)
	}
	return nil
}

// refineWithLLM applies the model classification path when configured.
// Failures never abort the run; the rule labels stand.
func (c *AnalyzeCommand) refineWithLLM(cfg *config.Config, events []activity.StructuredEvent, logger *slog.Logger) []activity.StructuredEvent {
	if !cfg.LLM.Enabled {
		return events
	}
	apiKey := os.Getenv(cfg.LLM.APIKeyEnv)
	if apiKey == "" {
		logger.Warn("llm classification enabled but API key env is empty", "env", cfg.LLM.APIKeyEnv)
		return events
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	refiner := classify.NewLLMClassifier(&client, cfg.LLM.Model, cfg.LLM.BatchSize, logger)
	return refiner.Refine(context.Background(), events)
}

// filterExcludedVisits drops visits whose domain matches an exclusion
// pattern and fills in the Domain field for the rest.
func filterExcludedVisits(visits []activity.BrowserVisit, san *sanitize.Sanitizer) []activity.BrowserVisit {
	kept := make([]activity.BrowserVisit, 0, len(visits))
	for _, v := range visits {
		host := v.Domain
		if host == "" {
			if u, err := url.Parse(v.URL); err == nil {
				host = u.Hostname()
			}
		}
		if !san.VisitAllowed(host) {
			continue
		}
		v.Domain = host
		kept = append(kept, v)
	}
	return kept
}

// sanitizeRecords applies the text/URL transforms to every record before
// classification sees them. Visits arrive already domain-filtered and
// deduplicated.
func sanitizeRecords(records activity.Records, san *sanitize.Sanitizer) activity.Records {
	out := activity.Records{}

	for _, v := range records.Visits {
		v.URL = san.URL(v.URL)
		v.Title = san.Text(v.Title)
		out.Visits = append(out.Visits, v)
	}
	for _, q := range records.Searches {
		q.Query = san.Text(q.Query)
		out.Searches = append(out.Searches, q)
	}
	for _, cmd := range records.Commands {
		cmd.Command = san.Text(cmd.Command)
		out.Commands = append(out.Commands, cmd)
	}
	for _, s := range records.Sessions {
		s.Prompt = san.Text(s.Prompt)
		out.Sessions = append(out.Sessions, s)
	}
	for _, commit := range records.Commits {
		commit.Message = san.Text(commit.Message)
		out.Commits = append(out.Commits, commit)
	}
	return out
}
