// Package patterns extracts temporal, topical, and recurrence structure
// from a day's classified events. Everything here is a pure function over
// its inputs; only the topic history snapshot carries state between days,
// and it is passed in explicitly.
package patterns

import (
	"sort"
	"time"

	"github.com/runnerr0/recap/internal/activity"
	"github.com/runnerr0/recap/internal/history"
)

// Defaults for the extractor's tunables.
const (
	DefaultCooccurrenceWindow = 30 * time.Minute
	DefaultMinClusterSize     = 2
	DefaultConnectionCutoff   = 0.5
)

// Config tunes pattern extraction. Zero values fall back to the defaults.
type Config struct {
	CooccurrenceWindow time.Duration
	MinClusterSize     int
	TrackRecurrence    bool
	// ConnectionCutoff is the co-occurrence strength above which a topic
	// pair is reported as a knowledge-delta connection.
	ConnectionCutoff float64
}

func (c Config) withDefaults() Config {
	if c.CooccurrenceWindow <= 0 {
		c.CooccurrenceWindow = DefaultCooccurrenceWindow
	}
	if c.MinClusterSize <= 0 {
		c.MinClusterSize = DefaultMinClusterSize
	}
	if c.ConnectionCutoff <= 0 {
		c.ConnectionCutoff = DefaultConnectionCutoff
	}
	return c
}

// PatternAnalysis is the aggregate result of one extraction run. It is
// rebuilt fresh each run; nothing in it is persisted.
type PatternAnalysis struct {
	Clusters                   []TemporalCluster   `json:"clusters"`
	Cooccurrences              []TopicCooccurrence `json:"cooccurrences"`
	EntityRelations            []EntityRelation    `json:"entity_relations"`
	Recurrence                 []RecurrenceSignal  `json:"recurrence"`
	Delta                      KnowledgeDelta      `json:"knowledge_delta"`
	FocusScore                 float64             `json:"focus_score"`
	ActivityConcentrationScore float64             `json:"activity_concentration_score"`
	TopActivityTypes           []string            `json:"top_activity_types"`
	PeakHours                  []int               `json:"peak_hours"`
	EventCount                 int                 `json:"event_count"`
}

// Analyze runs the full extraction over one day's events plus the
// persisted topic history. The snapshot is read-only here; callers apply
// history.Update separately after the run.
func Analyze(events []activity.StructuredEvent, hist history.Snapshot, today time.Time, cfg Config) PatternAnalysis {
	cfg = cfg.withDefaults()

	analysis := PatternAnalysis{
		Clusters:                   ClusterByHour(events, cfg.MinClusterSize),
		Cooccurrences:              TopicCooccurrences(events, cfg.CooccurrenceWindow),
		EntityRelations:            EntityRelations(events, cfg.CooccurrenceWindow),
		FocusScore:                 FocusScore(events),
		ActivityConcentrationScore: ActivityConcentration(events),
		TopActivityTypes:           topActivityTypes(events, 3),
		PeakHours:                  peakHours(events, 3),
		EventCount:                 len(events),
	}

	if cfg.TrackRecurrence {
		analysis.Recurrence = ComputeRecurrenceSignals(Topics(events), hist, today)
	}
	analysis.Delta = BuildKnowledgeDelta(events, analysis.Recurrence, analysis.Cooccurrences, cfg.ConnectionCutoff)

	return analysis
}

// Topics returns the distinct topics across events, in first-seen order.
func Topics(events []activity.StructuredEvent) []string {
	seen := make(map[string]bool)
	var out []string
	for _, ev := range events {
		for _, t := range ev.Topics {
			if t != "" && !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	return out
}

// topActivityTypes ranks activity types by event count.
func topActivityTypes(events []activity.StructuredEvent, n int) []string {
	counts := make(map[string]int)
	for _, ev := range events {
		counts[ev.ActivityType]++
	}

	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		if counts[types[i]] != counts[types[j]] {
			return counts[types[i]] > counts[types[j]]
		}
		return types[i] < types[j]
	})

	if len(types) > n {
		types = types[:n]
	}
	return types
}

// peakHours ranks hours of day by event count. Events without a
// parseable timestamp are skipped.
func peakHours(events []activity.StructuredEvent, n int) []int {
	counts := make(map[int]int)
	for _, ev := range events {
		t, ok := eventTime(ev)
		if !ok {
			continue
		}
		counts[t.Hour()]++
	}

	hours := make([]int, 0, len(counts))
	for h := range counts {
		hours = append(hours, h)
	}
	sort.Slice(hours, func(i, j int) bool {
		if counts[hours[i]] != counts[hours[j]] {
			return counts[hours[i]] > counts[hours[j]]
		}
		return hours[i] < hours[j]
	})

	if len(hours) > n {
		hours = hours[:n]
	}
	return hours
}

// eventTime parses an event's timestamp. The second return is false for
// events excluded from temporal operations.
func eventTime(ev activity.StructuredEvent) (time.Time, bool) {
	if ev.Timestamp == "" {
		return time.Time{}, false
	}
	t, err := activity.ParseTimestamp(ev.Timestamp)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
