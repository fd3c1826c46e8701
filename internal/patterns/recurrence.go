package patterns

import (
	"sort"
	"strings"
	"time"

	"github.com/runnerr0/recap/internal/activity"
	"github.com/runnerr0/recap/internal/history"
)

// Trend values, in output priority order.
const (
	TrendNew       = "new"
	TrendReturning = "returning"
	TrendRising    = "rising"
	TrendStable    = "stable"
	TrendDeclining = "declining"
)

// trendPriority orders signals in reports: new first, declining last.
var trendPriority = map[string]int{
	TrendNew:       0,
	TrendReturning: 1,
	TrendRising:    2,
	TrendStable:    3,
	TrendDeclining: 4,
}

// Thresholds for the trend ladder.
const (
	returningAfterDays = 7  // absent this long before today means returning
	stableWindowDays   = 14 // stable: >= stableMinDays hits in this window
	stableMinDays      = 6
	risingWindowDays   = 7 // rising: >= risingMinDays hits in this window
	risingMinDays      = 2
)

// RecurrenceSignal is one topic's day-over-day trend, derived by joining
// today's topics against the persisted history.
type RecurrenceSignal struct {
	Topic     string `json:"topic"`
	Frequency int    `json:"frequency"` // total tracked days, including today
	Trend     string `json:"trend"`
	FirstSeen string `json:"first_seen,omitempty"`
	LastSeen  string `json:"last_seen,omitempty"`
	DayCount  int    `json:"day_count"`
}

// ComputeRecurrenceSignals derives a signal per topic observed today. The
// trend ladder: unseen topics are new; topics absent for more than
// returningAfterDays are returning; topics seen on stableMinDays of the
// last stableWindowDays are stable; topics seen on risingMinDays of the
// last risingWindowDays are rising; anything else is declining. Output is
// sorted by trend priority, then topic.
func ComputeRecurrenceSignals(topics []string, hist history.Snapshot, today time.Time) []RecurrenceSignal {
	seen := make(map[string]bool, len(topics))
	var out []RecurrenceSignal

	for _, topic := range topics {
		key := strings.ToLower(strings.TrimSpace(topic))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		stats, ok := hist.Get(key)
		if !ok {
			out = append(out, RecurrenceSignal{
				Topic:     key,
				Frequency: 1,
				Trend:     TrendNew,
				DayCount:  1,
			})
			continue
		}

		out = append(out, RecurrenceSignal{
			Topic:     key,
			Frequency: stats.DayCount + 1,
			Trend:     classifyTrend(stats, today),
			FirstSeen: stats.FirstSeen,
			LastSeen:  stats.LastSeen,
			DayCount:  stats.DayCount + 1,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if trendPriority[out[i].Trend] != trendPriority[out[j].Trend] {
			return trendPriority[out[i].Trend] < trendPriority[out[j].Trend]
		}
		return out[i].Topic < out[j].Topic
	})
	return out
}

func classifyTrend(stats history.TopicStats, today time.Time) string {
	if lastSeen, err := time.Parse(history.DateFormat, stats.LastSeen); err == nil {
		if today.Sub(lastSeen) > returningAfterDays*24*time.Hour {
			return TrendReturning
		}
	}
	if stats.DaysWithin(today, stableWindowDays) >= stableMinDays {
		return TrendStable
	}
	if stats.DaysWithin(today, risingWindowDays) >= risingMinDays {
		return TrendRising
	}
	return TrendDeclining
}

// KnowledgeDelta summarizes what changed today versus the tracked history.
// Derived each run, never persisted.
type KnowledgeDelta struct {
	NewTopics       []string     `json:"new_topics"`
	RecurringTopics []string     `json:"recurring_topics"`
	NovelEntities   []string     `json:"novel_entities"`
	Connections     []Connection `json:"connections"`
}

// Connection is a high-confidence topic association.
type Connection struct {
	TopicA   string  `json:"topic_a"`
	TopicB   string  `json:"topic_b"`
	Strength float64 `json:"strength"`
}

// BuildKnowledgeDelta cross-references recurrence signals and topic
// co-occurrences: topics with a new signal become NewTopics, everything
// else recurring; entity candidates come from today's entity-bearing
// events; topic pairs at or above cutoff strength become Connections.
func BuildKnowledgeDelta(events []activity.StructuredEvent, signals []RecurrenceSignal, cooccurrences []TopicCooccurrence, cutoff float64) KnowledgeDelta {
	if cutoff <= 0 {
		cutoff = DefaultConnectionCutoff
	}

	delta := KnowledgeDelta{}
	for _, sig := range signals {
		if sig.Trend == TrendNew {
			delta.NewTopics = append(delta.NewTopics, sig.Topic)
		} else {
			delta.RecurringTopics = append(delta.RecurringTopics, sig.Topic)
		}
	}

	// There is no cross-day entity history, so novelty is approximated as
	// first-seen-today: every distinct entity from an entity-bearing event.
	entityCounts := make(map[string]int)
	for _, ev := range events {
		if !entityBearingCategories[ev.Category] {
			continue
		}
		for _, e := range ev.Entities {
			entityCounts[e]++
		}
	}
	delta.NovelEntities = topN(entityCounts, 10)

	for _, co := range cooccurrences {
		if co.Strength >= cutoff {
			delta.Connections = append(delta.Connections, Connection{
				TopicA:   co.TopicA,
				TopicB:   co.TopicB,
				Strength: co.Strength,
			})
		}
	}
	return delta
}
