// Package history tracks which topics were seen on which days, across
// runs. The update logic is pure over explicit snapshots; persistence is a
// thin JSON file adapter around it.
package history

import (
	"sort"
	"strings"
	"time"
)

// maxRecentDays bounds the per-topic day list; the most recent entries
// are kept.
const maxRecentDays = 30

// DateFormat is the day-granularity format used throughout the history.
const DateFormat = "2006-01-02"

// TopicStats is one topic's cross-day record.
type TopicStats struct {
	FirstSeen  string   `json:"firstSeen"`
	LastSeen   string   `json:"lastSeen"`
	DayCount   int      `json:"dayCount"`
	RecentDays []string `json:"recentDays"`
}

// Snapshot is one version of the persisted topic history. Snapshots are
// treated as immutable: Update returns a new snapshot and never mutates
// its input, so callers can diff before and after a run.
type Snapshot struct {
	Topics map[string]TopicStats `json:"topics"`
}

// Empty returns a snapshot with no topics.
func Empty() Snapshot {
	return Snapshot{Topics: map[string]TopicStats{}}
}

// Get looks up a topic case-insensitively.
func (s Snapshot) Get(topic string) (TopicStats, bool) {
	stats, ok := s.Topics[strings.ToLower(topic)]
	return stats, ok
}

// Len returns the number of tracked topics.
func (s Snapshot) Len() int { return len(s.Topics) }

// Update returns a new snapshot with today's topics folded in. Topics are
// keyed lower-cased. A topic already recorded for date is left unchanged,
// so re-running the same day is idempotent. The input snapshot is not
// modified.
func Update(old Snapshot, topics []string, date time.Time) Snapshot {
	day := date.Format(DateFormat)

	next := Snapshot{Topics: make(map[string]TopicStats, len(old.Topics)+len(topics))}
	for k, v := range old.Topics {
		v.RecentDays = append([]string(nil), v.RecentDays...)
		next.Topics[k] = v
	}

	seen := make(map[string]bool, len(topics))
	for _, topic := range topics {
		key := strings.ToLower(strings.TrimSpace(topic))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		stats, ok := next.Topics[key]
		if !ok {
			next.Topics[key] = TopicStats{
				FirstSeen:  day,
				LastSeen:   day,
				DayCount:   1,
				RecentDays: []string{day},
			}
			continue
		}
		if containsDay(stats.RecentDays, day) {
			continue
		}
		stats.DayCount++
		stats.LastSeen = day
		stats.RecentDays = append(stats.RecentDays, day)
		sort.Strings(stats.RecentDays)
		if len(stats.RecentDays) > maxRecentDays {
			stats.RecentDays = stats.RecentDays[len(stats.RecentDays)-maxRecentDays:]
		}
		next.Topics[key] = stats
	}

	return next
}

func containsDay(days []string, day string) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}

// DaysWithin counts how many of the topic's recent days fall inside the
// window of exactly window calendar days ending at ref inclusive.
func (t TopicStats) DaysWithin(ref time.Time, window int) int {
	start := ref.AddDate(0, 0, -window+1).Format(DateFormat)
	end := ref.Format(DateFormat)
	n := 0
	for _, d := range t.RecentDays {
		if d >= start && d <= end {
			n++
		}
	}
	return n
}
