package storage

import (
	"time"

	"github.com/runnerr0/recap/internal/activity"
)

// Run is one archived analysis run: the graded summary of a day's
// activity, safe to store as-is because everything in it already passed
// the sanitize and classify stages.
type Run struct {
	ID             string
	Date           string // analysis day, YYYY-MM-DD
	Tier           string
	EventCount     int
	CollapsedCount int
	FocusScore     float64
	Passed         bool // leak validation verdict for the stored prompt
	CreatedAt      time.Time

	Events []activity.StructuredEvent
	Prompt string
}

// ListQuery defines filters for listing archived runs.
type ListQuery struct {
	Tier   string
	Since  time.Time
	Until  time.Time
	Limit  int
	Offset int
}

// Stats holds aggregate statistics about the run archive.
type Stats struct {
	TotalRuns         int64
	TotalEvents       int64
	OldestRun         time.Time
	NewestRun         time.Time
	DatabaseSizeBytes int64
	TopActivityTypes  []ActivityTypeCount
}

// ActivityTypeCount pairs an activity type with its archived event count.
type ActivityTypeCount struct {
	ActivityType string
	Count        int64
}
