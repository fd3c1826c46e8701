// Package activity defines the raw activity record model shared by the
// collection shims and the analysis pipeline.
package activity

import (
	"fmt"
	"time"
)

// Source identifies which collector produced a record.
const (
	SourceBrowser   = "browser"
	SourceSearch    = "search"
	SourceShell     = "shell"
	SourceAssistant = "assistant"
	SourceGit       = "git"
)

// BrowserVisit is a single page visit. A zero Time means the collector
// could not recover a timestamp; such visits are excluded from temporal
// operations but still classified.
type BrowserVisit struct {
	URL    string    `json:"url"`
	Title  string    `json:"title"`
	Time   time.Time `json:"time,omitempty"`
	Domain string    `json:"domain,omitempty"`
}

// SearchQuery is a single search engine query.
type SearchQuery struct {
	Query  string    `json:"query"`
	Time   time.Time `json:"time,omitempty"`
	Engine string    `json:"engine,omitempty"`
}

// ShellCommand is a single shell history entry.
type ShellCommand struct {
	Command string    `json:"cmd"`
	Time    time.Time `json:"time,omitempty"`
}

// AssistantSession is one prompt sent to an AI assistant.
type AssistantSession struct {
	Prompt  string    `json:"prompt"`
	Time    time.Time `json:"time,omitempty"`
	Project string    `json:"project,omitempty"`
}

// GitCommit is one commit from git log.
type GitCommit struct {
	Hash       string    `json:"hash"`
	Message    string    `json:"message"`
	Time       time.Time `json:"time,omitempty"`
	Repo       string    `json:"repo,omitempty"`
	Insertions int       `json:"insertions,omitempty"`
	Deletions  int       `json:"deletions,omitempty"`
}

// Records bundles one collection window's worth of raw activity.
type Records struct {
	Visits   []BrowserVisit     `json:"visits,omitempty"`
	Searches []SearchQuery      `json:"searches,omitempty"`
	Commands []ShellCommand     `json:"commands,omitempty"`
	Sessions []AssistantSession `json:"sessions,omitempty"`
	Commits  []GitCommit        `json:"commits,omitempty"`
}

// Total returns the number of raw records across all sources.
func (r Records) Total() int {
	return len(r.Visits) + len(r.Searches) + len(r.Commands) + len(r.Sessions) + len(r.Commits)
}

// CategorizedVisits maps a category label to the visits assigned to it.
type CategorizedVisits map[Category][]BrowserVisit

// timestampFormats are tried in order when parsing collector timestamps.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp tries several common timestamp formats. Collectors emit
// whatever their source database stored, so the format varies.
func ParseTimestamp(s string) (time.Time, error) {
	for _, f := range timestampFormats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse timestamp: %s", s)
}

// FormatTimestamp renders t as RFC3339 UTC, or "" for the zero time.
// The empty string marks an event that must be excluded from
// time-ordered operations.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
