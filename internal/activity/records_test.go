package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp_Formats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"rfc3339", "2026-03-02T09:15:00Z", time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC)},
		{"rfc3339_nano", "2026-03-02T09:15:00.123456789Z", time.Date(2026, 3, 2, 9, 15, 0, 123456789, time.UTC)},
		{"no_zone", "2026-03-02T09:15:00", time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC)},
		{"sqlite_style", "2026-03-02 09:15:00", time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC)},
		{"date_only", "2026-03-02", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseTimestamp(tc.input)
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "got %v", got)
		})
	}
}

func TestParseTimestamp_Invalid(t *testing.T) {
	for _, input := range []string{"", "yesterday", "03/02/2026"} {
		_, err := ParseTimestamp(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2026, 3, 2, 9, 15, 0, 0, time.FixedZone("CET", 3600))
	assert.Equal(t, "2026-03-02T08:15:00Z", FormatTimestamp(ts))

	// Zero time marks an event excluded from temporal operations.
	assert.Empty(t, FormatTimestamp(time.Time{}))
}

func TestRecordsTotal(t *testing.T) {
	r := Records{
		Visits:   []BrowserVisit{{URL: "https://example.com"}, {URL: "https://example.org"}},
		Searches: []SearchQuery{{Query: "sqlite wal mode"}},
		Commands: []ShellCommand{{Command: "git status"}},
		Sessions: []AssistantSession{{Prompt: "explain this trace"}},
		Commits:  []GitCommit{{Hash: "abc123", Message: "fix: close idle connections"}},
	}
	assert.Equal(t, 6, r.Total())

	assert.Zero(t, Records{}.Total())
}
