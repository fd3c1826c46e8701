package classify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/recap/internal/activity"
)

var when = time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)

// --- Visits ---

func TestVisits_ActivityTypeFromCategory(t *testing.T) {
	categorized := activity.CategorizedVisits{
		activity.CategoryDev: {
			{URL: "https://github.com/o/r", Title: "", Time: when, Domain: "github.com"},
		},
		activity.CategoryMedia: {
			{URL: "https://youtube.com/watch", Title: "", Time: when, Domain: "youtube.com"},
		},
	}

	events := New().Visits(categorized)
	require.Len(t, events, 2)

	// Sorted category order: dev before media.
	assert.Equal(t, activity.ActivityDevelopment, events[0].ActivityType)
	assert.Equal(t, []string{"dev"}, events[0].Topics)
	assert.Equal(t, activity.ActivityMedia, events[1].ActivityType)
	assert.Equal(t, RuleConfidence, events[0].Confidence)
	assert.Equal(t, activity.SourceBrowser, events[0].Source)
}

func TestVisits_NeverCopiesTitle(t *testing.T) {
	categorized := activity.CategorizedVisits{
		activity.CategoryDev: {
			{URL: "https://github.com/o/r", Title: "my-secret-project planning board", Time: when, Domain: "github.com"},
		},
	}

	events := New().Visits(categorized)
	require.Len(t, events, 1)
	assert.NotContains(t, events[0].Summary, "planning board")
}

// --- Search ---

func TestSearch_VocabularyTopic(t *testing.T) {
	cases := []struct {
		query string
		topic string
	}{
		{"golang context cancellation", "programming"},
		{"software engineer salary berlin", "job-search"},
		{"best sneakers 2026", "fashion"},
		{"roast chicken recipe", "cooking"},
		{"quantum entanglement basics", "information"},
	}
	for _, tc := range cases {
		t.Run(tc.topic, func(t *testing.T) {
			ev := New().Search(activity.SearchQuery{Query: tc.query, Time: when})
			assert.Equal(t, []string{tc.topic}, ev.Topics)
		})
	}
}

func TestSearch_NeverCopiesQuery(t *testing.T) {
	ev := New().Search(activity.SearchQuery{Query: "how to hide a body golang", Time: when})
	assert.NotContains(t, ev.Summary, "hide a body")
	assert.Empty(t, ev.Entities)
	assert.Equal(t, activity.ActivityResearch, ev.ActivityType)
}

// --- Shell ---

func TestShell_KnownTool(t *testing.T) {
	ev := New().Shell(activity.ShellCommand{Command: "git rebase -i main", Time: when})
	assert.Equal(t, []string{"version-control"}, ev.Topics)
	assert.Equal(t, []string{"git"}, ev.Entities)
	assert.Equal(t, activity.ActivityShell, ev.ActivityType)
}

func TestShell_SudoPrefixSkipped(t *testing.T) {
	ev := New().Shell(activity.ShellCommand{Command: "sudo docker ps", Time: when})
	assert.Equal(t, []string{"containers"}, ev.Topics)
}

func TestShell_UnknownToolFallsBack(t *testing.T) {
	ev := New().Shell(activity.ShellCommand{Command: "frobnicate --all", Time: when})
	assert.Equal(t, []string{"shell-usage"}, ev.Topics)
	assert.Empty(t, ev.Entities)
}

func TestShell_NeverCopiesArguments(t *testing.T) {
	ev := New().Shell(activity.ShellCommand{Command: "scp secrets.env prod:/etc/app/", Time: when})
	assert.NotContains(t, ev.Summary, "secrets.env")
	assert.NotContains(t, ev.Summary, "prod:")
}

// --- Session ---

func TestSession_PromptVocab(t *testing.T) {
	cases := []struct {
		prompt  string
		actType string
	}{
		{"fix this nil pointer panic", activity.ActivityDebugging},
		{"design a schema for audit logs", activity.ActivityArchitecture},
		{"explain how channels work", activity.ActivityLearning},
		{"write a parser for this format", activity.ActivityImplementation},
		{"hello there", activity.ActivityImplementation},
	}
	for _, tc := range cases {
		t.Run(tc.actType, func(t *testing.T) {
			ev := New().Session(activity.AssistantSession{Prompt: tc.prompt, Time: when})
			assert.Equal(t, tc.actType, ev.ActivityType)
		})
	}
}

func TestSession_DebuggingBeatsImplementation(t *testing.T) {
	// "write a fix" hits both buckets; the earlier bucket wins.
	ev := New().Session(activity.AssistantSession{Prompt: "write a fix for the flaky test", Time: when})
	assert.Equal(t, activity.ActivityDebugging, ev.ActivityType)
}

func TestSession_ProjectBecomesEntity(t *testing.T) {
	ev := New().Session(activity.AssistantSession{Prompt: "add retries", Project: "billing-service", Time: when})
	assert.Equal(t, []string{"billing-service"}, ev.Entities)
}

// --- Commit ---

func TestCommit_ConventionalPrefixes(t *testing.T) {
	cases := []struct {
		message string
		topic   string
		actType string
	}{
		{"feat: add export command", "feature-work", activity.ActivityImplementation},
		{"fix(api): handle nil body", "bug-fixing", activity.ActivityDebugging},
		{"refactor!: split the store", "refactoring", activity.ActivityRefactoring},
		{"docs: update readme", "documentation", activity.ActivityDocumentation},
		{"chore: bump deps", "maintenance", activity.ActivityMaintenance},
		{"random message without prefix", "feature-work", activity.ActivityImplementation},
	}
	for _, tc := range cases {
		t.Run(tc.topic, func(t *testing.T) {
			ev := New().Commit(activity.GitCommit{Message: tc.message, Time: when, Insertions: 3, Deletions: 1})
			assert.Equal(t, []string{tc.topic}, ev.Topics)
			assert.Equal(t, tc.actType, ev.ActivityType)
		})
	}
}

func TestCommit_NeverCopiesDescription(t *testing.T) {
	ev := New().Commit(activity.GitCommit{Message: "fix: credentials leaked in the deploy script", Time: when})
	assert.NotContains(t, ev.Summary, "credentials leaked")
	assert.NotContains(t, ev.Summary, "deploy script")
}

// --- Entity extraction ---

func TestTitleEntities_CapitalizedAndKebab(t *testing.T) {
	out := titleEntities("Debugging llama-cpp with Valgrind", "github.com")
	assert.Contains(t, out, "llama-cpp")
	assert.Contains(t, out, "Valgrind")
	assert.Contains(t, out, "Debugging")
}

func TestTitleEntities_StopwordsFiltered(t *testing.T) {
	out := titleEntities("How The Best Guide Update Fix API", "example.com")
	assert.Empty(t, out)
}

func TestTitleEntities_SkipDomain(t *testing.T) {
	out := titleEntities("Cafe Luna - Google Maps", "maps.google.com")
	assert.Nil(t, out)
}

func TestTitleEntities_Cap(t *testing.T) {
	out := titleEntities("Alpha Beta Gamma Delta Epsilon Zeta Eta", "example.com")
	assert.Len(t, out, 5)
}

func TestTitleEntities_Empty(t *testing.T) {
	assert.Nil(t, titleEntities("", "example.com"))
}

// --- All ---

func TestAll_CombinesAllSources(t *testing.T) {
	categorized := activity.CategorizedVisits{
		activity.CategoryDev: {{URL: "https://github.com/o/r", Time: when, Domain: "github.com"}},
	}
	records := activity.Records{
		Searches: []activity.SearchQuery{{Query: "golang generics", Time: when}},
		Commands: []activity.ShellCommand{{Command: "make test", Time: when}},
		Sessions: []activity.AssistantSession{{Prompt: "explain this", Time: when}},
		Commits:  []activity.GitCommit{{Message: "test: cover edge cases", Time: when}},
	}

	events := New().All(categorized, records)
	require.Len(t, events, 5)

	sources := make(map[string]int)
	for _, ev := range events {
		sources[ev.Source]++
	}
	assert.Equal(t, 1, sources[activity.SourceBrowser])
	assert.Equal(t, 1, sources[activity.SourceSearch])
	assert.Equal(t, 1, sources[activity.SourceShell])
	assert.Equal(t, 1, sources[activity.SourceAssistant])
	assert.Equal(t, 1, sources[activity.SourceGit])
}
