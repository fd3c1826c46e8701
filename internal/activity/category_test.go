package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableCategorizer(t *testing.T) {
	tests := []struct {
		domain string
		want   Category
	}{
		{"github.com", CategoryDev},
		{"gist.github.com", CategoryDev},
		{"stackoverflow.com", CategoryDev},
		{"chat.openai.com", CategoryAITools},
		{"claude.ai", CategoryAITools},
		{"arxiv.org", CategoryResearch},
		{"en.wikipedia.org", CategoryResearch},
		{"coursera.org", CategoryEducation},
		{"notion.so", CategoryPKM},
		{"docs.google.com", CategoryWriting},
		{"mail.google.com", CategoryWork},
		{"amazon.com", CategoryShopping},
		{"amazon.co.uk", CategoryShopping},
		{"reddit.com", CategorySocial},
		{"news.ycombinator.com", CategorySocial},
		{"store.steampowered.com", CategoryGaming},
		{"youtube.com", CategoryMedia},
		{"nytimes.com", CategoryNews},
		{"maps.google.com", CategoryPersonal},
		{"some-random-blog.net", CategoryOther},
	}

	c := TableCategorizer{}
	for _, tc := range tests {
		assert.Equal(t, tc.want, c.Categorize(tc.domain), "domain %s", tc.domain)
	}
}

func TestTableCategorizer_CaseInsensitive(t *testing.T) {
	c := TableCategorizer{}
	assert.Equal(t, CategoryDev, c.Categorize("GitHub.COM"))
}

// stubCategorizer maps every domain to a single fixed category.
type stubCategorizer struct{ cat Category }

func (s stubCategorizer) Categorize(string) Category { return s.cat }

func TestCategorize_GroupsVisits(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	visits := []BrowserVisit{
		{URL: "https://github.com/pulls", Domain: "github.com", Time: now},
		{URL: "https://youtube.com/watch", Domain: "youtube.com", Time: now},
		{URL: "https://github.com/issues", Domain: "github.com", Time: now},
	}

	grouped := Categorize(visits, TableCategorizer{})
	require.Len(t, grouped[CategoryDev], 2)
	require.Len(t, grouped[CategoryMedia], 1)
}

func TestCategorize_MissingDomainFallsBackToOther(t *testing.T) {
	visits := []BrowserVisit{{URL: "file:///tmp/notes.html"}}

	grouped := Categorize(visits, stubCategorizer{cat: CategoryDev})
	// The stub never runs: no Domain means CategoryOther directly.
	require.Len(t, grouped[CategoryOther], 1)
	assert.Empty(t, grouped[CategoryDev])
}
