package activity

import "strings"

// Category is the closed set of semantic categories a visit's domain can
// belong to. The classifier trusts this label instead of the page title.
type Category string

const (
	CategoryWork      Category = "work"
	CategoryDev       Category = "dev"
	CategoryResearch  Category = "research"
	CategoryEducation Category = "education"
	CategoryAITools   Category = "ai_tools"
	CategoryPKM       Category = "pkm"
	CategoryWriting   Category = "writing"
	CategoryShopping  Category = "shopping"
	CategorySocial    Category = "social"
	CategoryGaming    Category = "gaming"
	CategoryMedia     Category = "media"
	CategoryFinance   Category = "finance"
	CategoryNews      Category = "news"
	CategoryPersonal  Category = "personal"
	CategoryOther     Category = "other"
)

// Categorizer assigns a category to a domain. The analysis core is tested
// against a stub implementation; production uses the static table below.
type Categorizer interface {
	Categorize(domain string) Category
}

// domainCategories maps domain substrings to categories. First match wins,
// so more specific substrings come first within a group.
var domainCategories = []struct {
	Substring string
	Category  Category
}{
	{"github.com", CategoryDev},
	{"gitlab.com", CategoryDev},
	{"stackoverflow.com", CategoryDev},
	{"pkg.go.dev", CategoryDev},
	{"npmjs.com", CategoryDev},
	{"crates.io", CategoryDev},
	{"localhost", CategoryDev},

	{"chat.openai.com", CategoryAITools},
	{"chatgpt.com", CategoryAITools},
	{"claude.ai", CategoryAITools},
	{"gemini.google.com", CategoryAITools},
	{"huggingface.co", CategoryAITools},
	{"perplexity.ai", CategoryAITools},

	{"scholar.google.", CategoryResearch},
	{"arxiv.org", CategoryResearch},
	{"wikipedia.org", CategoryResearch},
	{"semanticscholar.org", CategoryResearch},

	{"coursera.org", CategoryEducation},
	{"udemy.com", CategoryEducation},
	{"khanacademy.org", CategoryEducation},
	{"edx.org", CategoryEducation},

	{"notion.so", CategoryPKM},
	{"obsidian.md", CategoryPKM},
	{"roamresearch.com", CategoryPKM},
	{"logseq.com", CategoryPKM},

	{"docs.google.com", CategoryWriting},
	{"medium.com", CategoryWriting},
	{"substack.com", CategoryWriting},

	{"mail.google.com", CategoryWork},
	{"calendar.google.com", CategoryWork},
	{"slack.com", CategoryWork},
	{"atlassian.net", CategoryWork},
	{"linear.app", CategoryWork},
	{"zoom.us", CategoryWork},

	{"amazon.", CategoryShopping},
	{"ebay.", CategoryShopping},
	{"etsy.com", CategoryShopping},
	{"aliexpress.com", CategoryShopping},

	{"twitter.com", CategorySocial},
	{"x.com", CategorySocial},
	{"reddit.com", CategorySocial},
	{"instagram.com", CategorySocial},
	{"facebook.com", CategorySocial},
	{"linkedin.com", CategorySocial},
	{"news.ycombinator.com", CategorySocial},

	{"steampowered.com", CategoryGaming},
	{"twitch.tv", CategoryGaming},
	{"itch.io", CategoryGaming},

	{"youtube.com", CategoryMedia},
	{"netflix.com", CategoryMedia},
	{"spotify.com", CategoryMedia},
	{"vimeo.com", CategoryMedia},

	{"nytimes.com", CategoryNews},
	{"theguardian.com", CategoryNews},
	{"bbc.co", CategoryNews},
	{"reuters.com", CategoryNews},

	{"maps.google.", CategoryPersonal},
	{"weather.com", CategoryPersonal},
	{"yelp.com", CategoryPersonal},
	{"tripadvisor.", CategoryPersonal},
	{"booking.com", CategoryPersonal},
	{"airbnb.", CategoryPersonal},
}

// TableCategorizer categorizes domains with the static substring table.
type TableCategorizer struct{}

// Categorize returns the first matching category for the domain, or
// CategoryOther when no substring matches.
func (TableCategorizer) Categorize(domain string) Category {
	d := strings.ToLower(domain)
	for _, entry := range domainCategories {
		if strings.Contains(d, entry.Substring) {
			return entry.Category
		}
	}
	return CategoryOther
}

// Categorize groups visits by category using the given categorizer. Visits
// with no Domain field fall back to CategoryOther.
func Categorize(visits []BrowserVisit, c Categorizer) CategorizedVisits {
	out := make(CategorizedVisits)
	for _, v := range visits {
		cat := CategoryOther
		if v.Domain != "" {
			cat = c.Categorize(v.Domain)
		}
		out[cat] = append(out[cat], v)
	}
	return out
}
