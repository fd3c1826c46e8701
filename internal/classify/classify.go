// Package classify turns sanitized activity records into StructuredEvents
// that carry semantic labels only. Nothing in this package copies a raw
// query, title, command line, or prompt into an output field.
package classify

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/runnerr0/recap/internal/activity"
)

// maxEntitiesPerEvent bounds the title-derived entity list.
const maxEntitiesPerEvent = 5

// Classifier is the rule-based classification path. It is stateless and
// safe for concurrent use.
type Classifier struct{}

// New returns a rule-based Classifier.
func New() *Classifier { return &Classifier{} }

// All classifies one collection window's records into a flat event batch.
func (c *Classifier) All(categorized activity.CategorizedVisits, records activity.Records) []activity.StructuredEvent {
	var out []activity.StructuredEvent
	out = append(out, c.Visits(categorized)...)
	for _, q := range records.Searches {
		out = append(out, c.Search(q))
	}
	for _, cmd := range records.Commands {
		out = append(out, c.Shell(cmd))
	}
	for _, s := range records.Sessions {
		out = append(out, c.Session(s))
	}
	for _, commit := range records.Commits {
		out = append(out, c.Commit(commit))
	}
	return out
}

// Visits classifies categorized browser visits. The activity type comes
// from the category table, topics carry the category label, and entities
// are extracted from the title through the skip-domain and stopword
// filters. Categories are walked in sorted order so output is stable.
func (c *Classifier) Visits(categorized activity.CategorizedVisits) []activity.StructuredEvent {
	cats := make([]activity.Category, 0, len(categorized))
	for cat := range categorized {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })

	var out []activity.StructuredEvent
	for _, cat := range cats {
		actType, ok := categoryActivityTypes[cat]
		if !ok {
			actType = activity.ActivityBrowsing
		}
		for _, v := range categorized[cat] {
			out = append(out, activity.StructuredEvent{
				Timestamp:    activity.FormatTimestamp(v.Time),
				Source:       activity.SourceBrowser,
				ActivityType: actType,
				Topics:       []string{string(cat)},
				Entities:     titleEntities(v.Title, v.Domain),
				Intent:       "browsing",
				Confidence:   RuleConfidence,
				Category:     cat,
				Summary:      fmt.Sprintf("%s activity on a %s site", actType, cat),
			})
		}
	}
	return out
}

// Search classifies one search query as research. Topics come from the
// controlled vocabulary; the query text itself never appears in the event.
func (c *Classifier) Search(q activity.SearchQuery) activity.StructuredEvent {
	topic := fallbackSearchTopic
	lower := strings.ToLower(q.Query)
	for _, bucket := range searchVocab {
		for _, term := range bucket.Terms {
			if strings.Contains(lower, term) {
				topic = bucket.Topic
				break
			}
		}
		if topic != fallbackSearchTopic {
			break
		}
	}

	return activity.StructuredEvent{
		Timestamp:    activity.FormatTimestamp(q.Time),
		Source:       activity.SourceSearch,
		ActivityType: activity.ActivityResearch,
		Topics:       []string{topic},
		Intent:       "information-seeking",
		Confidence:   RuleConfidence,
		Category:     activity.CategoryResearch,
		Summary:      fmt.Sprintf("searched for %s", topic),
	}
}

// Shell classifies one shell command from its leading token only.
func (c *Classifier) Shell(cmd activity.ShellCommand) activity.StructuredEvent {
	tool := leadingToken(cmd.Command)
	topic, known := shellTools[tool]
	if !known {
		topic = fallbackShellTopic
	}

	event := activity.StructuredEvent{
		Timestamp:    activity.FormatTimestamp(cmd.Time),
		Source:       activity.SourceShell,
		ActivityType: activity.ActivityShell,
		Topics:       []string{topic},
		Intent:       "tooling",
		Confidence:   RuleConfidence,
		Category:     activity.CategoryDev,
		Summary:      fmt.Sprintf("shell work: %s", topic),
	}
	if known {
		event.Entities = []string{tool}
	}
	return event
}

// Session classifies one assistant prompt from its verb/noun vocabulary.
func (c *Classifier) Session(s activity.AssistantSession) activity.StructuredEvent {
	actType := activity.ActivityImplementation
	lower := strings.ToLower(s.Prompt)
	for _, bucket := range promptVocab {
		if containsAny(lower, bucket.Terms) {
			actType = bucket.ActivityType
			break
		}
	}

	topics := []string{actType}
	var entities []string
	if s.Project != "" {
		entities = []string{s.Project}
	}

	return activity.StructuredEvent{
		Timestamp:    activity.FormatTimestamp(s.Time),
		Source:       activity.SourceAssistant,
		ActivityType: actType,
		Topics:       topics,
		Entities:     entities,
		Intent:       "ai-assistance",
		Confidence:   RuleConfidence,
		Category:     activity.CategoryAITools,
		Summary:      fmt.Sprintf("assistant session: %s", actType),
	}
}

// conventionalCommitRe matches "type(scope)!: description" prefixes.
var conventionalCommitRe = regexp.MustCompile(`^([a-z]+)(?:\(([^)]*)\))?!?:`)

// Commit classifies a git commit from its conventional-commit prefix. The
// free-text description is never used, so commit content cannot leak.
func (c *Classifier) Commit(commit activity.GitCommit) activity.StructuredEvent {
	actType := activity.ActivityImplementation
	topic := "feature-work"
	if m := conventionalCommitRe.FindStringSubmatch(strings.TrimSpace(commit.Message)); m != nil {
		if entry, ok := commitTypes[m[1]]; ok {
			actType = entry.ActivityType
			topic = entry.Topic
		}
	}

	var entities []string
	if commit.Repo != "" {
		entities = []string{commit.Repo}
	}

	return activity.StructuredEvent{
		Timestamp:    activity.FormatTimestamp(commit.Time),
		Source:       activity.SourceGit,
		ActivityType: actType,
		Topics:       []string{topic},
		Entities:     entities,
		Intent:       "version-control",
		Confidence:   RuleConfidence,
		Category:     activity.CategoryDev,
		Summary:      fmt.Sprintf("%s commit (+%d/-%d)", topic, commit.Insertions, commit.Deletions),
	}
}

// capitalizedTokenRe matches candidate entity tokens in a title.
var capitalizedTokenRe = regexp.MustCompile(`\b[A-Z][A-Za-z0-9]+\b`)

// kebabTokenRe matches lower-case kebab tokens like llama-cpp. These are
// kept regardless of stopword status; they are almost always tool names.
var kebabTokenRe = regexp.MustCompile(`\b[a-z0-9]+(?:-[a-z0-9]+)+\b`)

// titleEntities extracts candidate entities from a page title. Titles
// from skip-listed domains yield nothing: their titles are place and
// product names, not tools.
func titleEntities(title, domain string) []string {
	if title == "" || skipDomain(domain) {
		return nil
	}

	seen := make(map[string]bool)
	var out []string

	for _, tok := range kebabTokenRe.FindAllString(title, -1) {
		if !seen[tok] {
			seen[tok] = true
			out = append(out, tok)
		}
	}
	for _, tok := range capitalizedTokenRe.FindAllString(title, -1) {
		if entityStopwords[tok] || seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}

	if len(out) > maxEntitiesPerEvent {
		out = out[:maxEntitiesPerEvent]
	}
	return out
}

func skipDomain(domain string) bool {
	d := strings.ToLower(domain)
	for _, s := range entitySkipDomains {
		if strings.Contains(d, s) {
			return true
		}
	}
	return false
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

func leadingToken(cmd string) string {
	fields := strings.Fields(strings.TrimSpace(cmd))
	if len(fields) == 0 {
		return ""
	}
	tok := fields[0]
	// sudo and env prefixes wrap the real tool
	if (tok == "sudo" || tok == "env") && len(fields) > 1 {
		tok = fields[1]
	}
	return strings.ToLower(tok)
}
