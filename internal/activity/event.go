package activity

// Activity types assigned by the classifier. These are semantic labels,
// never fragments of the source text.
const (
	ActivityBrowsing       = "browsing"
	ActivityDevelopment    = "development"
	ActivityWork           = "work"
	ActivityResearch       = "research"
	ActivityLearning       = "learning"
	ActivityAIAssisted     = "ai_assisted"
	ActivityNoteTaking     = "note_taking"
	ActivityWriting        = "writing"
	ActivityShopping       = "shopping"
	ActivitySocial         = "social"
	ActivityGaming         = "gaming"
	ActivityMedia          = "media"
	ActivityFinance        = "finance"
	ActivityNews           = "news"
	ActivityPersonal       = "personal"
	ActivityDebugging      = "debugging"
	ActivityImplementation = "implementation"
	ActivityArchitecture   = "architecture"
	ActivityRefactoring    = "refactoring"
	ActivityTesting        = "testing"
	ActivityMaintenance    = "maintenance"
	ActivityDocumentation  = "documentation"
	ActivityShell          = "shell"
)

// StructuredEvent is the privacy-safe abstraction of one raw record.
//
// Invariant: Summary, Topics, and Entities never contain the verbatim
// query/title/command/prompt text. They carry derived semantic labels, or
// for Entities, capitalized-word fragments that passed the stopword and
// domain filters. Built once per raw record, immutable afterward.
type StructuredEvent struct {
	Timestamp    string   `json:"timestamp"` // RFC3339 UTC, or "" when unknown
	Source       string   `json:"source"`
	ActivityType string   `json:"activity_type"`
	Topics       []string `json:"topics"`
	Entities     []string `json:"entities,omitempty"`
	Intent       string   `json:"intent,omitempty"`
	Confidence   float64  `json:"confidence"`
	Category     Category `json:"category,omitempty"`
	Summary      string   `json:"summary"`
}
