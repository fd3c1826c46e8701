package classify

import "github.com/runnerr0/recap/internal/activity"

// RuleConfidence is attached to every rule-classified event. The constant
// low value signals to consumers that no model corroborated the label;
// the LLM path uses LLMConfidence instead.
const (
	RuleConfidence = 0.3
	LLMConfidence  = 0.9
)

// categoryActivityTypes maps a visit's category to its activity type.
var categoryActivityTypes = map[activity.Category]string{
	activity.CategoryWork:      activity.ActivityWork,
	activity.CategoryDev:       activity.ActivityDevelopment,
	activity.CategoryResearch:  activity.ActivityResearch,
	activity.CategoryEducation: activity.ActivityLearning,
	activity.CategoryAITools:   activity.ActivityAIAssisted,
	activity.CategoryPKM:       activity.ActivityNoteTaking,
	activity.CategoryWriting:   activity.ActivityWriting,
	activity.CategoryShopping:  activity.ActivityShopping,
	activity.CategorySocial:    activity.ActivitySocial,
	activity.CategoryGaming:    activity.ActivityGaming,
	activity.CategoryMedia:     activity.ActivityMedia,
	activity.CategoryFinance:   activity.ActivityFinance,
	activity.CategoryNews:      activity.ActivityNews,
	activity.CategoryPersonal:  activity.ActivityPersonal,
	activity.CategoryOther:     activity.ActivityBrowsing,
}

// entitySkipDomains lists domain substrings whose page titles are place or
// product names rather than tools; no entities are extracted from them.
var entitySkipDomains = []string{
	"maps.google.",
	"google.com/maps",
	"amazon.",
	"ebay.",
	"etsy.com",
	"aliexpress.com",
	"booking.com",
	"airbnb.",
	"expedia.",
	"tripadvisor.",
	"yelp.com",
	"zillow.com",
}

// entityStopwords filters capitalized tokens that are almost never real
// entities: git-verb imperatives, UI chrome, generic tech acronyms, and
// notification noise.
var entityStopwords = map[string]bool{
	// git-verb imperatives
	"Add": true, "Fix": true, "Update": true, "Remove": true, "Merge": true,
	"Refactor": true, "Bump": true, "Initial": true, "Revert": true,

	// UI chrome
	"Home": true, "Login": true, "Sign": true, "Dashboard": true,
	"Settings": true, "Profile": true, "Search": true, "Page": true,
	"Tab": true, "Inbox": true, "Untitled": true, "New": true,
	"The": true, "How": true, "What": true, "Why": true, "Your": true,
	"Free": true, "Best": true, "Top": true, "Guide": true, "Overview": true,

	// generic tech acronyms
	"API": true, "URL": true, "HTTP": true, "HTTPS": true, "HTML": true,
	"CSS": true, "JSON": true, "SQL": true, "CLI": true, "GUI": true,
	"PDF": true, "FAQ": true, "README": true, "IDE": true,

	// notification noise
	"Notification": true, "Notifications": true, "Unread": true,
	"Reply": true, "Message": true, "Messages": true, "Mention": true,
}

// searchVocab is the controlled vocabulary for search query topics.
// Matching is by lower-cased substring; the first bucket with a hit wins.
// A query with no hit gets the generic "information" topic, never its own
// text.
var searchVocab = []struct {
	Topic string
	Terms []string
}{
	{"programming", []string{"golang", "python", "rust", "javascript", "compile", "stack trace", "segfault", "library", "framework", "regex", "sqlite"}},
	{"job-search", []string{"job", "career", "salary", "interview", "resume", "hiring", "recruiter"}},
	{"fashion", []string{"dress", "shoes", "outfit", "fashion", "jacket", "wear", "sneaker"}},
	{"event-planning", []string{"tickets", "venue", "concert", "festival", "rsvp", "wedding", "party"}},
	{"travel", []string{"flight", "hotel", "itinerary", "visa", "hostel", "airline"}},
	{"cooking", []string{"recipe", "bake", "roast", "ingredient", "marinade"}},
	{"health", []string{"symptom", "doctor", "workout", "diet", "injury", "sleep"}},
	{"finance", []string{"mortgage", "invest", "tax", "budget", "interest rate"}},
}

// fallbackSearchTopic labels queries outside the controlled vocabulary.
const fallbackSearchTopic = "information"

// promptVocab maps assistant-prompt verbs and nouns to activity types.
// Buckets are checked in order; the default is implementation.
var promptVocab = []struct {
	ActivityType string
	Terms        []string
}{
	{activity.ActivityDebugging, []string{"fix", "bug", "error", "crash", "broken", "debug", "fail", "panic"}},
	{activity.ActivityArchitecture, []string{"design", "architecture", "structure", "schema", "plan", "tradeoff"}},
	{activity.ActivityLearning, []string{"explain", "how does", "what is", "why", "understand", "difference between"}},
	{activity.ActivityImplementation, []string{"implement", "create", "add", "build", "write", "refactor", "generate"}},
}

// commitTypes maps conventional-commit structural prefixes to activity
// types and topic labels. Classification uses the prefix only, never the
// free-text description.
var commitTypes = map[string]struct {
	ActivityType string
	Topic        string
}{
	"feat":     {activity.ActivityImplementation, "feature-work"},
	"fix":      {activity.ActivityDebugging, "bug-fixing"},
	"refactor": {activity.ActivityRefactoring, "refactoring"},
	"docs":     {activity.ActivityDocumentation, "documentation"},
	"test":     {activity.ActivityTesting, "testing"},
	"perf":     {activity.ActivityRefactoring, "performance"},
	"chore":    {activity.ActivityMaintenance, "maintenance"},
	"build":    {activity.ActivityMaintenance, "build-tooling"},
	"ci":       {activity.ActivityMaintenance, "ci-tooling"},
	"style":    {activity.ActivityRefactoring, "code-style"},
	"revert":   {activity.ActivityMaintenance, "maintenance"},
}

// shellTools maps a command's leading token to a semantic topic. The rest
// of the command line never leaves the classifier.
var shellTools = map[string]string{
	"git":       "version-control",
	"gh":        "version-control",
	"docker":    "containers",
	"podman":    "containers",
	"kubectl":   "orchestration",
	"npm":       "package-management",
	"pnpm":      "package-management",
	"yarn":      "package-management",
	"pip":       "package-management",
	"cargo":     "package-management",
	"brew":      "package-management",
	"apt":       "package-management",
	"go":        "build-tooling",
	"make":      "build-tooling",
	"ssh":       "remote-access",
	"scp":       "remote-access",
	"rsync":     "remote-access",
	"curl":      "networking",
	"wget":      "networking",
	"vim":       "editing",
	"nvim":      "editing",
	"code":      "editing",
	"grep":      "searching",
	"rg":        "searching",
	"find":      "searching",
	"terraform": "infrastructure",
	"ansible":   "infrastructure",
	"psql":      "databases",
	"sqlite3":   "databases",
}

const fallbackShellTopic = "shell-usage"
