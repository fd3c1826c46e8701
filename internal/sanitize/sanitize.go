// Package sanitize scrubs secrets, sensitive URL parts, file paths, and
// email addresses from raw activity text before any later pipeline stage
// can see it.
package sanitize

import (
	"os"
	"regexp"
	"strings"
)

// Level selects how aggressively URLs are reduced.
type Level string

const (
	LevelStandard   Level = "standard"
	LevelAggressive Level = "aggressive"
)

// InvalidURLMarker replaces any URL that cannot be parsed. Fail-safe: an
// unparsable URL never passes through unmodified.
const InvalidURLMarker = "[invalid-url]"

// Options configures a Sanitizer.
type Options struct {
	Level           Level
	RedactEmails    bool
	CollapseHome    bool
	ExcludedDomains []string // substring patterns; matching visits are dropped
}

// Sanitizer applies the ordered text transform of the privacy pipeline.
// All methods are pure with respect to the Sanitizer's configuration and
// safe for concurrent use.
type Sanitizer struct {
	opts    Options
	homeDir string
}

var (
	ipv4Re    = regexp.MustCompile(`\b\d{1,3}(?:\.\d{1,3}){3}\b`)
	emailRe   = regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`)
	homedirRe = regexp.MustCompile(`(?:/home/|/Users/)[A-Za-z0-9._\-]+`)
)

// New builds a Sanitizer. The current user's home directory is resolved
// once here; if it cannot be determined, only the generic home-path
// patterns are collapsed.
func New(opts Options) *Sanitizer {
	if opts.Level == "" {
		opts.Level = LevelStandard
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return &Sanitizer{opts: opts, homeDir: home}
}

// Text runs the ordered transform over a free-text field: secret-pattern
// scrubbing, then IPv4 scrubbing, then optional home-directory collapsing,
// then optional email redaction. Order matters: a credential containing an
// IP-like fragment must be caught by its credential rule first.
func (s *Sanitizer) Text(text string) string {
	if text == "" {
		return text
	}
	text = scrubSecrets(text)
	text = ipv4Re.ReplaceAllString(text, "[REDACTED:ip]")
	if s.opts.CollapseHome {
		if s.homeDir != "" && s.homeDir != "/" {
			text = strings.ReplaceAll(text, s.homeDir, "~")
		}
		text = homedirRe.ReplaceAllString(text, "~")
	}
	if s.opts.RedactEmails {
		text = emailRe.ReplaceAllString(text, "[REDACTED:email]")
	}
	return text
}

// VisitAllowed reports whether a visit to host survives domain exclusion.
// Exclusion runs before every other processing step, so an excluded
// domain's visits never reach the sanitizer, dedup, or classifier.
func (s *Sanitizer) VisitAllowed(host string) bool {
	h := strings.ToLower(host)
	for _, pattern := range s.opts.ExcludedDomains {
		if pattern == "" {
			continue
		}
		if strings.Contains(h, strings.ToLower(pattern)) {
			return false
		}
	}
	return true
}
