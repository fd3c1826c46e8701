package sanitize

import (
	"net/url"
	"regexp"
	"strings"
)

// sensitiveParams is the query parameter denylist. Matching is by
// lower-cased substring so "access_token", "id_token", "apikey" and
// friends are all caught by their stems.
var sensitiveParams = []string{
	"token",
	"key",
	"secret",
	"auth",
	"session",
	"csrf",
	"password",
	"signature",
	"sig",
	"code",
	"state",
	"credential",
}

const redactedParam = "redacted"

// tokenFragmentRe matches fragments that look token-bearing: either an
// explicit credential assignment or a long unbroken base64-ish run.
var tokenFragmentRe = regexp.MustCompile(`(?i)(?:token|auth|key|secret|session)=|[A-Za-z0-9+/_\-]{40,}`)

// URL sanitizes a single URL: embedded userinfo is stripped, denylisted
// query parameters are replaced with a placeholder, token-bearing
// fragments are dropped. In aggressive mode the URL is reduced to
// scheme://host/path with no query or fragment at all.
//
// An unparsable URL sanitizes to InvalidURLMarker rather than passing
// through unmodified.
func (s *Sanitizer) URL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return InvalidURLMarker
	}

	u.User = nil

	if s.opts.Level == LevelAggressive {
		u.RawQuery = ""
		u.Fragment = ""
		u.RawFragment = ""
		return u.String()
	}

	if u.RawQuery != "" {
		q := u.Query()
		changed := false
		for name := range q {
			if paramSensitive(name) {
				q.Set(name, redactedParam)
				changed = true
			}
		}
		if changed {
			u.RawQuery = q.Encode()
		}
	}

	if u.Fragment != "" && tokenFragmentRe.MatchString(u.Fragment) {
		u.Fragment = ""
		u.RawFragment = ""
	}

	return u.String()
}

func paramSensitive(name string) bool {
	n := strings.ToLower(name)
	for _, p := range sensitiveParams {
		if strings.Contains(n, p) {
			return true
		}
	}
	return false
}
