package sanitize

import "regexp"

// SecretRule describes one credential shape. Rules are applied in order:
// provider-specific shapes first, generic assignment patterns last, so a
// specific placeholder wins over the generic one.
type SecretRule struct {
	Name        string
	Pattern     *regexp.Regexp
	Placeholder string
}

// secretRules is the ordered credential-shape table. The leak validator
// reuses it through SecretMatches, so the sanitizer and the validator can
// never disagree about what counts as a secret.
var secretRules = []SecretRule{
	{"aws_access_key", regexp.MustCompile(`\b(?:AKIA|ASIA)[0-9A-Z]{16}\b`), "[REDACTED:aws-key]"},
	{"aws_secret_key", regexp.MustCompile(`(?i)aws_secret_access_key\s*[=:]\s*[A-Za-z0-9/+=]{30,}`), "[REDACTED:aws-secret]"},
	{"github_token", regexp.MustCompile(`\bgh[pousr]_[A-Za-z0-9]{36,}\b`), "[REDACTED:github-token]"},
	{"github_pat", regexp.MustCompile(`\bgithub_pat_[A-Za-z0-9_]{22,}\b`), "[REDACTED:github-token]"},
	{"gitlab_token", regexp.MustCompile(`\bglpat-[A-Za-z0-9_\-]{20,}\b`), "[REDACTED:gitlab-token]"},
	{"openai_key", regexp.MustCompile(`\bsk-[A-Za-z0-9_\-]{20,}\b`), "[REDACTED:api-key]"},
	{"google_api_key", regexp.MustCompile(`\bAIza[0-9A-Za-z_\-]{35}\b`), "[REDACTED:google-key]"},
	{"slack_token", regexp.MustCompile(`\bxox[baprs]-[A-Za-z0-9\-]{10,}\b`), "[REDACTED:slack-token]"},
	{"stripe_key", regexp.MustCompile(`\b[sr]k_(?:live|test)_[A-Za-z0-9]{16,}\b`), "[REDACTED:stripe-key]"},
	{"npm_token", regexp.MustCompile(`\bnpm_[A-Za-z0-9]{36}\b`), "[REDACTED:npm-token]"},
	{"jwt", regexp.MustCompile(`\beyJ[A-Za-z0-9_\-]{8,}\.[A-Za-z0-9_\-]{8,}\.[A-Za-z0-9_\-]{4,}`), "[REDACTED:jwt]"},
	{"private_key", regexp.MustCompile(`-----BEGIN [A-Z ]*PRIVATE KEY-----(?s:.*?)(?:-----END [A-Z ]*PRIVATE KEY-----|\z)`), "[REDACTED:private-key]"},
	{"bearer_token", regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9._~+/\-]{16,}=*`), "[REDACTED:bearer]"},
	{"password_assign", regexp.MustCompile(`(?i)\b(?:password|passwd|pwd)\s*[=:]\s*\S+`), "[REDACTED:password]"},
	{"credential_assign", regexp.MustCompile(`(?i)\b(?:api[_\-]?key|apikey|secret|auth[_\-]?token|access[_\-]?token|client[_\-]?secret|token)\s*[=:]\s*\S+`), "[REDACTED:credential]"},
}

// SecretMatch is one credential-shape hit found in a text.
type SecretMatch struct {
	Rule string
	Text string
}

// SecretMatches scans text against the full credential-shape table and
// returns every match. The text is not modified.
func SecretMatches(text string) []SecretMatch {
	var out []SecretMatch
	for _, rule := range secretRules {
		for _, m := range rule.Pattern.FindAllString(text, -1) {
			out = append(out, SecretMatch{Rule: rule.Name, Text: m})
		}
	}
	return out
}

// scrubSecrets replaces every credential-shape match with its rule's
// category placeholder, in table order.
func scrubSecrets(text string) string {
	for _, rule := range secretRules {
		text = rule.Pattern.ReplaceAllString(text, rule.Placeholder)
	}
	return text
}
