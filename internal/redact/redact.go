// Package redact strips sensitive material from strings before they reach
// logs. Error messages routinely embed connection URLs, tokens, SQL text or
// email addresses; everything logged through the API layer passes through
// here first.
package redact

import "regexp"

// Placeholders substituted for matched sensitive fragments.
const (
	RedactedCredential = "[REDACTED_CREDENTIAL]"
	RedactedKey        = "[REDACTED_KEY]"
	RedactedJWT        = "[REDACTED_JWT]"
	RedactedEmail      = "[REDACTED_EMAIL]"
	RedactedSQL        = "[REDACTED_SQL]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Rules are applied in order; earlier rules see the original text.
var rules = []rule{
	// Connection URLs with embedded credentials.
	{regexp.MustCompile(`(?i)(postgres|postgresql|mysql|redis)://[^@\s]+@`), RedactedCredential},

	// Password-bearing key/value fragments.
	{regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?)[^'"&\s]{3,}`), RedactedCredential},

	// API keys, secrets, bearer tokens.
	{regexp.MustCompile(`(?i)(api[_-]?key|secret|token|bearer)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`), RedactedKey},

	// Three-part base64url JWT tokens.
	{regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`), RedactedJWT},

	// Email addresses.
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), RedactedEmail},

	// SQL statement fragments leaked from driver errors.
	{regexp.MustCompile(`(?i)(SELECT|INSERT|UPDATE|DELETE)[\s\w,*()]+(?:FROM|INTO|SET)[\s\w,*()='"$]*`), RedactedSQL},
}

// String redacts sensitive fragments from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive fragments from an error's message. Returns the
// empty string for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
