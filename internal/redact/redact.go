// Package redact provides utilities for redacting sensitive information from
// strings before they are logged. Database errors in particular tend to echo
// connection strings and SQL fragments; this package keeps those out of the
// log stream.
package redact

import "regexp"

// Constants for redaction placeholders
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
	RedactedHostPlaceholder       = "[REDACTED_HOST]"
)

// Precompiled regex patterns
var (
	// Database connection strings with embedded credentials
	dbConnRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mysql|db|database|connection)://[^@\s]+@`)

	// Password-bearing fragments
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`)

	// SQL queries and fragments
	sqlRegex = regexp.MustCompile(
		`(?i)(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP)[\s\w,*()]+(?:FROM|INTO|SET|TABLE|INDEX)(?:[\s\w,*()='"$]+)?`,
	)

	// Filesystem paths
	unixPathRegex = regexp.MustCompile(`(/[\w.-]+){2,}`)

	// host:port endpoints
	hostPortRegex = regexp.MustCompile(
		`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}(?::\d{1,5})?\b`,
	)

	patterns = []*regexp.Regexp{
		dbConnRegex, passwordRegex, sqlRegex, unixPathRegex, hostPortRegex,
	}

	patternPlaceholders = map[*regexp.Regexp]string{
		dbConnRegex:   RedactedCredentialPlaceholder,
		passwordRegex: RedactedCredentialPlaceholder,
		sqlRegex:      RedactedSQLPlaceholder,
		unixPathRegex: RedactedPathPlaceholder,
		hostPortRegex: RedactedHostPlaceholder,
	}
)

// String redacts sensitive patterns from an arbitrary string.
func String(s string) string {
	for _, re := range patterns {
		s = re.ReplaceAllString(s, patternPlaceholders[re])
	}
	return s
}

// Error redacts sensitive patterns from an error's message.
// Returns the empty string for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
