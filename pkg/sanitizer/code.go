package sanitizer

import (
	"regexp"
	"strings"
)

var reCodeSeparators = regexp.MustCompile(`[\s_-]+`)

// NormalizeCode uppercases promo and gift card codes and strips the
// separators users paste in from marketing emails.
func NormalizeCode(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	code = reCodeSeparators.ReplaceAllString(code, "")
	return strings.ToUpper(code)
}

// NormalizeSeatLabel uppercases a seat label like "12a" to "12A".
func NormalizeSeatLabel(label string) string {
	return strings.ToUpper(strings.TrimSpace(label))
}
