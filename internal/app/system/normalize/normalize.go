// Package normalize holds small input canonicalization helpers applied
// before lookups and writes so that equality checks behave consistently.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Username trims surrounding whitespace. Usernames are case-sensitive.
func Username(s string) string {
	return strings.TrimSpace(s)
}

// Phone strips spaces and common separators from a phone number.
func Phone(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case ' ', '-', '.', '(', ')':
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
