package validate

import (
	"strings"
	"unicode"
)

// SanitizeName trims a task name and removes control characters. Tabs
// and line breaks become spaces so the words they separated stay apart.
func SanitizeName(name string) string {
	return strings.TrimSpace(StripControlChars(name))
}

// StripControlChars turns whitespace control characters into spaces and
// drops the rest.
func StripControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case !unicode.IsControl(r):
			return r
		case unicode.IsSpace(r):
			return ' '
		}
		return -1
	}, s)
}

// TruncateString limits s to maxLen runes. Cut strings end in "..." when
// there is room for it.
func TruncateString(s string, maxLen int) string {
	r := []rune(s)
	switch {
	case len(r) <= maxLen:
		return s
	case maxLen <= 3:
		return string(r[:max(maxLen, 0)])
	}
	return string(r[:maxLen-3]) + "..."
}
