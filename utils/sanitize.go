package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// All user-entered text here is plain text (answers, notes, wish
// titles); strip markup entirely.
var sanitizer = bluemonday.StrictPolicy()

// Sanitize cleans user input to prevent stored XSS.
func Sanitize(input string) string {
	return strings.TrimSpace(sanitizer.Sanitize(input))
}

// TruncateRunes caps s at n characters. Length limits are character
// counts, not byte counts: Arabic text must never be cut mid-rune.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
