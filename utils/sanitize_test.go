package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeStripsMarkup(t *testing.T) {
	assert.Equal(t, "hello", Sanitize("  <b>hello</b>  "))
	assert.Equal(t, "", Sanitize("<script>alert(1)</script>"))
}

func TestTruncateRunesCountsCharactersNotBytes(t *testing.T) {
	// 60 Arabic characters are 120 bytes; the cap is per character.
	note := strings.Repeat("م", 60)
	out := TruncateRunes(note, 50)

	assert.Equal(t, 50, utf8.RuneCountInString(out))
	assert.True(t, utf8.ValidString(out))
	assert.Equal(t, strings.Repeat("م", 50), out)
}

func TestTruncateRunesShortInputUntouched(t *testing.T) {
	assert.Equal(t, "مرحبا", TruncateRunes("مرحبا", 50))
	assert.Equal(t, "hi", TruncateRunes("hi", 2))
	assert.Equal(t, "", TruncateRunes("anything", 0))
}

func TestTruncateRunesMixedScript(t *testing.T) {
	mixed := "a" + strings.Repeat("م", 55)
	out := TruncateRunes(mixed, 50)

	assert.Equal(t, 50, utf8.RuneCountInString(out))
	assert.True(t, utf8.ValidString(out))
	assert.Equal(t, "a"+strings.Repeat("م", 49), out)
}
