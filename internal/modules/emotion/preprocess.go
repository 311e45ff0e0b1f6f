package emotion

import (
	"strings"
	"unicode"
)

// Preprocess collapses whitespace and drops characters outside letters, digits,
// underscore and the punctuation set .,!?;:'"-
func Preprocess(text string) string {
	collapsed := strings.Join(strings.Fields(text), " ")
	var b strings.Builder
	b.Grow(len(collapsed))
	for _, r := range collapsed {
		if keepRune(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

func keepRune(r rune) bool {
	switch {
	case unicode.IsLetter(r), unicode.IsDigit(r), r == '_', r == ' ':
		return true
	}
	switch r {
	case '.', ',', '!', '?', ';', ':', '\'', '"', '-':
		return true
	}
	return false
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}

// tokenize lowercases and splits on anything that is not a letter or apostrophe.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
}
