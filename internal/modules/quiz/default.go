package quiz

import (
	"bytes"
	_ "embed"
)

//go:embed vocabulary.yaml
var defaultVocabulary []byte

// DefaultWords returns the bundled vocabulary.
func DefaultWords() ([]Word, error) {
	return LoadWords(bytes.NewReader(defaultVocabulary))
}
