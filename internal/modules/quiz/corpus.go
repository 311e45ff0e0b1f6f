package quiz

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrCorpusNotReady = errors.New("vocabulary corpus is empty")
	ErrWordNotFound   = errors.New("vocabulary word not found")
)

// Word is one vocabulary entry. ID is the stable seed source for quiz options.
type Word struct {
	ID              string   `json:"id" yaml:"id"`
	Word            string   `json:"word" yaml:"word"`
	Definition      string   `json:"definition" yaml:"definition"`
	Example         string   `json:"example" yaml:"example"`
	Category        string   `json:"category" yaml:"category"`
	Level           string   `json:"level" yaml:"level"`
	SimilarWords    []string `json:"similar_words" yaml:"similar_words"`
	OppositeWords   []string `json:"opposite_words" yaml:"opposite_words"`
	CulturalContext string   `json:"cultural_context,omitempty" yaml:"cultural_context"`
}

// Corpus is an immutable, ID-ordered word set.
type Corpus struct {
	words []Word
	byID  map[string]int
}

// NewCorpus copies words, dropping entries without an id or definition. Later duplicates of an id are ignored.
func NewCorpus(words []Word) *Corpus {
	c := &Corpus{byID: make(map[string]int, len(words))}
	for _, w := range words {
		w.ID = strings.TrimSpace(w.ID)
		if w.ID == "" || strings.TrimSpace(w.Definition) == "" {
			continue
		}
		if _, dup := c.byID[w.ID]; dup {
			continue
		}
		w.SimilarWords = append([]string(nil), w.SimilarWords...)
		w.OppositeWords = append([]string(nil), w.OppositeWords...)
		c.byID[w.ID] = -1
		c.words = append(c.words, w)
	}
	sort.Slice(c.words, func(i, j int) bool { return c.words[i].ID < c.words[j].ID })
	for i, w := range c.words {
		c.byID[w.ID] = i
	}
	return c
}

func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.words)
}

func (c *Corpus) Get(id string) (Word, bool) {
	if c == nil {
		return Word{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return Word{}, false
	}
	return c.words[i], true
}

// At returns the i-th word in ID order.
func (c *Corpus) At(i int) Word { return c.words[i] }

// Filter returns words matching the non-empty criteria, in ID order.
func (c *Corpus) Filter(level, category string) []Word {
	if c == nil {
		return nil
	}
	out := make([]Word, 0, len(c.words))
	for _, w := range c.words {
		if level != "" && !strings.EqualFold(w.Level, level) {
			continue
		}
		if category != "" && !strings.EqualFold(w.Category, category) {
			continue
		}
		out = append(out, w)
	}
	return out
}

type corpusFile struct {
	Words []Word `yaml:"words"`
}

// LoadWords decodes a YAML document of the form {words: [...]}.
func LoadWords(r io.Reader) ([]Word, error) {
	var f corpusFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode vocabulary: %w", err)
	}
	return f.Words, nil
}
