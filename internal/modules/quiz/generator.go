package quiz

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/cespare/xxhash/v2"
)

const optionCount = 4

var fillerOptions = []string{
	"None of these feel quite right",
	"A feeling not described here",
	"Not sure yet",
}

type Question struct {
	WordID       string   `json:"word_id"`
	Word         string   `json:"word"`
	Text         string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"-"`
	Category     string   `json:"category"`
	Level        string   `json:"level"`
}

// Generator builds reproducible questions over a fixed corpus.
type Generator struct {
	corpus *Corpus
}

func NewGenerator(c *Corpus) *Generator {
	return &Generator{corpus: c}
}

func (g *Generator) Corpus() *Corpus { return g.corpus }

// seedFor derives the per-word seed. Generation and validation must share it.
func seedFor(wordID string) uint64 {
	return xxhash.Sum64String(wordID)
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generate builds the question for w. The same word id always yields the same options and order.
func (g *Generator) Generate(w Word) (Question, error) {
	if g.corpus.Len() == 0 {
		return Question{}, ErrCorpusNotReady
	}
	rng := newRand(seedFor(w.ID))

	options := make([]string, 0, optionCount)
	seen := make(map[string]struct{}, optionCount)
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" || len(options) == optionCount {
			return
		}
		key := strings.ToLower(s)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		options = append(options, s)
	}
	add(w.Definition)
	if len(options) == 0 {
		return Question{}, fmt.Errorf("word %q has no definition", w.ID)
	}
	correct := options[0]

	others := make([]int, 0, g.corpus.Len())
	for i := 0; i < g.corpus.Len(); i++ {
		if g.corpus.At(i).ID != w.ID {
			others = append(others, i)
		}
	}
	rng.Shuffle(len(others), func(i, j int) { others[i], others[j] = others[j], others[i] })
	for _, idx := range others {
		if len(options) == optionCount {
			break
		}
		add(g.corpus.At(idx).Definition)
	}
	for _, s := range w.SimilarWords {
		add(s)
	}
	for _, s := range w.OppositeWords {
		add(s)
	}
	for _, s := range fillerOptions {
		add(s)
	}

	rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
	correctIdx := -1
	for i, o := range options {
		if o == correct {
			correctIdx = i
			break
		}
	}

	return Question{
		WordID:       w.ID,
		Word:         w.Word,
		Text:         fmt.Sprintf("What does '%s' mean?", w.Word),
		Options:      options,
		CorrectIndex: correctIdx,
		Category:     w.Category,
		Level:        w.Level,
	}, nil
}

// Validate regenerates the question for wordID and compares the selected index.
func (g *Generator) Validate(wordID string, selected int) (bool, error) {
	if g.corpus.Len() == 0 {
		return false, ErrCorpusNotReady
	}
	w, ok := g.corpus.Get(wordID)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrWordNotFound, wordID)
	}
	q, err := g.Generate(w)
	if err != nil {
		return false, err
	}
	return selected == q.CorrectIndex, nil
}

// Select picks up to limit words matching the filter in an order fixed by seed.
func (g *Generator) Select(level, category string, limit int, seed uint64) ([]Question, error) {
	if g.corpus.Len() == 0 {
		return nil, ErrCorpusNotReady
	}
	pool := g.corpus.Filter(level, category)
	rng := newRand(seed)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if limit > 0 && len(pool) > limit {
		pool = pool[:limit]
	}
	out := make([]Question, 0, len(pool))
	for _, w := range pool {
		q, err := g.Generate(w)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

// DailyWord picks the word for a calendar date. Every caller sees the same word that day.
func (g *Generator) DailyWord(date string) (Word, error) {
	n := g.corpus.Len()
	if n == 0 {
		return Word{}, ErrCorpusNotReady
	}
	return g.corpus.At(int(xxhash.Sum64String("daily:"+date) % uint64(n))), nil
}

// SelectionSeed derives a per-user, per-day seed so a quiz set is stable within a day.
func SelectionSeed(userID, date string) uint64 {
	return xxhash.Sum64String(userID + "|" + date)
}
