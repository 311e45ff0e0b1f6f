package emotion

import (
	"context"
	"sort"
	"strings"
)

// RuleSet is an ordered keyword table. Order breaks ties between equally hit categories.
type RuleSet struct {
	Categories []RuleCategory
}

type RuleCategory struct {
	Label    string
	Polarity string
	Words    []string
}

// DefaultRules covers the same label set the model backends emit.
var DefaultRules = RuleSet{Categories: []RuleCategory{
	{Label: "joy", Polarity: Positive, Words: []string{
		"happy", "glad", "joy", "joyful", "excited", "delighted", "great", "wonderful", "fun",
		"cheerful", "smile", "smiled", "laughed", "laugh", "amazing", "awesome", "good", "proud", "relieved",
	}},
	{Label: "love", Polarity: Positive, Words: []string{
		"love", "loved", "loving", "grateful", "thankful", "gratitude", "adore", "care", "cared",
		"affection", "close", "connected", "appreciate", "appreciated",
	}},
	{Label: "optimism", Polarity: Positive, Words: []string{
		"hope", "hopeful", "optimistic", "better", "improving", "confident",
		"motivated", "calm", "peaceful", "progress", "ready",
	}},
	{Label: "sadness", Polarity: Negative, Words: []string{
		"sad", "unhappy", "down", "depressed", "lonely", "alone", "cry", "cried", "crying", "tears",
		"miss", "missed", "grief", "hurt", "empty", "hopeless", "tired", "exhausted", "lost", "heavy",
	}},
	{Label: "anger", Polarity: Negative, Words: []string{
		"angry", "mad", "furious", "annoyed", "irritated", "frustrated", "frustrating", "rage",
		"hate", "resent", "unfair", "yelled", "pissed",
	}},
	{Label: "fear", Polarity: Negative, Words: []string{
		"afraid", "scared", "fear", "anxious", "anxiety", "worried", "worry", "nervous", "panic",
		"terrified", "overwhelmed", "stress", "stressed", "uneasy", "dread",
	}},
	{Label: "disgust", Polarity: Negative, Words: []string{
		"disgusted", "disgusting", "gross", "sick", "revolted", "ashamed", "shame", "awful", "repulsed",
	}},
	{Label: "surprise", Polarity: Neutral, Words: []string{
		"surprised", "shocked", "unexpected", "suddenly", "wow", "astonished", "amazed",
	}},
}}

var negators = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "isn't": {}, "wasn't": {}, "don't": {}, "didn't": {},
	"doesn't": {}, "aren't": {}, "weren't": {}, "can't": {}, "couldn't": {}, "won't": {},
}

// RuleClassifier scores text by keyword hits. It has no external dependencies and never fails.
type RuleClassifier struct {
	categories []RuleCategory
	index      map[string][]int
}

func NewRuleClassifier(rules RuleSet) *RuleClassifier {
	rc := &RuleClassifier{
		categories: make([]RuleCategory, len(rules.Categories)),
		index:      map[string][]int{},
	}
	for i, c := range rules.Categories {
		words := make([]string, 0, len(c.Words))
		for _, w := range c.Words {
			w = strings.ToLower(strings.TrimSpace(w))
			if w == "" {
				continue
			}
			words = append(words, w)
			rc.index[w] = append(rc.index[w], i)
		}
		rc.categories[i] = RuleCategory{Label: strings.ToLower(c.Label), Polarity: c.Polarity, Words: words}
	}
	return rc
}

func (r *RuleClassifier) Name() string { return SourceRules }

func (r *RuleClassifier) Classify(_ context.Context, text string, _ *UserContext) (*Classification, error) {
	return r.classify(text), nil
}

func (r *RuleClassifier) classify(text string) *Classification {
	hits := make([]int, len(r.categories))
	total := 0
	tokens := tokenize(text)
	for i, tok := range tokens {
		cats, ok := r.index[tok]
		if !ok {
			continue
		}
		if i > 0 {
			if _, neg := negators[tokens[i-1]]; neg {
				continue
			}
		}
		for _, c := range cats {
			hits[c]++
			total++
		}
	}
	if total == 0 {
		return &Classification{
			Primary:   Score{Label: Neutral, Confidence: 1},
			Sentiment: Score{Label: Neutral, Confidence: 1},
		}
	}

	type ranked struct {
		idx   int
		score float64
	}
	rs := make([]ranked, 0, len(hits))
	pos, neg := 0.0, 0.0
	for i, h := range hits {
		if h == 0 {
			continue
		}
		s := float64(h) / float64(total)
		rs = append(rs, ranked{idx: i, score: s})
		switch r.categories[i].Polarity {
		case Positive:
			pos += s
		case Negative:
			neg += s
		}
	}
	sort.SliceStable(rs, func(i, j int) bool { return rs[i].score > rs[j].score })

	out := &Classification{
		Primary: Score{Label: r.categories[rs[0].idx].Label, Confidence: round2(rs[0].score)},
	}
	for _, x := range rs[1:] {
		if len(out.Secondary) == maxSecondary {
			break
		}
		out.Secondary = append(out.Secondary, Score{Label: r.categories[x.idx].Label, Confidence: round2(x.score)})
	}
	switch {
	case pos > neg:
		out.Sentiment = Score{Label: Positive, Confidence: round2(pos)}
	case neg > pos:
		out.Sentiment = Score{Label: Negative, Confidence: round2(neg)}
	default:
		out.Sentiment = Score{Label: Neutral, Confidence: round2(1 - pos)}
	}
	return out
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
