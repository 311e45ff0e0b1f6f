package emotion

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// UserContext is optional caller-supplied context. Backends may ignore it.
type UserContext struct {
	Country         string
	UsageGoal       string
	ExperienceLevel string
	RecentEmotions  []string
}

// Classification is the raw output of a classification strategy.
type Classification struct {
	Primary   Score
	Secondary []Score
	Sentiment Score
	// Crisis is set when the backend itself judges the text to signal acute risk.
	Crisis bool
}

// Classifier is a pluggable classification strategy.
type Classifier interface {
	Name() string
	Classify(ctx context.Context, text string, uc *UserContext) (*Classification, error)
}

var ErrMalformedClassification = errors.New("malformed classification")

const maxSecondary = 2

// emotions returns primary followed by up to two secondaries, highest confidence first.
func (c *Classification) emotions() []Score {
	out := make([]Score, 0, 1+maxSecondary)
	out = append(out, normalizeScore(c.Primary))
	sec := make([]Score, 0, len(c.Secondary))
	for _, s := range c.Secondary {
		s = normalizeScore(s)
		if s.Label == "" || s.Label == out[0].Label {
			continue
		}
		sec = append(sec, s)
	}
	sort.SliceStable(sec, func(i, j int) bool { return sec[i].Confidence > sec[j].Confidence })
	if len(sec) > maxSecondary {
		sec = sec[:maxSecondary]
	}
	return append(out, sec...)
}

func (c *Classification) sentiment() []Score {
	return []Score{normalizeScore(c.Sentiment)}
}

func normalizeScore(s Score) Score {
	return Score{Label: strings.ToLower(strings.TrimSpace(s.Label)), Confidence: s.Confidence}
}

// validate rejects output that cannot be trusted as a classification.
func (c *Classification) validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil", ErrMalformedClassification)
	}
	if strings.TrimSpace(c.Primary.Label) == "" {
		return fmt.Errorf("%w: empty primary label", ErrMalformedClassification)
	}
	for _, s := range append([]Score{c.Primary, c.Sentiment}, c.Secondary...) {
		if math.IsNaN(s.Confidence) || s.Confidence < 0 || s.Confidence > 1 {
			return fmt.Errorf("%w: confidence %v out of range for %q", ErrMalformedClassification, s.Confidence, s.Label)
		}
	}
	switch strings.ToLower(strings.TrimSpace(c.Sentiment.Label)) {
	case Positive, Negative, Neutral:
	default:
		return fmt.Errorf("%w: sentiment label %q", ErrMalformedClassification, c.Sentiment.Label)
	}
	return nil
}
