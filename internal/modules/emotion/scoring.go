package emotion

import (
	"math"
	"strings"
)

var negativeLabels = map[string]struct{}{
	"sadness": {},
	"anger":   {},
	"fear":    {},
	"disgust": {},
}

var moodAdjustments = map[string]int{
	"joy":      2,
	"love":     2,
	"optimism": 1,
	"sadness":  -2,
	"anger":    -2,
	"fear":     -1,
	"disgust":  -1,
}

// AssessRisk evaluates crisis first, then negative-emotion mass.
func AssessRisk(crisisMatches []string, emotions []Score) RiskLevel {
	if len(crisisMatches) > 0 {
		return RiskHigh
	}
	neg := 0.0
	for _, e := range emotions {
		if _, ok := negativeLabels[strings.ToLower(e.Label)]; ok {
			neg += e.Confidence
		}
	}
	switch {
	case neg >= 0.8:
		return RiskMedium
	case neg >= 0.6:
		return RiskLowMedium
	default:
		return RiskLow
	}
}

// MoodScore derives the 1-10 mood from the primary emotion and the leading sentiment.
func MoodScore(emotions []Score, sentiment []Score) int {
	score := NeutralMood
	if len(emotions) > 0 {
		score += moodAdjustments[strings.ToLower(emotions[0].Label)]
	}
	if len(sentiment) > 0 {
		delta := int(math.Round(clamp01(sentiment[0].Confidence) * 3))
		switch strings.ToLower(sentiment[0].Label) {
		case Positive:
			score += delta
		case Negative:
			score -= delta
		}
	}
	return clampMood(score)
}

func clampMood(v int) int {
	if v < MinMood {
		return MinMood
	}
	if v > MaxMood {
		return MaxMood
	}
	return v
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
