package progression

import (
	"math"
	"sort"
)

const (
	TrendWindow         = 10
	minTrendSamples     = 3
	maxDominantEmotions = 3
	maxThemes           = 5
)

type Direction string

const (
	Improving Direction = "improving"
	Declining Direction = "declining"
	Steady    Direction = "neutral"
)

// EntrySignal is one journal entry reduced to what the trend needs.
type EntrySignal struct {
	Emotions  []string
	MoodScore *int
}

type Trend struct {
	DominantEmotions []string  `json:"dominant_emotions"`
	Direction        Direction `json:"emotional_direction"`
	Confidence       float64   `json:"confidence"`
}

type Theme struct {
	Theme     string `json:"theme"`
	Frequency int    `json:"frequency"`
}

// AnalyzeTrend takes entries newest-first and looks at the first TrendWindow of them.
func AnalyzeTrend(newestFirst []EntrySignal) Trend {
	window := newestFirst
	if len(window) > TrendWindow {
		window = window[:TrendWindow]
	}
	out := Trend{DominantEmotions: []string{}, Direction: Steady}

	for i, c := range countEmotions(window) {
		if i == maxDominantEmotions {
			break
		}
		out.DominantEmotions = append(out.DominantEmotions, c.Theme)
	}

	moods := make([]int, 0, len(window))
	for i := len(window) - 1; i >= 0; i-- {
		if m := window[i].MoodScore; m != nil {
			moods = append(moods, *m)
		}
	}
	if len(moods) < minTrendSamples {
		return out
	}
	half := len(moods) / 2
	first, second := sum(moods[:half]), sum(moods[half:])
	switch {
	case second > first:
		out.Direction = Improving
	case second < first:
		out.Direction = Declining
	}
	out.Confidence = math.Round(math.Min(1, float64(len(moods))/TrendWindow)*100) / 100
	return out
}

// Themes returns the five most frequent emotion labels across entries.
func Themes(entries []EntrySignal) []Theme {
	counts := countEmotions(entries)
	if len(counts) > maxThemes {
		counts = counts[:maxThemes]
	}
	return counts
}

// countEmotions orders by frequency, ties by first appearance.
func countEmotions(entries []EntrySignal) []Theme {
	idx := map[string]int{}
	out := []Theme{}
	for _, e := range entries {
		for _, label := range e.Emotions {
			if label == "" {
				continue
			}
			if i, ok := idx[label]; ok {
				out[i].Frequency++
				continue
			}
			idx[label] = len(out)
			out = append(out, Theme{Theme: label, Frequency: 1})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Frequency > out[j].Frequency })
	return out
}

func sum(xs []int) int {
	t := 0
	for _, x := range xs {
		t += x
	}
	return t
}
