package emotion

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

const maxWheelEmotions = 3

// DefaultWheel maps classifier labels onto the coarse display categories.
var DefaultWheel = map[string]string{
	"joy":      "happy",
	"love":     "happy",
	"optimism": "happy",
	"sadness":  "sad",
	"anger":    "angry",
	"fear":     "fearful",
	"disgust":  "disgusted",
	"surprise": "surprised",
}

// Wheel is an immutable label -> category table.
type Wheel struct {
	table map[string]string
}

func NewWheel(table map[string]string) *Wheel {
	cp := make(map[string]string, len(table))
	for k, v := range table {
		cp[strings.ToLower(strings.TrimSpace(k))] = strings.ToLower(strings.TrimSpace(v))
	}
	return &Wheel{table: cp}
}

// Category maps a label; unmapped labels pass through lowercased.
func (w *Wheel) Category(label string) string {
	l := strings.ToLower(strings.TrimSpace(label))
	if c, ok := w.table[l]; ok {
		return c
	}
	return l
}

// Map converts scored emotions to at most three distinct categories, in input order.
func (w *Wheel) Map(emotions []Score) []string {
	cats := lo.FilterMap(emotions, func(s Score, _ int) (string, bool) {
		c := w.Category(s.Label)
		return c, c != ""
	})
	cats = lo.Uniq(cats)
	if len(cats) > maxWheelEmotions {
		cats = cats[:maxWheelEmotions]
	}
	return cats
}

// Categories lists each category with its member labels, sorted.
func (w *Wheel) Categories() map[string][]string {
	out := map[string][]string{}
	for label, cat := range w.table {
		out[cat] = append(out[cat], label)
	}
	for _, labels := range out {
		sort.Strings(labels)
	}
	return out
}
