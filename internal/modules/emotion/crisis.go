package emotion

import "strings"

// DefaultCrisisPhrases are matched by containment against normalized text.
var DefaultCrisisPhrases = []string{
	"suicide",
	"kill myself",
	"end my life",
	"not worth living",
	"everyone would be better without me",
	"want to die",
	"cutting myself",
	"self harm",
	"overdose",
	"end it all",
	"no point in living",
	"better off dead",
}

// CrisisGate flags text containing high-risk phrases. It holds no mutable state.
type CrisisGate struct {
	phrases []string
}

func NewCrisisGate(phrases []string) *CrisisGate {
	seen := make(map[string]struct{}, len(phrases))
	norm := make([]string, 0, len(phrases))
	for _, p := range phrases {
		p = normalizeForMatch(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		norm = append(norm, p)
	}
	return &CrisisGate{phrases: norm}
}

// Scan returns matched phrases in list order. Empty means no match.
func (g *CrisisGate) Scan(text string) []string {
	if g == nil || text == "" {
		return []string{}
	}
	norm := normalizeForMatch(text)
	out := []string{}
	for _, p := range g.phrases {
		if strings.Contains(norm, p) {
			out = append(out, p)
		}
	}
	return out
}

func normalizeForMatch(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
