package progression

type Milestone struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Unlocked bool   `json:"unlocked"`
}

type milestoneRule struct {
	id    string
	label string
	met   func(Snapshot) bool
}

var milestoneRules = []milestoneRule{
	{"first_steps", "You've started showing up for yourself", func(s Snapshot) bool { return s.JournalEntriesCount >= 1 }},
	{"building_habit", "Journaling is becoming a habit", func(s Snapshot) bool { return s.JournalEntriesCount >= 5 }},
	{"consistency", "You're practicing consistency", func(s Snapshot) bool { return s.LongestStreak >= 7 }},
	{"emotional_vocabulary", "You're expanding your emotional vocabulary", func(s Snapshot) bool { return s.WordsLearned >= 10 }},
	{"self_awareness", "You're developing deeper emotional awareness", func(s Snapshot) bool { return s.Level() >= 5 }},
}

// Milestones evaluates every rule against the current snapshot, in fixed order.
// Only unlocked milestones are returned.
func Milestones(s Snapshot) []Milestone {
	out := []Milestone{}
	for _, r := range milestoneRules {
		if r.met(s) {
			out = append(out, Milestone{ID: r.id, Label: r.label, Unlocked: true})
		}
	}
	return out
}

func newlyUnlocked(before, after Snapshot) []Milestone {
	out := []Milestone{}
	for _, r := range milestoneRules {
		if !r.met(before) && r.met(after) {
			out = append(out, Milestone{ID: r.id, Label: r.label, Unlocked: true})
		}
	}
	return out
}
