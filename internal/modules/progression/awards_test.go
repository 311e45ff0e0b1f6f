package progression

import (
	"testing"
	"time"
)

func TestApplyStreak(t *testing.T) {
	cases := []struct {
		name        string
		in          Snapshot
		today       string
		wantCurrent int
		wantLongest int
		wantLast    string
	}{
		{"first activity", Snapshot{}, "2024-03-10", 1, 1, "2024-03-10"},
		{"consecutive", Snapshot{LastActivityDate: "2024-03-09", CurrentStreak: 3, LongestStreak: 5}, "2024-03-10", 4, 5, "2024-03-10"},
		{"extends longest", Snapshot{LastActivityDate: "2024-03-09", CurrentStreak: 5, LongestStreak: 5}, "2024-03-10", 6, 6, "2024-03-10"},
		{"gap resets", Snapshot{LastActivityDate: "2024-03-07", CurrentStreak: 10, LongestStreak: 10}, "2024-03-10", 1, 10, "2024-03-10"},
		{"same day", Snapshot{LastActivityDate: "2024-03-10", CurrentStreak: 2, LongestStreak: 4}, "2024-03-10", 2, 4, "2024-03-10"},
		{"earlier date", Snapshot{LastActivityDate: "2024-03-10", CurrentStreak: 2, LongestStreak: 4}, "2024-03-09", 2, 4, "2024-03-10"},
		{"month boundary", Snapshot{LastActivityDate: "2024-02-29", CurrentStreak: 1, LongestStreak: 1}, "2024-03-01", 2, 2, "2024-03-01"},
	}
	for _, tc := range cases {
		got, err := ApplyStreak(tc.in, tc.today)
		if err != nil {
			t.Fatalf("%s: ApplyStreak: %v", tc.name, err)
		}
		if got.CurrentStreak != tc.wantCurrent || got.LongestStreak != tc.wantLongest || got.LastActivityDate != tc.wantLast {
			t.Fatalf("%s: got current=%d longest=%d last=%s", tc.name, got.CurrentStreak, got.LongestStreak, got.LastActivityDate)
		}
		if got.LongestStreak < got.CurrentStreak {
			t.Fatalf("%s: longest < current", tc.name)
		}
	}
}

func TestApplyStreakIdempotent(t *testing.T) {
	s := Snapshot{LastActivityDate: "2024-03-09", CurrentStreak: 3, LongestStreak: 3}
	once, _ := ApplyStreak(s, "2024-03-10")
	twice, _ := ApplyStreak(once, "2024-03-10")
	if once != twice {
		t.Fatalf("replay changed snapshot: %+v vs %+v", once, twice)
	}
}

func TestApplyStreakBadDate(t *testing.T) {
	if _, err := ApplyStreak(Snapshot{LastActivityDate: "yesterday"}, "2024-03-10"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestPolicyJournalDailyCap(t *testing.T) {
	p := DefaultPolicy()
	s := Snapshot{}
	s, d, err := p.Apply(s, Activity{Kind: ActivityJournalEntry}, "2024-03-10")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if d.XPAwarded != 50 || s.TotalXP != 50 || s.JournalEntriesCount != 1 {
		t.Fatalf("first entry: delta=%+v snap=%+v", d, s)
	}
	if len(d.NewMilestones) != 1 || d.NewMilestones[0].ID != "first_steps" {
		t.Fatalf("milestones: %+v", d.NewMilestones)
	}

	s, d, _ = p.Apply(s, Activity{Kind: ActivityJournalEntry}, "2024-03-10")
	if d.XPAwarded != 0 || s.TotalXP != 50 || s.JournalEntriesCount != 2 {
		t.Fatalf("second entry same day: delta=%+v snap=%+v", d, s)
	}

	// Other activities are capped independently.
	s, d, _ = p.Apply(s, Activity{Kind: ActivityLogin}, "2024-03-10")
	if d.XPAwarded != 10 || s.TotalXP != 60 {
		t.Fatalf("login: delta=%+v", d)
	}

	s, d, _ = p.Apply(s, Activity{Kind: ActivityJournalEntry}, "2024-03-11")
	if d.XPAwarded != 50 || !d.StreakIncreased || s.CurrentStreak != 2 {
		t.Fatalf("next day: delta=%+v snap=%+v", d, s)
	}
}

func TestPolicyDailyWordOncePerDay(t *testing.T) {
	p := DefaultPolicy()
	s, d, _ := p.Apply(Snapshot{}, Activity{Kind: ActivityDailyWord}, "2024-03-10")
	if d.XPAwarded != 10 || s.WordsLearned != 1 {
		t.Fatalf("first: %+v %+v", d, s)
	}
	s, d, _ = p.Apply(s, Activity{Kind: ActivityDailyWord}, "2024-03-10")
	if d.XPAwarded != 0 || s.WordsLearned != 1 {
		t.Fatalf("replay: %+v %+v", d, s)
	}
}

func TestPolicyQuizCap(t *testing.T) {
	p := DefaultPolicy()
	s, d, _ := p.Apply(Snapshot{}, Activity{Kind: ActivityQuizCompleted, CorrectAnswers: 7}, "2024-03-10")
	if d.XPAwarded != 70 || s.WordsLearned != 7 {
		t.Fatalf("first quiz: %+v", d)
	}
	s, d, _ = p.Apply(s, Activity{Kind: ActivityQuizCompleted, CorrectAnswers: 7}, "2024-03-10")
	if d.XPAwarded != 30 || s.WordsLearned != 10 || s.QuizXPToday != 100 {
		t.Fatalf("capped quiz: %+v %+v", d, s)
	}
	s, d, _ = p.Apply(s, Activity{Kind: ActivityQuizCompleted, CorrectAnswers: 3}, "2024-03-10")
	if d.XPAwarded != 0 {
		t.Fatalf("over cap: %+v", d)
	}
	s, d, _ = p.Apply(s, Activity{Kind: ActivityQuizCompleted, CorrectAnswers: 3}, "2024-03-11")
	if d.XPAwarded != 30 || s.QuizXPToday != 30 {
		t.Fatalf("cap reset next day: %+v %+v", d, s)
	}
	found := false
	for _, m := range Milestones(s) {
		if m.ID == "emotional_vocabulary" {
			found = true
		}
	}
	if !found {
		t.Fatalf("emotional_vocabulary should be unlocked at %d words", s.WordsLearned)
	}
}

func TestPolicyRejectsUnknownKind(t *testing.T) {
	if _, _, err := DefaultPolicy().Apply(Snapshot{}, Activity{Kind: "mystery"}, "2024-03-10"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestTotalXPNeverDecreases(t *testing.T) {
	p := DefaultPolicy()
	s := Snapshot{}
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	kinds := []ActivityKind{ActivityLogin, ActivityJournalEntry, ActivityDailyWord, ActivityQuizCompleted}
	for i := 0; i < 200; i++ {
		today := day.AddDate(0, 0, i/7).Format(DateLayout)
		next, _, err := p.Apply(s, Activity{Kind: kinds[i%len(kinds)], CorrectAnswers: i % 5}, today)
		if err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if next.TotalXP < s.TotalXP {
			t.Fatalf("xp decreased at step %d", i)
		}
		if next.LongestStreak < next.CurrentStreak {
			t.Fatalf("longest < current at step %d", i)
		}
		s = next
	}
}

func TestMilestones(t *testing.T) {
	if got := Milestones(Snapshot{}); len(got) != 0 {
		t.Fatalf("zero snapshot: %v", got)
	}
	got := Milestones(Snapshot{JournalEntriesCount: 5, LongestStreak: 7, WordsLearned: 10, TotalXP: 1600})
	want := []string{"first_steps", "building_habit", "consistency", "emotional_vocabulary", "self_awareness"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i, m := range got {
		if m.ID != want[i] || !m.Unlocked || m.Label == "" {
			t.Fatalf("milestone %d: %+v", i, m)
		}
	}
}
