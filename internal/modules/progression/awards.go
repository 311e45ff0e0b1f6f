package progression

import "fmt"

type ActivityKind string

const (
	ActivityLogin         ActivityKind = "login"
	ActivityJournalEntry  ActivityKind = "journal_entry"
	ActivityDailyWord     ActivityKind = "daily_word"
	ActivityQuizCompleted ActivityKind = "quiz_completed"
)

func (k ActivityKind) Valid() bool {
	switch k {
	case ActivityLogin, ActivityJournalEntry, ActivityDailyWord, ActivityQuizCompleted:
		return true
	default:
		return false
	}
}

type Activity struct {
	Kind ActivityKind
	// CorrectAnswers applies to quiz_completed only.
	CorrectAnswers int
}

// Policy sets XP awards. Each activity kind has its own daily cap; caps are never pooled.
type Policy struct {
	JournalXP        int64
	LoginXP          int64
	DailyWordXP      int64
	QuizXPPerCorrect int64
	QuizDailyXPCap   int64
}

func DefaultPolicy() Policy {
	return Policy{
		JournalXP:        50,
		LoginXP:          10,
		DailyWordXP:      10,
		QuizXPPerCorrect: 10,
		QuizDailyXPCap:   100,
	}
}

// Delta describes what one activity changed.
type Delta struct {
	Kind            ActivityKind `json:"kind"`
	XPAwarded       int64        `json:"xp_awarded"`
	WordsLearned    int          `json:"words_learned"`
	StreakIncreased bool         `json:"streak_increased"`
	CurrentStreak   int          `json:"current_streak"`
	LevelBefore     int          `json:"level_before"`
	LevelAfter      int          `json:"level_after"`
	NewMilestones   []Milestone  `json:"new_milestones"`
}

func (d Delta) LeveledUp() bool { return d.LevelAfter > d.LevelBefore }

// Apply folds one activity on today into s. It is deterministic and replay-safe for
// login, journal XP and daily word on the same date.
func (p Policy) Apply(s Snapshot, act Activity, today string) (Snapshot, Delta, error) {
	if !act.Kind.Valid() {
		return s, Delta{}, fmt.Errorf("unknown activity kind %q", act.Kind)
	}
	before := s
	next, err := ApplyStreak(s, today)
	if err != nil {
		return s, Delta{}, err
	}

	var xp int64
	var words int
	switch act.Kind {
	case ActivityLogin:
		if next.LastLoginXPDate != today {
			xp = p.LoginXP
			next.LastLoginXPDate = today
		}
	case ActivityJournalEntry:
		next.JournalEntriesCount++
		if next.LastJournalXPDate != today {
			xp = p.JournalXP
			next.LastJournalXPDate = today
		}
	case ActivityDailyWord:
		if next.LastDailyWordDate != today {
			xp = p.DailyWordXP
			words = 1
			next.LastDailyWordDate = today
		}
	case ActivityQuizCompleted:
		xp, words = p.quizAward(&next, act.CorrectAnswers, today)
	}

	next.TotalXP += xp
	next.WordsLearned += words

	return next, Delta{
		Kind:            act.Kind,
		XPAwarded:       xp,
		WordsLearned:    words,
		StreakIncreased: next.CurrentStreak > before.CurrentStreak,
		CurrentStreak:   next.CurrentStreak,
		LevelBefore:     before.Level(),
		LevelAfter:      next.Level(),
		NewMilestones:   newlyUnlocked(before, next),
	}, nil
}

// quizAward credits only correct answers that still fit under today's quiz XP cap.
// Words learned follow the credited answers so repeated quizzes cannot inflate them.
func (p Policy) quizAward(s *Snapshot, correct int, today string) (int64, int) {
	if s.QuizXPDate != today {
		s.QuizXPDate = today
		s.QuizXPToday = 0
	}
	if correct <= 0 || p.QuizXPPerCorrect <= 0 {
		return 0, 0
	}
	credited := correct
	if p.QuizDailyXPCap > 0 {
		room := (p.QuizDailyXPCap - s.QuizXPToday) / p.QuizXPPerCorrect
		if room < 0 {
			room = 0
		}
		credited = min(credited, int(room))
	}
	xp := int64(credited) * p.QuizXPPerCorrect
	s.QuizXPToday += xp
	return xp, credited
}
