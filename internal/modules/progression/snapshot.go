package progression

// Snapshot is the mutable counter set for one user. Dates are calendar dates in the
// user's reference timezone ("" when never set).
type Snapshot struct {
	TotalXP             int64
	CurrentStreak       int
	LongestStreak       int
	WordsLearned        int
	JournalEntriesCount int
	LastActivityDate    string

	// Per-activity day markers backing the daily caps.
	LastJournalXPDate string
	LastLoginXPDate   string
	LastDailyWordDate string
	QuizXPDate        string
	QuizXPToday       int64
}

func (s Snapshot) Level() int { return Level(s.TotalXP) }

// ApplyStreak records activity on today. Replaying the same day is a no-op.
// A date earlier than the last activity (timezone moved west) is treated as the same day.
func ApplyStreak(s Snapshot, today string) (Snapshot, error) {
	if s.LastActivityDate == "" {
		s.CurrentStreak = 1
		s.LastActivityDate = today
		s.LongestStreak = max(s.LongestStreak, s.CurrentStreak)
		return s, nil
	}
	diff, err := DaysBetween(s.LastActivityDate, today)
	if err != nil {
		return s, err
	}
	switch {
	case diff <= 0:
		if s.CurrentStreak < 1 {
			s.CurrentStreak = 1
		}
	case diff == 1:
		s.CurrentStreak++
		s.LastActivityDate = today
	default:
		s.CurrentStreak = 1
		s.LastActivityDate = today
	}
	s.LongestStreak = max(s.LongestStreak, s.CurrentStreak)
	return s, nil
}
