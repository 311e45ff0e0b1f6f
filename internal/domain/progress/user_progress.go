package progress

import (
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/emolit-backend/internal/modules/progression"
)

// UserProgress is the persisted ledger row. Version guards conditional updates.
type UserProgress struct {
	UserID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	TotalXP             int64     `gorm:"column:total_xp;not null" json:"total_xp"`
	CurrentStreak       int       `gorm:"column:current_streak;not null" json:"current_streak"`
	LongestStreak       int       `gorm:"column:longest_streak;not null" json:"longest_streak"`
	WordsLearned        int       `gorm:"column:words_learned;not null" json:"words_learned"`
	JournalEntriesCount int       `gorm:"column:journal_entries_count;not null" json:"journal_entries_count"`
	LastActivityDate    string    `gorm:"column:last_activity_date" json:"last_activity_date,omitempty"`
	LastJournalXPDate   string    `gorm:"column:last_journal_xp_date" json:"-"`
	LastLoginXPDate     string    `gorm:"column:last_login_xp_date" json:"-"`
	LastDailyWordDate   string    `gorm:"column:last_daily_word_date" json:"-"`
	QuizXPDate          string    `gorm:"column:quiz_xp_date" json:"-"`
	QuizXPToday         int64     `gorm:"column:quiz_xp_today;not null" json:"-"`
	Version             int64     `gorm:"column:version;not null" json:"-"`
	CreatedAt           time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt           time.Time `gorm:"not null" json:"updated_at"`
}

func (UserProgress) TableName() string { return "user_progress" }

func (p *UserProgress) Snapshot() progression.Snapshot {
	return progression.Snapshot{
		TotalXP:             p.TotalXP,
		CurrentStreak:       p.CurrentStreak,
		LongestStreak:       p.LongestStreak,
		WordsLearned:        p.WordsLearned,
		JournalEntriesCount: p.JournalEntriesCount,
		LastActivityDate:    p.LastActivityDate,
		LastJournalXPDate:   p.LastJournalXPDate,
		LastLoginXPDate:     p.LastLoginXPDate,
		LastDailyWordDate:   p.LastDailyWordDate,
		QuizXPDate:          p.QuizXPDate,
		QuizXPToday:         p.QuizXPToday,
	}
}

// Apply copies s onto p, leaving identity and version untouched.
func (p *UserProgress) Apply(s progression.Snapshot) {
	p.TotalXP = s.TotalXP
	p.CurrentStreak = s.CurrentStreak
	p.LongestStreak = s.LongestStreak
	p.WordsLearned = s.WordsLearned
	p.JournalEntriesCount = s.JournalEntriesCount
	p.LastActivityDate = s.LastActivityDate
	p.LastJournalXPDate = s.LastJournalXPDate
	p.LastLoginXPDate = s.LastLoginXPDate
	p.LastDailyWordDate = s.LastDailyWordDate
	p.QuizXPDate = s.QuizXPDate
	p.QuizXPToday = s.QuizXPToday
}
