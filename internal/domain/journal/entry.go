package journal

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/emolit-backend/internal/modules/emotion"
)

const (
	SourceText  = "text"
	SourceVoice = "voice"

	StatusAnalyzed            = "analyzed"
	StatusTranscriptionFailed = "transcription_failed"
)

// JournalEntry is one user entry. Analysis and Reflection are written once at creation.
type JournalEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_journal_entry_user_created,priority:1" json:"user_id"`
	Title     string    `gorm:"column:title" json:"title"`
	Content   string    `gorm:"column:content;type:text;not null" json:"content"`
	IsPrivate bool      `gorm:"column:is_private;not null" json:"is_private"`
	Source    string    `gorm:"column:source;not null" json:"source"`
	Status    string    `gorm:"column:status;not null" json:"status"`
	Language  string    `gorm:"column:language" json:"language,omitempty"`

	Analysis   datatypes.JSONType[emotion.Analysis]   `gorm:"column:analysis" json:"analysis"`
	Reflection datatypes.JSONType[emotion.Reflection] `gorm:"column:reflection" json:"reflection"`

	DetectedEmotions datatypes.JSONSlice[string] `gorm:"column:detected_emotions" json:"detected_emotions"`
	RiskLevel        string                      `gorm:"column:risk_level;index" json:"risk_level"`
	MoodScore        *int                        `gorm:"column:mood_score" json:"mood_score,omitempty"`
	WordCount        int                         `gorm:"column:word_count;not null" json:"word_count"`
	LocalDate        string                      `gorm:"column:local_date;index" json:"local_date"`

	CreatedAt time.Time      `gorm:"not null;index:idx_journal_entry_user_created,priority:2" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (JournalEntry) TableName() string { return "journal_entry" }

func (e *JournalEntry) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
