package progress

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuizAnswer struct {
	WordID        string `json:"word_id"`
	SelectedIndex int    `json:"selected_index"`
	IsCorrect     bool   `json:"is_correct"`
}

type QuizAttempt struct {
	ID             uuid.UUID                       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID                       `gorm:"type:uuid;not null;index" json:"user_id"`
	TotalQuestions int                             `gorm:"column:total_questions;not null" json:"total_questions"`
	CorrectAnswers int                             `gorm:"column:correct_answers;not null" json:"correct_answers"`
	ScorePercent   int                             `gorm:"column:score_percent;not null" json:"score_percent"`
	XPAwarded      int64                           `gorm:"column:xp_awarded;not null" json:"xp_awarded"`
	Answers        datatypes.JSONSlice[QuizAnswer] `gorm:"column:answers" json:"answers"`
	LocalDate      string                          `gorm:"column:local_date;not null" json:"local_date"`
	CreatedAt      time.Time                       `gorm:"not null" json:"created_at"`
}

func (QuizAttempt) TableName() string { return "quiz_attempt" }

func (a *QuizAttempt) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
