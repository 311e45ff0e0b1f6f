package vocab

import (
	"time"

	"gorm.io/datatypes"

	"github.com/yungbote/emolit-backend/internal/modules/quiz"
)

type VocabularyWord struct {
	ID              string                      `gorm:"primaryKey;column:id" json:"id"`
	Word            string                      `gorm:"column:word;not null" json:"word"`
	Definition      string                      `gorm:"column:definition;type:text;not null" json:"definition"`
	Example         string                      `gorm:"column:example;type:text" json:"example"`
	Category        string                      `gorm:"column:category;index" json:"category"`
	Level           string                      `gorm:"column:level;index" json:"level"`
	SimilarWords    datatypes.JSONSlice[string] `gorm:"column:similar_words" json:"similar_words"`
	OppositeWords   datatypes.JSONSlice[string] `gorm:"column:opposite_words" json:"opposite_words"`
	CulturalContext string                      `gorm:"column:cultural_context;type:text" json:"cultural_context,omitempty"`
	CreatedAt       time.Time                   `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time                   `gorm:"not null" json:"updated_at"`
}

func (VocabularyWord) TableName() string { return "vocabulary_word" }

func FromQuizWord(w quiz.Word) VocabularyWord {
	return VocabularyWord{
		ID:              w.ID,
		Word:            w.Word,
		Definition:      w.Definition,
		Example:         w.Example,
		Category:        w.Category,
		Level:           w.Level,
		SimilarWords:    append(datatypes.JSONSlice[string]{}, w.SimilarWords...),
		OppositeWords:   append(datatypes.JSONSlice[string]{}, w.OppositeWords...),
		CulturalContext: w.CulturalContext,
	}
}

func (v VocabularyWord) QuizWord() quiz.Word {
	return quiz.Word{
		ID:              v.ID,
		Word:            v.Word,
		Definition:      v.Definition,
		Example:         v.Example,
		Category:        v.Category,
		Level:           v.Level,
		SimilarWords:    []string(v.SimilarWords),
		OppositeWords:   []string(v.OppositeWords),
		CulturalContext: v.CulturalContext,
	}
}
