package domain

import (
	"github.com/yungbote/emolit-backend/internal/domain/journal"
	"github.com/yungbote/emolit-backend/internal/domain/progress"
	"github.com/yungbote/emolit-backend/internal/domain/user"
	"github.com/yungbote/emolit-backend/internal/domain/vocab"
)

type (
	JournalEntry   = journal.JournalEntry
	UserProgress   = progress.UserProgress
	ActivityEvent  = progress.ActivityEvent
	QuizAttempt    = progress.QuizAttempt
	QuizAnswer     = progress.QuizAnswer
	VocabularyWord = vocab.VocabularyWord
	UserSettings   = user.UserSettings
)

const (
	JournalSourceText  = journal.SourceText
	JournalSourceVoice = journal.SourceVoice

	JournalStatusAnalyzed            = journal.StatusAnalyzed
	JournalStatusTranscriptionFailed = journal.StatusTranscriptionFailed
)

// Models lists every persisted type in migration order.
func Models() []any {
	return []any{
		&UserSettings{},
		&UserProgress{},
		&ActivityEvent{},
		&JournalEntry{},
		&QuizAttempt{},
		&VocabularyWord{},
	}
}
