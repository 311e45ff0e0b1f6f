package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/emolit-backend/internal/data/repos/journal"
	"github.com/yungbote/emolit-backend/internal/data/repos/progress"
	"github.com/yungbote/emolit-backend/internal/data/repos/user"
	"github.com/yungbote/emolit-backend/internal/data/repos/vocab"
	"github.com/yungbote/emolit-backend/internal/platform/logger"
)

type JournalEntryRepo = journal.JournalEntryRepo
type UserProgressRepo = progress.UserProgressRepo
type ActivityEventRepo = progress.ActivityEventRepo
type QuizAttemptRepo = progress.QuizAttemptRepo
type VocabularyRepo = vocab.VocabularyRepo
type UserSettingsRepo = user.UserSettingsRepo

func NewJournalEntryRepo(db *gorm.DB, baseLog *logger.Logger) JournalEntryRepo {
	return journal.NewJournalEntryRepo(db, baseLog)
}
func NewUserProgressRepo(db *gorm.DB, baseLog *logger.Logger) UserProgressRepo {
	return progress.NewUserProgressRepo(db, baseLog)
}
func NewActivityEventRepo(db *gorm.DB, baseLog *logger.Logger) ActivityEventRepo {
	return progress.NewActivityEventRepo(db, baseLog)
}
func NewQuizAttemptRepo(db *gorm.DB, baseLog *logger.Logger) QuizAttemptRepo {
	return progress.NewQuizAttemptRepo(db, baseLog)
}
func NewVocabularyRepo(db *gorm.DB, baseLog *logger.Logger) VocabularyRepo {
	return vocab.NewVocabularyRepo(db, baseLog)
}
func NewUserSettingsRepo(db *gorm.DB, baseLog *logger.Logger) UserSettingsRepo {
	return user.NewUserSettingsRepo(db, baseLog)
}

// IsDuplicateKey reports unique-violation errors from either supported driver.
var IsDuplicateKey = progress.IsDuplicateKey
