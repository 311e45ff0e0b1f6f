package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/emolit-backend/internal/data/repos"
	"github.com/yungbote/emolit-backend/internal/platform/logger"
)

type Repos struct {
	JournalEntry  repos.JournalEntryRepo
	UserProgress  repos.UserProgressRepo
	ActivityEvent repos.ActivityEventRepo
	QuizAttempt   repos.QuizAttemptRepo
	Vocabulary    repos.VocabularyRepo
	UserSettings  repos.UserSettingsRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		JournalEntry:  repos.NewJournalEntryRepo(db, log),
		UserProgress:  repos.NewUserProgressRepo(db, log),
		ActivityEvent: repos.NewActivityEventRepo(db, log),
		QuizAttempt:   repos.NewQuizAttemptRepo(db, log),
		Vocabulary:    repos.NewVocabularyRepo(db, log),
		UserSettings:  repos.NewUserSettingsRepo(db, log),
	}
}
