package app

import (
	"database/sql"

	httpH "github.com/yungbote/emolit-backend/internal/http/handlers"
	"github.com/yungbote/emolit-backend/internal/platform/logger"
)

type Handlers struct {
	Emotion  *httpH.EmotionHandler
	Journal  *httpH.JournalHandler
	Progress *httpH.ProgressHandler
	Quiz     *httpH.QuizHandler
	Profile  *httpH.ProfileHandler
	Health   *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, s Services, sqlDB *sql.DB) Handlers {
	log.Info("Wiring handlers...")
	var pinger httpH.Pinger
	if sqlDB != nil {
		pinger = sqlDB
	}
	return Handlers{
		Emotion:  httpH.NewEmotionHandler(log, s.Analysis, s.Quiz),
		Journal:  httpH.NewJournalHandler(log, s.Journal, s.Voice),
		Progress: httpH.NewProgressHandler(log, s.Progress),
		Quiz:     httpH.NewQuizHandler(log, s.Quiz),
		Profile:  httpH.NewProfileHandler(log, s.Profile),
		Health:   httpH.NewHealthHandler(pinger),
	}
}
