package app

import (
	"github.com/gin-gonic/gin"

	apphttp "github.com/yungbote/emolit-backend/internal/http"
	"github.com/yungbote/emolit-backend/internal/observability"
	"github.com/yungbote/emolit-backend/internal/platform/envutil"
	"github.com/yungbote/emolit-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, handlers Handlers, middleware Middleware, m *observability.Metrics) *gin.Engine {
	return apphttp.NewRouter(apphttp.RouterConfig{
		Log:             log,
		Metrics:         m,
		ServiceName:     envutil.String("OTEL_SERVICE_NAME", "emolit"),
		TracingEnabled:  envutil.Bool("OTEL_ENABLED", false),
		AuthMiddleware:  middleware.Auth,
		EmotionHandler:  handlers.Emotion,
		JournalHandler:  handlers.Journal,
		ProgressHandler: handlers.Progress,
		QuizHandler:     handlers.Quiz,
		ProfileHandler:  handlers.Profile,
		HealthHandler:   handlers.Health,
	})
}
