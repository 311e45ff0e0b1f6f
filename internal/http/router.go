package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/emolit-backend/internal/http/handlers"
	httpMW "github.com/yungbote/emolit-backend/internal/http/middleware"
	"github.com/yungbote/emolit-backend/internal/observability"
	"github.com/yungbote/emolit-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	ServiceName    string
	TracingEnabled bool

	AuthMiddleware *httpMW.AuthMiddleware

	EmotionHandler  *httpH.EmotionHandler
	JournalHandler  *httpH.JournalHandler
	ProgressHandler *httpH.ProgressHandler
	QuizHandler     *httpH.QuizHandler
	ProfileHandler  *httpH.ProfileHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingEnabled {
		name := cfg.ServiceName
		if name == "" {
			name = "emolit"
		}
		r.Use(otelgin.Middleware(name))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	if cfg.AuthMiddleware != nil {
		api.Use(cfg.AuthMiddleware.RequireAuth())
	}
	{
		// Emotions
		if cfg.EmotionHandler != nil {
			api.POST("/emotions/analyze", cfg.EmotionHandler.Analyze)
			api.GET("/emotions/wheel", cfg.EmotionHandler.Wheel)
			api.GET("/emotions/word-of-the-day", cfg.EmotionHandler.WordOfTheDay)
		}

		// Journal
		if cfg.JournalHandler != nil {
			api.POST("/journal/entries", cfg.JournalHandler.Create)
			api.GET("/journal/entries", cfg.JournalHandler.List)
			api.GET("/journal/entries/:id", cfg.JournalHandler.Get)
			api.PATCH("/journal/entries/:id", cfg.JournalHandler.Update)
			api.POST("/journal/voice", cfg.JournalHandler.CreateVoice)
		}

		// Progress
		if cfg.ProgressHandler != nil {
			api.GET("/progress", cfg.ProgressHandler.Get)
			api.GET("/progress/weekly-activity", cfg.ProgressHandler.Weekly)
			api.POST("/progress/activity", cfg.ProgressHandler.RecordActivity)
		}

		// Quiz
		if cfg.QuizHandler != nil {
			api.GET("/quiz/questions", cfg.QuizHandler.Questions)
			api.POST("/quiz/validate", cfg.QuizHandler.Validate)
			api.POST("/quiz/submit", cfg.QuizHandler.Submit)
		}

		// Profile
		if cfg.ProfileHandler != nil {
			api.GET("/profile/settings", cfg.ProfileHandler.Get)
			api.PUT("/profile/settings", cfg.ProfileHandler.Update)
		}
	}

	return r
}
