package app

import (
	"strings"
	"time"

	dbpkg "github.com/yungbote/emolit-backend/internal/data/db"
	"github.com/yungbote/emolit-backend/internal/modules/progression"
	"github.com/yungbote/emolit-backend/internal/platform/envutil"
	"github.com/yungbote/emolit-backend/internal/platform/logger"
)

const (
	BackendOpenAI      = "openai"
	BackendModelServer = "modelserver"
	BackendRules       = "rules"
)

type Config struct {
	Port        string
	Environment string
	Version     string

	DB dbpkg.Config

	RedisAddr string
	LockTTL   time.Duration

	JWTSecretKey string
	JWTIssuer    string

	DefaultTimezone string

	ClassifierBackend    string
	ClassifierTimeout    time.Duration
	ClassifierRatePerSec float64
	ClassifierCooldown   time.Duration
	OpenAIAPIKey         string
	OpenAIModel          string
	OpenAIBaseURL        string
	OpenAIRatePerSec     float64
	ModelServerURL       string
	ReflectionsEnabled   bool
	TranslationEnabled   bool
	MaxEntryChars        int
	ProgressMaxAttempts  int
	ProgressRetryBase    time.Duration
	Policy               progression.Policy
	VocabularyPath       string
	SpeechEnabled        bool
	SpeechLanguage       string
	SpeechModel          string
	GCSAudioBucket       string
	GCSAudioPrefix       string
	ProfileCacheSize     int
	ProfileCacheTTL      time.Duration
}

func LoadConfig(log *logger.Logger) Config {
	def := progression.DefaultPolicy()
	cfg := Config{
		Port:        envutil.String("PORT", "8080"),
		Environment: envutil.String("APP_ENV", "development"),
		Version:     envutil.String("APP_VERSION", "dev"),

		DB: dbpkg.Config{
			Driver:           strings.ToLower(envutil.String("DB_DRIVER", "postgres")),
			PostgresHost:     envutil.String("POSTGRES_HOST", "localhost"),
			PostgresPort:     envutil.String("POSTGRES_PORT", "5432"),
			PostgresUser:     envutil.String("POSTGRES_USER", "postgres"),
			PostgresPassword: envutil.String("POSTGRES_PASSWORD", ""),
			PostgresName:     envutil.String("POSTGRES_NAME", "emolit"),
			PostgresSSLMode:  envutil.String("POSTGRES_SSLMODE", "disable"),
			SQLitePath:       envutil.String("SQLITE_PATH", "emolit.db"),
			MaxOpenConns:     envutil.Int("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns:     envutil.Int("DB_MAX_IDLE_CONNS", 5),
		},

		RedisAddr: envutil.String("REDIS_ADDR", ""),
		LockTTL:   envutil.Duration("PROGRESS_LOCK_TTL", 10*time.Second),

		JWTSecretKey: envutil.String("JWT_SECRET_KEY", ""),
		JWTIssuer:    envutil.String("JWT_ISSUER", ""),

		DefaultTimezone: envutil.String("DEFAULT_TIMEZONE", "UTC"),

		ClassifierBackend:    strings.ToLower(envutil.String("CLASSIFIER_BACKEND", BackendRules)),
		ClassifierTimeout:    envutil.Duration("CLASSIFIER_TIMEOUT", 8*time.Second),
		ClassifierRatePerSec: envutil.Float("CLASSIFIER_RATE_PER_SEC", 0),
		ClassifierCooldown:   envutil.Duration("CLASSIFIER_COOLDOWN", 30*time.Second),
		OpenAIAPIKey:         envutil.String("OPENAI_API_KEY", ""),
		OpenAIModel:          envutil.String("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:        envutil.String("OPENAI_BASE_URL", ""),
		OpenAIRatePerSec:     envutil.Float("OPENAI_RATE_PER_SEC", 0),
		ModelServerURL:       envutil.String("MODEL_SERVER_URL", ""),
		ReflectionsEnabled:   envutil.Bool("REFLECTIONS_ENABLED", true),
		TranslationEnabled:   envutil.Bool("TRANSLATION_ENABLED", true),
		MaxEntryChars:        envutil.Int("MAX_ENTRY_CHARS", 10000),
		ProgressMaxAttempts:  envutil.Int("PROGRESS_MAX_ATTEMPTS", 5),
		ProgressRetryBase:    envutil.Duration("PROGRESS_RETRY_BASE", 20*time.Millisecond),
		Policy: progression.Policy{
			JournalXP:        int64(envutil.Int("JOURNAL_XP", int(def.JournalXP))),
			LoginXP:          int64(envutil.Int("LOGIN_XP", int(def.LoginXP))),
			DailyWordXP:      int64(envutil.Int("DAILY_WORD_XP", int(def.DailyWordXP))),
			QuizXPPerCorrect: int64(envutil.Int("QUIZ_XP_PER_CORRECT", int(def.QuizXPPerCorrect))),
			QuizDailyXPCap:   int64(envutil.Int("QUIZ_XP_DAILY_CAP", int(def.QuizDailyXPCap))),
		},
		VocabularyPath:   envutil.String("VOCABULARY_PATH", ""),
		SpeechEnabled:    envutil.Bool("SPEECH_ENABLED", false),
		SpeechLanguage:   envutil.String("SPEECH_LANGUAGE", "en-US"),
		SpeechModel:      envutil.String("SPEECH_MODEL", ""),
		GCSAudioBucket:   envutil.String("GCS_AUDIO_BUCKET", ""),
		GCSAudioPrefix:   envutil.String("GCS_AUDIO_PREFIX", "voice-entries"),
		ProfileCacheSize: envutil.Int("PROFILE_CACHE_SIZE", 4096),
		ProfileCacheTTL:  envutil.Duration("PROFILE_CACHE_TTL", 5*time.Minute),
	}

	if log != nil {
		log.Info("config loaded",
			"port", cfg.Port,
			"env", cfg.Environment,
			"db_driver", cfg.DB.Driver,
			"redis", cfg.RedisAddr != "",
			"classifier_backend", cfg.ClassifierBackend,
			"openai", cfg.OpenAIAPIKey != "",
			"speech", cfg.SpeechEnabled,
			"default_timezone", cfg.DefaultTimezone,
		)
	}
	return cfg
}
