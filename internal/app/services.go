package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/emolit-backend/internal/modules/emotion"
	"github.com/yungbote/emolit-backend/internal/observability"
	"github.com/yungbote/emolit-backend/internal/platform/logger"
	"github.com/yungbote/emolit-backend/internal/platform/openai"
	"github.com/yungbote/emolit-backend/internal/services"
)

type Services struct {
	Auth     services.AuthService
	Profile  services.ProfileService
	Progress services.ProgressService
	Analysis services.AnalysisService
	Journal  services.JournalService
	Voice    services.VoiceService
	Quiz     services.QuizService

	Analyzer *emotion.Analyzer
	Corpus   *services.CorpusProvider
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, c *Clients, m *observability.Metrics) (Services, error) {
	log.Info("Wiring services...")

	auth, err := services.NewAuthService(log, services.AuthConfig{SecretKey: cfg.JWTSecretKey, Issuer: cfg.JWTIssuer})
	if err != nil {
		return Services{}, fmt.Errorf("init auth: %w", err)
	}
	profiles, err := services.NewProfileService(db, log, r.UserSettings, services.ProfileConfig{
		DefaultTimezone: cfg.DefaultTimezone,
		CacheSize:       cfg.ProfileCacheSize,
		CacheTTL:        cfg.ProfileCacheTTL,
	})
	if err != nil {
		return Services{}, fmt.Errorf("init profiles: %w", err)
	}

	analyzer := NewAnalyzer(log, cfg, c.Classifier, m)
	var reflectClient openai.Client
	if cfg.ReflectionsEnabled {
		reflectClient = c.OpenAI
	}
	reflector := emotion.NewReflector(log, reflectClient, nil)
	var translator services.Translator
	if cfg.TranslationEnabled {
		translator = services.NewOpenAITranslator(c.OpenAI)
	}

	progress := services.NewProgressService(db, log, r.UserProgress, r.ActivityEvent, r.JournalEntry, profiles, c.Locker, m,
		services.ProgressConfig{
			Policy:      cfg.Policy,
			MaxAttempts: uint(max(cfg.ProgressMaxAttempts, 1)),
			BaseBackoff: cfg.ProgressRetryBase,
		})
	corpus := services.NewCorpusProvider(log, r.Vocabulary, cfg.VocabularyPath)

	return Services{
		Auth:     auth,
		Profile:  profiles,
		Progress: progress,
		Analysis: services.NewAnalysisService(log, analyzer, profiles, cfg.MaxEntryChars),
		Journal:  services.NewJournalService(db, log, r.JournalEntry, analyzer, reflector, profiles, progress, cfg.MaxEntryChars),
		Voice: services.NewVoiceService(db, log, r.JournalEntry, c.Transcriber, translator, analyzer, reflector,
			profiles, progress, cfg.MaxEntryChars),
		Quiz:     services.NewQuizService(db, log, corpus, r.QuizAttempt, profiles, progress, m),
		Analyzer: analyzer,
		Corpus:   corpus,
	}, nil
}

// NewAnalyzer builds the emotion analyzer for the configured backend. backend may be nil.
// *Metrics methods are nil-safe, so m may be nil as well.
func NewAnalyzer(log *logger.Logger, cfg Config, backend emotion.Classifier, m *observability.Metrics) *emotion.Analyzer {
	return emotion.NewAnalyzer(emotion.AnalyzerDeps{
		Log:      log,
		Backend:  backend,
		Recorder: m,
	}, emotion.AnalyzerConfig{
		Timeout:       cfg.ClassifierTimeout,
		Cooldown:      cfg.ClassifierCooldown,
		RatePerSecond: cfg.ClassifierRatePerSec,
	})
}
