package app

import (
	"context"
	"fmt"

	"github.com/yungbote/emolit-backend/internal/clients/redis"
	"github.com/yungbote/emolit-backend/internal/modules/emotion"
	"github.com/yungbote/emolit-backend/internal/pkg/keylock"
	"github.com/yungbote/emolit-backend/internal/platform/gcp"
	"github.com/yungbote/emolit-backend/internal/platform/logger"
	"github.com/yungbote/emolit-backend/internal/platform/openai"
	"github.com/yungbote/emolit-backend/internal/services"
)

type Clients struct {
	OpenAI      openai.Client
	Classifier  emotion.Classifier
	Locker      services.UserLocker
	Transcriber services.Transcriber

	closers []func() error
}

func (c *Clients) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		_ = c.closers[i]()
	}
	c.closers = nil
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (*Clients, error) {
	log.Info("Wiring clients...")
	out := &Clients{}

	oc, classifier, err := newClassifier(log, cfg)
	if err != nil {
		return nil, err
	}
	out.OpenAI = oc
	out.Classifier = classifier

	// Redis
	if cfg.RedisAddr != "" {
		l, err := redis.NewUserLocker(log, redis.LockConfig{Addr: cfg.RedisAddr, TTL: cfg.LockTTL})
		if err != nil {
			out.Close()
			return nil, fmt.Errorf("init redis locker: %w", err)
		}
		out.Locker = l
		out.closers = append(out.closers, l.Close)
	} else {
		out.Locker = keylock.New()
	}

	// Speech
	if cfg.SpeechEnabled {
		var stager gcp.AudioStager
		if cfg.GCSAudioBucket != "" {
			s, err := gcp.NewAudioStager(ctx, log, cfg.GCSAudioBucket, cfg.GCSAudioPrefix)
			if err != nil {
				out.Close()
				return nil, fmt.Errorf("init audio stager: %w", err)
			}
			stager = s
			out.closers = append(out.closers, s.Close)
		}
		tr, err := gcp.NewSpeechTranscriber(ctx, log, gcp.SpeechConfig{
			LanguageCode: cfg.SpeechLanguage,
			Model:        cfg.SpeechModel,
		}, stager)
		if err != nil {
			out.Close()
			return nil, fmt.Errorf("init speech client: %w", err)
		}
		out.Transcriber = tr
		out.closers = append(out.closers, tr.Close)
	}

	return out, nil
}

// NewClassifier builds only the configured classifier backend. A nil classifier means rules.
func NewClassifier(log *logger.Logger, cfg Config) (emotion.Classifier, error) {
	_, c, err := newClassifier(log, cfg)
	return c, err
}

func newClassifier(log *logger.Logger, cfg Config) (openai.Client, emotion.Classifier, error) {
	var oc openai.Client
	if cfg.OpenAIAPIKey != "" {
		c, err := openai.NewClient(log, openai.Config{
			APIKey:        cfg.OpenAIAPIKey,
			BaseURL:       cfg.OpenAIBaseURL,
			Model:         cfg.OpenAIModel,
			MaxRetries:    2,
			RatePerSecond: cfg.OpenAIRatePerSec,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("init openai client: %w", err)
		}
		oc = c
	}

	switch cfg.ClassifierBackend {
	case BackendOpenAI:
		if oc == nil {
			return nil, nil, fmt.Errorf("CLASSIFIER_BACKEND=openai requires OPENAI_API_KEY")
		}
		return oc, emotion.NewLLMClassifier(oc), nil
	case BackendModelServer:
		if cfg.ModelServerURL == "" {
			return nil, nil, fmt.Errorf("CLASSIFIER_BACKEND=modelserver requires MODEL_SERVER_URL")
		}
		return oc, emotion.NewModelServerClassifier(cfg.ModelServerURL, cfg.ClassifierTimeout), nil
	case BackendRules, "":
		return oc, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown CLASSIFIER_BACKEND %q", cfg.ClassifierBackend)
	}
}
