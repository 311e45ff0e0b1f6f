package emotion

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"

	"github.com/yungbote/emolit-backend/internal/platform/logger"
)

// Recorder receives analysis telemetry. Implementations must be safe for concurrent use.
type Recorder interface {
	ObserveAnalysis(source string, risk string)
	ObserveBackend(backend string, d time.Duration, err error)
}

type nopRecorder struct{}

func (nopRecorder) ObserveAnalysis(string, string) {}
func (nopRecorder) ObserveBackend(string, time.Duration, error) {}

type AnalyzerConfig struct {
	// Timeout bounds a single backend call.
	Timeout time.Duration
	// Cooldown skips the backend for this long after a failure.
	Cooldown time.Duration
	// RatePerSecond caps backend calls; excess requests use the rule strategy. Zero disables the cap.
	RatePerSecond float64
	Burst         int
}

type AnalyzerDeps struct {
	Log *logger.Logger
	// Backend is optional. Without it every request uses Rules.
	Backend  Classifier
	Rules    *RuleClassifier
	Gate     *CrisisGate
	Wheel    *Wheel
	Recorder Recorder
}

// Analyzer runs the crisis gate, a classification strategy and the scoring rules.
// It is safe for concurrent use and never returns an error.
type Analyzer struct {
	log      *logger.Logger
	backend  Classifier
	rules    *RuleClassifier
	gate     *CrisisGate
	wheel    *Wheel
	recorder Recorder
	limiter  *rate.Limiter
	cfg      AnalyzerConfig

	// unix nanos until which the backend is skipped
	cooldownUntil atomic.Int64
}

func NewAnalyzer(deps AnalyzerDeps, cfg AnalyzerConfig) *Analyzer {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	if deps.Rules == nil {
		deps.Rules = NewRuleClassifier(DefaultRules)
	}
	if deps.Gate == nil {
		deps.Gate = NewCrisisGate(DefaultCrisisPhrases)
	}
	if deps.Wheel == nil {
		deps.Wheel = NewWheel(DefaultWheel)
	}
	if deps.Recorder == nil {
		deps.Recorder = nopRecorder{}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 8 * time.Second
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 5
	}
	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	return &Analyzer{
		log:      deps.Log.With("service", "EmotionAnalyzer"),
		backend:  deps.Backend,
		rules:    deps.Rules,
		gate:     deps.Gate,
		wheel:    deps.Wheel,
		recorder: deps.Recorder,
		limiter:  rate.NewLimiter(limit, cfg.Burst),
		cfg:      cfg,
	}
}

func (a *Analyzer) Wheel() *Wheel { return a.wheel }

func (a *Analyzer) Gate() *CrisisGate { return a.gate }

// Analyze always returns a well-formed Analysis.
func (a *Analyzer) Analyze(ctx context.Context, text string, uc *UserContext) (out Analysis) {
	ctx, span := otel.Tracer("emotion").Start(ctx, "emotion.Analyze")
	defer span.End()

	words := wordCount(text)
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("analysis panic; returning neutral analysis", "panic", fmt.Sprint(r))
			out = NeutralAnalysis(words)
		}
		out.WordCount = words
		span.SetAttributes(
			attribute.String("emotion.source", out.Source),
			attribute.String("emotion.risk", string(out.RiskLevel)),
		)
		a.recorder.ObserveAnalysis(out.Source, string(out.RiskLevel))
	}()

	if matches := a.gate.Scan(text); len(matches) > 0 {
		return crisisAnalysis(matches, words)
	}

	cleaned := Preprocess(text)
	cls, source := a.classify(ctx, cleaned, uc)
	return a.build(cls, source)
}

// AnalyzeTranslated analyzes a translation while still scanning the original text for
// crisis phrases, so a softened translation cannot hide one.
func (a *Analyzer) AnalyzeTranslated(ctx context.Context, original, translated string, uc *UserContext) Analysis {
	if matches := a.gate.Scan(original); len(matches) > 0 {
		out := crisisAnalysis(matches, wordCount(translated))
		a.recorder.ObserveAnalysis(out.Source, string(out.RiskLevel))
		return out
	}
	return a.Analyze(ctx, translated, uc)
}

// classify picks the backend when it is available and falls through to rules on any failure.
func (a *Analyzer) classify(ctx context.Context, text string, uc *UserContext) (*Classification, string) {
	if a.backendAvailable() && text != "" {
		bctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout)
		start := time.Now()
		cls, err := a.callBackend(bctx, text, uc)
		cancel()
		if err == nil {
			err = cls.validate()
		}
		a.recorder.ObserveBackend(a.backend.Name(), time.Since(start), err)
		if err == nil {
			return cls, sourceBackend + a.backend.Name()
		}
		a.log.Warn("classification backend failed; using rules", "backend", a.backend.Name(), "error", err)
		if ctx.Err() == nil && a.cfg.Cooldown > 0 {
			a.cooldownUntil.Store(time.Now().Add(a.cfg.Cooldown).UnixNano())
		}
	}
	cls, _ := a.rules.Classify(ctx, text, uc)
	return cls, SourceRules
}

// callBackend turns a backend panic into an error so the rule path still runs.
func (a *Analyzer) callBackend(ctx context.Context, text string, uc *UserContext) (cls *Classification, err error) {
	defer func() {
		if r := recover(); r != nil {
			cls, err = nil, fmt.Errorf("backend %s panicked: %v", a.backend.Name(), r)
		}
	}()
	return a.backend.Classify(ctx, text, uc)
}

func (a *Analyzer) backendAvailable() bool {
	if a.backend == nil {
		return false
	}
	if until := a.cooldownUntil.Load(); until > 0 && time.Now().UnixNano() < until {
		return false
	}
	return a.limiter.Allow()
}

func (a *Analyzer) build(cls *Classification, source string) Analysis {
	if cls.Crisis {
		// classifier output is not trusted once crisis is flagged
		out := crisisAnalysis(nil, 0)
		out.Source = source
		return out
	}
	emotions := cls.emotions()
	sentiment := cls.sentiment()
	return Analysis{
		Emotions:               emotions,
		Sentiment:              sentiment,
		RiskLevel:              AssessRisk(nil, emotions),
		MoodScore:              MoodScore(emotions, sentiment),
		WheelEmotions:          a.wheel.Map(emotions),
		DetectedCrisisKeywords: []string{},
		Source:                 source,
	}
}
