package emotion

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"
)

type stubClassifier struct {
	mu    sync.Mutex
	calls int
	out   *Classification
	err   error
	delay time.Duration
	panic bool
}

func (s *stubClassifier) Name() string { return "stub" }

func (s *stubClassifier) Classify(ctx context.Context, _ string, _ *UserContext) (*Classification, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.panic {
		panic("backend exploded")
	}
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.out, s.err
}

func (s *stubClassifier) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type countingRecorder struct {
	mu      sync.Mutex
	sources []string
}

func (r *countingRecorder) ObserveAnalysis(source, _ string) {
	r.mu.Lock()
	r.sources = append(r.sources, source)
	r.mu.Unlock()
}
func (r *countingRecorder) ObserveBackend(string, time.Duration, error) {}

func TestAnalyzeCrisisShortCircuitsBackend(t *testing.T) {
	backend := &stubClassifier{out: &Classification{
		Primary:   Score{Label: "joy", Confidence: 0.99},
		Sentiment: Score{Label: Positive, Confidence: 0.99},
	}}
	a := NewAnalyzer(AnalyzerDeps{Backend: backend}, AnalyzerConfig{})

	got := a.Analyze(context.Background(), "I want to die", nil)
	if got.RiskLevel != RiskHigh || got.MoodScore != 1 {
		t.Fatalf("unexpected crisis analysis: %+v", got)
	}
	if !reflect.DeepEqual(got.DetectedCrisisKeywords, []string{"want to die"}) {
		t.Fatalf("keywords: %v", got.DetectedCrisisKeywords)
	}
	if !reflect.DeepEqual(got.WheelEmotions, []string{"sad", "fearful"}) {
		t.Fatalf("wheel: %v", got.WheelEmotions)
	}
	if got.Source != SourceCrisisGate {
		t.Fatalf("source: %s", got.Source)
	}
	if backend.callCount() != 0 {
		t.Fatalf("backend should not be called on crisis text")
	}
}

func TestAnalyzeUsesBackend(t *testing.T) {
	backend := &stubClassifier{out: &Classification{
		Primary:   Score{Label: "Sadness", Confidence: 0.7},
		Secondary: []Score{{Label: "fear", Confidence: 0.2}, {Label: "anger", Confidence: 0.05}, {Label: "joy", Confidence: 0.01}},
		Sentiment: Score{Label: Negative, Confidence: 0.8},
	}}
	a := NewAnalyzer(AnalyzerDeps{Backend: backend}, AnalyzerConfig{})

	got := a.Analyze(context.Background(), "I miss my friends   so much", nil)
	if got.Source != "backend:stub" {
		t.Fatalf("source: %s", got.Source)
	}
	if len(got.Emotions) != 3 || got.Emotions[0].Label != "sadness" {
		t.Fatalf("emotions: %+v", got.Emotions)
	}
	if got.RiskLevel != RiskMedium {
		t.Fatalf("risk: %s", got.RiskLevel)
	}
	// 5 - 2 (sadness) - round(2.4)
	if got.MoodScore != 1 {
		t.Fatalf("mood: %d", got.MoodScore)
	}
	if !reflect.DeepEqual(got.WheelEmotions, []string{"sad", "fearful", "angry"}) {
		t.Fatalf("wheel: %v", got.WheelEmotions)
	}
	if got.WordCount != 6 {
		t.Fatalf("word count: %d", got.WordCount)
	}
}

func TestAnalyzeFallsBackOnBackendError(t *testing.T) {
	backend := &stubClassifier{err: errors.New("connection refused")}
	rec := &countingRecorder{}
	a := NewAnalyzer(AnalyzerDeps{Backend: backend, Recorder: rec}, AnalyzerConfig{Cooldown: time.Minute})

	got := a.Analyze(context.Background(), "I feel so happy and excited today", nil)
	if got.Source != SourceRules {
		t.Fatalf("source: %s", got.Source)
	}
	if got.Primary() != "joy" {
		t.Fatalf("primary: %s", got.Primary())
	}
	if got.MoodScore < 7 {
		t.Fatalf("mood should be high: %d", got.MoodScore)
	}

	// Cooldown keeps the failing backend out of the path.
	_ = a.Analyze(context.Background(), "another day", nil)
	if backend.callCount() != 1 {
		t.Fatalf("backend calls during cooldown: %d", backend.callCount())
	}
	if len(rec.sources) != 2 {
		t.Fatalf("recorder saw %d analyses", len(rec.sources))
	}
}

func TestAnalyzeFallsBackOnTimeout(t *testing.T) {
	backend := &stubClassifier{delay: time.Second, out: &Classification{
		Primary: Score{Label: "joy", Confidence: 1}, Sentiment: Score{Label: Positive, Confidence: 1},
	}}
	a := NewAnalyzer(AnalyzerDeps{Backend: backend}, AnalyzerConfig{Timeout: 20 * time.Millisecond})

	start := time.Now()
	got := a.Analyze(context.Background(), "I am worried and anxious", nil)
	if time.Since(start) > 500*time.Millisecond {
		t.Fatalf("timeout not enforced")
	}
	if got.Source != SourceRules || got.Primary() != "fear" {
		t.Fatalf("unexpected fallback: %+v", got)
	}
}

func TestAnalyzeFallsBackOnMalformedOutput(t *testing.T) {
	cases := []*Classification{
		nil,
		{Primary: Score{Label: "", Confidence: 0.5}, Sentiment: Score{Label: Neutral, Confidence: 0.5}},
		{Primary: Score{Label: "joy", Confidence: 1.5}, Sentiment: Score{Label: Positive, Confidence: 0.5}},
		{Primary: Score{Label: "joy", Confidence: 0.5}, Sentiment: Score{Label: "LABEL_9", Confidence: 0.5}},
	}
	for i, out := range cases {
		a := NewAnalyzer(AnalyzerDeps{Backend: &stubClassifier{out: out}}, AnalyzerConfig{})
		got := a.Analyze(context.Background(), "nothing much happened", nil)
		if got.Source != SourceRules {
			t.Fatalf("case %d: source %s", i, got.Source)
		}
	}
}

func TestAnalyzeBackendCrisisFlag(t *testing.T) {
	backend := &stubClassifier{out: &Classification{
		Primary:   Score{Label: "joy", Confidence: 0.9},
		Sentiment: Score{Label: Positive, Confidence: 0.8},
		Crisis:    true,
	}}
	a := NewAnalyzer(AnalyzerDeps{Backend: backend}, AnalyzerConfig{})
	got := a.Analyze(context.Background(), "I can't see a way forward anymore", nil)
	if got.RiskLevel != RiskHigh || got.MoodScore != 1 {
		t.Fatalf("backend crisis flag ignored: %+v", got)
	}
	if len(got.DetectedCrisisKeywords) != 0 {
		t.Fatalf("keywords should be empty: %v", got.DetectedCrisisKeywords)
	}
	if len(got.Emotions) != 0 || len(got.Sentiment) != 0 {
		t.Fatalf("classifier scores leaked into crisis result: %+v", got)
	}
	if len(got.WheelEmotions) != 2 || got.WheelEmotions[0] != "sad" || got.WheelEmotions[1] != "fearful" {
		t.Fatalf("wheel: %v", got.WheelEmotions)
	}
	if got.Source != "backend:stub" {
		t.Fatalf("source: %q", got.Source)
	}
}

func TestAnalyzePanickingBackendFallsBackToRules(t *testing.T) {
	backend := &stubClassifier{panic: true}
	a := NewAnalyzer(AnalyzerDeps{Backend: backend}, AnalyzerConfig{Cooldown: time.Minute})
	got := a.Analyze(context.Background(), "I am so happy and excited today", nil)
	if got.Source != SourceRules || got.RiskLevel == RiskUnknown {
		t.Fatalf("expected rule result, got %+v", got)
	}
	if got.WordCount != 7 {
		t.Fatalf("word count: %d", got.WordCount)
	}

	// the panic starts the cooldown like any backend error
	_ = a.Analyze(context.Background(), "another calm day", nil)
	if backend.callCount() != 1 {
		t.Fatalf("backend called %d times during cooldown", backend.callCount())
	}
}

func TestAnalyzeMoodAlwaysInBounds(t *testing.T) {
	a := NewAnalyzer(AnalyzerDeps{}, AnalyzerConfig{})
	inputs := []string{
		"",
		"   ",
		"\x00\x01\x02",
		"!!!???...",
		"sad sad sad sad angry hate awful scared terrified disgusting",
		"happy joy love grateful hopeful wonderful amazing awesome",
		"not happy, not sad, never angry",
		"🙂🙃😭💀",
	}
	for _, in := range inputs {
		got := a.Analyze(context.Background(), in, nil)
		if got.MoodScore < 1 || got.MoodScore > 10 {
			t.Fatalf("mood out of range for %q: %d", in, got.MoodScore)
		}
		if len(got.WheelEmotions) > 3 {
			t.Fatalf("too many wheel emotions for %q: %v", in, got.WheelEmotions)
		}
	}
}

func TestAnalyzeConcurrent(t *testing.T) {
	a := NewAnalyzer(AnalyzerDeps{}, AnalyzerConfig{})
	want := a.Analyze(context.Background(), "I am grateful and hopeful", nil)
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := a.Analyze(context.Background(), "I am grateful and hopeful", nil)
			if !reflect.DeepEqual(got, want) {
				t.Errorf("non-deterministic analysis: %+v vs %+v", got, want)
			}
		}()
	}
	wg.Wait()
}

func TestAnalyzeTranslatedScansOriginal(t *testing.T) {
	a := NewAnalyzer(AnalyzerDeps{}, AnalyzerConfig{})
	got := a.AnalyzeTranslated(context.Background(), "quiero end it all", "I am a bit tired", nil)
	if got.RiskLevel != RiskHigh || len(got.DetectedCrisisKeywords) != 1 || got.DetectedCrisisKeywords[0] != "end it all" {
		t.Fatalf("crisis in original missed: %+v", got)
	}
	if got.WordCount != 5 {
		t.Fatalf("word count should follow the analyzed text: %d", got.WordCount)
	}

	calm := a.AnalyzeTranslated(context.Background(), "estoy feliz", "I am happy", nil)
	if calm.RiskLevel == RiskHigh || calm.Source != SourceRules {
		t.Fatalf("calm translation: %+v", calm)
	}
}
