package emotion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/yungbote/emolit-backend/internal/pkg/httpx"
)

type fakeLLM struct {
	jsonOut  string
	textOut  string
	err      error
	lastUser string
}

func (f *fakeLLM) GenerateJSON(_ context.Context, _, user, _ string, _ map[string]any, out any) error {
	f.lastUser = user
	if f.err != nil {
		return f.err
	}
	return json.Unmarshal([]byte(f.jsonOut), out)
}

func (f *fakeLLM) GenerateText(_ context.Context, _, user string) (string, error) {
	f.lastUser = user
	return f.textOut, f.err
}

func TestLLMClassifier(t *testing.T) {
	llm := &fakeLLM{jsonOut: `{
		"primary_emotion": {"label": "joy", "confidence": 0.8},
		"secondary_emotions": [{"label": "surprise", "confidence": 0.1}],
		"sentiment": {"label": "positive", "confidence": 0.9},
		"crisis": false
	}`}
	c := NewLLMClassifier(llm)
	cls, err := c.Classify(context.Background(), "Got the job!", &UserContext{RecentEmotions: []string{"fearful"}})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if cls.Primary.Label != "joy" || len(cls.Secondary) != 1 || cls.Sentiment.Label != Positive {
		t.Fatalf("unexpected: %+v", cls)
	}
	if !strings.Contains(llm.lastUser, "fearful") {
		t.Fatalf("user context not forwarded: %q", llm.lastUser)
	}
	if _, ok := llmClassificationSchema["properties"].(map[string]any)["primary_emotion"]; !ok {
		t.Fatalf("schema missing primary_emotion")
	}
}

func TestLLMClassifierError(t *testing.T) {
	c := NewLLMClassifier(&fakeLLM{err: errors.New("503")})
	if _, err := c.Classify(context.Background(), "x", nil); err == nil {
		t.Fatalf("expected error")
	}
}

func TestModelServerClassifier(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/classify" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["text"] == "" {
			http.Error(w, "missing text", http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{
			"emotions": [{"label":"fear","score":0.2},{"label":"sadness","score":0.7},{"label":"neutral","score":0.05},{"label":"joy","score":0.05}],
			"sentiment": [{"label":"LABEL_1","score":0.3},{"label":"LABEL_0","score":0.6}]
		}`))
	}))
	defer srv.Close()

	c := NewModelServerClassifier(srv.URL+"/", time.Second)
	cls, err := c.Classify(context.Background(), "rough week", nil)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if cls.Primary.Label != "sadness" || cls.Sentiment.Label != Negative {
		t.Fatalf("unexpected: %+v", cls)
	}
	if len(cls.Secondary) != 2 || cls.Secondary[0].Label != "fear" {
		t.Fatalf("secondary: %+v", cls.Secondary)
	}
}

func TestModelServerClassifierStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewModelServerClassifier(srv.URL, time.Second).Classify(context.Background(), "x", nil)
	var se *httpx.StatusError
	if !errors.As(err, &se) || se.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status error, got %v", err)
	}
	if !httpx.IsRetryableError(err) {
		t.Fatalf("503 should be retryable")
	}
}

func TestReflectorCrisisNeverCallsModel(t *testing.T) {
	llm := &fakeLLM{textOut: "should not be used"}
	r := NewReflector(nil, llm, nil)
	got := r.Reflect(context.Background(), "I want to die", crisisAnalysis([]string{"want to die"}, 4), &UserContext{Country: "us"})
	if got.Type != ResponseCrisis || got.RiskLevel != RiskHigh {
		t.Fatalf("unexpected: %+v", got)
	}
	if got.Resource == nil || !strings.Contains(got.Text, "988") {
		t.Fatalf("resource missing: %+v", got)
	}
	if llm.lastUser != "" {
		t.Fatalf("model consulted for crisis text")
	}
}

func TestReflectorFallbacks(t *testing.T) {
	a := Analysis{RiskLevel: RiskLow, MoodScore: 8}
	got := NewReflector(nil, nil, nil).Reflect(context.Background(), "nice day", a, nil)
	if got.Type != ResponseSupportive || !strings.Contains(got.Text, "generally positive or lighter") {
		t.Fatalf("no-client fallback: %+v", got)
	}

	got = NewReflector(nil, &fakeLLM{err: errors.New("down")}, nil).Reflect(context.Background(), "meh", Analysis{MoodScore: 2}, nil)
	if got.Type != ResponseFallback || !strings.Contains(got.Text, "heavy or emotionally difficult") {
		t.Fatalf("error fallback: %+v", got)
	}

	got = NewReflector(nil, &fakeLLM{textOut: "It sounds like a calm day."}, nil).Reflect(context.Background(), "ok", Analysis{MoodScore: 5}, nil)
	if got.Text != "It sounds like a calm day." || len(got.Suggestions) != 3 {
		t.Fatalf("model reply: %+v", got)
	}
}
