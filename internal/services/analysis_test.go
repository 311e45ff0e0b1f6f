package services

import (
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/emolit-backend/internal/modules/emotion"
	"github.com/yungbote/emolit-backend/internal/platform/apierr"
)

func TestAnalyzeText(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAnalysisService(env.log, env.analyzer, env.profiles, 50)

	a, err := svc.AnalyzeText(bg, uuid.New(), "I am scared and nervous about tomorrow")
	if err != nil {
		t.Fatalf("AnalyzeText: %v", err)
	}
	if a.Source != emotion.SourceRules || a.WordCount != 7 {
		t.Fatalf("analysis: %+v", a)
	}

	anon, err := svc.AnalyzeText(bg, uuid.Nil, "end it all")
	if err != nil {
		t.Fatalf("AnalyzeText anonymous: %v", err)
	}
	if !anon.IsCrisis() {
		t.Fatalf("crisis phrase missed: %+v", anon)
	}

	_, err = svc.AnalyzeText(bg, uuid.Nil, "this sentence is definitely going to be longer than fifty characters")
	if ae, ok := apierr.As(err); !ok || ae.Code != "text_too_long" {
		t.Fatalf("long text: %v", err)
	}
	if len(svc.Wheel()) == 0 {
		t.Fatalf("wheel categories empty")
	}
}
