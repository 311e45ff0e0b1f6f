package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/yungbote/emolit-backend/internal/domain"
	"github.com/yungbote/emolit-backend/internal/modules/emotion"
)

type stubTranscriber struct {
	text string
	err  error
}

func (s stubTranscriber) Transcribe(context.Context, []byte, string) (string, error) {
	return s.text, s.err
}

type stubTranslator struct {
	calls int
	out   string
}

func (s *stubTranslator) ToEnglish(_ context.Context, _ string, _ string) (string, error) {
	s.calls++
	return s.out, nil
}

func (e *testEnv) voice(tr Transcriber, tl Translator) VoiceService {
	vs := NewVoiceService(e.db, e.log, e.entries, tr, tl, e.analyzer, e.reflector, e.profiles, e.progress, 0).(*voiceService)
	vs.now = e.clock.Now
	return vs
}

func TestVoiceEntryTranscribedAndAnalyzed(t *testing.T) {
	env := newTestEnv(t)
	tl := &stubTranslator{out: "I am so happy today"}
	svc := env.voice(stubTranscriber{text: "estoy muy feliz hoy"}, tl)

	res, err := svc.CreateFromAudio(bg, uuid.New(), VoiceEntryInput{Audio: []byte("RIFF"), MimeType: "audio/wav", Language: "es"})
	if err != nil {
		t.Fatalf("CreateFromAudio: %v", err)
	}
	if tl.calls != 1 {
		t.Fatalf("translator calls: %d", tl.calls)
	}
	if res.Entry.Content != "estoy muy feliz hoy" || res.Entry.Source != types.JournalSourceVoice || res.Entry.Language != "es" {
		t.Fatalf("entry: %+v", res.Entry)
	}
	if res.Entry.Status != types.JournalStatusAnalyzed || res.Progress == nil || res.Progress.XPAwarded != 50 {
		t.Fatalf("status=%s progress=%+v", res.Entry.Status, res.Progress)
	}
}

func TestVoiceEntryCrisisInTranscriptSurvivesTranslation(t *testing.T) {
	env := newTestEnv(t)
	tl := &stubTranslator{out: "I am a little tired today"}
	svc := env.voice(stubTranscriber{text: "honestly I want to end it all"}, tl)

	res, err := svc.CreateFromAudio(bg, uuid.New(), VoiceEntryInput{Audio: []byte("RIFF"), MimeType: "audio/wav", Language: "es"})
	if err != nil {
		t.Fatalf("CreateFromAudio: %v", err)
	}
	if tl.calls != 1 {
		t.Fatalf("translator calls: %d", tl.calls)
	}
	if res.Entry.RiskLevel != string(emotion.RiskHigh) || res.Response.Type != emotion.ResponseCrisis {
		t.Fatalf("crisis in original transcript missed: risk=%s response=%+v", res.Entry.RiskLevel, res.Response)
	}
}

func TestVoiceEntryTranscriptionFailure(t *testing.T) {
	env := newTestEnv(t)
	svc := env.voice(stubTranscriber{err: errors.New("speech backend down")}, nil)
	userID := uuid.New()

	res, err := svc.CreateFromAudio(bg, userID, VoiceEntryInput{Audio: []byte("RIFF"), MimeType: "audio/wav"})
	if err != nil {
		t.Fatalf("CreateFromAudio: %v", err)
	}
	if res.Entry.Status != types.JournalStatusTranscriptionFailed || res.Progress != nil {
		t.Fatalf("entry: %+v progress=%+v", res.Entry, res.Progress)
	}
	if res.Response.Type != emotion.ResponseFallback || res.Entry.RiskLevel != string(emotion.RiskUnknown) {
		t.Fatalf("response: %+v", res.Response)
	}
	row, err := env.progRepo.GetOrCreate(bg, nil, userID)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if row.TotalXP != 0 {
		t.Fatalf("failed transcription must not award XP: %+v", row)
	}
	if res.Entry.MoodScore != nil {
		t.Fatalf("failed transcription stored a mood score: %d", *res.Entry.MoodScore)
	}
	recent, err := env.entries.ListRecent(bg, nil, userID, 10)
	if err != nil || len(recent) != 0 {
		t.Fatalf("failed transcription counted in trend window: %v %v", recent, err)
	}
	days, err := env.entries.ListCreatedSince(bg, nil, userID, env.clock.Now().Add(-24*time.Hour))
	if err != nil || len(days) != 0 {
		t.Fatalf("failed transcription counted as activity: %v %v", days, err)
	}
}

func TestVoiceEntryRejections(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.voice(nil, nil).CreateFromAudio(bg, uuid.New(), VoiceEntryInput{Audio: []byte("x")}); !errors.Is(err, ErrSpeechDisabled) {
		t.Fatalf("disabled: %v", err)
	}
	svc := env.voice(stubTranscriber{text: "hi"}, nil)
	if _, err := svc.CreateFromAudio(bg, uuid.New(), VoiceEntryInput{}); err == nil {
		t.Fatalf("empty audio accepted")
	}
	if _, err := svc.CreateFromAudio(bg, uuid.New(), VoiceEntryInput{Audio: make([]byte, maxAudioBytes+1)}); err == nil {
		t.Fatalf("oversized audio accepted")
	}
}

func TestNeedsTranslation(t *testing.T) {
	for lang, want := range map[string]bool{"": false, "en": false, "en-GB": false, "EN": false, "es": true, "ja-JP": true} {
		if got := needsTranslation(lang); got != want {
			t.Fatalf("%q: got %v", lang, got)
		}
	}
}
