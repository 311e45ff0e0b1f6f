package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/emolit-backend/internal/data/repos"
	types "github.com/yungbote/emolit-backend/internal/domain"
	"github.com/yungbote/emolit-backend/internal/modules/emotion"
	"github.com/yungbote/emolit-backend/internal/modules/progression"
	"github.com/yungbote/emolit-backend/internal/platform/apierr"
	"github.com/yungbote/emolit-backend/internal/platform/logger"
	"github.com/yungbote/emolit-backend/internal/platform/openai"
)

const maxAudioBytes = 25 << 20

var errEmptyTranscript = errors.New("empty transcript")

const transcriptionFailedText = "We couldn't make out your recording this time. Your entry was saved; you can try again or write it down instead."

// Transcriber turns recorded audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}

// Translator renders text in English for analysis.
type Translator interface {
	ToEnglish(ctx context.Context, text, sourceLanguage string) (string, error)
}

type openAITranslator struct {
	client openai.Client
}

func NewOpenAITranslator(client openai.Client) Translator {
	if client == nil {
		return nil
	}
	return &openAITranslator{client: client}
}

func (t *openAITranslator) ToEnglish(ctx context.Context, text, sourceLanguage string) (string, error) {
	system := "Translate the user's journal text into natural English. Preserve tone and emotional nuance. Reply with the translation only."
	user := fmt.Sprintf("Source language: %s\n\n%s", sourceLanguage, text)
	out, err := t.client.GenerateText(ctx, system, user)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

type VoiceEntryInput struct {
	Title     string
	Audio     []byte
	MimeType  string
	Language  string
	IsPrivate bool
}

type VoiceService interface {
	CreateFromAudio(ctx context.Context, userID uuid.UUID, in VoiceEntryInput) (*EntryResult, error)
}

type voiceService struct {
	db          *gorm.DB
	log         *logger.Logger
	entries     repos.JournalEntryRepo
	transcriber Transcriber
	translator  Translator
	analyzer    *emotion.Analyzer
	reflector   *emotion.Reflector
	profiles    ProfileService
	progress    ProgressService
	maxChars    int
	now         func() time.Time
}

func NewVoiceService(
	db *gorm.DB,
	log *logger.Logger,
	entries repos.JournalEntryRepo,
	transcriber Transcriber,
	translator Translator,
	analyzer *emotion.Analyzer,
	reflector *emotion.Reflector,
	profiles ProfileService,
	progress ProgressService,
	maxChars int,
) VoiceService {
	if maxChars <= 0 {
		maxChars = DefaultMaxEntryChars
	}
	return &voiceService{
		db:          db,
		log:         log.With("service", "VoiceService"),
		entries:     entries,
		transcriber: transcriber,
		translator:  translator,
		analyzer:    analyzer,
		reflector:   reflector,
		profiles:    profiles,
		progress:    progress,
		maxChars:    maxChars,
		now:         time.Now,
	}
}

// CreateFromAudio stores a voice entry. A failed transcription is stored with status
// transcription_failed, a neutral analysis and no mood score, and earns no progress.
func (s *voiceService) CreateFromAudio(ctx context.Context, userID uuid.UUID, in VoiceEntryInput) (*EntryResult, error) {
	if s.transcriber == nil {
		return nil, ErrSpeechDisabled
	}
	if len(in.Audio) == 0 {
		return nil, apierr.BadRequest("empty_audio", "audio is required")
	}
	if len(in.Audio) > maxAudioBytes {
		return nil, apierr.BadRequest("audio_too_large", "audio exceeds 25MB")
	}
	title, err := cleanTitle(in.Title)
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	uc := profile.UserContext()
	now := s.now().UTC()

	transcript, err := s.transcriber.Transcribe(ctx, in.Audio, in.MimeType)
	if err == nil && strings.TrimSpace(transcript) == "" {
		err = errEmptyTranscript
	}
	if err != nil {
		s.log.Warn("transcription failed", "user_id", userID.String(), "error", err)
		a := emotion.NeutralAnalysis(0)
		r := emotion.Reflection{
			Text:        transcriptionFailedText,
			Type:        emotion.ResponseFallback,
			Suggestions: []string{},
			RiskLevel:   a.RiskLevel,
		}
		entry := newEntry(userID, title, "", in.IsPrivate, types.JournalSourceVoice, now, profile, a, r)
		entry.Status = types.JournalStatusTranscriptionFailed
		entry.MoodScore = nil
		entry.Language = in.Language
		if _, err := s.entries.Create(ctx, nil, entry); err != nil {
			return nil, fmt.Errorf("store journal entry: %w", err)
		}
		return &EntryResult{Entry: entry, Response: r}, nil
	}

	if r := []rune(transcript); len(r) > s.maxChars {
		transcript = string(r[:s.maxChars])
	}
	analysisText := transcript
	if s.translator != nil && needsTranslation(in.Language) {
		translated, terr := s.translator.ToEnglish(ctx, transcript, in.Language)
		if terr != nil {
			s.log.Warn("translation failed, analyzing original transcript", "user_id", userID.String(), "error", terr)
		} else if translated != "" {
			analysisText = translated
		}
	}

	var a emotion.Analysis
	if analysisText != transcript {
		a = s.analyzer.AnalyzeTranslated(ctx, transcript, analysisText, uc)
	} else {
		a = s.analyzer.Analyze(ctx, analysisText, uc)
	}
	r := s.reflector.Reflect(ctx, analysisText, a, uc)
	entry := newEntry(userID, title, transcript, in.IsPrivate, types.JournalSourceVoice, now, profile, a, r)
	entry.Language = in.Language
	if _, err := s.entries.Create(ctx, nil, entry); err != nil {
		return nil, fmt.Errorf("store journal entry: %w", err)
	}

	res := &EntryResult{Entry: entry, Response: r}
	if pr, err := s.progress.RecordActivity(ctx, userID, progression.Activity{Kind: progression.ActivityJournalEntry}); err != nil {
		s.log.Error("journal activity not recorded", "user_id", userID.String(), "entry_id", entry.ID.String(), "error", err)
	} else {
		res.Progress = &pr
	}
	return res, nil
}

func needsTranslation(lang string) bool {
	lang = strings.ToLower(strings.TrimSpace(lang))
	return lang != "" && lang != "en" && !strings.HasPrefix(lang, "en-")
}
