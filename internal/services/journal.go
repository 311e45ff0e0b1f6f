package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/emolit-backend/internal/data/repos"
	types "github.com/yungbote/emolit-backend/internal/domain"
	"github.com/yungbote/emolit-backend/internal/modules/emotion"
	"github.com/yungbote/emolit-backend/internal/modules/progression"
	"github.com/yungbote/emolit-backend/internal/platform/apierr"
	"github.com/yungbote/emolit-backend/internal/platform/logger"
)

const (
	previewChars     = 200
	defaultPageLimit = 20
	maxPageLimit     = 100
	maxTitleChars    = 200
)

type CreateEntryInput struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	IsPrivate bool   `json:"is_private"`
}

type UpdateEntryInput struct {
	Title     *string `json:"title"`
	IsPrivate *bool   `json:"is_private"`
}

type EntryResult struct {
	Entry    *types.JournalEntry `json:"entry"`
	Response emotion.Reflection  `json:"ai_response"`
	// Progress is nil when the ledger could not be updated; the entry is still stored.
	Progress *ActivityResult `json:"progress,omitempty"`
}

type EntrySummary struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	Preview          string    `json:"preview"`
	Source           string    `json:"source"`
	Status           string    `json:"status"`
	IsPrivate        bool      `json:"is_private"`
	DetectedEmotions []string  `json:"detected_emotions"`
	RiskLevel        string    `json:"risk_level"`
	MoodScore        *int      `json:"mood_score,omitempty"`
	WordCount        int       `json:"word_count"`
	CreatedAt        time.Time `json:"created_at"`
}

type EntryPage struct {
	Entries []EntrySummary `json:"entries"`
	Total   int64          `json:"total"`
	Skip    int            `json:"skip"`
	Limit   int            `json:"limit"`
}

type JournalService interface {
	Create(ctx context.Context, userID uuid.UUID, in CreateEntryInput) (*EntryResult, error)
	List(ctx context.Context, userID uuid.UUID, skip, limit int) (EntryPage, error)
	Get(ctx context.Context, userID, entryID uuid.UUID) (*types.JournalEntry, error)
	Update(ctx context.Context, userID, entryID uuid.UUID, in UpdateEntryInput) (*types.JournalEntry, error)
}

type journalService struct {
	db        *gorm.DB
	log       *logger.Logger
	entries   repos.JournalEntryRepo
	analyzer  *emotion.Analyzer
	reflector *emotion.Reflector
	profiles  ProfileService
	progress  ProgressService
	maxChars  int
	now       func() time.Time
}

func NewJournalService(
	db *gorm.DB,
	log *logger.Logger,
	entries repos.JournalEntryRepo,
	analyzer *emotion.Analyzer,
	reflector *emotion.Reflector,
	profiles ProfileService,
	progress ProgressService,
	maxChars int,
) JournalService {
	if maxChars <= 0 {
		maxChars = DefaultMaxEntryChars
	}
	return &journalService{
		db:        db,
		log:       log.With("service", "JournalService"),
		entries:   entries,
		analyzer:  analyzer,
		reflector: reflector,
		profiles:  profiles,
		progress:  progress,
		maxChars:  maxChars,
		now:       time.Now,
	}
}

func (s *journalService) Create(ctx context.Context, userID uuid.UUID, in CreateEntryInput) (*EntryResult, error) {
	if err := ValidateText(in.Content, s.maxChars); err != nil {
		return nil, err
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
	analysis := s.analyzer.Analyze(ctx, in.Content, uc)
	reflection := s.reflector.Reflect(ctx, in.Content, analysis, uc)

	entry := newEntry(userID, title, in.Content, in.IsPrivate, types.JournalSourceText, s.now().UTC(), profile, analysis, reflection)
	if _, err := s.entries.Create(ctx, nil, entry); err != nil {
		return nil, fmt.Errorf("store journal entry: %w", err)
	}
	if analysis.IsCrisis() {
		s.log.Warn("crisis indicators in journal entry", "user_id", userID.String(), "entry_id", entry.ID.String(), "source", analysis.Source)
	}

	return &EntryResult{Entry: entry, Response: reflection, Progress: s.recordJournal(ctx, userID, entry.ID)}, nil
}

func (s *journalService) recordJournal(ctx context.Context, userID, entryID uuid.UUID) *ActivityResult {
	res, err := s.progress.RecordActivity(ctx, userID, progression.Activity{Kind: progression.ActivityJournalEntry})
	if err != nil {
		s.log.Error("journal activity not recorded", "user_id", userID.String(), "entry_id", entryID.String(), "error", err)
		return nil
	}
	return &res
}

func (s *journalService) List(ctx context.Context, userID uuid.UUID, skip, limit int) (EntryPage, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	rows, total, err := s.entries.List(ctx, nil, userID, skip, limit)
	if err != nil {
		return EntryPage{}, fmt.Errorf("list journal entries: %w", err)
	}
	out := make([]EntrySummary, 0, len(rows))
	for _, e := range rows {
		out = append(out, EntrySummary{
			ID:               e.ID,
			Title:            e.Title,
			Preview:          Preview(e.Content, previewChars),
			Source:           e.Source,
			Status:           e.Status,
			IsPrivate:        e.IsPrivate,
			DetectedEmotions: []string(e.DetectedEmotions),
			RiskLevel:        e.RiskLevel,
			MoodScore:        e.MoodScore,
			WordCount:        e.WordCount,
			CreatedAt:        e.CreatedAt,
		})
	}
	return EntryPage{Entries: out, Total: total, Skip: skip, Limit: limit}, nil
}

func (s *journalService) Get(ctx context.Context, userID, entryID uuid.UUID) (*types.JournalEntry, error) {
	e, err := s.entries.GetByID(ctx, nil, userID, entryID)
	if err != nil {
		return nil, fmt.Errorf("load journal entry: %w", err)
	}
	if e == nil {
		return nil, ErrEntryNotFound
	}
	return e, nil
}

func (s *journalService) Update(ctx context.Context, userID, entryID uuid.UUID, in UpdateEntryInput) (*types.JournalEntry, error) {
	if in.Title != nil {
		t, err := cleanTitle(*in.Title)
		if err != nil {
			return nil, err
		}
		in.Title = &t
	}
	if in.Title == nil && in.IsPrivate == nil {
		return nil, apierr.BadRequest("empty_update", "nothing to update")
	}
	ok, err := s.entries.UpdateMeta(ctx, nil, userID, entryID, in.Title, in.IsPrivate)
	if err != nil {
		return nil, fmt.Errorf("update journal entry: %w", err)
	}
	if !ok {
		return nil, ErrEntryNotFound
	}
	return s.Get(ctx, userID, entryID)
}

func newEntry(userID uuid.UUID, title, content string, private bool, source string, now time.Time, profile Profile, a emotion.Analysis, r emotion.Reflection) *types.JournalEntry {
	status := types.JournalStatusAnalyzed
	mood := a.MoodScore
	return &types.JournalEntry{
		ID:               uuid.New(),
		UserID:           userID,
		Title:            title,
		Content:          content,
		IsPrivate:        private,
		Source:           source,
		Status:           status,
		Analysis:         datatypes.NewJSONType(a),
		Reflection:       datatypes.NewJSONType(r),
		DetectedEmotions: datatypes.JSONSlice[string](append([]string{}, a.WheelEmotions...)),
		RiskLevel:        string(a.RiskLevel),
		MoodScore:        &mood,
		WordCount:        a.WordCount,
		LocalDate:        profile.Today(now),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func cleanTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if utf8.RuneCountInString(title) > maxTitleChars {
		return "", apierr.BadRequest("title_too_long", fmt.Sprintf("title exceeds %d characters", maxTitleChars))
	}
	return title, nil
}

// Preview truncates s to at most n runes, marking the cut with an ellipsis.
func Preview(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n]) + "..."
}
