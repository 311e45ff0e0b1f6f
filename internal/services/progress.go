package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/emolit-backend/internal/data/repos"
	types "github.com/yungbote/emolit-backend/internal/domain"
	"github.com/yungbote/emolit-backend/internal/modules/progression"
	"github.com/yungbote/emolit-backend/internal/platform/apierr"
	"github.com/yungbote/emolit-backend/internal/platform/logger"
)

const recentEntryWindow = progression.TrendWindow

// ActivityRecorder is the metrics surface used by progression.
type ActivityRecorder interface {
	ObserveActivity(kind string, xp int64)
	IncProgressConflict()
}

type nopActivityRecorder struct{}

func (nopActivityRecorder) ObserveActivity(string, int64) {}
func (nopActivityRecorder) IncProgressConflict()          {}

type ProgressView struct {
	progression.LevelInfo
	CurrentStreak       int                     `json:"current_streak"`
	LongestStreak       int                     `json:"longest_streak"`
	WordsLearned        int                     `json:"words_learned"`
	JournalEntriesCount int                     `json:"journal_entries_count"`
	LastActivityDate    string                  `json:"last_activity_date,omitempty"`
	Milestones          []progression.Milestone `json:"milestones"`
	EmotionalTrends     progression.Trend       `json:"emotional_trends"`
	JournalThemes       []progression.Theme     `json:"journal_themes"`
	LastUpdated         time.Time               `json:"last_updated"`
}

type WeeklyView struct {
	WeeklyActivity []progression.DayActivity `json:"weekly_activity"`
	ActiveDays     int                       `json:"active_days"`
	TotalDays      int                       `json:"total_days"`
}

type ActivityResult struct {
	progression.Delta
	Progress progression.LevelInfo `json:"progress"`
	Date     string                `json:"date"`
}

type ProgressService interface {
	RecordActivity(ctx context.Context, userID uuid.UUID, act progression.Activity) (ActivityResult, error)
	GetProgress(ctx context.Context, userID uuid.UUID) (ProgressView, error)
	WeeklyActivity(ctx context.Context, userID uuid.UUID) (WeeklyView, error)
}

type ProgressConfig struct {
	Policy      progression.Policy
	MaxAttempts uint
	// BaseBackoff is the first retry delay after a version conflict.
	BaseBackoff time.Duration
	Now         func() time.Time
}

type progressService struct {
	db       *gorm.DB
	log      *logger.Logger
	progress repos.UserProgressRepo
	events   repos.ActivityEventRepo
	entries  repos.JournalEntryRepo
	profiles ProfileService
	locker   UserLocker
	recorder ActivityRecorder
	cfg      ProgressConfig
}

func NewProgressService(
	db *gorm.DB,
	log *logger.Logger,
	progress repos.UserProgressRepo,
	events repos.ActivityEventRepo,
	entries repos.JournalEntryRepo,
	profiles ProfileService,
	locker UserLocker,
	recorder ActivityRecorder,
	cfg ProgressConfig,
) ProgressService {
	if cfg.Policy == (progression.Policy{}) {
		cfg.Policy = progression.DefaultPolicy()
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = 20 * time.Millisecond
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if recorder == nil {
		recorder = nopActivityRecorder{}
	}
	return &progressService{
		db:       db,
		log:      log.With("service", "ProgressService"),
		progress: progress,
		events:   events,
		entries:  entries,
		profiles: profiles,
		locker:   locker,
		recorder: recorder,
		cfg:      cfg,
	}
}

var errVersionConflict = errors.New("progress version conflict")

func (s *progressService) RecordActivity(ctx context.Context, userID uuid.UUID, act progression.Activity) (ActivityResult, error) {
	if !act.Kind.Valid() {
		return ActivityResult{}, apierr.BadRequest("invalid_activity_kind", fmt.Sprintf("unknown activity kind %q", act.Kind))
	}
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return ActivityResult{}, err
	}
	today := profile.Today(s.cfg.Now())

	if s.locker != nil {
		unlock, err := s.locker.Lock(ctx, userID)
		if err != nil {
			return ActivityResult{}, fmt.Errorf("lock user progress: %w", err)
		}
		defer unlock()
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.cfg.BaseBackoff
	b.MaxInterval = 20 * s.cfg.BaseBackoff

	result, err := backoff.Retry(ctx, func() (ActivityResult, error) {
		row, err := s.progress.GetOrCreate(ctx, nil, userID)
		if err != nil {
			return ActivityResult{}, backoff.Permanent(err)
		}
		next, delta, err := s.cfg.Policy.Apply(row.Snapshot(), act, today)
		if err != nil {
			return ActivityResult{}, backoff.Permanent(err)
		}
		row.Apply(next)
		ok, err := s.progress.UpdateVersioned(ctx, nil, row)
		if err != nil {
			return ActivityResult{}, backoff.Permanent(err)
		}
		if !ok {
			s.recorder.IncProgressConflict()
			return ActivityResult{}, errVersionConflict
		}
		return ActivityResult{Delta: delta, Progress: progression.Describe(next.TotalXP), Date: today}, nil
	}, backoff.WithBackOff(b), backoff.WithMaxTries(s.cfg.MaxAttempts))
	if err != nil {
		if errors.Is(err, errVersionConflict) {
			s.log.Warn("progress update retries exhausted", "user_id", userID.String(), "kind", string(act.Kind))
			return ActivityResult{}, ErrProgressConflict
		}
		return ActivityResult{}, err
	}

	s.recorder.ObserveActivity(string(act.Kind), result.XPAwarded)
	if err := s.events.Create(ctx, nil, &types.ActivityEvent{
		UserID:    userID,
		Kind:      string(act.Kind),
		XPAwarded: result.XPAwarded,
		LocalDate: today,
		CreatedAt: s.cfg.Now().UTC(),
	}); err != nil {
		s.log.Warn("activity event not stored", "user_id", userID.String(), "error", err)
	}
	if result.LeveledUp() {
		s.log.Info("level up", "user_id", userID.String(), "level", result.LevelAfter)
	}
	return result, nil
}

func (s *progressService) GetProgress(ctx context.Context, userID uuid.UUID) (ProgressView, error) {
	var (
		row    *types.UserProgress
		recent []*types.JournalEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		row, err = s.progress.GetOrCreate(gctx, nil, userID)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.entries.ListRecent(gctx, nil, userID, recentEntryWindow)
		return err
	})
	if err := g.Wait(); err != nil {
		return ProgressView{}, fmt.Errorf("load progress: %w", err)
	}

	signals := make([]progression.EntrySignal, 0, len(recent))
	for _, e := range recent {
		signals = append(signals, progression.EntrySignal{Emotions: []string(e.DetectedEmotions), MoodScore: e.MoodScore})
	}
	snap := row.Snapshot()
	return ProgressView{
		LevelInfo:           progression.Describe(snap.TotalXP),
		CurrentStreak:       snap.CurrentStreak,
		LongestStreak:       snap.LongestStreak,
		WordsLearned:        snap.WordsLearned,
		JournalEntriesCount: snap.JournalEntriesCount,
		LastActivityDate:    snap.LastActivityDate,
		Milestones:          progression.Milestones(snap),
		EmotionalTrends:     progression.AnalyzeTrend(signals),
		JournalThemes:       progression.Themes(signals),
		LastUpdated:         row.UpdatedAt,
	}, nil
}

func (s *progressService) WeeklyActivity(ctx context.Context, userID uuid.UUID) (WeeklyView, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return WeeklyView{}, err
	}
	now := s.cfg.Now()
	today := profile.Today(now)
	start, err := progression.WeekStart(today)
	if err != nil {
		return WeeklyView{}, err
	}
	startLocal, err := time.ParseInLocation(progression.DateLayout, start, profile.Location)
	if err != nil {
		return WeeklyView{}, err
	}
	times, err := s.entries.ListCreatedSince(ctx, nil, userID, startLocal)
	if err != nil {
		return WeeklyView{}, fmt.Errorf("load week entries: %w", err)
	}
	days, err := progression.WeeklyActivity(today, times, profile.Location)
	if err != nil {
		return WeeklyView{}, err
	}
	active := 0
	for _, d := range days {
		if d.Active {
			active++
		}
	}
	return WeeklyView{WeeklyActivity: days, ActiveDays: active, TotalDays: len(days)}, nil
}
