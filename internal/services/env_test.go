package services

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/emolit-backend/internal/data/repos"
	"github.com/yungbote/emolit-backend/internal/data/repos/testutil"
	"github.com/yungbote/emolit-backend/internal/modules/emotion"
	"github.com/yungbote/emolit-backend/internal/pkg/keylock"
	"github.com/yungbote/emolit-backend/internal/platform/logger"
)

type testEnv struct {
	db       *gorm.DB
	log      *logger.Logger
	clock    *fakeClock
	entries  repos.JournalEntryRepo
	progRepo repos.UserProgressRepo
	events   repos.ActivityEventRepo
	attempts repos.QuizAttemptRepo
	vocab    repos.VocabularyRepo
	settings repos.UserSettingsRepo

	profiles  ProfileService
	progress  ProgressService
	analyzer  *emotion.Analyzer
	reflector *emotion.Reflector
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	env := &testEnv{
		db:       db,
		log:      log,
		clock:    &fakeClock{t: time.Date(2024, 3, 11, 15, 0, 0, 0, time.UTC)},
		entries:  repos.NewJournalEntryRepo(db, log),
		progRepo: repos.NewUserProgressRepo(db, log),
		events:   repos.NewActivityEventRepo(db, log),
		attempts: repos.NewQuizAttemptRepo(db, log),
		vocab:    repos.NewVocabularyRepo(db, log),
		settings: repos.NewUserSettingsRepo(db, log),
	}
	profiles, err := NewProfileService(db, log, env.settings, ProfileConfig{DefaultTimezone: "UTC", CacheTTL: time.Minute})
	if err != nil {
		t.Fatalf("NewProfileService: %v", err)
	}
	env.profiles = profiles
	env.progress = NewProgressService(db, log, env.progRepo, env.events, env.entries, profiles, keylock.New(), nil, ProgressConfig{
		BaseBackoff: time.Millisecond,
		Now:         env.clock.Now,
	})
	env.analyzer = emotion.NewAnalyzer(emotion.AnalyzerDeps{Log: log}, emotion.AnalyzerConfig{})
	env.reflector = emotion.NewReflector(log, nil, nil)
	return env
}

func (e *testEnv) journal() JournalService {
	js := NewJournalService(e.db, e.log, e.entries, e.analyzer, e.reflector, e.profiles, e.progress, 0).(*journalService)
	js.now = e.clock.Now
	return js
}

func (e *testEnv) quiz() QuizService {
	qs := NewQuizService(e.db, e.log, NewCorpusProvider(e.log, e.vocab, ""), e.attempts, e.profiles, e.progress, nil).(*quizService)
	qs.now = e.clock.Now
	return qs
}

var bg = context.Background()
