package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/yungbote/emolit-backend/internal/data/repos"
	types "github.com/yungbote/emolit-backend/internal/domain"
	vocabdomain "github.com/yungbote/emolit-backend/internal/domain/vocab"
	"github.com/yungbote/emolit-backend/internal/modules/progression"
	"github.com/yungbote/emolit-backend/internal/modules/quiz"
	"github.com/yungbote/emolit-backend/internal/platform/apierr"
	"github.com/yungbote/emolit-backend/internal/platform/logger"
)

const (
	defaultQuizLimit = 5
	maxQuizLimit     = 20
	maxQuizAnswers   = 50
)

// QuizRecorder is the metrics surface used by the quiz.
type QuizRecorder interface {
	ObserveQuizAnswer(correct bool)
}

// CorpusProvider loads the vocabulary once per process. A failed load is not cached.
type CorpusProvider struct {
	log   *logger.Logger
	vocab repos.VocabularyRepo
	path  string

	gen   atomic.Pointer[quiz.Generator]
	group singleflight.Group
}

// NewCorpusProvider reads from the store, seeding it from path (or the bundled list) when empty.
func NewCorpusProvider(log *logger.Logger, vocab repos.VocabularyRepo, path string) *CorpusProvider {
	return &CorpusProvider{log: log.With("service", "CorpusProvider"), vocab: vocab, path: path}
}

func (p *CorpusProvider) Generator(ctx context.Context) (*quiz.Generator, error) {
	if g := p.gen.Load(); g != nil {
		return g, nil
	}
	v, err, _ := p.group.Do("corpus", func() (any, error) {
		if g := p.gen.Load(); g != nil {
			return g, nil
		}
		words, err := p.load(ctx)
		if err != nil {
			return nil, err
		}
		c := quiz.NewCorpus(words)
		if c.Len() == 0 {
			return nil, quiz.ErrCorpusNotReady
		}
		g := quiz.NewGenerator(c)
		p.gen.Store(g)
		p.log.Info("vocabulary corpus loaded", "words", c.Len())
		return g, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*quiz.Generator), nil
}

func (p *CorpusProvider) load(ctx context.Context) ([]quiz.Word, error) {
	rows, err := p.vocab.ListAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}
	if len(rows) > 0 {
		return lo.Map(rows, func(r *types.VocabularyWord, _ int) quiz.Word { return r.QuizWord() }), nil
	}

	words, err := p.seedWords()
	if err != nil {
		return nil, err
	}
	if _, err := ImportWords(ctx, p.vocab, words); err != nil {
		p.log.Warn("vocabulary seed not persisted", "error", err)
	}
	return words, nil
}

func (p *CorpusProvider) seedWords() ([]quiz.Word, error) {
	if p.path == "" {
		return quiz.DefaultWords()
	}
	f, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("open vocabulary file: %w", err)
	}
	defer f.Close()
	return quiz.LoadWords(f)
}

// ImportWords upserts words into the store and returns how many were valid.
func ImportWords(ctx context.Context, vocab repos.VocabularyRepo, words []quiz.Word) (int, error) {
	c := quiz.NewCorpus(words)
	rows := make([]*types.VocabularyWord, 0, c.Len())
	for i := 0; i < c.Len(); i++ {
		row := vocabdomain.FromQuizWord(c.At(i))
		rows = append(rows, &row)
	}
	if err := vocab.Upsert(ctx, nil, rows); err != nil {
		return 0, fmt.Errorf("store vocabulary: %w", err)
	}
	return len(rows), nil
}

type QuizFilter struct {
	Limit      int
	Difficulty string
	Category   string
}

type QuizAnswerInput struct {
	WordID        string `json:"word_id"`
	SelectedIndex int    `json:"selected_index"`
}

type ValidateResult struct {
	WordID       string `json:"word_id"`
	Correct      bool   `json:"correct"`
	CorrectIndex int    `json:"correct_index"`
	Definition   string `json:"correct_definition"`
	Example      string `json:"example"`
}

type SubmitResult struct {
	TotalQuestions int                `json:"total_questions"`
	CorrectAnswers int                `json:"correct_answers"`
	ScorePercent   int                `json:"score_percent"`
	XPAwarded      int64              `json:"xp_awarded"`
	Results        []types.QuizAnswer `json:"results"`
	Progress       *ActivityResult    `json:"progress,omitempty"`
}

type WordOfTheDay struct {
	quiz.Word
	Date      string `json:"date"`
	XPAwarded int64  `json:"xp_awarded"`
}

type QuizService interface {
	Questions(ctx context.Context, userID uuid.UUID, f QuizFilter) ([]quiz.Question, error)
	Validate(ctx context.Context, in QuizAnswerInput) (ValidateResult, error)
	Submit(ctx context.Context, userID uuid.UUID, answers []QuizAnswerInput) (SubmitResult, error)
	WordOfTheDay(ctx context.Context, userID uuid.UUID) (WordOfTheDay, error)
}

type quizService struct {
	db       *gorm.DB
	log      *logger.Logger
	corpus   *CorpusProvider
	attempts repos.QuizAttemptRepo
	profiles ProfileService
	progress ProgressService
	recorder QuizRecorder
	now      func() time.Time
}

func NewQuizService(
	db *gorm.DB,
	log *logger.Logger,
	corpus *CorpusProvider,
	attempts repos.QuizAttemptRepo,
	profiles ProfileService,
	progress ProgressService,
	recorder QuizRecorder,
) QuizService {
	return &quizService{
		db:       db,
		log:      log.With("service", "QuizService"),
		corpus:   corpus,
		attempts: attempts,
		profiles: profiles,
		progress: progress,
		recorder: recorder,
		now:      time.Now,
	}
}

func (s *quizService) Questions(ctx context.Context, userID uuid.UUID, f QuizFilter) ([]quiz.Question, error) {
	gen, err := s.corpus.Generator(ctx)
	if err != nil {
		return nil, err
	}
	limit := f.Limit
	if limit <= 0 {
		limit = defaultQuizLimit
	}
	if limit > maxQuizLimit {
		limit = maxQuizLimit
	}
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	seed := quiz.SelectionSeed(userID.String(), profile.Today(s.now()))
	return gen.Select(f.Difficulty, f.Category, limit, seed)
}

func (s *quizService) Validate(ctx context.Context, in QuizAnswerInput) (ValidateResult, error) {
	gen, err := s.corpus.Generator(ctx)
	if err != nil {
		return ValidateResult{}, err
	}
	w, ok := gen.Corpus().Get(in.WordID)
	if !ok {
		return ValidateResult{}, fmt.Errorf("%w: %s", quiz.ErrWordNotFound, in.WordID)
	}
	q, err := gen.Generate(w)
	if err != nil {
		return ValidateResult{}, err
	}
	if in.SelectedIndex < 0 || in.SelectedIndex >= len(q.Options) {
		return ValidateResult{}, apierr.BadRequest("invalid_option", fmt.Sprintf("selected_index must be between 0 and %d", len(q.Options)-1))
	}
	correct := in.SelectedIndex == q.CorrectIndex
	if s.recorder != nil {
		s.recorder.ObserveQuizAnswer(correct)
	}
	return ValidateResult{
		WordID:       w.ID,
		Correct:      correct,
		CorrectIndex: q.CorrectIndex,
		Definition:   w.Definition,
		Example:      w.Example,
	}, nil
}

func (s *quizService) Submit(ctx context.Context, userID uuid.UUID, answers []QuizAnswerInput) (SubmitResult, error) {
	if len(answers) == 0 {
		return SubmitResult{}, apierr.BadRequest("empty_answers", "answers are required")
	}
	if len(answers) > maxQuizAnswers {
		return SubmitResult{}, apierr.BadRequest("too_many_answers", fmt.Sprintf("at most %d answers per submission", maxQuizAnswers))
	}
	answers = lo.UniqBy(answers, func(a QuizAnswerInput) string { return a.WordID })

	results := make([]types.QuizAnswer, 0, len(answers))
	correct := 0
	for _, a := range answers {
		v, err := s.Validate(ctx, a)
		if err != nil {
			return SubmitResult{}, err
		}
		if v.Correct {
			correct++
		}
		results = append(results, types.QuizAnswer{WordID: a.WordID, SelectedIndex: a.SelectedIndex, IsCorrect: v.Correct})
	}
	out := SubmitResult{
		TotalQuestions: len(results),
		CorrectAnswers: correct,
		ScorePercent:   correct * 100 / len(results),
		Results:        results,
	}

	pr, err := s.progress.RecordActivity(ctx, userID, progression.Activity{Kind: progression.ActivityQuizCompleted, CorrectAnswers: correct})
	if err != nil {
		if errors.Is(err, ErrProgressConflict) {
			return SubmitResult{}, err
		}
		return SubmitResult{}, fmt.Errorf("record quiz activity: %w", err)
	}
	out.Progress = &pr
	out.XPAwarded = pr.XPAwarded

	if err := s.attempts.Create(ctx, nil, &types.QuizAttempt{
		UserID:         userID,
		TotalQuestions: out.TotalQuestions,
		CorrectAnswers: out.CorrectAnswers,
		ScorePercent:   out.ScorePercent,
		XPAwarded:      out.XPAwarded,
		Answers:        results,
		LocalDate:      pr.Date,
		CreatedAt:      s.now().UTC(),
	}); err != nil {
		s.log.Warn("quiz attempt not stored", "user_id", userID.String(), "error", err)
	}
	return out, nil
}

func (s *quizService) WordOfTheDay(ctx context.Context, userID uuid.UUID) (WordOfTheDay, error) {
	gen, err := s.corpus.Generator(ctx)
	if err != nil {
		return WordOfTheDay{}, err
	}
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return WordOfTheDay{}, err
	}
	today := profile.Today(s.now())
	w, err := gen.DailyWord(today)
	if err != nil {
		return WordOfTheDay{}, err
	}
	out := WordOfTheDay{Word: w, Date: today}
	pr, err := s.progress.RecordActivity(ctx, userID, progression.Activity{Kind: progression.ActivityDailyWord})
	if err != nil {
		s.log.Warn("daily word activity not recorded", "user_id", userID.String(), "error", err)
		return out, nil
	}
	out.XPAwarded = pr.XPAwarded
	return out, nil
}
