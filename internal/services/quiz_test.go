package services

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/yungbote/emolit-backend/internal/domain"
	"github.com/yungbote/emolit-backend/internal/modules/quiz"
	"github.com/yungbote/emolit-backend/internal/platform/apierr"
)

func TestCorpusProviderSeedsStore(t *testing.T) {
	env := newTestEnv(t)
	p := NewCorpusProvider(env.log, env.vocab, "")

	gen, err := p.Generator(bg)
	if err != nil {
		t.Fatalf("Generator: %v", err)
	}
	n, err := env.vocab.Count(bg, nil)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if int(n) != gen.Corpus().Len() || n == 0 {
		t.Fatalf("seeded %d rows for %d words", n, gen.Corpus().Len())
	}
	again, err := p.Generator(bg)
	if err != nil || again != gen {
		t.Fatalf("generator should be cached: %v", err)
	}
}

func TestCorpusProviderMissingFileIsNotCached(t *testing.T) {
	env := newTestEnv(t)
	p := NewCorpusProvider(env.log, env.vocab, "/nonexistent/vocabulary.yaml")
	if _, err := p.Generator(bg); err == nil {
		t.Fatalf("expected error for missing file")
	}
	words, err := quiz.DefaultWords()
	if err != nil {
		t.Fatalf("DefaultWords: %v", err)
	}
	if _, err := ImportWords(bg, env.vocab, words); err != nil {
		t.Fatalf("ImportWords: %v", err)
	}
	if _, err := p.Generator(bg); err != nil {
		t.Fatalf("retry after import: %v", err)
	}
}

func TestQuizQuestionsStableWithinDay(t *testing.T) {
	env := newTestEnv(t)
	svc := env.quiz()
	userID := uuid.New()

	a, err := svc.Questions(bg, userID, QuizFilter{})
	if err != nil {
		t.Fatalf("Questions: %v", err)
	}
	if len(a) != defaultQuizLimit {
		t.Fatalf("expected %d questions, got %d", defaultQuizLimit, len(a))
	}
	b, err := svc.Questions(bg, userID, QuizFilter{})
	if err != nil {
		t.Fatalf("Questions again: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same user and day should get the same set")
	}
	for _, q := range a {
		if len(q.Options) != 4 || q.CorrectIndex < 0 {
			t.Fatalf("question %s: %+v", q.WordID, q)
		}
	}

	big, err := svc.Questions(bg, userID, QuizFilter{Limit: 1000})
	if err != nil {
		t.Fatalf("Questions big: %v", err)
	}
	if len(big) > maxQuizLimit {
		t.Fatalf("limit not clamped: %d", len(big))
	}
}

func TestQuizValidateAndSubmit(t *testing.T) {
	env := newTestEnv(t)
	svc := env.quiz()
	userID := uuid.New()

	qs, err := svc.Questions(bg, userID, QuizFilter{Limit: 3})
	if err != nil {
		t.Fatalf("Questions: %v", err)
	}
	answers := []QuizAnswerInput{
		{WordID: qs[0].WordID, SelectedIndex: qs[0].CorrectIndex},
		{WordID: qs[1].WordID, SelectedIndex: qs[1].CorrectIndex},
		{WordID: qs[2].WordID, SelectedIndex: (qs[2].CorrectIndex + 1) % 4},
	}

	v, err := svc.Validate(bg, answers[0])
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !v.Correct || v.Definition == "" {
		t.Fatalf("validate: %+v", v)
	}

	res, err := svc.Submit(bg, userID, answers)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.TotalQuestions != 3 || res.CorrectAnswers != 2 || res.ScorePercent != 66 || res.XPAwarded != 20 {
		t.Fatalf("submit: %+v", res)
	}
	if res.Progress == nil || res.Progress.WordsLearned != 2 {
		t.Fatalf("progress: %+v", res.Progress)
	}

	var stored types.QuizAttempt
	if err := env.db.Where("user_id = ?", userID).First(&stored).Error; err != nil {
		t.Fatalf("load attempt: %v", err)
	}
	if stored.CorrectAnswers != 2 || len(stored.Answers) != 3 || stored.LocalDate != "2024-03-11" {
		t.Fatalf("attempt: %+v", stored)
	}
}

func TestQuizSubmitCapsDailyXP(t *testing.T) {
	env := newTestEnv(t)
	svc := env.quiz()
	userID := uuid.New()

	qs, err := svc.Questions(bg, userID, QuizFilter{Limit: 8})
	if err != nil {
		t.Fatalf("Questions: %v", err)
	}
	answers := make([]QuizAnswerInput, 0, len(qs))
	for _, q := range qs {
		answers = append(answers, QuizAnswerInput{WordID: q.WordID, SelectedIndex: q.CorrectIndex})
	}
	var total int64
	for i := 0; i < 3; i++ {
		res, err := svc.Submit(bg, userID, answers)
		if err != nil {
			t.Fatalf("Submit %d: %v", i, err)
		}
		total += res.XPAwarded
	}
	if total != 100 {
		t.Fatalf("daily quiz XP should cap at 100, got %d", total)
	}
}

func TestQuizErrors(t *testing.T) {
	env := newTestEnv(t)
	svc := env.quiz()

	if _, err := svc.Validate(bg, QuizAnswerInput{WordID: "nope"}); !errors.Is(err, quiz.ErrWordNotFound) {
		t.Fatalf("unknown word: %v", err)
	}
	if _, err := svc.Validate(bg, QuizAnswerInput{WordID: "w001", SelectedIndex: 9}); err == nil {
		t.Fatalf("out of range option accepted")
	}
	if _, err := svc.Submit(bg, uuid.New(), nil); err == nil {
		t.Fatalf("empty submission accepted")
	}
	many := make([]QuizAnswerInput, maxQuizAnswers+1)
	_, err := svc.Submit(bg, uuid.New(), many)
	if ae, ok := apierr.As(err); !ok || ae.Code != "too_many_answers" {
		t.Fatalf("oversized submission: %v", err)
	}
}

func TestWordOfTheDayAwardsOncePerDay(t *testing.T) {
	env := newTestEnv(t)
	svc := env.quiz()
	userID := uuid.New()

	first, err := svc.WordOfTheDay(bg, userID)
	if err != nil {
		t.Fatalf("WordOfTheDay: %v", err)
	}
	if first.XPAwarded != 10 || first.Date != "2024-03-11" || first.ID == "" {
		t.Fatalf("first: %+v", first)
	}
	second, err := svc.WordOfTheDay(bg, uuid.New())
	if err != nil {
		t.Fatalf("WordOfTheDay other user: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("every user sees the same word on a date")
	}
	again, err := svc.WordOfTheDay(bg, userID)
	if err != nil {
		t.Fatalf("WordOfTheDay again: %v", err)
	}
	if again.XPAwarded != 0 {
		t.Fatalf("second view should not award: %+v", again)
	}

	env.clock.Advance(24 * time.Hour)
	next, err := svc.WordOfTheDay(bg, userID)
	if err != nil {
		t.Fatalf("WordOfTheDay next day: %v", err)
	}
	if next.Date != "2024-03-12" || next.XPAwarded != 10 {
		t.Fatalf("next day: %+v", next)
	}
}
