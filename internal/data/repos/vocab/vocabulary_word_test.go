package vocab

import (
	"context"
	"testing"

	"github.com/yungbote/emolit-backend/internal/data/repos/testutil"
	types "github.com/yungbote/emolit-backend/internal/domain"
	vocabdomain "github.com/yungbote/emolit-backend/internal/domain/vocab"
	"github.com/yungbote/emolit-backend/internal/modules/quiz"
)

func TestVocabularyRepoUpsert(t *testing.T) {
	db := testutil.DB(t)
	repo := NewVocabularyRepo(db, testutil.Logger(t))
	ctx := context.Background()

	w := vocabdomain.FromQuizWord(quiz.Word{ID: "w1", Word: "Calm", Definition: "Not agitated", SimilarWords: []string{"peaceful"}})
	if err := repo.Upsert(ctx, nil, []*types.VocabularyWord{&w}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	w2 := vocabdomain.FromQuizWord(quiz.Word{ID: "w1", Word: "Calm", Definition: "Free from agitation"})
	if err := repo.Upsert(ctx, nil, []*types.VocabularyWord{&w2}); err != nil {
		t.Fatalf("Upsert again: %v", err)
	}

	n, err := repo.Count(ctx, nil)
	if err != nil || n != 1 {
		t.Fatalf("Count: %d %v", n, err)
	}
	all, err := repo.ListAll(ctx, nil)
	if err != nil || len(all) != 1 {
		t.Fatalf("ListAll: %v %v", all, err)
	}
	if all[0].Definition != "Free from agitation" {
		t.Fatalf("definition not updated: %+v", all[0])
	}
	if qw := all[0].QuizWord(); qw.ID != "w1" || len(qw.SimilarWords) != 0 {
		t.Fatalf("QuizWord: %+v", qw)
	}
}
