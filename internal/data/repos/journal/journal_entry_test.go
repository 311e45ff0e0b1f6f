package journal

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/emolit-backend/internal/data/repos/testutil"
	types "github.com/yungbote/emolit-backend/internal/domain"
)

func TestJournalEntryRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewJournalEntryRepo(db, testutil.Logger(t))
	ctx := context.Background()

	userID := uuid.New()
	other := uuid.New()
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	first := testutil.SeedJournalEntry(t, ctx, tx, userID, base, "happy")
	second := testutil.SeedJournalEntry(t, ctx, tx, userID, base.Add(time.Hour), "sad", "fearful")
	testutil.SeedJournalEntry(t, ctx, tx, other, base, "angry")
	failed := testutil.SeedJournalEntry(t, ctx, tx, userID, base.Add(2*time.Hour))
	failed.Status = types.JournalStatusTranscriptionFailed
	failed.MoodScore = nil
	if err := tx.Save(failed).Error; err != nil {
		t.Fatalf("mark failed: %v", err)
	}

	list, total, err := repo.List(ctx, tx, userID, 0, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 || len(list) != 3 || list[0].ID != failed.ID || list[1].ID != second.ID {
		t.Fatalf("List: total=%d ids=%v", total, list)
	}

	page, _, err := repo.List(ctx, tx, userID, 2, 1)
	if err != nil || len(page) != 1 || page[0].ID != first.ID {
		t.Fatalf("List page: %v %v", page, err)
	}

	got, err := repo.GetByID(ctx, tx, userID, first.ID)
	if err != nil || got == nil || got.Analysis.Data().MoodScore != 5 {
		t.Fatalf("GetByID: %+v %v", got, err)
	}
	if got, err := repo.GetByID(ctx, tx, other, first.ID); err != nil || got != nil {
		t.Fatalf("GetByID other user should miss: %+v %v", got, err)
	}

	recent, err := repo.ListRecent(ctx, tx, userID, 10)
	if err != nil || len(recent) != 2 || recent[0].ID != second.ID || len(recent[0].DetectedEmotions) != 2 {
		t.Fatalf("ListRecent should skip failed transcriptions: %+v %v", recent, err)
	}

	times, err := repo.ListCreatedSince(ctx, tx, userID, base.Add(30*time.Minute))
	if err != nil || len(times) != 1 {
		t.Fatalf("ListCreatedSince: %v %v", times, err)
	}

	title := "renamed"
	private := true
	ok, err := repo.UpdateMeta(ctx, tx, userID, first.ID, &title, &private)
	if err != nil || !ok {
		t.Fatalf("UpdateMeta: %v %v", ok, err)
	}
	got, _ = repo.GetByID(ctx, tx, userID, first.ID)
	if got.Title != "renamed" || !got.IsPrivate || got.Content != first.Content {
		t.Fatalf("after UpdateMeta: %+v", got)
	}
	ok, err = repo.UpdateMeta(ctx, tx, other, first.ID, &title, nil)
	if err != nil || ok {
		t.Fatalf("UpdateMeta other user: %v %v", ok, err)
	}
}
