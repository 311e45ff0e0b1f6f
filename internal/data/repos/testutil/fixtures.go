package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/emolit-backend/internal/domain"
	"github.com/yungbote/emolit-backend/internal/modules/emotion"
)

func SeedJournalEntry(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, createdAt time.Time, labels ...string) *types.JournalEntry {
	tb.Helper()
	mood := 5
	e := &types.JournalEntry{
		ID:               uuid.New(),
		UserID:           userID,
		Title:            "entry",
		Content:          "today was fine",
		Source:           types.JournalSourceText,
		Status:           types.JournalStatusAnalyzed,
		Analysis:         datatypes.NewJSONType(emotion.Analysis{RiskLevel: emotion.RiskLow, MoodScore: mood}),
		DetectedEmotions: datatypes.JSONSlice[string](labels),
		RiskLevel:        string(emotion.RiskLow),
		MoodScore:        &mood,
		WordCount:        3,
		LocalDate:        createdAt.UTC().Format("2006-01-02"),
		CreatedAt:        createdAt.UTC(),
		UpdatedAt:        createdAt.UTC(),
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed journal entry: %v", err)
	}
	return e
}
