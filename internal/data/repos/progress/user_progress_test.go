package progress

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/yungbote/emolit-backend/internal/data/repos/testutil"
	types "github.com/yungbote/emolit-backend/internal/domain"
)

func TestUserProgressRepoLazyCreate(t *testing.T) {
	db := testutil.DB(t)
	repo := NewUserProgressRepo(db, testutil.Logger(t))
	ctx := context.Background()
	userID := uuid.New()

	p, err := repo.GetOrCreate(ctx, nil, userID)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	if p.UserID != userID || p.TotalXP != 0 || p.Version != 0 {
		t.Fatalf("unexpected defaults: %+v", p)
	}
	again, err := repo.GetOrCreate(ctx, nil, userID)
	if err != nil {
		t.Fatalf("GetOrCreate again: %v", err)
	}
	if again.UserID != userID {
		t.Fatalf("second read: %+v", again)
	}
	var n int64
	db.Model(&types.UserProgress{}).Where("user_id = ?", userID).Count(&n)
	if n != 1 {
		t.Fatalf("expected one row, got %d", n)
	}
}

func TestUserProgressRepoVersionedUpdate(t *testing.T) {
	db := testutil.DB(t)
	repo := NewUserProgressRepo(db, testutil.Logger(t))
	ctx := context.Background()
	userID := uuid.New()

	a, err := repo.GetOrCreate(ctx, nil, userID)
	if err != nil {
		t.Fatalf("GetOrCreate: %v", err)
	}
	b := *a

	a.TotalXP = 50
	a.LastActivityDate = "2024-03-10"
	ok, err := repo.UpdateVersioned(ctx, nil, a)
	if err != nil || !ok {
		t.Fatalf("first update: ok=%v err=%v", ok, err)
	}
	if a.Version != 1 {
		t.Fatalf("version not advanced: %d", a.Version)
	}

	b.TotalXP = 10
	ok, err = repo.UpdateVersioned(ctx, nil, &b)
	if err != nil {
		t.Fatalf("stale update: %v", err)
	}
	if ok {
		t.Fatalf("stale update should lose")
	}

	got, _ := repo.GetOrCreate(ctx, nil, userID)
	if got.TotalXP != 50 || got.Version != 1 || got.LastActivityDate != "2024-03-10" {
		t.Fatalf("stored: %+v", got)
	}
}

func TestIsDuplicateKey(t *testing.T) {
	if !IsDuplicateKey(gorm.ErrDuplicatedKey) {
		t.Fatalf("gorm duplicate")
	}
	if !IsDuplicateKey(&pgconn.PgError{Code: "23505"}) {
		t.Fatalf("pg unique violation")
	}
	if IsDuplicateKey(&pgconn.PgError{Code: "23503"}) || IsDuplicateKey(errors.New("x")) {
		t.Fatalf("false positive")
	}
}
