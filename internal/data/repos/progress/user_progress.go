package progress

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	types "github.com/yungbote/emolit-backend/internal/domain"
	"github.com/yungbote/emolit-backend/internal/platform/logger"
)

type UserProgressRepo interface {
	GetOrCreate(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserProgress, error)
	UpdateVersioned(ctx context.Context, tx *gorm.DB, p *types.UserProgress) (bool, error)
}

type userProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserProgressRepo(db *gorm.DB, baseLog *logger.Logger) UserProgressRepo {
	repoLog := baseLog.With("repo", "UserProgressRepo")
	return &userProgressRepo{db: db, log: repoLog}
}

// GetOrCreate loads the row, inserting zero defaults on first use. A concurrent insert is re-read.
func (r *userProgressRepo) GetOrCreate(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var p types.UserProgress
	err := transaction.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	p = types.UserProgress{UserID: userID, CreatedAt: now, UpdatedAt: now}
	if err := transaction.WithContext(ctx).Create(&p).Error; err != nil {
		if !IsDuplicateKey(err) {
			return nil, err
		}
		r.log.Debug("progress row created concurrently", "user_id", userID.String())
		var existing types.UserProgress
		if err := transaction.WithContext(ctx).Where("user_id = ?", userID).First(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}
	return &p, nil
}

// UpdateVersioned writes p only if the stored version still equals p.Version.
// On success p.Version is advanced; false means another writer got there first.
func (r *userProgressRepo) UpdateVersioned(ctx context.Context, tx *gorm.DB, p *types.UserProgress) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	now := time.Now().UTC()
	res := transaction.WithContext(ctx).
		Model(&types.UserProgress{}).
		Where("user_id = ? AND version = ?", p.UserID, p.Version).
		Updates(map[string]any{
			"total_xp":              p.TotalXP,
			"current_streak":        p.CurrentStreak,
			"longest_streak":        p.LongestStreak,
			"words_learned":         p.WordsLearned,
			"journal_entries_count": p.JournalEntriesCount,
			"last_activity_date":    p.LastActivityDate,
			"last_journal_xp_date":  p.LastJournalXPDate,
			"last_login_xp_date":    p.LastLoginXPDate,
			"last_daily_word_date":  p.LastDailyWordDate,
			"quiz_xp_date":          p.QuizXPDate,
			"quiz_xp_today":         p.QuizXPToday,
			"version":               p.Version + 1,
			"updated_at":            now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	p.Version++
	p.UpdatedAt = now
	return true, nil
}

// IsDuplicateKey reports unique-violation errors from either driver.
func IsDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
