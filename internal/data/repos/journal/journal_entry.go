package journal

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/emolit-backend/internal/domain"
	"github.com/yungbote/emolit-backend/internal/platform/logger"
)

type JournalEntryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entry *types.JournalEntry) (*types.JournalEntry, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID, entryID uuid.UUID) (*types.JournalEntry, error)
	List(ctx context.Context, tx *gorm.DB, userID uuid.UUID, offset, limit int) ([]*types.JournalEntry, int64, error)
	ListRecent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.JournalEntry, error)
	ListCreatedSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]time.Time, error)
	UpdateMeta(ctx context.Context, tx *gorm.DB, userID, entryID uuid.UUID, title *string, isPrivate *bool) (bool, error)
}

type journalEntryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewJournalEntryRepo(db *gorm.DB, baseLog *logger.Logger) JournalEntryRepo {
	repoLog := baseLog.With("repo", "JournalEntryRepo")
	return &journalEntryRepo{db: db, log: repoLog}
}

func (r *journalEntryRepo) Create(ctx context.Context, tx *gorm.DB, entry *types.JournalEntry) (*types.JournalEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// GetByID returns nil without error when the entry does not exist for this user.
func (r *journalEntryRepo) GetByID(ctx context.Context, tx *gorm.DB, userID, entryID uuid.UUID) (*types.JournalEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var entry types.JournalEntry
	err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *journalEntryRepo) List(ctx context.Context, tx *gorm.DB, userID uuid.UUID, offset, limit int) ([]*types.JournalEntry, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var total int64
	if err := transaction.WithContext(ctx).
		Model(&types.JournalEntry{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}
	results := []*types.JournalEntry{}
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

// ListRecent and ListCreatedSince feed trends and weekly activity, so entries whose audio
// never transcribed are left out.
func (r *journalEntryRepo) ListRecent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.JournalEntry, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	results := []*types.JournalEntry{}
	if err := transaction.WithContext(ctx).
		Select("id", "user_id", "detected_emotions", "mood_score", "created_at").
		Where("user_id = ? AND status <> ?", userID, types.JournalStatusTranscriptionFailed).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *journalEntryRepo) ListCreatedSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]time.Time, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var times []time.Time
	if err := transaction.WithContext(ctx).
		Model(&types.JournalEntry{}).
		Where("user_id = ? AND created_at >= ? AND status <> ?", userID, since.UTC(), types.JournalStatusTranscriptionFailed).
		Order("created_at ASC").
		Pluck("created_at", &times).Error; err != nil {
		return nil, err
	}
	return times, nil
}

// UpdateMeta edits only the title and privacy flag. It reports false when no entry matched.
func (r *journalEntryRepo) UpdateMeta(ctx context.Context, tx *gorm.DB, userID, entryID uuid.UUID, title *string, isPrivate *bool) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	updates := map[string]any{"updated_at": time.Now().UTC()}
	if title != nil {
		updates["title"] = *title
	}
	if isPrivate != nil {
		updates["is_private"] = *isPrivate
	}
	res := transaction.WithContext(ctx).
		Model(&types.JournalEntry{}).
		Where("id = ? AND user_id = ?", entryID, userID).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
