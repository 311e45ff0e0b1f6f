package vocab

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/emolit-backend/internal/domain"
	"github.com/yungbote/emolit-backend/internal/platform/logger"
)

type VocabularyRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, words []*types.VocabularyWord) error
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.VocabularyWord, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type vocabularyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVocabularyRepo(db *gorm.DB, baseLog *logger.Logger) VocabularyRepo {
	return &vocabularyRepo{db: db, log: baseLog.With("repo", "VocabularyRepo")}
}

func (r *vocabularyRepo) Upsert(ctx context.Context, tx *gorm.DB, words []*types.VocabularyWord) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if len(words) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"word", "definition", "example", "category", "level", "similar_words", "opposite_words", "cultural_context", "updated_at"}),
		}).
		CreateInBatches(words, 200).Error
}

func (r *vocabularyRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.VocabularyWord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	results := []*types.VocabularyWord{}
	if err := transaction.WithContext(ctx).Order("id ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *vocabularyRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var n int64
	err := transaction.WithContext(ctx).Model(&types.VocabularyWord{}).Count(&n).Error
	return n, err
}
