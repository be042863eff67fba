//go:generate mockery --name OutcomeRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"

	"go_5_vocab_hint/internal/middleware"
	"go_5_vocab_hint/internal/model"

	"gorm.io/gorm"
)

// OutcomeRepository はクイズ結果の履歴を保存します
type OutcomeRepository interface {
	Create(ctx context.Context, db *gorm.DB, outcome *model.OutcomeRecord) error
	ListByWord(ctx context.Context, db *gorm.DB, wordKey model.WordKey, limit int) ([]*model.OutcomeRecord, error)
}

type gormOutcomeRepository struct {
	// DB接続はService層から渡される想定
}

func NewGormOutcomeRepository() OutcomeRepository {
	return &gormOutcomeRepository{}
}

func (r *gormOutcomeRepository) Create(ctx context.Context, db *gorm.DB, outcome *model.OutcomeRecord) error {
	logger := middleware.GetLogger(ctx)
	// UUIDはService層で設定済み想定
	result := db.WithContext(ctx).Create(outcome)
	if result.Error != nil {
		logger.Error("Error creating outcome in DB",
			"error", result.Error,
			"word_id", outcome.WordKey,
			"hint_type", outcome.HintType,
		)
		return fmt.Errorf("gormOutcomeRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormOutcomeRepository) ListByWord(ctx context.Context, db *gorm.DB, wordKey model.WordKey, limit int) ([]*model.OutcomeRecord, error) {
	logger := middleware.GetLogger(ctx)
	var outcomes []*model.OutcomeRecord
	result := db.WithContext(ctx).
		Where("word_key = ?", wordKey.String()).
		Order("created_at DESC").
		Limit(limit).
		Find(&outcomes)
	if result.Error != nil {
		logger.Error("Error listing outcomes by word in DB",
			"error", result.Error,
			"word_id", wordKey.String(),
		)
		return nil, fmt.Errorf("gormOutcomeRepository.ListByWord: %w", result.Error)
	}
	return outcomes, nil
}
