package repository

import (
	"context"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go_5_vocab_hint/internal/middleware"
	"go_5_vocab_hint/internal/model"
)

const qValueBatchSize = 500

// SQLSnapshotStore は Q テーブルを q_values テーブル (word_key, hint_type) に保存します。
// 保存は1トランザクションで行うため、読み込み側が中途半端な状態を見ることはありません。
type SQLSnapshotStore struct {
	db *gorm.DB
}

func NewSQLSnapshotStore(db *gorm.DB) *SQLSnapshotStore {
	return &SQLSnapshotStore{db: db}
}

func (r *SQLSnapshotStore) Location() string {
	return "sql:" + model.QValueRecord{}.TableName()
}

func (r *SQLSnapshotStore) Load(ctx context.Context) (model.QTable, error) {
	logger := middleware.GetLogger(ctx)

	var records []model.QValueRecord
	result := r.db.WithContext(ctx).Order("word_key, hint_type").Find(&records)
	if result.Error != nil {
		logger.Error("Error reading q-values from DB", "error", result.Error)
		return nil, fmt.Errorf("SQLSnapshotStore.Load: %w: %w", model.ErrSnapshotCorrupt, result.Error)
	}
	if len(records) == 0 {
		return nil, model.ErrSnapshotNotFound
	}

	table := make(model.QTable)
	for _, rec := range records {
		row := table[rec.WordKey]
		if row == nil {
			row = make(model.QRow)
			table[rec.WordKey] = row
		}
		row[model.HintType(rec.HintType)] = rec.Value
	}
	return table, nil
}

func (r *SQLSnapshotStore) Save(ctx context.Context, table model.QTable) error {
	logger := middleware.GetLogger(ctx)

	now := time.Now()
	records := make([]model.QValueRecord, 0, len(table)*4)
	for wordKey, row := range table {
		for hint, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			records = append(records, model.QValueRecord{
				WordKey:   wordKey,
				HintType:  string(hint),
				Value:     v,
				UpdatedAt: now,
			})
		}
	}
	if len(records) == 0 {
		return nil
	}

	// 行は増えるだけで削除されないので、upsert で全体を書き込む
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "word_key"}, {Name: "hint_type"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).CreateInBatches(&records, qValueBatchSize).Error
	})
	if err != nil {
		logger.Error("Error saving q-values to DB", "error", err, "rows", len(records))
		return &model.PersistenceError{Op: "upsert", Location: r.Location(), Err: err}
	}
	return nil
}
