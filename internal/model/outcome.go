// internal/model/outcome.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// QValueRecord は SQL バックエンドで Q テーブルの1セルを保存する行
type QValueRecord struct {
	WordKey   string  `gorm:"type:varchar(64);primaryKey"`
	HintType  string  `gorm:"type:varchar(64);primaryKey"`
	Value     float64 `gorm:"not null"`
	UpdatedAt time.Time
}

func (QValueRecord) TableName() string {
	return "q_values"
}

// OutcomeRecord は学習者のクイズ結果と、それによる価値推定の変化を記録します
type OutcomeRecord struct {
	OutcomeID uuid.UUID `gorm:"type:uuid;primaryKey" json:"outcome_id"`
	WordKey   string    `gorm:"type:varchar(64);not null;index" json:"word_id"`
	HintType  string    `gorm:"type:varchar(64);not null" json:"hint_type"`
	IsCorrect bool      `gorm:"not null" json:"is_correct"`
	Reward    float64   `json:"reward"`
	OldValue  float64   `json:"old_value"`
	NewValue  float64   `json:"new_value"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (OutcomeRecord) TableName() string {
	return "hint_outcomes"
}
