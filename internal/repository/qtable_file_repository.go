package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"

	"github.com/google/renameio"
	"github.com/spf13/cast"

	"go_5_vocab_hint/internal/middleware"
	"go_5_vocab_hint/internal/model"
)

// FileSnapshotStore は Q テーブルを JSON ファイルとして保存します。
// 書き込みは一時ファイル + rename で行うため、途中で落ちても壊れたファイルは残りません。
type FileSnapshotStore struct {
	path string
}

func NewFileSnapshotStore(path string) *FileSnapshotStore {
	return &FileSnapshotStore{path: path}
}

func (r *FileSnapshotStore) Location() string {
	return r.path
}

func (r *FileSnapshotStore) Load(ctx context.Context) (model.QTable, error) {
	logger := middleware.GetLogger(ctx)

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, model.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("FileSnapshotStore.Load: %w: %w", model.ErrSnapshotCorrupt, err)
	}

	// 値は数値以外 (文字列など) で保存されていても float64 に変換する
	var raw map[string]map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("FileSnapshotStore.Load: %w: %w", model.ErrSnapshotCorrupt, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("FileSnapshotStore.Load: %w: null document", model.ErrSnapshotCorrupt)
	}

	table := make(model.QTable, len(raw))
	for wordKey, row := range raw {
		qrow := make(model.QRow, len(row))
		for hint, v := range row {
			f, err := cast.ToFloat64E(v)
			if err != nil {
				return nil, fmt.Errorf("FileSnapshotStore.Load: word %s hint %s: %w: %w", wordKey, hint, model.ErrSnapshotCorrupt, err)
			}
			qrow[model.HintType(hint)] = f
		}
		table[wordKey] = qrow
	}

	logger.Debug("Q-table snapshot read", "path", r.path, "words", len(table))
	return table, nil
}

func (r *FileSnapshotStore) Save(ctx context.Context, table model.QTable) error {
	logger := middleware.GetLogger(ctx)

	// JSON は NaN/Inf を表せないので、有限の値だけを書き出す (SQL バックエンドと同じ扱い)
	finite := make(model.QTable, len(table))
	for wordKey, row := range table {
		clean := make(model.QRow, len(row))
		for hint, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				logger.Warn("Skipping non-finite q-value", "word_id", wordKey, "hint_type", string(hint))
				continue
			}
			clean[hint] = v
		}
		finite[wordKey] = clean
	}
	data, err := json.MarshalIndent(finite, "", "  ")
	if err != nil {
		return &model.PersistenceError{Op: "encode", Location: r.path, Err: err}
	}

	if dir := filepath.Dir(r.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &model.PersistenceError{Op: "mkdir", Location: dir, Err: err}
		}
	}

	if err := renameio.WriteFile(r.path, data, 0o644); err != nil {
		logger.Error("Error writing q-table snapshot", "error", err, "path", r.path)
		return &model.PersistenceError{Op: "write", Location: r.path, Err: err}
	}
	return nil
}
