// internal/repository/qtable_repository_test.go
package repository

import (
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"go_5_vocab_hint/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSnapshotStore_Load(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		content *string // nil ならファイルを作らない
		want    model.QTable
		wantErr error
	}{
		{
			name:    "異常系: ファイルが無い",
			content: nil,
			wantErr: model.ErrSnapshotNotFound,
		},
		{
			name:    "異常系: JSONとして壊れている",
			content: ptr(`{"7": {"a": 0.1`),
			wantErr: model.ErrSnapshotCorrupt,
		},
		{
			name:    "異常系: null",
			content: ptr(`null`),
			wantErr: model.ErrSnapshotCorrupt,
		},
		{
			name:    "異常系: 数値に変換できない値",
			content: ptr(`{"7": {"a": "high"}}`),
			wantErr: model.ErrSnapshotCorrupt,
		},
		{
			name:    "正常系: 文字列の数値も受け付ける",
			content: ptr(`{"7": {"a": "0.25", "b": 1}}`),
			want:    model.QTable{"7": {"a": 0.25, "b": 1}},
		},
		{
			name:    "正常系: 空のテーブル",
			content: ptr(`{}`),
			want:    model.QTable{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "q_table.json")
			if tt.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.content), 0o644))
			}
			store := NewFileSnapshotStore(path)

			got, err := store.Load(ctx)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileSnapshotStore_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "q_table.json")
	store := NewFileSnapshotStore(path)
	assert.Equal(t, path, store.Location())

	table := model.QTable{
		"7":  {"dialogue": 0.145, "gif": 0.1},
		"12": {"story": -0.2},
	}
	require.NoError(t, store.Save(ctx, table))

	// 人が読める JSON (単語ID -> ヒント種別 -> 値) で保存される
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]map[string]float64
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, 0.145, raw["7"]["dialogue"])

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, table, got)

	// 上書き保存
	table["7"]["dialogue"] = 0.5
	require.NoError(t, store.Save(ctx, table))
	got, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.5, got["7"]["dialogue"])
}

func TestFileSnapshotStore_SaveSkipsNonFinite(t *testing.T) {
	ctx := context.Background()
	store := NewFileSnapshotStore(filepath.Join(t.TempDir(), "q_table.json"))

	table := model.QTable{
		"7":  {"dialogue": 0.145, "gif": math.NaN(), "story": math.Inf(-1)},
		"12": {"gif": math.Inf(1)},
	}
	require.NoError(t, store.Save(ctx, table))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.QTable{"7": {"dialogue": 0.145}, "12": {}}, got)

	// 次の保存も失敗しない
	require.NoError(t, store.Save(ctx, got))
}

func TestFileSnapshotStore_SaveError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	store := NewFileSnapshotStore(filepath.Join(blocker, "q_table.json"))
	err := store.Save(context.Background(), model.QTable{"1": {"a": 1}})

	var perr *model.PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "mkdir", perr.Op)
}

func TestSQLSnapshotStore(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	store := NewSQLSnapshotStore(db)
	assert.Equal(t, "sql:q_values", store.Location())

	t.Run("異常系: 行が無ければ SnapshotNotFound", func(t *testing.T) {
		_, err := store.Load(ctx)
		assert.ErrorIs(t, err, model.ErrSnapshotNotFound)
	})

	t.Run("正常系: 保存して読み込む", func(t *testing.T) {
		table := model.QTable{
			"7":  {"dialogue": 0.145, "gif": 0.1},
			"12": {"story": -0.2},
		}
		require.NoError(t, store.Save(ctx, table))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, table, got)
	})

	t.Run("正常系: 既存の行は upsert で更新", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, model.QTable{"7": {"dialogue": 0.9}}))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0.9, got["7"]["dialogue"])
		assert.Equal(t, 0.1, got["7"]["gif"])

		var count int64
		require.NoError(t, db.Model(&model.QValueRecord{}).Count(&count).Error)
		assert.Equal(t, int64(3), count)
	})

	t.Run("正常系: 有限でない値は保存しない", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, model.QTable{"99": {"a": math.Inf(1)}}))

		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.NotContains(t, got, "99")
	})
}

func ptr(s string) *string { return &s }
