// internal/repository/repository_test.go
package repository

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestDB はテストごとに一時ディレクトリの SQLite を作成し、マイグレーションまで行います
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := NewDB("sqlite://"+filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}
