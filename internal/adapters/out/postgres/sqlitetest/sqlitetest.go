// Package sqlitetest opens throwaway in-memory databases with the full schema
// for tests that need real SQL without a PostgreSQL container.
package sqlitetest

import (
	"fmt"
	"strings"
	"testing"

	"shiptrack/internal/adapters/out/postgres/migrations"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns an empty database private to t. It holds a single connection,
// so a transaction and the reads issued after it see the same data.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migrations.AutoMigrate(db))
	return db
}
