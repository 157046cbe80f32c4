package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"todoapp/internal/model"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(Options{Driver: "oracle", DSN: "whatever"})
	assert.EqualError(t, err, `unsupported database driver "oracle"`)
}

func TestOpenAndMigrate_SQLite(t *testing.T) {
	gormDB, err := Open(Options{Driver: "sqlite", DSN: ":memory:", LogLevel: "silent"})
	require.NoError(t, err)

	require.NoError(t, Migrate(gormDB, false))
	assert.True(t, gormDB.Migrator().HasTable(&model.User{}))
	assert.True(t, gormDB.Migrator().HasTable(&model.Todo{}))

	require.NoError(t, Migrate(gormDB, true))
	assert.True(t, gormDB.Migrator().HasTable(&model.Todo{}))
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, logLevel("silent"))
	assert.Equal(t, logger.Info, logLevel("INFO"))
	assert.Equal(t, logger.Warn, logLevel(""))
}
