package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomizedcoder/ringqueue/internal/logger"
)

func TestNewWritesFile(t *testing.T) {
	dir := t.TempDir()
	lg := logger.New(logger.Config{Dir: dir, File: "q.log", Level: "debug", MaxSize: 1})
	lg.Debug("hello from test")
	require.NoError(t, lg.Sync())

	data, err := os.ReadFile(filepath.Join(dir, "q.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
	assert.Contains(t, string(data), "debug")
}

func TestNewLevelFilters(t *testing.T) {
	dir := t.TempDir()
	lg := logger.New(logger.Config{Dir: dir, Level: "warn", MaxSize: 1})
	lg.Info("quiet")
	lg.Warn("loud")
	require.NoError(t, lg.Sync())

	data, err := os.ReadFile(filepath.Join(dir, "ringqueue.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "quiet")
	assert.Contains(t, string(data), "loud")
}

func TestNewWithoutSinks(t *testing.T) {
	lg := logger.New(logger.Config{})
	assert.NotPanics(t, func() { lg.Info("dropped") })
}

func TestValidLevel(t *testing.T) {
	assert.True(t, logger.ValidLevel("info"))
	assert.False(t, logger.ValidLevel("verbose"))
}

func TestGlobalLogger(t *testing.T) {
	assert.NotNil(t, logger.GetLogger())
	assert.NotNil(t, logger.GetSugar())
}
