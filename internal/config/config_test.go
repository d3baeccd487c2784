package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomizedcoder/ringqueue/internal/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, 1024, cfg.StringLength)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadString(t *testing.T) {
	cfg, err := config.LoadString(`
Echo = true
FailPercent = 10
Seed = 42

[Log]
Level = "debug"
Stdout = true
`)
	require.NoError(t, err)
	assert.True(t, cfg.Echo)
	assert.Equal(t, 10, cfg.FailPercent)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, 1024, cfg.StringLength, "unset keys keep defaults")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Stdout)
}

func TestLoadStringInvalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"fail percent", "FailPercent = 101"},
		{"string length", "StringLength = 0"},
		{"level", "[Log]\nLevel = \"loud\""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.LoadString(tc.in)
			assert.ErrorIs(t, err, config.ErrInvalid)
		})
	}
}

func TestLoadStringSyntax(t *testing.T) {
	_, err := config.LoadString("Echo = ")
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qtest.toml")
	require.NoError(t, os.WriteFile(path, []byte("StringLength = 16\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.StringLength)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
