package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	horizonerrors "github.com/mrz1836/horizon/internal/errors"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, Validate(cfg))
	assert.Equal(t, "auto", cfg.Color)
	assert.True(t, cfg.Autosave.Enabled)
	assert.Equal(t, time.Second, cfg.Autosave.Delay)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *Config)
	}{
		{
			name:   "invalid color",
			mutate: func(cfg *Config) { cfg.Color = "sometimes" },
		},
		{
			name:   "autosave delay too small",
			mutate: func(cfg *Config) { cfg.Autosave.Delay = 10 * time.Millisecond },
		},
		{
			name:   "autosave delay too large",
			mutate: func(cfg *Config) { cfg.Autosave.Delay = 2 * time.Minute },
		},
		{
			name:   "unknown log level",
			mutate: func(cfg *Config) { cfg.Log.Level = "loud" },
		},
		{
			name:   "zero log size",
			mutate: func(cfg *Config) { cfg.Log.MaxSizeMB = 0 },
		},
		{
			name:   "negative backups",
			mutate: func(cfg *Config) { cfg.Log.MaxBackups = -1 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			assert.ErrorIs(t, err, horizonerrors.ErrConfigInvalid)
		})
	}

	t.Run("nil config", func(t *testing.T) {
		assert.ErrorIs(t, Validate(nil), horizonerrors.ErrConfigInvalid)
	})
}

func TestLoadFromPath(t *testing.T) {
	t.Run("reads values from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `
color: never
autosave:
  delay: 2s
log:
  level: debug
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cfg, err := LoadFromPath(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "never", cfg.Color)
		assert.Equal(t, 2*time.Second, cfg.Autosave.Delay)
		assert.Equal(t, "debug", cfg.Log.Level)

		// Untouched keys keep their defaults.
		assert.True(t, cfg.Autosave.Enabled)
		assert.Equal(t, 10, cfg.Log.MaxSizeMB)
	})

	t.Run("missing file falls back to defaults", func(t *testing.T) {
		cfg, err := LoadFromPath(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("color: rainbow\n"), 0o600))

		_, err := LoadFromPath(context.Background(), path)
		assert.ErrorIs(t, err, horizonerrors.ErrConfigInvalid)
	})
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("HORIZON_LOG_LEVEL", "error")
	t.Setenv("HORIZON_AUTOSAVE_DELAY", "5s")

	cfg, err := LoadFromPath(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, 5*time.Second, cfg.Autosave.Delay)
}

func TestLoadWithOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	t.Run("non-zero override fields win", func(t *testing.T) {
		cfg, err := LoadWithOverrides(context.Background(), &Config{
			Home:  "/tmp/elsewhere",
			Color: "never",
			Log:   LogConfig{Level: "debug"},
		})
		require.NoError(t, err)
		assert.Equal(t, "/tmp/elsewhere", cfg.Home)
		assert.Equal(t, "never", cfg.Color)
		assert.Equal(t, "debug", cfg.Log.Level)

		// Zero-valued override fields leave the base alone.
		assert.Equal(t, time.Second, cfg.Autosave.Delay)
	})

	t.Run("overrides are validated", func(t *testing.T) {
		_, err := LoadWithOverrides(context.Background(), &Config{Color: "rainbow"})
		assert.ErrorIs(t, err, horizonerrors.ErrConfigInvalid)
	})

	t.Run("nil overrides load the base config", func(t *testing.T) {
		cfg, err := LoadWithOverrides(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})
}

func TestGlobalConfigPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	path, err := GlobalConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "/home/tester/.horizon/config.yaml", path)
}
