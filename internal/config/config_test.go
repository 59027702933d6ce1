package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newFlags(t))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
	assert.Equal(t, "cards.json", cfg.Data.Path)
	assert.Equal(t, "repos", cfg.Data.RepoDir)
	assert.True(t, cfg.Data.Watch)
	assert.Equal(t, "kotoba.db", cfg.Store.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 90.0, cfg.Study.SwipeThreshold)
	assert.Equal(t, "ffplay", cfg.Audio.AudioArgs()[0])
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kotoba.yaml")
	yaml := `
server:
  addr: 0.0.0.0:9000
data:
  path: decks
  watch: false
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	t.Run("file overrides defaults", func(t *testing.T) {
		cfg, err := Load(newFlags(t, "--config", path))
		require.NoError(t, err)
		assert.Equal(t, "0.0.0.0:9000", cfg.Server.Addr)
		assert.Equal(t, "decks", cfg.Data.Path)
		assert.False(t, cfg.Data.Watch)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "kotoba.db", cfg.Store.Path)
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("KOTOBA_LOG__LEVEL", "warn")
		t.Setenv("KOTOBA_STORE__PATH", "/tmp/progress.db")
		t.Setenv("KOTOBA_SERVER__CORS_ORIGINS", "http://a.test, http://b.test")
		cfg, err := Load(newFlags(t, "--config", path))
		require.NoError(t, err)
		assert.Equal(t, "warn", cfg.Log.Level)
		assert.Equal(t, "/tmp/progress.db", cfg.Store.Path)
		assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
		assert.Equal(t, "decks", cfg.Data.Path)
	})

	t.Run("flags override env", func(t *testing.T) {
		t.Setenv("KOTOBA_LOG__LEVEL", "warn")
		cfg, err := Load(newFlags(t, "--config", path, "--log.level", "error"))
		require.NoError(t, err)
		assert.Equal(t, "error", cfg.Log.Level)
	})

	t.Run("config path from env", func(t *testing.T) {
		t.Setenv("KOTOBA_CONFIG", path)
		cfg, err := Load(newFlags(t))
		require.NoError(t, err)
		assert.Equal(t, "decks", cfg.Data.Path)
	})
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad log level", []string{"--log.level", "loud"}},
		{"bad log format", []string{"--log.format", "xml"}},
		{"bad address", []string{"--server.addr", "nowhere"}},
		{"non-positive swipe threshold", []string{"--study.swipe_threshold", "0"}},
		{"repo without checkout dir", []string{"--data.repo", "https://example.com/cards.git", "--data.repo_dir", ""}},
		{"bad cors origin", []string{"--server.cors_origins", "not a url"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(newFlags(t, tt.args...))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(newFlags(t, "--config", filepath.Join(t.TempDir(), "missing.yaml")))
	assert.Error(t, err)
}

func TestEnvValue(t *testing.T) {
	key, value := envValue("KOTOBA_DATA__REPO_DIR", "/srv/repos")
	assert.Equal(t, "data.repo_dir", key)
	assert.Equal(t, "/srv/repos", value)

	key, value = envValue("KOTOBA_SERVER__CORS_ORIGINS", "http://a.test,,")
	assert.Equal(t, "server.cors_origins", key)
	assert.Equal(t, []string{"http://a.test"}, value)
}
