package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadDefaultsWithoutFiles(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(Options{File: filepath.Join(dir, "missing.yml"), EnvFile: filepath.Join(dir, "missing.env")})
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "query", cfg.Board.URLMode)
	assert.Equal(t, time.Second, cfg.Board.Tick)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoadFileEnvAndDotEnv(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "config.yml", `
port: "9090"
log:
  level: debug
board:
  url_mode: HASH
  tick: 250ms
auth:
  token_ttl: 2h
`)
	envFile := writeFile(t, dir, ".env", "OPENAI_API_KEY=sk-from-dotenv\n")
	// godotenv never overrides a variable that is already set.
	t.Setenv("OPENAI_API_KEY", "")
	require.NoError(t, os.Unsetenv("OPENAI_API_KEY"))
	t.Setenv("ATELIER_BOARD_BASE_URL", "https://example.test/board")

	cfg, err := Load(Options{File: file, EnvFile: envFile})
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "hash", cfg.Board.URLMode)
	assert.Equal(t, 250*time.Millisecond, cfg.Board.Tick)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "https://example.test/board", cfg.Board.BaseURL)
	assert.Equal(t, "sk-from-dotenv", cfg.QOTD.APIKey)
}

func TestLoadRejectsBadURLMode(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "config.yml", "board:\n  url_mode: path\n")
	_, err := Load(Options{File: file, EnvFile: filepath.Join(dir, "none")})
	assert.Error(t, err)
}
