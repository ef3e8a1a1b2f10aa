package api

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Jan-Kur/ChatCLI/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("CHATCLI_CONFIG_DIR", dir)
	t.Setenv("CHATCLI_CONFIG", "")
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	dir := useTempConfigDir(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5001", cfg.Server)
	assert.Equal(t, []string{"en", "ru"}, cfg.Profanity.Languages)
	assert.Equal(t, filepath.Join(dir, "debug.log"), cfg.Log.File)
	assert.Equal(t, filepath.Join(dir, "history.db"), cfg.History.Path)
	assert.Equal(t, 2*time.Second, cfg.Reconnect.Delay)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := useTempConfigDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
server = "https://chat.example.com/"
theme = "Dracula"

[profanity]
languages = ["en"]
extra_words = ["heck"]

[reconnect]
attempts = 2
delay = "500ms"
`), 0o600))
	t.Setenv("CHATCLI_THEME", "Catppuccin Mocha")
	t.Setenv("CHATCLI_SEND_RATE", "1.5")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://chat.example.com", cfg.Server)
	assert.Equal(t, "Catppuccin Mocha", cfg.Theme)
	assert.Equal(t, []string{"en"}, cfg.Profanity.Languages)
	assert.Equal(t, []string{"heck"}, cfg.Profanity.ExtraWords)
	assert.Equal(t, 2, cfg.Reconnect.Attempts)
	assert.Equal(t, 500*time.Millisecond, cfg.Reconnect.Delay)
	assert.Equal(t, 1.5, cfg.Send.Rate)
	assert.Equal(t, 10, cfg.Send.Burst)
}

func TestLoadConfig_BadFile(t *testing.T) {
	dir := useTempConfigDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("server = ["), 0o600))

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	useTempConfigDir(t)

	cfg := DefaultConfig()
	cfg.Theme = "Dracula"
	require.NoError(t, SaveConfig(cfg))

	loaded, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "Dracula", loaded.Theme)
	assert.Equal(t, cfg.Reconnect, loaded.Reconnect)
}

func TestSession(t *testing.T) {
	useTempConfigDir(t)

	_, err := LoadSession()
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	assert.False(t, IsLoggedIn())

	require.NoError(t, SaveSession(core.Session{Token: "tok", Username: "alice"}))
	session, err := LoadSession()
	require.NoError(t, err)
	assert.Equal(t, "alice", session.Username)
	assert.True(t, IsLoggedIn())

	require.NoError(t, ClearSession())
	require.NoError(t, ClearSession())
	assert.False(t, IsLoggedIn())
}
