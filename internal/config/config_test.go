package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sidplayfp", cfg.DefaultEngine)
	assert.Equal(t, "info", cfg.LogLevel())
	assert.False(t, cfg.Loop)
	assert.False(t, cfg.DefaultTuneOnly)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	content := `
default_engine = "jsidplay2"
songlengths_path = "/hvsc/DOCUMENTS/Songlengths.md5"
loop = true

[engines]
sidplayfp = "/opt/sidplayfp/sidplayfp"
jsidplay2 = "/opt/jsidplay2/jsidplay2-console"

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "jsidplay2", cfg.DefaultEngine)
	assert.Equal(t, "/hvsc/DOCUMENTS/Songlengths.md5", cfg.SonglengthsPath)
	assert.Equal(t, "/opt/sidplayfp/sidplayfp", cfg.Engines.Sidplayfp)
	assert.Equal(t, "/opt/jsidplay2/jsidplay2-console", cfg.Engines.Jsidplay2)
	assert.True(t, cfg.Loop)
	assert.Equal(t, "debug", cfg.LogLevel())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got := expandPath("~/hvsc/Songlengths.md5")
	assert.Equal(t, filepath.Join(home, "hvsc", "Songlengths.md5"), got)

	assert.Equal(t, "/abs/path", expandPath("/abs/path"))
	assert.Equal(t, "", expandPath(""))
}

func TestGetPlaylistPath_Default(t *testing.T) {
	cfg := &Config{}
	got := cfg.GetPlaylistPath()
	assert.Contains(t, got, "usbsid-player")
	assert.Equal(t, "playlist.json", filepath.Base(got))

	cfg.PlaylistPath = "/tmp/pl.json"
	assert.Equal(t, "/tmp/pl.json", cfg.GetPlaylistPath())
}
