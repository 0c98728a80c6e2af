package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "usbsid-player"

type Config struct {
	DefaultEngine string `koanf:"default_engine"` // "sidplayfp" or "jsidplay2"

	Engines EnginesConfig `koanf:"engines"`

	// HVSC collateral
	SonglengthsPath string `koanf:"songlengths_path"` // Songlengths.md5
	SididPath       string `koanf:"sidid_path"`       // sidid.cfg tracker patterns

	PlaylistPath string `koanf:"playlist_path"` // playlist.json

	Loop            bool `koanf:"loop"`              // loop current subtune forever
	DefaultTuneOnly bool `koanf:"default_tune_only"` // ignore subtune navigation

	Log LogConfig `koanf:"log"`
}

// EnginesConfig holds the executable paths of the two player engines.
type EnginesConfig struct {
	Sidplayfp string `koanf:"sidplayfp"`
	Jsidplay2 string `koanf:"jsidplay2"`
}

// LogConfig controls the diagnostic sink.
type LogConfig struct {
	Level string `koanf:"level"` // logrus level name (default: "info")
	File  bool   `koanf:"file"`  // also write to a log file under XDG state
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		DefaultEngine: "sidplayfp",
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Engines.Sidplayfp = expandPath(cfg.Engines.Sidplayfp)
	cfg.Engines.Jsidplay2 = expandPath(cfg.Engines.Jsidplay2)
	cfg.SonglengthsPath = expandPath(cfg.SonglengthsPath)
	cfg.SididPath = expandPath(cfg.SididPath)
	cfg.PlaylistPath = expandPath(cfg.PlaylistPath)

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/usbsid-player/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// LogLevel returns the configured log level with the default applied.
func (c *Config) LogLevel() string {
	if c.Log.Level == "" {
		return "info"
	}
	return c.Log.Level
}

// GetPlaylistPath returns the playlist location, defaulting to the XDG data
// directory when unset.
func (c *Config) GetPlaylistPath() string {
	if c.PlaylistPath != "" {
		return c.PlaylistPath
	}
	return filepath.Join(xdg.DataHome, appName, "playlist.json")
}
