package config

import (
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	// Volume settings. Volume is the startup level in [0, 1], Step the
	// amount one volume keypress moves it.
	Volume VolumeConfig `koanf:"volume"`

	// Shuffle controls whether playlists are shuffled unless -n is given.
	Shuffle *bool `koanf:"shuffle"`

	// PollIntervalMs is how often the playback loop checks for commands
	// and track completion, in milliseconds.
	PollIntervalMs int `koanf:"poll_interval_ms"`

	// Notifications enables desktop notifications on track change.
	Notifications *bool `koanf:"notifications"`

	// Mpris enables the MPRIS D-Bus interface.
	Mpris *bool `koanf:"mpris"`
}

// VolumeConfig holds volume-related configuration.
type VolumeConfig struct {
	Default *float64 `koanf:"default"` // startup volume (0.0-1.0, default: 1.0)
	Step    *float64 `koanf:"step"`    // volume step per keypress (default: 0.05)
	Restore *bool    `koanf:"restore"` // restore last session's volume (default: true)
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	configPaths := getConfigPaths()

	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/strum/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "strum", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

// VolumeDefault returns the startup volume, clamped to [0, 1].
func (c *Config) VolumeDefault() float64 {
	if c.Volume.Default == nil {
		return 1.0
	}
	v := *c.Volume.Default
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// VolumeStep returns the per-keypress volume step with the default applied.
func (c *Config) VolumeStep() float64 {
	if c.Volume.Step == nil || *c.Volume.Step <= 0 || *c.Volume.Step > 1 {
		return 0.05
	}
	return *c.Volume.Step
}

// RestoreVolume reports whether the last session's volume should be restored.
func (c *Config) RestoreVolume() bool {
	return c.Volume.Restore == nil || *c.Volume.Restore
}

// ShuffleEnabled reports whether playlists are shuffled by default.
func (c *Config) ShuffleEnabled() bool {
	return c.Shuffle == nil || *c.Shuffle
}

// PollInterval returns the playback loop poll interval with the default applied.
func (c *Config) PollInterval() int {
	if c.PollIntervalMs <= 0 {
		return 100
	}
	return c.PollIntervalMs
}

// NotificationsEnabled reports whether track change notifications are on.
func (c *Config) NotificationsEnabled() bool {
	return c.Notifications == nil || *c.Notifications
}

// MprisEnabled reports whether the MPRIS interface should be published.
func (c *Config) MprisEnabled() bool {
	return c.Mpris == nil || *c.Mpris
}
