package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents ~/.qshare/config.toml.
type Config struct {
	Thread ThreadConfig `toml:"thread"`
	Send   SendConfig   `toml:"send"`
	Hero   HeroConfig   `toml:"hero"`
	Log    LogConfig    `toml:"log"`
}

// ThreadConfig controls how messages are grouped on screen.
type ThreadConfig struct {
	GroupWindowMinutes float64 `toml:"group_window_minutes"`
}

// GroupWindow returns the grouping window as a duration.
func (c ThreadConfig) GroupWindow() time.Duration {
	return time.Duration(c.GroupWindowMinutes * float64(time.Minute))
}

// SendConfig controls the simulated delivery.
type SendConfig struct {
	Delay Duration `toml:"delay"`
}

// HeroConfig controls the typing headline shown on an empty session.
type HeroConfig struct {
	Title            string   `toml:"title"`
	BaseDelay        Duration `toml:"base_delay"`
	PunctuationPause Duration `toml:"punctuation_pause"`
	StartupDelay     Duration `toml:"startup_delay"`
	SettleDelay      Duration `toml:"settle_delay"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

// Duration is a time.Duration written as a string like "400ms" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Thread: ThreadConfig{GroupWindowMinutes: 5},
		Send:   SendConfig{Delay: Duration{400 * time.Millisecond}},
		Hero: HeroConfig{
			Title:            "What are you doing on quick-share?",
			BaseDelay:        Duration{55 * time.Millisecond},
			PunctuationPause: Duration{220 * time.Millisecond},
			StartupDelay:     Duration{50 * time.Millisecond},
			SettleDelay:      Duration{600 * time.Millisecond},
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads config from the given path on top of the defaults, so a file
// only needs the keys it changes. Returns an error if the file is missing.
func Load(path string) (*Config, error) {
	cfg := Default()
	_, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault is Load, except a missing file yields the defaults.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}
