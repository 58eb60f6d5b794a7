// Package config loads thicket's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultPath is read when no --config flag is given. It may be absent.
const DefaultPath = "thicket.toml"

type Config struct {
	Game    GameConfig    `toml:"game"`
	UI      UIConfig      `toml:"ui"`
	Logging LoggingConfig `toml:"logging"`
}

type GameConfig struct {
	Dir   string `toml:"dir"`   // Lua game directory; empty runs the built-in demo
	Title string `toml:"title"` // overrides the game's own title in the banner
}

type UIConfig struct {
	Mode  string `toml:"mode"` // "auto", "plain" or "tui"
	Echo  bool   `toml:"echo"` // echo input lines, for scripted runs
	Trace bool   `toml:"trace"`
}

type LoggingConfig struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"` // "json" or "console"
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// UI modes.
const (
	ModeAuto  = "auto"
	ModePlain = "plain"
	ModeTUI   = "tui"
)

// Load reads the file at path over the defaults. A missing file is only an
// error when required is set.
func Load(path string, required bool) (*Config, error) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.check(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) check() error {
	switch c.UI.Mode {
	case ModeAuto, ModePlain, ModeTUI:
	default:
		return fmt.Errorf("ui.mode %q: want auto, plain or tui", c.UI.Mode)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format %q: want json or console", c.Logging.Format)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		UI: UIConfig{
			Mode: ModeAuto,
		},
		Logging: LoggingConfig{
			Level:      "warn",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
	}
}
