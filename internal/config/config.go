package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

type Config struct {
	Log LogConfig `toml:"log"`
	UI  UIConfig  `toml:"ui"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type UIConfig struct {
	Theme  string `toml:"theme"`
	TickMS int    `toml:"tick_ms"`
}

var (
	validLevels = []string{"debug", "info", "warn", "error"}
	validThemes = []string{"classic", "neon", "mono"}
)

// Default returns the built-in configuration; logFile is the default log path.
func Default(logFile string) Config {
	return Config{
		Log: LogConfig{
			Level: "info",
			File:  logFile,
		},
		UI: UIConfig{
			Theme:  "classic",
			TickMS: 100,
		},
	}
}

// Tick is the idle re-render interval.
func (c Config) Tick() time.Duration {
	return time.Duration(c.UI.TickMS) * time.Millisecond
}

// Load overlays the TOML file at path on defaults. A missing or empty file
// yields defaults unchanged.
func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}
	if strings.TrimSpace(cfg.Log.File) == "" {
		cfg.Log.File = defaults.Log.File
	}
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.UI.Theme = strings.ToLower(strings.TrimSpace(cfg.UI.Theme))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if !slices.Contains(validLevels, c.Log.Level) {
		return fmt.Errorf("invalid log.level: %q", c.Log.Level)
	}
	if !slices.Contains(validThemes, c.UI.Theme) {
		return fmt.Errorf("invalid ui.theme: %q", c.UI.Theme)
	}
	if c.UI.TickMS < 10 || c.UI.TickMS > 10_000 {
		return fmt.Errorf("ui.tick_ms must be between 10 and 10000, got %d", c.UI.TickMS)
	}
	return nil
}
