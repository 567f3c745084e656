// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/modalstack/internal/model"
	"github.com/jmylchreest/modalstack/internal/scheduler"
)

// Validation errors.
var (
	ErrNegativeDuration = errors.New("transition delay cannot be negative")
	ErrInvalidTheme     = errors.New("invalid theme")
	ErrInvalidAnimation = errors.New("invalid animation")
	ErrInvalidDefaults  = errors.New("invalid dialog defaults")
	ErrInvalidLogLevel  = errors.New("invalid log level")
)

// Config is the modalstack configuration.
type Config struct {
	Appearance  AppearanceConfig  `toml:"appearance" yaml:"appearance"`
	Transitions TransitionsConfig `toml:"transitions" yaml:"transitions"`
	Defaults    DefaultsConfig    `toml:"defaults" yaml:"defaults"`
	Log         LogConfig         `toml:"log" yaml:"log"`
	Clipboard   ClipboardConfig   `toml:"clipboard" yaml:"clipboard"`
}

// AppearanceConfig holds the process-wide presentation settings.
type AppearanceConfig struct {
	Theme     model.Theme     `toml:"theme" yaml:"theme"`
	Animation model.Animation `toml:"animation" yaml:"animation"`
	ThemesDir string          `toml:"themes_dir" yaml:"themes_dir"` // Override stylesheets, empty = bundled only
}

// TransitionsConfig holds the transition delays.
type TransitionsConfig struct {
	Show   Duration `toml:"show" yaml:"show"`
	Remove Duration `toml:"remove" yaml:"remove"`
	Resize Duration `toml:"resize" yaml:"resize"`
	WarmUp Duration `toml:"warm_up" yaml:"warm_up"`
}

// DefaultsConfig holds the options applied to dialogs opened without explicit values.
type DefaultsConfig struct {
	Size             model.Size             `toml:"size" yaml:"size"`
	Color            model.Color            `toml:"color" yaml:"color"`
	BackgroundEffect model.BackgroundEffect `toml:"background_effect" yaml:"background_effect"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"` // debug, info, warn, error
}

// ClipboardConfig holds clipboard settings for the preview.
type ClipboardConfig struct {
	Command string `toml:"command" yaml:"command"` // Empty = auto-detect
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	delays := scheduler.DefaultDelays()
	return &Config{
		Appearance: AppearanceConfig{
			Theme:     model.ThemeDark,
			Animation: model.AnimationFadeAndScale,
		},
		Transitions: TransitionsConfig{
			Show:   Duration(delays.Show),
			Remove: Duration(delays.Remove),
			Resize: Duration(delays.Resize),
			WarmUp: Duration(delays.WarmUp),
		},
		Defaults: DefaultsConfig{
			Size:             model.SizeMedium,
			Color:            model.ColorDefault,
			BackgroundEffect: model.EffectDim,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "modalstack", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if the file doesn't exist.
// Files ending in .yaml or .yml are parsed as YAML, everything else as TOML.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = toml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := c.Marshal(path)
	if err != nil {
		return err
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return os.Rename(tmpPath, path)
}

// Marshal encodes the configuration in the format implied by path's extension.
func (c *Config) Marshal(path string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = toml.Marshal(c)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Appearance.Theme.String() == "unknown" {
		return fmt.Errorf("%w: %d", ErrInvalidTheme, c.Appearance.Theme)
	}
	if c.Appearance.Animation.String() == "unknown" {
		return fmt.Errorf("%w: %d", ErrInvalidAnimation, c.Appearance.Animation)
	}

	for name, d := range map[string]Duration{
		"show":    c.Transitions.Show,
		"remove":  c.Transitions.Remove,
		"resize":  c.Transitions.Resize,
		"warm_up": c.Transitions.WarmUp,
	} {
		if d < 0 {
			return fmt.Errorf("%w: %s = %s", ErrNegativeDuration, name, d.Duration())
		}
	}

	if c.Defaults.Size.String() == "unknown" ||
		c.Defaults.Color.String() == "unknown" ||
		c.Defaults.BackgroundEffect.String() == "unknown" {
		return ErrInvalidDefaults
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// Delays converts the transition settings for the scheduler.
func (c *Config) Delays() scheduler.Delays {
	return scheduler.Delays{
		Show:   c.Transitions.Show.Duration(),
		Remove: c.Transitions.Remove.Duration(),
		Resize: c.Transitions.Resize.Duration(),
		WarmUp: c.Transitions.WarmUp.Duration(),
	}
}

// DialogOptions returns model.DefaultOptions with the configured defaults applied.
func (c *Config) DialogOptions() model.Options {
	opts := model.DefaultOptions()
	opts.Size = c.Defaults.Size
	opts.Color = c.Defaults.Color
	opts.BackgroundEffect = c.Defaults.BackgroundEffect
	return opts
}

// SlogLevel parses the configured log level. An empty level means info.
func (c *Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Log.Level)
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
