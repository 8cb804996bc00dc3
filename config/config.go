// Package config loads the session host TOML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/hostkeys/input"
)

const (
	appDirName      = ".hostkeys"
	configFileName  = "config.toml"
	defaultDebounce = 2000
	defaultLogLevel = "info"
	defaultProducts = 24
	minimumDebounce = 100
)

// Config is the on-disk configuration
type Config struct {
	Input     InputConfig     `toml:"input"`
	Keymap    KeymapConfig    `toml:"keymap"`
	Shortcuts ShortcutsConfig `toml:"shortcuts"`
	Audio     AudioConfig     `toml:"audio"`
	Logging   LoggingConfig   `toml:"logging"`
	Session   SessionConfig   `toml:"session"`
}

type InputConfig struct {
	DebounceMS int `toml:"debounce_ms"`
}

// KeymapConfig overrides the default key table, see input.KeymapFile
type KeymapConfig struct {
	Keys  map[string]string `toml:"keys"`
	Runes map[string]string `toml:"runes"`
}

type ShortcutsConfig struct {
	RequireShift *bool             `toml:"require_shift"`
	Routes       map[string]string `toml:"routes"`
}

type AudioConfig struct {
	Enabled bool `toml:"enabled"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

type SessionConfig struct {
	Products int `toml:"products"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Input:   InputConfig{DebounceMS: defaultDebounce},
		Audio:   AudioConfig{Enabled: true},
		Logging: LoggingConfig{Level: defaultLogLevel},
		Session: SessionConfig{Products: defaultProducts},
	}
}

// DefaultPath returns ~/.hostkeys/config.toml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appDirName, configFileName), nil
}

// Load reads path over the defaults, a missing file yields Default()
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML over the defaults and validates the result
// Unknown fields are rejected so typos surface instead of being ignored
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("unknown config field: %s", strict.String())
		}
		return Config{}, fmt.Errorf("config parse: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values the decoder cannot
func (c Config) Validate() error {
	if c.Input.DebounceMS < minimumDebounce {
		return fmt.Errorf("[input] debounce_ms must be at least %d, got %d", minimumDebounce, c.Input.DebounceMS)
	}
	if c.Session.Products < 0 {
		return fmt.Errorf("[session] products must not be negative, got %d", c.Session.Products)
	}
	if _, err := zerolog.ParseLevel(c.LogLevelName()); err != nil {
		return fmt.Errorf("[logging] level: %w", err)
	}
	if _, err := c.KeyTable(); err != nil {
		return err
	}
	if _, err := c.Routes(); err != nil {
		return err
	}
	return nil
}

// Debounce returns the jump buffer quiet period
func (c Config) Debounce() time.Duration {
	return time.Duration(c.Input.DebounceMS) * time.Millisecond
}

// KeyTable merges the keymap overrides onto the default key table
func (c Config) KeyTable() (*input.KeyTable, error) {
	override, err := input.ParseKeyBindings(c.Keymap.Keys, c.Keymap.Runes)
	if err != nil {
		return nil, fmt.Errorf("[keymap] %w", err)
	}
	return input.MergeKeyTable(input.DefaultKeyTable(), override), nil
}

// Routes returns the shortcut letter → page path table, nil means use the defaults
func (c Config) Routes() (map[rune]string, error) {
	if c.Shortcuts.Routes == nil {
		return nil, nil
	}
	routes := make(map[rune]string, len(c.Shortcuts.Routes))
	for key, path := range c.Shortcuts.Routes {
		r, size := utf8.DecodeRuneInString(key)
		if r == utf8.RuneError || size != len(key) {
			return nil, fmt.Errorf("[shortcuts.routes] key %q: expected a single letter", key)
		}
		if !strings.HasPrefix(path, "/") {
			return nil, fmt.Errorf("[shortcuts.routes] key %q: path %q must start with /", key, path)
		}
		routes[r] = path
	}
	return routes, nil
}

// RequireShift reports whether page shortcuts need Shift, default true
// Terminals that send Ctrl+letter as a control code cannot report Shift; those keys pass the check
func (c Config) RequireShift() bool {
	if c.Shortcuts.RequireShift == nil {
		return true
	}
	return *c.Shortcuts.RequireShift
}

// LogLevelName returns the configured level name, defaulting to info
func (c Config) LogLevelName() string {
	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if level == "" {
		return defaultLogLevel
	}
	return level
}

// LogLevel returns the parsed zerolog level
func (c Config) LogLevel() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevelName())
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
