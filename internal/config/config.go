// Package config handles TOML-based configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"vidembed/internal/dialog"
	"vidembed/internal/env"
)

// Config holds all application configuration.
type Config struct {
	DialogsInBody bool   `toml:"dialogs_in_body"`
	Touch         string `toml:"touch"`
	Anchor        string `toml:"anchor"`
	History       bool   `toml:"history"`
	Debug         bool   `toml:"debug"`
	Lang          Lang   `toml:"lang"`
}

// Lang holds the dialog strings.
type Lang struct {
	Title     string `toml:"title"`
	URL       string `toml:"url"`
	Providers string `toml:"providers"`
	Insert    string `toml:"insert"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DialogsInBody: false,
		Touch:         env.TouchAuto,
		Anchor:        "#cursor",
		History:       true,
		Debug:         false,
		Lang: Lang{
			Title:     "Insert Video",
			URL:       "Video URL",
			Providers: "(YouTube, Vimeo, Vine, Instagram, DailyMotion or Youku)",
			Insert:    "Insert Video",
		},
	}
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "vidembed"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "vidembed"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file and merges with defaults.
// If the config file doesn't exist, defaults are returned.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	if err := env.ValidateMode(c.Touch); err != nil {
		return err
	}
	c.Touch = strings.ToLower(c.Touch)
	if c.Touch == "" {
		c.Touch = env.TouchAuto
	}

	if strings.TrimSpace(c.Anchor) == "" {
		return fmt.Errorf("anchor selector cannot be empty")
	}

	if c.Lang.Title == "" || c.Lang.Insert == "" {
		return fmt.Errorf("lang.title and lang.insert cannot be empty")
	}

	return nil
}

// Layout returns the dialog layout described by the config.
func (c *Config) Layout() dialog.Layout {
	return dialog.Layout{
		Title:  c.Lang.Title,
		Label:  c.Lang.URL,
		Hint:   c.Lang.Providers,
		Submit: c.Lang.Insert,
		InBody: c.DialogsInBody,
	}
}

// HistoryPath returns the path to the history database.
func HistoryPath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "vidembed", "history.db"), nil
}
