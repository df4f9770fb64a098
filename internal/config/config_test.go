package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Touch != "auto" {
		t.Errorf("default touch = %q, want auto", cfg.Touch)
	}
	if cfg.Anchor != "#cursor" {
		t.Errorf("default anchor = %q, want #cursor", cfg.Anchor)
	}
	if cfg.Lang.Title != "Insert Video" {
		t.Errorf("default title = %q, want Insert Video", cfg.Lang.Title)
	}
	if !cfg.History {
		t.Error("default history should be true")
	}
	if cfg.DialogsInBody {
		t.Error("dialogs_in_body should default to false")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"invalid touch", func(c *Config) { c.Touch = "maybe" }, true},
		{"empty anchor", func(c *Config) { c.Anchor = "  " }, true},
		{"empty title", func(c *Config) { c.Lang.Title = "" }, true},
		{"empty insert", func(c *Config) { c.Lang.Insert = "" }, true},
		{"empty hint", func(c *Config) { c.Lang.Providers = "" }, false},
		{"touch on", func(c *Config) { c.Touch = "ON" }, false},
		{"touch unset", func(c *Config) { c.Touch = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateNormalizesTouch(t *testing.T) {
	cfg := Default()
	cfg.Touch = "OFF"
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.Touch != "off" {
		t.Errorf("touch = %q, want off", cfg.Touch)
	}

	cfg.Touch = ""
	cfg.Validate()
	if cfg.Touch != "auto" {
		t.Errorf("empty touch = %q, want auto", cfg.Touch)
	}
}

func TestLoadFromTOML(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	// dialogs_fade is no longer a key; unknown keys are ignored.
	content := `
dialogs_in_body = true
dialogs_fade = true
touch = "on"
anchor = "[data-caret]"
history = false

[lang]
title = "Video einfügen"
url = "Video-URL"
`
	dir := filepath.Join(tmpDir, "vidembed")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if !cfg.DialogsInBody {
		t.Error("dialogs_in_body should be true")
	}
	if cfg.Touch != "on" {
		t.Errorf("touch = %q, want on", cfg.Touch)
	}
	if cfg.Anchor != "[data-caret]" {
		t.Errorf("anchor = %q, want [data-caret]", cfg.Anchor)
	}
	if cfg.History {
		t.Error("history should be false")
	}
	if cfg.Lang.Title != "Video einfügen" {
		t.Errorf("title = %q", cfg.Lang.Title)
	}
	// Keys missing from the file keep their defaults.
	if cfg.Lang.Insert != "Insert Video" {
		t.Errorf("insert = %q, want default", cfg.Lang.Insert)
	}
}

func TestLoadInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	dir := filepath.Join(tmpDir, "vidembed")
	os.MkdirAll(dir, 0755)
	os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`touch = "sometimes"`), 0644)

	if _, err := Load(); err == nil {
		t.Error("Load() should reject an invalid touch mode")
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() should not error on missing file: %v", err)
	}
	if cfg.Anchor != "#cursor" {
		t.Errorf("missing file should return defaults, got anchor = %q", cfg.Anchor)
	}
}

func TestLayout(t *testing.T) {
	cfg := Default()
	cfg.DialogsInBody = true
	l := cfg.Layout()

	if l.Title != "Insert Video" || l.Label != "Video URL" || l.Submit != "Insert Video" {
		t.Errorf("Layout() = %+v", l)
	}
	if !l.InBody {
		t.Error("Layout() should carry dialogs_in_body")
	}
}

func TestHistoryPath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	path, err := HistoryPath()
	if err != nil {
		t.Fatal(err)
	}
	if path != "/data/vidembed/history.db" {
		t.Errorf("HistoryPath() = %q", path)
	}
}
