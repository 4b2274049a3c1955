package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
stopwords_path = "~/words.txt"
date_order = "mdy"
top_words = 30
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DateOrder != "mdy" || cfg.TopWords != 30 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.TopUsers != 5 || cfg.MediaPlaceholder != "<Media omitted>" {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if strings.HasPrefix(cfg.StopwordsPath, "~") {
		t.Errorf("stopwords path not expanded: %q", cfg.StopwordsPath)
	}
	if cfg.Path != path {
		t.Errorf("Path = %q, want %q", cfg.Path, path)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"bad order":     `date_order = "ymd"`,
		"zero top":      `top_users = 0`,
		"bad log level": `log_level = "loud"`,
		"not toml":      `date_order = `,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, body)); err == nil {
				t.Error("Load succeeded, want error")
			}
		})
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Load of missing explicit path succeeded")
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}
