package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	StopwordsPath    string `toml:"stopwords_path"`
	MediaPlaceholder string `toml:"media_placeholder" validate:"required"`
	DateOrder        string `toml:"date_order"        validate:"oneof=auto dmy mdy"`
	TopUsers         int    `toml:"top_users"         validate:"min=1"`
	TopWords         int    `toml:"top_words"         validate:"min=1"`
	TopEmojis        int    `toml:"top_emojis"        validate:"min=1"`
	LogLevel         string `toml:"log_level"         validate:"oneof=debug info warn error"`
	LogFormat        string `toml:"log_format"        validate:"oneof=console json"`

	// Path is where the config was read from; empty if defaults only.
	Path string `toml:"-"`
}

func Default() *Config {
	return &Config{
		MediaPlaceholder: "<Media omitted>",
		DateOrder:        "auto",
		TopUsers:         5,
		TopWords:         20,
		TopEmojis:        10,
		LogLevel:         "warn",
		LogFormat:        "console",
	}
}

// DefaultPath is ~/.config/chatstat/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "chatstat", "config.toml"), nil
}

// Load reads cfgPath over the defaults. An empty cfgPath uses DefaultPath,
// which may be missing; an explicit path must exist.
func Load(cfgPath string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	cfg := Default()

	explicit := cfgPath != ""
	if !explicit {
		cfgPath = filepath.Join(home, ".config", "chatstat", "config.toml")
	}
	cfgPath = expandHome(cfgPath, home)

	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
		cfg.Path = cfgPath
	} else if explicit {
		return nil, fmt.Errorf("config %s: %w", cfgPath, err)
	}

	cfg.StopwordsPath = expandHome(cfg.StopwordsPath, home)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
