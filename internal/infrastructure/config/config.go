// Package config loads user settings for the glossary host.
package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/0xcro3dile/glossary-go/internal/domain/entities"
)

// Config is the content of config.yaml.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Search   SearchConfig   `yaml:"search"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// LogConfig controls the mutation log.
type LogConfig struct {
	Level string `yaml:"level"`
	// Dir holds log files; empty means next to the glossary file.
	Dir string `yaml:"dir"`
}

// SearchConfig sets the default search behaviour.
type SearchConfig struct {
	Mode       string `yaml:"mode"`
	MaxResults int    `yaml:"max_results"`
}

// DefaultsConfig is the metadata given to newly created glossaries.
type DefaultsConfig struct {
	Title       string `yaml:"title"`
	Author      string `yaml:"author"`
	Description string `yaml:"description"`
}

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		Log:    LogConfig{Level: "info"},
		Search: SearchConfig{Mode: "substring"},
	}
}

// DefaultPath returns the config file location under the user config dir.
func DefaultPath() string {
	d, err := os.UserConfigDir()
	if err != nil {
		d = "."
	}
	return filepath.Join(d, "glossary", "config.yaml")
}

// Load reads the config at path, or at DefaultPath when path is empty.
// A missing file yields Default.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, errors.Wrap(err, "read config")
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "invalid config %s", path)
	}
	return cfg, nil
}

// Validate checks values that cannot be caught by YAML decoding.
func (c Config) Validate() error {
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "log.level")
	}
	if _, err := entities.ParseSearchMode(c.Search.Mode); err != nil {
		return errors.Wrap(err, "search.mode")
	}
	if c.Search.MaxResults < 0 {
		return errors.Errorf("search.max_results must not be negative, got %d", c.Search.MaxResults)
	}
	return nil
}

// SearchOptions converts the search section for the glossary core.
func (c Config) SearchOptions() (entities.SearchOptions, error) {
	mode, err := entities.ParseSearchMode(c.Search.Mode)
	if err != nil {
		return entities.SearchOptions{}, err
	}
	return entities.SearchOptions{Mode: mode, MaxResults: c.Search.MaxResults}, nil
}

// Metadata returns the defaults for a new glossary.
func (c Config) Metadata() entities.Metadata {
	return entities.Metadata{
		Title:       c.Defaults.Title,
		Author:      c.Defaults.Author,
		Description: c.Defaults.Description,
	}
}
