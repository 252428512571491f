// Package config holds the YAML configuration used by the shell to
// bootstrap a calendar manager.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CalendarConfig describes one calendar created at startup.
type CalendarConfig struct {
	Name     string `yaml:"name"`
	Timezone string `yaml:"timezone"`
}

// Config is the top-level application configuration.
type Config struct {
	// Timezone is the IANA zone assigned to calendars that do not set
	// their own (e.g. "Europe/Berlin").
	Timezone string `yaml:"timezone"`

	// Default names the calendar selected at startup. Empty means the
	// first configured calendar.
	Default string `yaml:"default"`

	// Calendars is the list of calendars created at startup.
	Calendars []CalendarConfig `yaml:"calendars"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Timezone: "UTC",
		Default:  "personal",
		Calendars: []CalendarConfig{
			{Name: "personal", Timezone: "UTC"},
		},
	}
}

// Normalize fills in missing values so partially-filled configs still
// behave correctly.
func (c *Config) Normalize() {
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	for i := range c.Calendars {
		if c.Calendars[i].Timezone == "" {
			c.Calendars[i].Timezone = c.Timezone
		}
	}
	if c.Default == "" && len(c.Calendars) > 0 {
		c.Default = c.Calendars[0].Name
	}
}

// Load reads configuration from the given YAML path. A missing file is
// created with the defaults and 0600 permissions.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes the configuration atomically (temp file + rename, 0600).
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".civcal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
