package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so "10s" style strings parse from YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is loaded from ~/.config/devlog/config.yaml. Every field has a
// usable default so a missing file is not an error.
type Config struct {
	API struct {
		BaseURL string   `yaml:"base_url"`
		Timeout Duration `yaml:"timeout"`
	} `yaml:"api"`
	PageSize         int      `yaml:"page_size"`
	AutosaveInterval Duration `yaml:"autosave_interval"`
	Log              struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
}

func Default() Config {
	var c Config
	c.API.BaseURL = "http://localhost:8080/api"
	c.API.Timeout = Duration(10 * time.Second)
	c.PageSize = 10
	c.AutosaveInterval = Duration(30 * time.Second)
	c.Log.Level = "info"
	return c
}

// Load reads the config at path, layering it over defaults. A missing
// file returns defaults; a malformed file is an error.
func Load(path string) (Config, error) {
	c := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parse config: %w", err)
	}

	if c.API.Timeout <= 0 {
		c.API.Timeout = Duration(10 * time.Second)
	}
	if c.PageSize <= 0 {
		c.PageSize = 10
	}
	if c.AutosaveInterval <= 0 {
		c.AutosaveInterval = Duration(30 * time.Second)
	}
	return c, nil
}

// DefaultPath returns ~/.config/devlog/config.yaml
func DefaultPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "devlog", "config.yaml"), nil
}
