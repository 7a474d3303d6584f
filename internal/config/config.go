package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

type SourcesConfig struct {
	Shipments string `yaml:"shipments,omitempty"`
	Products  string `yaml:"products,omitempty"`
	Locations string `yaml:"locations,omitempty"`
}

type ProjectConfig struct {
	Sources     SourcesConfig `yaml:"sources"`
	Destination string        `yaml:"destination,omitempty"`
	Timeout     string        `yaml:"timeout,omitempty"`
}

const ConfigFileName = "shipload.yaml"

// Load reads the config at path. A directory is searched for shipload.yaml.
func Load(path string) (*ProjectConfig, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, ConfigFileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", filepath.Base(path), err)
	}
	return &cfg, nil
}

// TimeoutDuration parses Timeout. An empty value is zero.
func (c *ProjectConfig) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	return d, nil
}
