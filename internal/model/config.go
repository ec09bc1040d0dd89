package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config is the on-disk description of a packing job: the region, the
// ordered grading groups and the run settings.
type Config struct {
	Region   Region        `json:"region"`
	Groups   []GroupConfig `json:"groups"`
	Settings Settings      `json:"settings"`
}

// DefaultConfig returns a runnable single-group configuration.
func DefaultConfig() Config {
	return Config{
		Region:   Region{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100},
		Groups:   []GroupConfig{DefaultGroupConfig()},
		Settings: DefaultSettings(),
	}
}

// Validate checks the whole configuration before any geometry work.
func (c Config) Validate() error {
	if err := c.Region.Validate(); err != nil {
		return err
	}
	if err := c.Settings.Validate(); err != nil {
		return err
	}
	if len(c.Groups) == 0 {
		return fmt.Errorf("%w: at least one group is required", ErrInvalidConfig)
	}
	for i, g := range c.Groups {
		if err := g.Validate(); err != nil {
			return fmt.Errorf("group %d: %w", i+1, err)
		}
	}
	return nil
}

// LoadConfig reads and validates a configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// SaveConfig writes the configuration as indented JSON.
func SaveConfig(path string, c Config) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
