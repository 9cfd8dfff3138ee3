// Package gc implements the two-phase garbage-collection protocol:
// objects become Eligible synchronously with the mutation that removed
// their last reference, and are Collected later by per-object sweep
// events scheduled on the simulation engine with a randomized delay.
package gc

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the timing parameters of the simulated timeline.
// All values are in virtual time units.
type Config struct {
	// MinSweepDelay is the lower bound of the randomized delay between an
	// object becoming Eligible and its sweep firing. Default: 1.5.
	MinSweepDelay float64 `json:"min_sweep_delay" yaml:"min_sweep_delay"`

	// MaxSweepDelay is the upper bound of the sweep delay. Default: 4.0.
	MaxSweepDelay float64 `json:"max_sweep_delay" yaml:"max_sweep_delay"`

	// StatementInterval is the virtual time between two consecutive
	// statements, so sweeps can visibly interleave. Default: 1.0.
	StatementInterval float64 `json:"statement_interval" yaml:"statement_interval"`
}

// DefaultConfig returns a Config with the default sweep timing.
func DefaultConfig() *Config {
	return &Config{
		MinSweepDelay:     1.5,
		MaxSweepDelay:     4.0,
		StatementInterval: 1.0,
	}
}

// LoadConfig loads a Config from a YAML (.yaml/.yml) or JSON file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read gc config file: %w", err)
	}

	config := DefaultConfig()
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, config)
	default:
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse gc config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks that the timing values are usable.
func (c *Config) Validate() error {
	if c.MinSweepDelay <= 0 {
		return fmt.Errorf("min_sweep_delay must be > 0")
	}
	if c.MaxSweepDelay < c.MinSweepDelay {
		return fmt.Errorf("max_sweep_delay must be >= min_sweep_delay")
	}
	if c.StatementInterval <= 0 {
		return fmt.Errorf("statement_interval must be > 0")
	}
	return nil
}

// Clone returns a copy of the Config.
func (c *Config) Clone() *Config {
	out := *c
	return &out
}
