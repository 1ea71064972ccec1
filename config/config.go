package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/tradebook/buckets"
)

// Config represents the complete tradebook configuration
type Config struct {
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Buckets BucketsConfig `json:"buckets" yaml:"buckets"`
}

// JournalConfig points at the SQLite journal store
type JournalConfig struct {
	DBPath string `json:"db_path" yaml:"db_path"`
}

// BucketsConfig holds the configurable bucket boundary tables. Empty
// tables fall back to the defaults.
type BucketsConfig struct {
	EntryTime []EntryBucketConfig `json:"entry_time,omitempty" yaml:"entry_time,omitempty"`
	DTE       []DTERangeConfig    `json:"dte,omitempty" yaml:"dte,omitempty"`
}

// EntryBucketConfig is one intraday window, minutes from midnight,
// start inclusive, end exclusive
type EntryBucketConfig struct {
	Label string `json:"label" yaml:"label"`
	Start int    `json:"start" yaml:"start"`
	End   int    `json:"end" yaml:"end"`
}

// DTERangeConfig is one days-to-expiration range; max -1 means open-ended
type DTERangeConfig struct {
	Label string `json:"label" yaml:"label"`
	Min   int    `json:"min" yaml:"min"`
	Max   int    `json:"max" yaml:"max"`
}

// LoadFromFile loads configuration from a file (JSON or YAML based on content)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Journal.DBPath == "" {
		return fmt.Errorf("journal.db_path is required")
	}
	if err := c.EntryTimeTable().Validate(); err != nil {
		return fmt.Errorf("buckets.entry_time: %w", err)
	}
	if err := c.DTETable().Validate(); err != nil {
		return fmt.Errorf("buckets.dte: %w", err)
	}
	return nil
}

// EntryTimeTable converts the configured entry-time windows, or the
// default table when none are configured
func (c *Config) EntryTimeTable() buckets.EntryTimeTable {
	if len(c.Buckets.EntryTime) == 0 {
		return buckets.DefaultEntryTimeTable()
	}
	table := make(buckets.EntryTimeTable, 0, len(c.Buckets.EntryTime))
	for _, b := range c.Buckets.EntryTime {
		table = append(table, buckets.EntryBucket{Label: b.Label, Start: b.Start, End: b.End})
	}
	return table
}

// DTETable converts the configured DTE ranges, or the default table when
// none are configured
func (c *Config) DTETable() buckets.DTETable {
	if len(c.Buckets.DTE) == 0 {
		return buckets.DefaultDTETable()
	}
	table := make(buckets.DTETable, 0, len(c.Buckets.DTE))
	for _, r := range c.Buckets.DTE {
		table = append(table, buckets.DTERange{Label: r.Label, Min: r.Min, Max: r.Max})
	}
	return table
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Journal: JournalConfig{
			DBPath: "./tradebook.sqlite",
		},
	}
}
