package main

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config holds everything the planner server needs at startup
type Config struct {
	Addr                string  `hcl:"addr,optional"`
	Rows                int     `hcl:"rows,optional"`
	Cols                int     `hcl:"cols,optional"`
	ObstacleProbability float64 `hcl:"obstacle_probability,optional"` // 0 leaves the grid open
	Seed                int64   `hcl:"seed,optional"`                 // 0 picks a time-based seed
	ZonesDir            string  `hcl:"zones_dir,optional"`            // GeoJSON obstacle zones, optional
	LogLevel            string  `hcl:"log_level,optional"`
	LogFormat           string  `hcl:"log_format,optional"`
}

// Defaults for settings a config file leaves out
const (
	defaultAddr      = ":8080"
	defaultRows      = 20
	defaultCols      = 20
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
)

// DefaultConfig returns the configuration used when no file is given
func DefaultConfig() *Config {
	return &Config{
		Addr:      defaultAddr,
		Rows:      defaultRows,
		Cols:      defaultCols,
		LogLevel:  defaultLogLevel,
		LogFormat: defaultLogFormat,
	}
}

// LoadConfig reads an HCL config file. An empty path yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}

	diags = gohcl.DecodeBody(hclFile.Body, nil, cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, diags)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Addr == "" {
		c.Addr = defaultAddr
	}
	if c.Rows == 0 {
		c.Rows = defaultRows
	}
	if c.Cols == 0 {
		c.Cols = defaultCols
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = defaultLogFormat
	}
}

// Validate checks values the grid and logger cannot recover from
func (c *Config) Validate() error {
	if c.Rows < 0 || c.Cols < 0 {
		return fmt.Errorf("rows and cols must be positive, got %dx%d", c.Rows, c.Cols)
	}
	if c.ObstacleProbability < 0 || c.ObstacleProbability > 1 {
		return fmt.Errorf("obstacle_probability must be within [0, 1], got %g", c.ObstacleProbability)
	}
	if _, err := parseLogLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return errors.New("log_format must be 'text' or 'json'")
	}
	return nil
}
