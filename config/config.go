package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"attrib/journey"
)

// Config represents the complete pipeline configuration.
type Config struct {
	Store    StoreConfig    `json:"store" yaml:"store"`
	Files    FilesConfig    `json:"files" yaml:"files"`
	Pipeline PipelineConfig `json:"pipeline" yaml:"pipeline"`
}

// StoreConfig selects and addresses the relational backend.
type StoreConfig struct {
	Driver string `json:"driver" yaml:"driver"` // "sqlite" or "postgres"
	DSN    string `json:"dsn" yaml:"dsn"`       // file path for sqlite, conninfo for postgres
}

// FilesConfig names the file artifacts the pipeline reads and writes.
type FilesConfig struct {
	Weights  string `json:"weights" yaml:"weights"`
	Journeys string `json:"journeys" yaml:"journeys"`
	Report   string `json:"report" yaml:"report"`
}

// PipelineConfig holds run policies.
type PipelineConfig struct {
	// Window controls which side of the conversion time a session
	// must fall on: "at_or_after" (the long-observed production
	// behavior) or "before".
	Window journey.Window `json:"window" yaml:"window"`
}

// LoadFromFile loads configuration from a YAML or JSON file.
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

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Store.Driver != "sqlite" && c.Store.Driver != "postgres" {
		return fmt.Errorf("store.driver must be 'sqlite' or 'postgres'")
	}
	if c.Store.DSN == "" {
		return fmt.Errorf("store.dsn is required")
	}
	if c.Files.Weights == "" {
		return fmt.Errorf("files.weights is required")
	}
	if c.Files.Journeys == "" {
		return fmt.Errorf("files.journeys is required")
	}
	if c.Files.Report == "" {
		return fmt.Errorf("files.report is required")
	}
	if c.Pipeline.Window != "" && !c.Pipeline.Window.Valid() {
		return fmt.Errorf("pipeline.window must be 'at_or_after' or 'before'")
	}
	return nil
}

// Default returns a configuration with sensible defaults. The default
// file names match the artifacts the original reporting consumers
// already expect.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Driver: "sqlite",
			DSN:    "./attrib.sqlite",
		},
		Files: FilesConfig{
			Weights:  "./IHC_channel_weights.csv",
			Journeys: "./ihc_parameter_training_set.csv",
			Report:   "./channel_reporting_with_metrics.csv",
		},
		Pipeline: PipelineConfig{
			Window: journey.WindowAtOrAfter,
		},
	}
}
