package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rustyeddy/futback/market"
	"github.com/rustyeddy/futback/sweep"
	"gopkg.in/yaml.v3"
)

// Config is the complete run configuration.
type Config struct {
	Data     DataConfig     `json:"data" yaml:"data"`
	Engine   EngineConfig   `json:"engine" yaml:"engine"`
	Strategy StrategyConfig `json:"strategy" yaml:"strategy"`
	Sweep    SweepConfig    `json:"sweep" yaml:"sweep"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
}

// DataConfig locates the bar file and the traded contract.
type DataConfig struct {
	Path   string    `json:"path" yaml:"path"`
	Ticker string    `json:"ticker" yaml:"ticker"`
	From   time.Time `json:"from,omitempty" yaml:"from,omitempty"`
	To     time.Time `json:"to,omitempty" yaml:"to,omitempty"`
}

// EngineConfig contains replay parameters.
type EngineConfig struct {
	Size float64 `json:"size" yaml:"size"` // contracts per position
}

// StrategyConfig names the strategy and its hyperparameters.
type StrategyConfig struct {
	Name   string             `json:"name" yaml:"name"`
	Params map[string]float64 `json:"params,omitempty" yaml:"params,omitempty"`
}

// SweepConfig contains the parameter-sweep settings shared by the grid,
// genetic, and walk-forward drivers.
type SweepConfig struct {
	Fitness     string                  `json:"fitness" yaml:"fitness"`
	Workers     int                     `json:"workers" yaml:"workers"`
	Grid        []sweep.Range           `json:"grid,omitempty" yaml:"grid,omitempty"`
	Genetic     sweep.GeneticConfig     `json:"genetic,omitempty" yaml:"genetic,omitempty"`
	WalkForward sweep.WalkForwardConfig `json:"walkforward,omitempty" yaml:"walkforward,omitempty"`
}

// JournalConfig contains persistence paths.
type JournalConfig struct {
	DBPath      string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	SnapshotDir string `json:"snapshot_dir,omitempty" yaml:"snapshot_dir,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML or JSON based on
// content; YAML is tried first).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Data.Path == "" {
		return fmt.Errorf("data.path is required")
	}
	if c.Data.Ticker == "" {
		return fmt.Errorf("data.ticker is required")
	}
	if _, ok := market.Contracts[c.Data.Ticker]; !ok {
		return fmt.Errorf("unknown contract: %s", c.Data.Ticker)
	}
	if !c.Data.From.IsZero() && !c.Data.To.IsZero() && !c.Data.To.After(c.Data.From) {
		return fmt.Errorf("data.to must be after data.from")
	}
	if c.Engine.Size <= 0 {
		return fmt.Errorf("engine.size must be positive")
	}
	if c.Strategy.Name == "" {
		return fmt.Errorf("strategy.name is required")
	}
	if c.Sweep.Workers < 0 {
		return fmt.Errorf("sweep.workers must not be negative")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Ticker: "ES",
		},
		Engine: EngineConfig{
			Size: 1,
		},
		Strategy: StrategyConfig{
			Name: "sma-cross",
		},
		Sweep: SweepConfig{
			Fitness: "profit",
		},
		Journal: JournalConfig{
			DBPath:      "./futback.sqlite",
			SnapshotDir: "./runs",
		},
	}
}
