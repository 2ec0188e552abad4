// Package config loads and validates engine configuration from YAML.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/riskforge/riskengine/pkg/correlation"
	"github.com/riskforge/riskengine/pkg/recommend"
	"github.com/riskforge/riskengine/pkg/risk"
	"github.com/riskforge/riskengine/pkg/sampling"
	"github.com/riskforge/riskengine/pkg/simulation"
)

// SimulationConfig controls the Monte Carlo engine.
type SimulationConfig struct {
	Iterations    int    `yaml:"iterations" validate:"required,gt=0,lte=100000"`
	TimeframeDays int    `yaml:"timeframe_days" validate:"required,gt=0"`
	Distribution  string `yaml:"distribution" validate:"omitempty,oneof=triangular lognormal"`
	Seed          uint64 `yaml:"seed"`
	Workers       int    `yaml:"workers" validate:"gte=0"`
}

// CorrelationConfig tunes network analysis thresholds.
type CorrelationConfig struct {
	EdgeThreshold float64 `yaml:"edge_threshold" validate:"gte=0,lte=1"`
	HighSeverity  float64 `yaml:"high_severity" validate:"gte=0,lte=1"`
	TopPaths      int     `yaml:"top_paths" validate:"gte=0"`
}

// RecommendConfig tunes recommendation generation.
type RecommendConfig struct {
	CostCap float64 `yaml:"cost_cap" validate:"gte=0"`
}

// Config is the full engine configuration.
type Config struct {
	Framework   string            `yaml:"framework"`
	LogLevel    string            `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	Simulation  SimulationConfig  `yaml:"simulation"`
	Correlation CorrelationConfig `yaml:"correlation"`
	Recommend   RecommendConfig   `yaml:"recommend"`
}

var validate = validator.New()

// Default returns the standard configuration.
func Default() Config {
	corr := correlation.DefaultConfig()
	return Config{
		Framework: "custom",
		LogLevel:  "info",
		Simulation: SimulationConfig{
			Iterations:    10_000,
			TimeframeDays: 365,
			Distribution:  "triangular",
		},
		Correlation: CorrelationConfig{
			EdgeThreshold: corr.EdgeThreshold,
			HighSeverity:  corr.HighSeverity,
			TopPaths:      corr.TopCriticalPaths,
		},
		Recommend: RecommendConfig{
			CostCap: recommend.DefaultCostCap,
		},
	}
}

// Load reads a YAML config file, layering it over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SimulationParameters converts the config into engine parameters.
func (c Config) SimulationParameters() simulation.Parameters {
	return simulation.Parameters{
		Iterations:    c.Simulation.Iterations,
		TimeframeDays: c.Simulation.TimeframeDays,
		Distribution:  sampling.Family(c.Simulation.Distribution),
	}
}

// CorrelationSettings converts the config into correlation settings.
func (c Config) CorrelationSettings() correlation.Config {
	out := correlation.DefaultConfig()
	if c.Correlation.EdgeThreshold > 0 {
		out.EdgeThreshold = c.Correlation.EdgeThreshold
	}
	if c.Correlation.HighSeverity > 0 {
		out.HighSeverity = c.Correlation.HighSeverity
	}
	if c.Correlation.TopPaths > 0 {
		out.TopCriticalPaths = c.Correlation.TopPaths
	}
	return out
}

// RecommendSettings converts the config into recommendation settings.
func (c Config) RecommendSettings() recommend.Config {
	out := recommend.DefaultConfig()
	if c.Recommend.CostCap > 0 {
		out.CostCap = c.Recommend.CostCap
	}
	return out
}

// riskFile is the on-disk shape of a risk portfolio.
type riskFile struct {
	Risks []risk.Input `yaml:"risks" validate:"required,min=1,dive"`
}

// LoadRisks reads a risk portfolio from a YAML file and validates every
// entry.
func LoadRisks(path string) ([]risk.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading risks: %w", err)
	}
	var f riskFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing risks: %w", err)
	}
	if err := risk.ValidateSet(f.Risks); err != nil {
		return nil, err
	}
	return f.Risks, nil
}
