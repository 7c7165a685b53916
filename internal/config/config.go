// Package config provides unified configuration loading for lifewatch.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/nvandessel/lifewatch/internal/constants"
	"github.com/nvandessel/lifewatch/internal/logging"
	"github.com/nvandessel/lifewatch/internal/pathutil"
)

// LifewatchConfig contains all lifewatch configuration settings.
type LifewatchConfig struct {
	// Simulation contains grid, seeding and pacing settings.
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`

	// Stability contains cycle detection settings.
	Stability StabilityConfig `json:"stability" yaml:"stability"`

	// Display contains renderer settings.
	Display DisplayConfig `json:"display" yaml:"display"`

	// Report contains final report settings.
	Report ReportConfig `json:"report" yaml:"report"`

	// Logging contains settings for operational and decision logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// SimulationConfig configures the grid and the generation loop.
type SimulationConfig struct {
	// Width is the number of grid columns.
	Width int `json:"width" yaml:"width" env:"LIFEWATCH_WIDTH"`

	// Height is the number of grid rows.
	Height int `json:"height" yaml:"height" env:"LIFEWATCH_HEIGHT"`

	// Density is the probability a cell starts alive. Range: 0.0 to 1.0
	Density float64 `json:"density" yaml:"density" env:"LIFEWATCH_DENSITY"`

	// FPS is the target number of generations per second.
	FPS float64 `json:"fps" yaml:"fps" env:"LIFEWATCH_FPS"`

	// Seed fixes the random source. When nil, a seed is derived from the clock.
	Seed *int64 `json:"seed,omitempty" yaml:"seed,omitempty" env:"LIFEWATCH_SEED"`

	// MaxGenerations stops the run after this many generations (0 = unlimited).
	MaxGenerations int `json:"max_generations" yaml:"max_generations" env:"LIFEWATCH_MAX_GENERATIONS"`
}

// StabilityConfig configures cycle detection.
type StabilityConfig struct {
	// MaxPeriod is the longest oscillation period treated as stable.
	MaxPeriod int `json:"max_period" yaml:"max_period" env:"LIFEWATCH_MAX_PERIOD"`

	// MinRepeats is how many times a (state, period) pair must recur.
	MinRepeats int `json:"min_repeats" yaml:"min_repeats" env:"LIFEWATCH_MIN_REPEATS"`
}

// DisplayConfig configures frame output.
type DisplayConfig struct {
	// Renderer is "auto" (default), "terminal", or "none".
	Renderer constants.RenderMode `json:"renderer" yaml:"renderer" env:"LIFEWATCH_RENDERER"`
}

// ReportConfig configures the final report.
type ReportConfig struct {
	// TrendWidth is the number of recent generations in the trend line.
	TrendWidth int `json:"trend_width" yaml:"trend_width" env:"LIFEWATCH_TREND_WIDTH"`
}

// LoggingConfig configures lifewatch's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "warn", "info" (default), "debug", or "trace".
	// "trace" logs every generation.
	Level string `json:"level" yaml:"level" env:"LIFEWATCH_LOG_LEVEL"`
}

// Default returns a LifewatchConfig with sensible defaults.
func Default() *LifewatchConfig {
	return &LifewatchConfig{
		Simulation: SimulationConfig{
			Width:          constants.GridWidth,
			Height:         constants.GridHeight,
			Density:        constants.DefaultDensity,
			FPS:            constants.DefaultFPS,
			MaxGenerations: constants.DefaultMaxGenerations,
		},
		Stability: StabilityConfig{
			MaxPeriod:  constants.DefaultMaxPeriod,
			MinRepeats: constants.DefaultMinRepeats,
		},
		Display: DisplayConfig{
			Renderer: constants.RenderAuto,
		},
		Report: ReportConfig{
			TrendWidth: constants.DefaultTrendWidth,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns ~/.lifewatch/config.yaml, or "" if HOME is unknown.
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".lifewatch", "config.yaml")
}

// Load loads configuration from the default locations and environment variables.
// Order: defaults -> ~/.lifewatch/config.yaml -> environment variables
func Load() (*LifewatchConfig, error) {
	config := Default()

	if configPath := DefaultPath(); configPath != "" {
		if _, statErr := os.Stat(configPath); statErr == nil {
			fileConfig, loadErr := LoadFromFile(configPath)
			if loadErr != nil {
				return nil, fmt.Errorf("loading config file: %w", loadErr)
			}
			config = fileConfig
		}
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadPath is like Load but reads an explicit file instead of the default
// location. A missing explicit file is an error.
func LoadPath(path string) (*LifewatchConfig, error) {
	config, err := LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadFromFile loads configuration from a specific YAML file.
// Keys missing from the file keep their defaults.
func LoadFromFile(path string) (*LifewatchConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", pathutil.RedactPath(path), err)
	}
	return config, nil
}

// Validate checks that the configuration is valid.
func (c *LifewatchConfig) Validate() error {
	s := c.Simulation
	if s.Width < 1 || s.Height < 1 {
		return fmt.Errorf("grid dimensions must be positive, got %dx%d", s.Width, s.Height)
	}
	if s.Density < 0 || s.Density > 1 {
		return fmt.Errorf("density must be between 0 and 1, got %v", s.Density)
	}
	if s.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %v", s.FPS)
	}
	if s.MaxGenerations < 0 {
		return fmt.Errorf("max_generations must be non-negative, got %d", s.MaxGenerations)
	}

	if c.Stability.MaxPeriod < 1 {
		return fmt.Errorf("max_period must be at least 1, got %d", c.Stability.MaxPeriod)
	}
	if c.Stability.MinRepeats < 1 {
		return fmt.Errorf("min_repeats must be at least 1, got %d", c.Stability.MinRepeats)
	}

	if !c.Display.Renderer.Valid() {
		return fmt.Errorf("invalid renderer: %s (valid: auto, terminal, none)", c.Display.Renderer)
	}

	if c.Report.TrendWidth < 1 {
		return fmt.Errorf("trend_width must be at least 1, got %d", c.Report.TrendWidth)
	}

	if c.Logging.Level != "" && !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (valid: warn, info, debug, trace, or empty for default)", c.Logging.Level)
	}

	return nil
}

// applyEnvOverrides applies LIFEWATCH_* environment variables to the config.
// Unset variables leave the current values untouched.
func applyEnvOverrides(config *LifewatchConfig) error {
	if err := env.Parse(config); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
