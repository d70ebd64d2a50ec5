package config

import (
	"os"
	"strconv"

	"github.com/marshallyale/go-outdoors-learning/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Output OutputConfig
	Survey SurveyConfig
}

// OutputConfig holds chart output settings
type OutputConfig struct {
	Dir      string
	DPI      int
	WidthIn  float64
	HeightIn float64
}

// SurveyConfig holds survey parsing settings
type SurveyConfig struct {
	// LayoutFile points to a YAML sheet layout; empty means the built-in layout.
	LayoutFile string
	// ScaleFromHeader keeps a scale legend parsed from the CSV header instead of the defaults.
	ScaleFromHeader bool
}

// Default returns the configuration used when no environment overrides are present
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Dir:      "plots",
			DPI:      300,
			WidthIn:  9,
			HeightIn: 4.8,
		},
	}
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	defaults := Default()

	config := &Config{
		Output: OutputConfig{
			Dir:      getEnvOrDefault("PLOTS_DIR", defaults.Output.Dir),
			DPI:      getEnvIntOrDefault("PLOT_DPI", defaults.Output.DPI),
			WidthIn:  getEnvFloatOrDefault("PLOT_WIDTH_IN", defaults.Output.WidthIn),
			HeightIn: getEnvFloatOrDefault("PLOT_HEIGHT_IN", defaults.Output.HeightIn),
		},
		Survey: SurveyConfig{
			LayoutFile:      getEnvOrDefault("LAYOUT_FILE", ""),
			ScaleFromHeader: getEnvBoolOrDefault("SCALE_FROM_HEADER", false),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Output.Dir == "" {
		return errors.ConfigInvalid("plots directory is required")
	}
	if config.Output.DPI <= 0 {
		return errors.ConfigInvalid("PLOT_DPI must be positive")
	}
	if config.Output.WidthIn <= 0 || config.Output.HeightIn <= 0 {
		return errors.ConfigInvalid("plot width and height must be positive")
	}
	if config.Survey.LayoutFile != "" {
		if _, err := os.Stat(config.Survey.LayoutFile); err != nil {
			return errors.WithCode(errors.CodeConfigInvalid, errors.Wrapf(err, "LAYOUT_FILE %s", config.Survey.LayoutFile))
		}
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
