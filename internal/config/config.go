package config

import (
	"math"
	"os"
	"strconv"
	"strings"

	"bookstat/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Input    InputConfig
	Cleaning CleaningConfig
	Analysis AnalysisConfig
	Output   OutputConfig
	Database DatabaseConfig
}

// InputConfig holds source table settings
type InputConfig struct {
	File  string
	Sheet string // worksheet name for xlsx sources
}

// CleaningConfig holds the cleaning stage settings
type CleaningConfig struct {
	NumericFill     float64
	CategoricalFill string
	RequiredFields  []string
	TextFields      []string
	TextFeatures    bool
	CurrencyRates   map[string]float64
}

// AnalysisConfig holds the analysis stage settings
type AnalysisConfig struct {
	SegmentName  string
	SegmentMatch string // case-insensitive category substring
}

// OutputConfig holds artifact output settings
type OutputConfig struct {
	Dir         string
	HTMLPreview bool
}

// DatabaseConfig holds optional run archive settings.
// An empty URL disables persistence.
type DatabaseConfig struct {
	URL string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Input: InputConfig{
			File:  getEnvOrDefault("INPUT_FILE", ""),
			Sheet: getEnvOrDefault("XLSX_SHEET", "Sheet1"),
		},
		Cleaning: CleaningConfig{
			NumericFill:     getEnvFloatOrDefault("NUMERIC_FILL", 0.0),
			CategoricalFill: getEnvOrDefault("CATEGORICAL_FILL", "Unknown"),
			RequiredFields:  getEnvListOrDefault("REQUIRED_FIELDS", []string{"title", "price"}),
			TextFields:      getEnvListOrDefault("TEXT_FIELDS", []string{"title", "category"}),
			TextFeatures:    getEnvBoolOrDefault("TEXT_FEATURES", false),
			CurrencyRates:   parseRates(getEnvOrDefault("CURRENCY_RATES", "")),
		},
		Analysis: AnalysisConfig{
			SegmentName:  getEnvOrDefault("SEGMENT_NAME", "fiction"),
			SegmentMatch: getEnvOrDefault("SEGMENT_MATCH", "fiction"),
		},
		Output: OutputConfig{
			Dir:         getEnvOrDefault("OUTPUT_DIR", "data"),
			HTMLPreview: getEnvBoolOrDefault("HTML_PREVIEW", false),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Output.Dir == "" {
		return errors.ConfigInvalid("output directory is required")
	}
	if config.Analysis.SegmentMatch == "" {
		return errors.ConfigInvalid("segment match substring is required")
	}
	if config.Analysis.SegmentName == "" {
		return errors.ConfigInvalid("segment name is required")
	}
	if math.IsNaN(config.Cleaning.NumericFill) || math.IsInf(config.Cleaning.NumericFill, 0) {
		return errors.ConfigInvalid("numeric fill value must be finite")
	}
	for marker, rate := range config.Cleaning.CurrencyRates {
		if rate <= 0 {
			return errors.ConfigInvalid("currency rate for " + marker + " must be positive")
		}
	}
	return nil
}

// parseRates parses a marker:rate list such as "£:1.27,€:1.10,$:1.0".
// Malformed entries are skipped; an empty input yields nil so the
// cleaner falls back to its built-in table.
func parseRates(raw string) map[string]float64 {
	if raw == "" {
		return nil
	}
	rates := make(map[string]float64)
	for _, entry := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(entry), ":", 2)
		if len(parts) != 2 {
			continue
		}
		rate, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			continue
		}
		marker := strings.TrimSpace(parts[0])
		if marker == "" {
			continue
		}
		rates[marker] = rate
	}
	if len(rates) == 0 {
		return nil
	}
	return rates
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
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

func getEnvListOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		var items []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		if len(items) > 0 {
			return items
		}
	}
	return defaultValue
}
