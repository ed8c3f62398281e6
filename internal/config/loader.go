package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/thruflo/kaprekar/internal/logging"
	"gopkg.in/yaml.v3"
)

// Default values for Config.
const (
	DefaultIntervalMS    = 1000
	DefaultMaxTrajectory = 8
	DefaultColor         = ColorAuto
	DefaultLogLevel      = "warn"

	// MinMaxTrajectory allows at least one transform per run.
	MinMaxTrajectory = 2
)

// Dir and File locate the config file relative to a base path.
const (
	Dir  = ".kaprekar"
	File = "config.yaml"
)

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Pacing:  Pacing{IntervalMS: DefaultIntervalMS},
		Limits:  Limits{MaxTrajectory: DefaultMaxTrajectory},
		Display: Display{Color: DefaultColor},
		Log:     Log{Level: DefaultLogLevel},
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// Path returns the config file location under basePath.
func Path(basePath string) string {
	return filepath.Join(basePath, Dir, File)
}

// LoadConfig reads and parses .kaprekar/config.yaml from the given base path.
// If the file doesn't exist, returns default config.
// Applies defaults for any missing fields.
func LoadConfig(basePath string) (*Config, error) {
	cfg, err := LoadConfigFile(Path(basePath))
	if err != nil && errors.Is(err, os.ErrNotExist) {
		def := DefaultConfig()
		return &def, nil
	}
	return cfg, err
}

// LoadConfigFile reads and parses the config file at path. Unlike
// LoadConfig, a missing file is an error.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ValidateConfig checks that all config values are valid.
func ValidateConfig(cfg *Config) error {
	if cfg.Pacing.IntervalMS < 0 {
		return ValidationError{Field: "pacing.interval_ms", Message: "must not be negative"}
	}
	if cfg.Limits.MaxTrajectory < MinMaxTrajectory {
		return ValidationError{Field: "limits.max_trajectory", Message: fmt.Sprintf("must be at least %d", MinMaxTrajectory)}
	}
	switch cfg.Display.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return ValidationError{Field: "display.color", Message: fmt.Sprintf("must be one of %s, %s, %s", ColorAuto, ColorAlways, ColorNever)}
	}
	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return ValidationError{Field: "log.level", Message: err.Error()}
	}
	return nil
}

// SaveConfig writes cfg to .kaprekar/config.yaml under basePath, creating
// the directory if needed. An existing file is only replaced when overwrite
// is set.
func SaveConfig(basePath string, cfg *Config, overwrite bool) (string, error) {
	if err := ValidateConfig(cfg); err != nil {
		return "", err
	}

	path := Path(basePath)
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("config file already exists: %s", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}
