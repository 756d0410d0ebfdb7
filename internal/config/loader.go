package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultPath is read when no explicit path is given
	DefaultPath = "config/config.yaml"
	// EnvPrefix prefixes every environment override
	EnvPrefix = "CLEVER_EDGE"
)

// Load reads and parses the configuration from file and environment variables.
// ${VAR_NAME} placeholders in the YAML are expanded before parsing.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper()
	if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return unmarshal(v)
}

// LoadWithDefaults loads configuration with default values for optional
// fields. A missing file is not an error.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultPath
	}

	v := newViper()
	setDefaults(v)

	if data, err := os.ReadFile(configPath); err == nil {
		if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "clever-edge")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("engine.kelly_fraction", 0.25)
	v.SetDefault("engine.spread_range", 1.0)
	v.SetDefault("engine.line_certainty", 0.8)
	v.SetDefault("engine.drift_bins", 10)
	v.SetDefault("engine.drift_threshold", 0.2)
	v.SetDefault("engine.calibration_bins", 10)
	v.SetDefault("engine.platt_learning_rate", 0.01)
	v.SetDefault("engine.platt_iterations", 1000)
	v.SetDefault("engine.jitter_enabled", false)
	v.SetDefault("engine.jitter_amplitude", 0)
	v.SetDefault("engine.min_prediction_confidence", 0.6)

	v.SetDefault("drift.enabled", true)
	v.SetDefault("drift.schedule", "0 */6 * * *")
	v.SetDefault("drift.reference_window", "720h")
	v.SetDefault("drift.current_window", "168h")

	v.SetDefault("calibration.enabled", true)
	v.SetDefault("calibration.schedule", "30 3 * * *")
	v.SetDefault("calibration.model_version", "ensemble-v1")
	v.SetDefault("calibration.lookback", "2160h")
	v.SetDefault("calibration.min_samples", 50)

	v.SetDefault("cache.ttl", "5m")
	v.SetDefault("cache.max_size", 10000)

	v.SetDefault("explain.provider", "local")
	v.SetDefault("explain.timeout", "10s")
	v.SetDefault("explain.rate_limit", 5.0)
	v.SetDefault("explain.max_retries", 3)
	v.SetDefault("explain.circuit_cooldown", "30s")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("health.port", 8080)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}
