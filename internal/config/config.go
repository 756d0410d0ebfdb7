// Package config provides configuration management for the clever-edge engine.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App         AppConfig         `mapstructure:"app" validate:"required"`
	Database    DatabaseConfig    `mapstructure:"database" validate:"required"`
	Engine      EngineConfig      `mapstructure:"engine" validate:"required"`
	Drift       DriftConfig       `mapstructure:"drift" validate:"required"`
	Calibration CalibrationConfig `mapstructure:"calibration" validate:"required"`
	Cache       CacheConfig       `mapstructure:"cache" validate:"required"`
	Explain     ExplainConfig     `mapstructure:"explain" validate:"required"`
	Metrics     MetricsConfig     `mapstructure:"metrics" validate:"required"`
	Health      HealthConfig      `mapstructure:"health" validate:"required"`
	Secrets     SecretsConfig     `mapstructure:"secrets"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// EngineConfig holds the tunables of the scoring and calibration engine
type EngineConfig struct {
	KellyFraction           float64 `mapstructure:"kelly_fraction" validate:"gt=0,lte=1"`
	SpreadRange             float64 `mapstructure:"spread_range" validate:"gte=0"`
	LineCertainty           float64 `mapstructure:"line_certainty" validate:"gte=0,lte=1"`
	DriftBins               int     `mapstructure:"drift_bins" validate:"gt=0"`
	DriftThreshold          float64 `mapstructure:"drift_threshold" validate:"gt=0"`
	CalibrationBins         int     `mapstructure:"calibration_bins" validate:"gt=0"`
	PlattLearningRate       float64 `mapstructure:"platt_learning_rate" validate:"gt=0"`
	PlattIterations         int     `mapstructure:"platt_iterations" validate:"gt=0"`
	JitterEnabled           bool    `mapstructure:"jitter_enabled"`
	JitterSeed              int64   `mapstructure:"jitter_seed"`
	JitterAmplitude         float64 `mapstructure:"jitter_amplitude" validate:"gte=0"`
	MinPredictionConfidence float64 `mapstructure:"min_prediction_confidence" validate:"gte=0,lte=1"`
}

// DriftConfig schedules feature drift checks
type DriftConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Schedule        string        `mapstructure:"schedule" validate:"required,cron"`
	ReferenceWindow time.Duration `mapstructure:"reference_window" validate:"gt=0"`
	CurrentWindow   time.Duration `mapstructure:"current_window" validate:"gt=0"`
	Features        []string      `mapstructure:"features"`
}

// CalibrationConfig schedules calibration evaluation and Platt refits
type CalibrationConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Schedule     string        `mapstructure:"schedule" validate:"required,cron"`
	ModelVersion string        `mapstructure:"model_version" validate:"required"`
	Lookback     time.Duration `mapstructure:"lookback" validate:"gt=0"`
	MinSamples   int           `mapstructure:"min_samples" validate:"gte=0"`
}

// CacheConfig configures the prediction cache
type CacheConfig struct {
	TTL     time.Duration `mapstructure:"ttl" validate:"gt=0"`
	MaxSize int           `mapstructure:"max_size" validate:"gt=0"`
}

// ExplainConfig selects and configures the explanation provider
type ExplainConfig struct {
	Provider   string        `mapstructure:"provider" validate:"required,provider"`
	URL        string        `mapstructure:"url" validate:"omitempty,url"`
	APIKey     string        `mapstructure:"api_key"`
	Timeout    time.Duration `mapstructure:"timeout" validate:"gte=0"`
	RateLimit  float64       `mapstructure:"rate_limit" validate:"gte=0"`
	MaxRetries int           `mapstructure:"max_retries" validate:"gte=0"`
	// CircuitCooldown is how long an open circuit waits before a trial call
	CircuitCooldown time.Duration `mapstructure:"circuit_cooldown" validate:"gte=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required"`
}

// HealthConfig configures the health and gRPC health listeners
type HealthConfig struct {
	Port     int `mapstructure:"port" validate:"required,min=1,max=65535"`
	GRPCPort int `mapstructure:"grpc_port" validate:"omitempty,min=1,max=65535"`
}

// SecretsConfig points at an optional AWS Secrets Manager overlay
type SecretsConfig struct {
	Region     string `mapstructure:"region"`
	SecretName string `mapstructure:"secret_name"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
