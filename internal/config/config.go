// Package config provides configuration management for the edge-journal application.
package config

import (
	"fmt"
)

// Storage drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Storage   StorageConfig   `mapstructure:"storage" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Analytics AnalyticsConfig `mapstructure:"analytics" validate:"required"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Metrics   MetricsConfig   `mapstructure:"metrics" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// StorageConfig selects where trades, profiles and snapshots live
type StorageConfig struct {
	Driver     string `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name               string `mapstructure:"name"`
	User               string `mapstructure:"user"`
	Password           string `mapstructure:"password"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"omitempty,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"omitempty,gt=0"`
}

// AnalyticsConfig holds the statistics and simulation settings
type AnalyticsConfig struct {
	RiskFreeRate             float64 `mapstructure:"risk_free_rate" validate:"gte=0,lte=1"`
	MonteCarloRuns           int     `mapstructure:"monte_carlo_runs" validate:"required,gt=0"`
	MonteCarloSequenceLength int     `mapstructure:"monte_carlo_sequence_length" validate:"required,gt=0"`
	RuinDrawdownThreshold    float64 `mapstructure:"ruin_drawdown_threshold" validate:"required,gt=0,lte=1"`
	PredictionRuns           int     `mapstructure:"prediction_runs" validate:"required,gt=0"`
	KellyMultiplier          float64 `mapstructure:"kelly_multiplier" validate:"required,gt=0,lte=1"`
	Seed                     int64   `mapstructure:"seed"`
	Timezone                 string  `mapstructure:"timezone" validate:"required,timezone"`
	CacheTTLSeconds          int     `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
}

// SchedulerConfig controls periodic evaluation refreshes
type SchedulerConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	EvaluationRefresh string `mapstructure:"evaluation_refresh" validate:"omitempty,cron"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
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

// UsesPostgres reports whether the storage driver is PostgreSQL
func (c *Config) UsesPostgres() bool {
	return c.Storage.Driver == DriverPostgres
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
