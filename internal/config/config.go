// Package config provides configuration management for the Fairline application.
package config

import (
	"fmt"
	"time"

	"github.com/yourusername/fairline/internal/ev"
	"github.com/yourusername/fairline/internal/fairodds"
)

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Feed      FeedConfig      `mapstructure:"feed" validate:"required"`
	Engine    EngineConfig    `mapstructure:"engine" validate:"required"`
	Scheduler SchedulerConfig `mapstructure:"scheduler" validate:"required"`
	Metrics   MetricsConfig   `mapstructure:"metrics" validate:"required"`
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

// FeedConfig represents odds feed API configuration
type FeedConfig struct {
	BaseURL               string   `mapstructure:"base_url" validate:"required,url"`
	StreamURL             string   `mapstructure:"stream_url"`
	APIKey                string   `mapstructure:"api_key"`
	Leagues               []string `mapstructure:"leagues" validate:"required,min=1"`
	Markets               []string `mapstructure:"markets" validate:"required,min=1,markets"`
	TimeoutSeconds        int      `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	RetryAttempts         int      `mapstructure:"retry_attempts" validate:"gte=0"`
	RateLimitPerSecond    float64  `mapstructure:"rate_limit_per_second" validate:"required,gt=0"`
	SnapshotCacheTTLSecs  int      `mapstructure:"snapshot_cache_ttl_seconds" validate:"required,gt=0"`
	CircuitBreakerErrors  int      `mapstructure:"circuit_breaker_errors" validate:"gte=0"`
	CircuitBreakerWindow  int      `mapstructure:"circuit_breaker_window_seconds" validate:"gte=0"`
}

// EngineConfig carries the fair-odds tunables and the per-book fee table.
type EngineConfig struct {
	FairOdds fairodds.Config         `mapstructure:"fair_odds"`
	Fees     map[string]ev.FeeProfile `mapstructure:"fees"`
	// MinEVPercent is the reporting floor for positive-EV opportunities.
	MinEVPercent float64 `mapstructure:"min_ev_percent" validate:"gte=0"`
}

// FeeTable converts the configured fee map into the engine's lookup table,
// falling back to the built-in defaults when no fees are configured.
func (e EngineConfig) FeeTable() ev.FeeTable {
	if len(e.Fees) == 0 {
		return ev.DefaultFeeTable()
	}
	table := make(ev.FeeTable, len(e.Fees))
	for book, profile := range e.Fees {
		table[book] = profile
	}
	return table
}

// SchedulerConfig represents pass scheduling configuration
type SchedulerConfig struct {
	PassCron           string `mapstructure:"pass_cron" validate:"required"`
	RetentionDays      int    `mapstructure:"retention_days" validate:"required,gt=0"`
	CleanupCron        string `mapstructure:"cleanup_cron" validate:"required"`
	ShutdownTimeoutSec int    `mapstructure:"shutdown_timeout_seconds" validate:"required,gt=0"`
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

// FeedTimeout returns the configured feed request timeout as a duration.
func (c *Config) FeedTimeout() time.Duration {
	return time.Duration(c.Feed.TimeoutSeconds) * time.Second
}

// SnapshotCacheTTL returns the configured snapshot cache TTL as a duration.
func (c *Config) SnapshotCacheTTL() time.Duration {
	return time.Duration(c.Feed.SnapshotCacheTTLSecs) * time.Second
}
