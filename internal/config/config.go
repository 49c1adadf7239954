// Package config provides configuration management for the Sportology API.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database" validate:"required"`
	Auth       AuthConfig       `mapstructure:"auth" validate:"required"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit" validate:"required"`
	Enrichment EnrichmentConfig `mapstructure:"enrichment" validate:"required"`
	Metrics    MetricsConfig    `mapstructure:"metrics" validate:"required"`
	Retention  RetentionConfig  `mapstructure:"retention" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// ServerConfig represents the HTTP server configuration
type ServerConfig struct {
	Port                 int      `mapstructure:"port" validate:"required,min=1,max=65535"`
	HealthPort           int      `mapstructure:"health_port" validate:"required,min=1,max=65535"`
	ReadTimeoutSeconds   int      `mapstructure:"read_timeout_seconds" validate:"required,gt=0"`
	WriteTimeoutSeconds  int      `mapstructure:"write_timeout_seconds" validate:"required,gt=0"`
	ShutdownGraceSeconds int      `mapstructure:"shutdown_grace_seconds" validate:"required,gt=0"`
	RequestsPerMinute    int      `mapstructure:"requests_per_minute" validate:"required,gt=0"`
	AllowedSports        []string `mapstructure:"allowed_sports" validate:"required,min=1,sports"`
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

// AuthConfig represents password hashing and token issuance configuration
type AuthConfig struct {
	JWTSecret    string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenTTLDays int    `mapstructure:"token_ttl_days" validate:"required,gt=0"`
	BcryptCost   int    `mapstructure:"bcrypt_cost" validate:"required,min=10,max=14"`
	APIKeyPrefix string `mapstructure:"api_key_prefix" validate:"required"`
}

// TokenTTL returns the access token lifetime as a duration
func (a *AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLDays) * 24 * time.Hour
}

// RateLimitConfig represents the metering rules for paid and demo callers
type RateLimitConfig struct {
	FreeTierDailyLimit int `mapstructure:"free_tier_daily_limit" validate:"required,gt=0"`
	DemoDailyLimit     int `mapstructure:"demo_daily_limit" validate:"required,gt=0"`
}

// EnrichmentConfig represents the Wikidata enrichment client configuration
type EnrichmentConfig struct {
	BaseURL           string  `mapstructure:"base_url" validate:"required,url"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries        int     `mapstructure:"max_retries" validate:"required,gte=0"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"required,gt=0"`
	UserAgent         string  `mapstructure:"user_agent" validate:"required"`
}

// MetricsConfig represents Prometheus metrics configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required"`
}

// RetentionConfig represents maintenance job configuration
type RetentionConfig struct {
	UsageLogDays int    `mapstructure:"usage_log_days" validate:"required,gt=0"`
	CronSchedule string `mapstructure:"cron_schedule" validate:"required"`
}

// GetDatabaseDSN returns the PostgreSQL connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
