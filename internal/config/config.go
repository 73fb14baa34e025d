// Package config provides configuration management for the sports companion service.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Providers ProvidersConfig `mapstructure:"providers" validate:"required"`
	HTTP      HTTPConfig      `mapstructure:"http" validate:"required"`
	Cache     CacheConfig     `mapstructure:"cache" validate:"required"`
	Synthetic SyntheticConfig `mapstructure:"synthetic"`
	Polling   PollingConfig   `mapstructure:"polling"`
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Secrets   SecretsConfig   `mapstructure:"secrets"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name         string `mapstructure:"name" validate:"required"`
	Environment  string `mapstructure:"environment" validate:"required,environment"`
	LogLevel     string `mapstructure:"log_level" validate:"required,loglevel"`
	LogFormat    string `mapstructure:"log_format" validate:"omitempty,oneof=text json"`
	DefaultSport string `mapstructure:"default_sport" validate:"required,sport"`
}

// ProvidersConfig groups the per-sport upstream providers
type ProvidersConfig struct {
	Basketball ProviderConfig `mapstructure:"basketball"`
	Football   ProviderConfig `mapstructure:"football"`
	Cricket    ProviderConfig `mapstructure:"cricket"`
}

// ProviderConfig represents a single upstream provider
type ProviderConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	APIKey  string `mapstructure:"api_key"`
}

// HTTPConfig controls the timed fetcher shared by all providers
type HTTPConfig struct {
	TimeoutMS      int     `mapstructure:"timeout_ms" validate:"required,gt=0"`
	MaxRetries     int     `mapstructure:"max_retries" validate:"gte=0,lte=5"`
	RetryWaitMinMS int     `mapstructure:"retry_wait_min_ms" validate:"gte=0"`
	RetryWaitMaxMS int     `mapstructure:"retry_wait_max_ms" validate:"gtefield=RetryWaitMinMS"`
	RateLimit      float64 `mapstructure:"rate_limit" validate:"gte=0"`
	UserAgent      string  `mapstructure:"user_agent"`
}

// CacheConfig represents the freshness cache backend
type CacheConfig struct {
	Backend    string `mapstructure:"backend" validate:"required,cachebackend"`
	TTLSeconds int    `mapstructure:"ttl_seconds" validate:"required,gt=0"`
	RedisURL   string `mapstructure:"redis_url" validate:"required_if=Backend redis"`
	KeyPrefix  string `mapstructure:"key_prefix"`
}

// SyntheticConfig controls sample data generation
type SyntheticConfig struct {
	MatchCount int `mapstructure:"match_count" validate:"gte=0"`
}

// PollingConfig controls the cache warming scheduler
type PollingConfig struct {
	Enabled         bool     `mapstructure:"enabled"`
	IntervalSeconds int      `mapstructure:"interval_seconds" validate:"gte=0"`
	Sports          []string `mapstructure:"sports" validate:"dive,sport"`
}

// ServerConfig represents the HTTP API server
type ServerConfig struct {
	Port                int      `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadTimeoutSeconds  int      `mapstructure:"read_timeout_seconds" validate:"gte=0"`
	WriteTimeoutSeconds int      `mapstructure:"write_timeout_seconds" validate:"gte=0"`
	CORSOrigins         []string `mapstructure:"cors_origins"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required_if=Enabled true"`
}

// SecretsConfig points at an optional AWS Secrets Manager secret holding provider keys
type SecretsConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Region     string `mapstructure:"region" validate:"required_if=Enabled true"`
	SecretName string `mapstructure:"secret_name" validate:"required_if=Enabled true"`
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

// Timeout returns the per-request deadline
func (h HTTPConfig) Timeout() time.Duration {
	return time.Duration(h.TimeoutMS) * time.Millisecond
}

// RetryWaitMin returns the minimum backoff between retries
func (h HTTPConfig) RetryWaitMin() time.Duration {
	return time.Duration(h.RetryWaitMinMS) * time.Millisecond
}

// RetryWaitMax returns the maximum backoff between retries
func (h HTTPConfig) RetryWaitMax() time.Duration {
	return time.Duration(h.RetryWaitMaxMS) * time.Millisecond
}

// TTL returns the advisory freshness window
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// Interval returns the polling period
func (p PollingConfig) Interval() time.Duration {
	return time.Duration(p.IntervalSeconds) * time.Second
}

// Address returns the listen address for the API server
func (s ServerConfig) Address() string {
	return fmt.Sprintf(":%d", s.Port)
}
