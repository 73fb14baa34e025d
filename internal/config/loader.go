// Package config provides configuration management for the sports companion service.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	envPrefix         = "SPORTS_COMPANION"
	defaultConfigPath = "config/config.yaml"
)

// Load reads and parses the configuration from file and environment variables
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
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

// LoadWithDefaults loads configuration with default values for optional fields.
// A missing file is not an error; defaults and environment variables still apply.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
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

// Default returns the built-in configuration with environment overrides applied.
func Default() (*Config, error) {
	v := newViper()
	setDefaults(v)
	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "sports-companion")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "text")
	v.SetDefault("app.default_sport", "basketball")

	v.SetDefault("providers.basketball.enabled", true)
	v.SetDefault("providers.basketball.base_url", "https://api.balldontlie.io/v1")
	v.SetDefault("providers.basketball.api_key", "")
	v.SetDefault("providers.football.enabled", true)
	v.SetDefault("providers.football.base_url", "https://www.thesportsdb.com/api/v1/json")
	v.SetDefault("providers.football.api_key", "3")
	v.SetDefault("providers.cricket.enabled", true)
	v.SetDefault("providers.cricket.base_url", "https://api.cricapi.com/v1")
	v.SetDefault("providers.cricket.api_key", "")

	v.SetDefault("http.timeout_ms", 10000)
	v.SetDefault("http.max_retries", 0)
	v.SetDefault("http.retry_wait_min_ms", 100)
	v.SetDefault("http.retry_wait_max_ms", 2000)
	v.SetDefault("http.rate_limit", 10.0)
	v.SetDefault("http.user_agent", "sports-companion/1.0")

	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.ttl_seconds", 60)
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.key_prefix", "")

	v.SetDefault("synthetic.match_count", 3)

	v.SetDefault("polling.enabled", false)
	v.SetDefault("polling.interval_seconds", 30)
	v.SetDefault("polling.sports", []string{"basketball", "football", "cricket"})

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout_seconds", 15)
	v.SetDefault("server.write_timeout_seconds", 15)
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("secrets.enabled", false)
	v.SetDefault("secrets.region", "")
	v.SetDefault("secrets.secret_name", "")
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}

// ReloadFromEnv reloads the configuration from SPORTS_COMPANION_CONFIG_PATH when it is set
func ReloadFromEnv(cfg *Config) error {
	if envPath := os.Getenv(envPrefix + "_CONFIG_PATH"); envPath != "" {
		newCfg, err := LoadWithDefaults(envPath)
		if err != nil {
			return err
		}
		*cfg = *newCfg
	}
	return nil
}
