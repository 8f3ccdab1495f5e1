// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	LogLevel       string `mapstructure:"LOG_LEVEL"`
	Port           int    `mapstructure:"PORT"`
	DBURL          string `mapstructure:"DB_URL"`
	MigrationsPath string `mapstructure:"MIGRATIONS_PATH"`

	GithubURL            string        `mapstructure:"GITHUB_URL"`
	GithubToken          string        `mapstructure:"GITHUB_TOKEN"`
	GithubPageSize       int           `mapstructure:"GITHUB_PAGE_SIZE"`
	GithubProfileTimeout time.Duration `mapstructure:"GITHUB_PROFILE_TIMEOUT"`
	GithubPageTimeout    time.Duration `mapstructure:"GITHUB_PAGE_TIMEOUT"`

	CacheTTL         time.Duration `mapstructure:"CACHE_TTL"`
	RefreshInterval  time.Duration `mapstructure:"REFRESH_INTERVAL"`
	RefreshBatchSize int           `mapstructure:"REFRESH_BATCH_SIZE"`

	RateLimitRequests  int           `mapstructure:"RATE_LIMIT_REQUESTS"`
	RateLimitWindow    time.Duration `mapstructure:"RATE_LIMIT_WINDOW"`
	CORSAllowedOrigins []string      `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

var defaults = map[string]any{
	"LOG_LEVEL":              "info",
	"PORT":                   3000,
	"DB_URL":                 "",
	"MIGRATIONS_PATH":        "file://migrations",
	"GITHUB_URL":             "https://api.github.com/",
	"GITHUB_TOKEN":           "",
	"GITHUB_PAGE_SIZE":       100,
	"GITHUB_PROFILE_TIMEOUT": "10s",
	"GITHUB_PAGE_TIMEOUT":    "15s",
	"CACHE_TTL":              "30m",
	"REFRESH_INTERVAL":       "1h",
	"REFRESH_BATCH_SIZE":     20,
	"RATE_LIMIT_REQUESTS":    100,
	"RATE_LIMIT_WINDOW":      "15m",
	"CORS_ALLOWED_ORIGINS":   "*",
}

// LoadConfig reads configuration from a .env file in the working directory and/or
// environment variables. Environment variables win.
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Every key gets a default so AutomaticEnv can see it during Unmarshal.
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	// Load from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read .env: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	if c.DBURL == "" {
		return errors.New("DB_URL is a required configuration field")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if u, err := url.Parse(c.GithubURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("GITHUB_URL must be an absolute URL, got %q", c.GithubURL)
	}
	if c.GithubPageSize < 1 || c.GithubPageSize > 100 {
		return fmt.Errorf("GITHUB_PAGE_SIZE must be between 1 and 100, got %d", c.GithubPageSize)
	}
	if c.GithubProfileTimeout <= 0 || c.GithubPageTimeout <= 0 {
		return errors.New("GITHUB_PROFILE_TIMEOUT and GITHUB_PAGE_TIMEOUT must be positive")
	}
	if c.CacheTTL <= 0 {
		return errors.New("CACHE_TTL must be positive")
	}
	if c.RefreshInterval < 0 {
		return errors.New("REFRESH_INTERVAL must not be negative")
	}
	if c.RefreshInterval > 0 && c.RefreshBatchSize < 1 {
		return errors.New("REFRESH_BATCH_SIZE must be at least 1 when REFRESH_INTERVAL is set")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
