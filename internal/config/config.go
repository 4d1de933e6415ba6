// Package config assembles service settings from defaults, an optional YAML
// file and the environment, in that order of precedence (lowest first).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileEnv names the environment variable holding the YAML config path.
const FileEnv = "MOVIEAPI_CONFIG"

type Config struct {
	Addr               string          `yaml:"addr" validate:"required"`
	OMDb               OMDbConfig      `yaml:"omdb"`
	DatabaseDSN        string          `yaml:"db_dsn"`
	CORSAllowedOrigins []string        `yaml:"cors_allowed_origins"`
	RateLimit          RateLimitConfig `yaml:"rate_limit"`
	Log                LogConfig       `yaml:"log"`
	EnableHSTS         bool            `yaml:"enable_hsts"`
}

type OMDbConfig struct {
	APIKey        string        `yaml:"api_key" validate:"required"`
	BaseURL       string        `yaml:"base_url" validate:"required,url"`
	DefaultSearch string        `yaml:"default_search" validate:"required"`
	Timeout       time.Duration `yaml:"timeout" validate:"gte=0"`
}

// RateLimitConfig bounds inbound requests per client. RPS 0 disables the limit.
// TrustProxy keys clients on X-Forwarded-For; enable it only behind a proxy that sets the header.
type RateLimitConfig struct {
	RPS        float64 `yaml:"rps" validate:"gte=0"`
	Burst      int     `yaml:"burst" validate:"gte=1"`
	TrustProxy bool    `yaml:"trust_proxy"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=trace debug info warn warning error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

func Default() Config {
	return Config{
		Addr: ":8080",
		OMDb: OMDbConfig{
			BaseURL:       "http://www.omdbapi.com/",
			DefaultSearch: "marvel",
			Timeout:       15 * time.Second,
		},
		RateLimit: RateLimitConfig{Burst: 10},
		Log:       LogConfig{Level: "info", Format: "text"},
	}
}

// LoadEnvFiles reads .env and .env.local without overriding variables
// already provided by the runtime.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load builds and validates the configuration.
func Load() (Config, error) {
	LoadEnvFiles()

	cfg := Default()
	if path := strings.TrimSpace(os.Getenv(FileEnv)); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.mergeEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv() error {
	setString(&c.Addr, "APP_ADDR")
	setString(&c.OMDb.APIKey, "OMDB_API_KEY")
	setString(&c.OMDb.BaseURL, "OMDB_BASE_URL")
	setString(&c.OMDb.DefaultSearch, "OMDB_DEFAULT_SEARCH")
	setString(&c.DatabaseDSN, "DB_DSN")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		c.CORSAllowedOrigins = splitList(v)
	}
	if v := os.Getenv("OMDB_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("OMDB_TIMEOUT: %w", err)
		}
		c.OMDb.Timeout = d
	}
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_RPS: %w", err)
		}
		c.RateLimit.RPS = rps
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_BURST: %w", err)
		}
		c.RateLimit.Burst = burst
	}
	if v := os.Getenv("RATE_LIMIT_TRUST_PROXY"); v != "" {
		c.RateLimit.TrustProxy = v == "true"
	}
	if v := os.Getenv("ENABLE_HSTS"); v != "" {
		c.EnableHSTS = v == "true"
	}
	return nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
