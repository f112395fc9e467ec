package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Duration decodes "15s" style YAML values into a time.Duration.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr" validate:"required"`
	} `yaml:"server"`
	Market struct {
		BaseURL      string   `yaml:"base_url" validate:"required,url"`
		FearGreedURL string   `yaml:"fear_greed_url" validate:"required,url"`
		Timeout      Duration `yaml:"timeout" validate:"gt=0"`
		MaxRetries   int      `yaml:"max_retries" validate:"gte=0,lte=10"`
		RetryDelay   Duration `yaml:"retry_delay" validate:"gt=0"`
	} `yaml:"market"`
	Cache struct {
		Capacity int      `yaml:"capacity" validate:"gt=0"`
		TTL      Duration `yaml:"ttl" validate:"gt=0"`
	} `yaml:"cache"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path" validate:"required"`
	} `yaml:"database"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron" validate:"required"`
		AlertCron   string `yaml:"alert_cron" validate:"required"`
	} `yaml:"schedule"`
	Log struct {
		Level  string `yaml:"level" validate:"oneof=trace debug info warn error"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error; overrides and
// defaults still apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TRENDBOT_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("COINGECKO_BASE_URL"); v != "" {
		cfg.Market.BaseURL = v
	}
	if v := os.Getenv("FEAR_GREED_URL"); v != "" {
		cfg.Market.FearGreedURL = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("CRON_ALERTS"); v != "" {
		cfg.Schedule.AlertCron = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("CACHE_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Cache.Capacity = n
		}
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Market.BaseURL == "" {
		cfg.Market.BaseURL = "https://api.coingecko.com/api/v3"
	}
	if cfg.Market.FearGreedURL == "" {
		cfg.Market.FearGreedURL = "https://api.alternative.me/fng/"
	}
	if cfg.Market.Timeout == 0 {
		cfg.Market.Timeout = Duration(15 * time.Second)
	}
	if cfg.Market.MaxRetries == 0 {
		cfg.Market.MaxRetries = 3
	}
	if cfg.Market.RetryDelay == 0 {
		cfg.Market.RetryDelay = Duration(time.Second)
	}
	if cfg.Cache.Capacity == 0 {
		cfg.Cache.Capacity = 100
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = Duration(5 * time.Minute)
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/trendbot.db"
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 */5 * * * *"
	}
	if cfg.Schedule.AlertCron == "" {
		cfg.Schedule.AlertCron = "0 * * * * *"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

// Validate checks the assembled configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
