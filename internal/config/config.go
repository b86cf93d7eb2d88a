package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	API      APIConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Log      LogConfig
	Sync     SyncConfig
	Tracing  TracingConfig `mapstructure:"tracing"`
	Metrics  MetricsConfig
	SeedDemo bool `mapstructure:"seed_demo"`

	// 运行时路径（非配置文件），configwatcher 用它定位 config.yaml
	Dir string `mapstructure:"-"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Origin  string        `mapstructure:"origin"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type StorageConfig struct {
	Type      string `mapstructure:"type"`
	Path      string `mapstructure:"path"`
	DSN       string `mapstructure:"dsn"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type LogConfig struct {
	Mode string `mapstructure:"mode"`
	File string `mapstructure:"file"`
}

type SyncConfig struct {
	RatePerSecond float64       `mapstructure:"rate_per_second"`
	Burst         int           `mapstructure:"burst"`
	JobTimeout    time.Duration `mapstructure:"job_timeout"`
	FlushTimeout  time.Duration `mapstructure:"flush_timeout"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// ResolvedBaseURL joins a relative base path such as "/api" onto the origin.
func (c APIConfig) ResolvedBaseURL() (string, error) {
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid api.base_url %q: %w", c.BaseURL, err)
	}
	if base.IsAbs() {
		return strings.TrimRight(base.String(), "/"), nil
	}
	origin, err := url.Parse(c.Origin)
	if err != nil || !origin.IsAbs() {
		return "", fmt.Errorf("invalid api.origin %q", c.Origin)
	}
	return strings.TrimRight(origin.ResolveReference(base).String(), "/"), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "/api")
	v.SetDefault("api.origin", "http://localhost:8080")
	v.SetDefault("api.timeout", 10*time.Second)

	v.SetDefault("storage.type", "file")
	v.SetDefault("storage.path", ".learnhub")
	v.SetDefault("storage.key_prefix", "learnhub:")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)

	v.SetDefault("log.mode", "release")
	v.SetDefault("log.file", "logs/learnhub.log")

	v.SetDefault("sync.rate_per_second", 20)
	v.SetDefault("sync.burst", 5)
	v.SetDefault("sync.job_timeout", 15*time.Second)
	v.SetDefault("sync.flush_timeout", 20*time.Second)

	v.SetDefault("seed_demo", true)
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("LEARNHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// API
	v.BindEnv("api.base_url", "API_BASE_URL")
	v.BindEnv("api.origin", "API_ORIGIN")

	// Storage
	v.BindEnv("storage.type", "STORAGE_TYPE")
	v.BindEnv("storage.path", "STORAGE_PATH")
	v.BindEnv("storage.dsn", "STORAGE_DSN")

	// Redis
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Log
	v.BindEnv("log.mode", "LOG_MODE")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	// Metrics
	v.BindEnv("metrics.addr", "METRICS_ADDR")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.Dir = path

	if _, err := cfg.API.ResolvedBaseURL(); err != nil {
		return nil, err
	}

	switch cfg.Storage.Type {
	case "file", "sqlite", "mysql", "redis", "memory":
	default:
		return nil, fmt.Errorf("unsupported storage.type %q", cfg.Storage.Type)
	}
	if cfg.Storage.Type == "mysql" && cfg.Storage.DSN == "" {
		return nil, errors.New("storage.dsn is required for mysql storage")
	}

	return &cfg, nil
}
