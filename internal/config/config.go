package config

import (
	"fmt"
	"time"
)

// Config holds all configuration for the listening analytics service.
type Config struct {
	Service       ServiceConfig       `yaml:"service"`
	Elasticsearch ElasticsearchConfig `yaml:"elasticsearch"`
	Analytics     AnalyticsConfig     `yaml:"analytics"`
	Logging       LoggingConfig       `yaml:"logging"`
	CORS          CORSConfig          `yaml:"cors"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name          string        `yaml:"name"`
	Version       string        `yaml:"version"`
	Port          int           `yaml:"port" env:"LISTENING_PORT"`
	Debug         bool          `yaml:"debug" env:"LISTENING_DEBUG"`
	SearchTimeout time.Duration `yaml:"search_timeout"`
}

// ElasticsearchConfig holds Elasticsearch connection configuration.
type ElasticsearchConfig struct {
	URL          string        `yaml:"url" env:"ELASTICSEARCH_URL"`
	Username     string        `yaml:"username" env:"ELASTICSEARCH_USERNAME"`
	Password     string        `yaml:"password" env:"ELASTICSEARCH_PASSWORD"`
	MaxRetries   int           `yaml:"max_retries"`
	Timeout      time.Duration `yaml:"timeout"`
	IndexPattern string        `yaml:"index_pattern" env:"ELASTICSEARCH_INDEX_PATTERN"`
}

// AnalyticsConfig holds tunables for the aggregation post-processor.
type AnalyticsConfig struct {
	// BucketDocLimit caps the number of documents fetched per time bucket.
	BucketDocLimit int `yaml:"bucket_doc_limit"`
	// FetchConcurrency bounds the per-bucket document fetch worker pool.
	FetchConcurrency int `yaml:"fetch_concurrency"`
	// DefaultLookbackDays is the time window applied when no dates are given.
	DefaultLookbackDays int `yaml:"default_lookback_days"`
	// SampleDocLimit caps sample documents per leaderboard category.
	SampleDocLimit int `yaml:"sample_doc_limit"`
	// TopThemeLimit caps theme sub-buckets per leaderboard category.
	TopThemeLimit int `yaml:"top_theme_limit"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	Enabled          bool     `yaml:"enabled"`
	AllowedOrigins   []string `yaml:"allowed_origins" env:"CORS_ORIGINS"`
	AllowedMethods   []string `yaml:"allowed_methods"`
	AllowedHeaders   []string `yaml:"allowed_headers"`
	AllowCredentials bool     `yaml:"allow_credentials"`
	MaxAge           int      `yaml:"max_age"`
}

// Load loads configuration from file and environment variables.
func Load(path string) (*Config, error) {
	cfg, err := load(path)
	if err != nil {
		return nil, err
	}

	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return cfg, nil
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	// Service defaults
	if cfg.Service.Name == "" {
		cfg.Service.Name = "listening"
	}
	if cfg.Service.Version == "" {
		cfg.Service.Version = "1.0.0"
	}
	if cfg.Service.Port == 0 {
		cfg.Service.Port = 8094
	}
	if cfg.Service.SearchTimeout == 0 {
		cfg.Service.SearchTimeout = 10 * time.Second
	}

	// Elasticsearch defaults
	if cfg.Elasticsearch.URL == "" {
		cfg.Elasticsearch.URL = "http://localhost:9200"
	}
	if cfg.Elasticsearch.MaxRetries == 0 {
		cfg.Elasticsearch.MaxRetries = 3
	}
	if cfg.Elasticsearch.Timeout == 0 {
		cfg.Elasticsearch.Timeout = 30 * time.Second
	}
	if cfg.Elasticsearch.IndexPattern == "" {
		cfg.Elasticsearch.IndexPattern = "*_social_mentions"
	}

	// Analytics defaults
	if cfg.Analytics.BucketDocLimit == 0 {
		cfg.Analytics.BucketDocLimit = 30
	}
	if cfg.Analytics.FetchConcurrency == 0 {
		cfg.Analytics.FetchConcurrency = 4
	}
	if cfg.Analytics.DefaultLookbackDays == 0 {
		cfg.Analytics.DefaultLookbackDays = 90
	}
	if cfg.Analytics.SampleDocLimit == 0 {
		cfg.Analytics.SampleDocLimit = 5
	}
	if cfg.Analytics.TopThemeLimit == 0 {
		cfg.Analytics.TopThemeLimit = 5
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	// CORS defaults
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"*"}
	}
	if len(cfg.CORS.AllowedMethods) == 0 {
		cfg.CORS.AllowedMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(cfg.CORS.AllowedHeaders) == 0 {
		cfg.CORS.AllowedHeaders = []string{"Content-Type", "Authorization"}
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Service.Port < 1 || c.Service.Port > 65535 {
		return &ValidationError{Field: "service.port", Message: fmt.Sprintf("invalid port: %d", c.Service.Port)}
	}
	if c.Elasticsearch.URL == "" {
		return &ValidationError{Field: "elasticsearch.url", Message: "is required"}
	}
	if c.Elasticsearch.IndexPattern == "" {
		return &ValidationError{Field: "elasticsearch.index_pattern", Message: "is required"}
	}
	if c.Analytics.BucketDocLimit < 1 {
		return &ValidationError{Field: "analytics.bucket_doc_limit", Message: "must be greater than 0"}
	}
	if c.Analytics.FetchConcurrency < 1 {
		return &ValidationError{Field: "analytics.fetch_concurrency", Message: "must be greater than 0"}
	}
	if err := validateLogLevel(c.Logging.Level); err != nil {
		return err
	}
	if err := validateLogFormat(c.Logging.Format); err != nil {
		return err
	}
	return nil
}

// validateLogLevel checks if a log level is valid.
func validateLogLevel(level string) error {
	switch level {
	case "debug", "info", "warn", "warning", "error", "fatal":
		return nil
	default:
		return &ValidationError{Field: "logging.level", Message: "must be one of: debug, info, warn, error, fatal"}
	}
}

// validateLogFormat checks if a log format is valid.
func validateLogFormat(format string) error {
	switch format {
	case "json", "console":
		return nil
	default:
		return &ValidationError{Field: "logging.format", Message: "must be one of: json, console"}
	}
}
