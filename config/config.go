/*
 * Copyright © 2025 StarCoreSE, All rights reserved.
 */

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/StarCoreSE/DefinitionHelper/datastore/ddb"
	"github.com/StarCoreSE/DefinitionHelper/logging"
	"github.com/StarCoreSE/DefinitionHelper/models"
)

// Config holds all application configuration.
type Config struct {
	Logging LogConfig
	API     APIConfig
	Journal JournalConfig
	Metrics MetricsConfig
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"DEFHELPER_LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"DEFHELPER_LOG_DEV" default:"false"`
}

// APIConfig holds the boundary adapter settings.
type APIConfig struct {
	Channel int64 `envconfig:"DEFHELPER_API_CHANNEL" default:"8754"`
	Version int   `envconfig:"DEFHELPER_API_VERSION" default:"1"`
}

// JournalConfig holds change journal and DynamoDB settings.
type JournalConfig struct {
	Enabled    bool          `envconfig:"DEFHELPER_JOURNAL_ENABLED" default:"false"`
	Table      string        `envconfig:"DEFHELPER_JOURNAL_TABLE" default:"definition-journal"`
	Region     string        `envconfig:"AWS_REGION" default:"us-east-1"`
	AccessKey  string        `envconfig:"AWS_ACCESS_KEY_ID"`
	SecretKey  string        `envconfig:"AWS_SECRET_ACCESS_KEY"`
	Endpoint   string        `envconfig:"DEFHELPER_DDB_ENDPOINT"`
	BufferSize int           `envconfig:"DEFHELPER_JOURNAL_BUFFER" default:"256"`
	MaxRetries int           `envconfig:"DEFHELPER_JOURNAL_RETRIES" default:"3"`
	Backoff    time.Duration `envconfig:"DEFHELPER_JOURNAL_BACKOFF" default:"200ms"`
}

// MetricsConfig holds the metrics endpoint settings. An empty Addr disables it.
type MetricsConfig struct {
	Addr string `envconfig:"DEFHELPER_METRICS_ADDR"`
}

// Load reads the given .env files, skipping missing ones, and then loads
// configuration from environment variables. Variables already set in the
// environment win over .env values.
func Load(envFiles ...string) (*Config, error) {
	for _, file := range envFiles {
		if _, err := os.Stat(file); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", file, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		API: APIConfig{
			Channel: 8754,
			Version: 1,
		},
		Journal: JournalConfig{
			Enabled:    false,
			Table:      "definition-journal",
			Region:     "us-east-1",
			BufferSize: 256,
			MaxRetries: 3,
			Backoff:    200 * time.Millisecond,
		},
	}
}

// LoggerConfig converts the logging section for logging.New.
func (c *Config) LoggerConfig() logging.Config {
	base := logging.DefaultConfig()
	if c.Logging.Development {
		base = logging.DevelopmentConfig()
	}
	if c.Logging.Level != "" {
		base.Level = c.Logging.Level
	}
	return base
}

// ClientConfig returns the DynamoDB client settings of the journal section.
func (c *Config) ClientConfig() ddb.ClientConfig {
	return ddb.ClientConfig{
		Region:    c.Journal.Region,
		AccessKey: c.Journal.AccessKey,
		SecretKey: c.Journal.SecretKey,
		Endpoint:  c.Journal.Endpoint,
	}
}

// JournalOptions returns the journal buffering and retry options.
func (c *Config) JournalOptions() []models.JournalOption {
	return []models.JournalOption{
		models.WithBufferSize(c.Journal.BufferSize),
		models.WithMaxRetries(c.Journal.MaxRetries),
		models.WithRetryBackoff(c.Journal.Backoff),
	}
}
