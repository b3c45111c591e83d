// Package config holds the settings of a conversion or read job.
package config

import (
	"github.com/cockroachdb/errors"
	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap/zapcore"

	"thrift-columnar/internal/readsupport"
	"thrift-columnar/internal/schemaerr"
)

// Config can come from a YAML file, environment variables, or both.
// Environment variables always override YAML values.
type Config struct {
	// Descriptors are the struct descriptor files to load.
	Descriptors []string `yaml:"descriptors" env:"THRIFT_DESCRIPTORS" env-separator:","`

	// RecordType overrides the record type recorded in file metadata.
	RecordType string `yaml:"record_type" env:"THRIFT_READ_CLASS"`

	// ColumnFilter and ReadSchema are mutually exclusive ways to request a
	// subset of columns.
	ColumnFilter string `yaml:"column_filter" env:"THRIFT_COLUMN_FILTER"`
	ReadSchema   string `yaml:"read_schema" env:"PARQUET_READ_SCHEMA"`

	// Converter names the materializer strategy.
	Converter string `yaml:"converter" env:"THRIFT_CONVERTER" env-default:"default"`

	// MessageName names converted messages. Empty uses the record type name.
	MessageName string `yaml:"message_name" env:"THRIFT_MESSAGE_NAME"`

	// CacheSize bounds the number of converted schemas kept in memory.
	CacheSize int `yaml:"cache_size" env:"THRIFT_SCHEMA_CACHE_SIZE" env-default:"128"`

	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
}

// Load reads path, if not empty, with environment variable overrides, and
// validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, errors.Wrapf(err, "failed to read config %s", path)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to read config from environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return cfg, nil
}

// Validate checks settings that cannot be combined or are out of range.
func (c *Config) Validate() error {
	if c.ColumnFilter != "" && c.ReadSchema != "" {
		return schemaerr.ConflictingSchemaSpecification(c.ColumnFilter, c.ReadSchema)
	}

	if c.CacheSize <= 0 {
		return errors.Newf("cache_size must be positive, got %d", c.CacheSize)
	}

	if _, err := c.Level(); err != nil {
		return err
	}

	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() (zapcore.Level, error) {
	if c.LogLevel == "" {
		return zapcore.InfoLevel, nil
	}

	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel, errors.Wrapf(err, "invalid log_level %q", c.LogLevel)
	}

	return lvl, nil
}

// ReadOptions returns the read settings of the configuration.
func (c *Config) ReadOptions() readsupport.Options {
	return readsupport.Options{
		ColumnFilter: c.ColumnFilter,
		ReadSchema:   c.ReadSchema,
		RecordType:   c.RecordType,
		Strategy:     c.Converter,
	}
}
