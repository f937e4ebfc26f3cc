// Package config loads mochadb settings with Viper.
//
// Sources, lowest precedence first: built-in defaults, a mocha.toml found in
// the working directory or $HOME/.mocha, an explicit file passed to Load,
// and MOCHA_* environment variables (MOCHA_DATABASE_PATH, MOCHA_LOG_JSON, ...).
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/vegasq/mochadb/errors"
)

// Backend names accepted by database.backend.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config is the complete mochadb configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Output   OutputConfig   `mapstructure:"output"`
	Query    QueryConfig    `mapstructure:"query"`
}

// DatabaseConfig selects and opens the document store.
type DatabaseConfig struct {
	Path     string `mapstructure:"path"`
	Backend  string `mapstructure:"backend"`
	Key      string `mapstructure:"key"`
	Password string `mapstructure:"password"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	JSON  bool   `mapstructure:"json"`
	Level string `mapstructure:"level"`
}

// OutputConfig controls how the CLI prints results.
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// QueryConfig tunes the MHQL processor.
type QueryConfig struct {
	CacheSize int `mapstructure:"cache_size"`
}

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.path", "mocha.mochadb")
	v.SetDefault("database.backend", BackendFile)
	v.SetDefault("database.key", "mochadb")
	v.SetDefault("database.password", "")

	v.SetDefault("log.json", false)
	v.SetDefault("log.level", "info")

	v.SetDefault("output.format", "table")

	v.SetDefault("query.cache_size", 128)
}

// New returns a Viper instance with defaults, config file discovery and
// environment binding applied. configPath may be empty.
func New(configPath string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix("MOCHA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
		}
		return v, nil
	}

	v.SetConfigName("mocha")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".mocha"))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}
	return v, nil
}

// Load reads the configuration. configPath may be empty to use discovery.
func Load(configPath string) (*Config, error) {
	v, err := New(configPath)
	if err != nil {
		return nil, err
	}
	return FromViper(v)
}

// FromViper unmarshals and validates the configuration held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks option values that Viper cannot type-check.
func (c *Config) Validate() error {
	switch c.Database.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return errors.Newf("unknown database backend %q (want file, sqlite or memory)", c.Database.Backend)
	}
	if c.Database.Backend != BackendMemory && c.Database.Path == "" {
		return errors.New("database.path must be set")
	}
	switch c.Output.Format {
	case "jsonl", "json", "csv", "table":
	default:
		return errors.Newf("unknown output format %q (want jsonl, csv or table)", c.Output.Format)
	}
	if c.Query.CacheSize < 0 {
		return errors.Newf("query.cache_size must be non-negative, got %d", c.Query.CacheSize)
	}
	return nil
}
