// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Categorization struct {
		RulesFile string `mapstructure:"rules_file" yaml:"rules_file"`
		Workers   int    `mapstructure:"workers" yaml:"workers"`
	} `mapstructure:"categorization" yaml:"categorization"`

	Analysis struct {
		TopN int `mapstructure:"top_n" yaml:"top_n"`
	} `mapstructure:"analysis" yaml:"analysis"`

	Report struct {
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"report" yaml:"report"`
}

// EnvPrefix is the prefix of environment variable overrides, e.g.
// EXPENSE_LOG_LEVEL for log.level.
const EnvPrefix = "EXPENSE"

// InitializeConfig initializes Viper configuration with hierarchical loading.
// An explicit configFile bypasses the search path.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.expense-categorizer")
		v.AddConfigPath(".expense-categorizer")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the configuration used when no file or environment
// override is present.
func Default() *Config {
	var config Config
	config.Log.Level = "info"
	config.Log.Format = "text"
	config.CSV.Delimiter = ","
	config.Categorization.Workers = 1
	config.Analysis.TopN = 5
	config.Report.Format = "text"
	return &config
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetDefault("csv.delimiter", d.CSV.Delimiter)

	v.SetDefault("categorization.rules_file", d.Categorization.RulesFile)
	v.SetDefault("categorization.workers", d.Categorization.Workers)

	v.SetDefault("analysis.top_n", d.Analysis.TopN)

	v.SetDefault("report.format", d.Report.Format)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if utf8.RuneCountInString(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %q", config.CSV.Delimiter)
	}

	if config.Categorization.Workers < 1 || config.Categorization.Workers > 256 {
		return fmt.Errorf("categorization.workers must be between 1 and 256, got: %d", config.Categorization.Workers)
	}

	if config.Analysis.TopN < 1 {
		return fmt.Errorf("analysis.top_n must be positive, got: %d", config.Analysis.TopN)
	}

	switch strings.ToLower(config.Report.Format) {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid report format: %s (must be 'text', 'json' or 'yaml')", config.Report.Format)
	}

	return nil
}

// Validate checks c after command-line overrides have been applied.
func (c *Config) Validate() error {
	return validateConfig(c)
}

// DelimiterRune returns the CSV delimiter as a rune.
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
	return r
}
