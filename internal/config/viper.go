// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// CSVConfig controls CSV reading and export.
type CSVConfig struct {
	Delimiter  string `mapstructure:"delimiter" yaml:"delimiter"`
	DateFormat string `mapstructure:"date_format" yaml:"date_format"`
}

// TaxonomyConfig points at the category tree, header alias and keyword file.
type TaxonomyConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// HeaderConfig tunes header row detection.
type HeaderConfig struct {
	ScanRows   int `mapstructure:"scan_rows" yaml:"scan_rows"`
	MinMatches int `mapstructure:"min_matches" yaml:"min_matches"`
}

// MoneyConfig controls amount parsing.
type MoneyConfig struct {
	CurrencySuffixes []string `mapstructure:"currency_suffixes" yaml:"currency_suffixes"`
}

// ClassificationConfig selects keyword matching and the unclassified bucket.
type ClassificationConfig struct {
	MatchMode     string `mapstructure:"match_mode" yaml:"match_mode"`
	DefaultBucket string `mapstructure:"default_bucket" yaml:"default_bucket"`
	DefaultMajor  string `mapstructure:"default_major" yaml:"default_major"`
	DefaultMinor  string `mapstructure:"default_minor" yaml:"default_minor"`
}

// AIConfig enables the Gemini fallback strategy.
type AIConfig struct {
	Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
	Model          string `mapstructure:"model" yaml:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	APIKey         string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
}

// Timeout returns the per-request limit.
func (c AIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SheetsConfig authenticates the Google Sheets reader.
type SheetsConfig struct {
	CredentialsFile string `mapstructure:"credentials_file" yaml:"credentials_file"`
	APIKey          string `mapstructure:"api_key" yaml:"-"`
}

// Config represents the complete application configuration
type Config struct {
	Log            LogConfig            `mapstructure:"log" yaml:"log"`
	CSV            CSVConfig            `mapstructure:"csv" yaml:"csv"`
	Taxonomy       TaxonomyConfig       `mapstructure:"taxonomy" yaml:"taxonomy"`
	Header         HeaderConfig         `mapstructure:"header" yaml:"header"`
	Money          MoneyConfig          `mapstructure:"money" yaml:"money"`
	Classification ClassificationConfig `mapstructure:"classification" yaml:"classification"`
	AI             AIConfig             `mapstructure:"ai" yaml:"ai"`
	Sheets         SheetsConfig         `mapstructure:"sheets" yaml:"sheets"`
}

// Delimiter returns the CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	r, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
	if r == utf8.RuneError {
		return ','
	}
	return r
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	return InitializeConfigFromFile("")
}

// InitializeConfigFromFile is InitializeConfig with an explicit config file.
// An empty path searches the standard locations.
func InitializeConfigFromFile(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.ledger-csv")
		v.AddConfigPath(".ledger-csv")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix("LEDGER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless named explicitly)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if configFile != "" {
				return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
			}
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// 5. Credentials come from their conventional, unprefixed variables
	if err := v.BindEnv("ai.api_key", "LEDGER_AI_API_KEY", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}
	if err := v.BindEnv("sheets.credentials_file", "LEDGER_SHEETS_CREDENTIALS_FILE", "GOOGLE_APPLICATION_CREDENTIALS"); err != nil {
		fmt.Printf("Warning: failed to bind GOOGLE_APPLICATION_CREDENTIALS environment variable: %v\n", err)
	}
	if err := v.BindEnv("sheets.api_key", "LEDGER_SHEETS_API_KEY", "GOOGLE_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GOOGLE_API_KEY environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		panic(fmt.Sprintf("default configuration does not unmarshal: %v", err))
	}
	return &config
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// CSV defaults
	v.SetDefault("csv.delimiter", ",")
	v.SetDefault("csv.date_format", "2006-01-02")

	// Taxonomy defaults
	v.SetDefault("taxonomy.file", "taxonomy.yaml")

	// Header detection defaults
	v.SetDefault("header.scan_rows", 10)
	v.SetDefault("header.min_matches", 2)

	// Money defaults
	v.SetDefault("money.currency_suffixes", []string{"원", "KRW"})

	// Classification defaults
	v.SetDefault("classification.match_mode", "first")
	v.SetDefault("classification.default_bucket", "empty")
	v.SetDefault("classification.default_major", "")
	v.SetDefault("classification.default_minor", "")

	// AI defaults
	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout_seconds", 30)

	// Sheets defaults
	v.SetDefault("sheets.credentials_file", "")
	v.SetDefault("sheets.api_key", "")
}

// Validate re-checks the configuration, for callers that override values after
// loading.
func (c *Config) Validate() error {
	return validateConfig(c)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	// Validate CSV delimiter
	if utf8.RuneCountInString(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	// Validate header detection
	if config.Header.ScanRows < 1 {
		return fmt.Errorf("header.scan_rows must be at least 1, got: %d", config.Header.ScanRows)
	}
	if config.Header.MinMatches < 1 {
		return fmt.Errorf("header.min_matches must be at least 1, got: %d", config.Header.MinMatches)
	}

	// Validate classification
	switch strings.ToLower(config.Classification.MatchMode) {
	case "", "first", "longest":
	default:
		return fmt.Errorf("invalid classification.match_mode: %s (must be 'first' or 'longest')", config.Classification.MatchMode)
	}
	switch strings.ToLower(config.Classification.DefaultBucket) {
	case "", "empty", "other":
	case "custom":
		if strings.TrimSpace(config.Classification.DefaultMajor) == "" {
			return fmt.Errorf("classification.default_major required when default_bucket is 'custom'")
		}
	default:
		return fmt.Errorf("invalid classification.default_bucket: %s (must be 'empty', 'other' or 'custom')", config.Classification.DefaultBucket)
	}

	// Validate AI configuration
	if config.AI.Enabled {
		if config.AI.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
		}

		if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
			return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
		}
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	// Parse and set log level
	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Configure log format
	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
