// Package config loads process configuration from an optional file, RESUME_MATCH_*
// environment variables and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. RESUME_MATCH_SERVER_PORT.
const EnvPrefix = "RESUME_MATCH"

// Config is the full process configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Analysis  AnalysisConfig  `mapstructure:"analysis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig configures the HTTP entry point.
type ServerConfig struct {
	Port           int           `mapstructure:"port" validate:"min=1,max=65535"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes" validate:"gt=0"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// AnalysisConfig configures the analyzer.
type AnalysisConfig struct {
	TaxonomyPath           string `mapstructure:"taxonomy_path"`
	Stemming               bool   `mapstructure:"stemming"`
	IncludeMissingKeywords bool   `mapstructure:"include_missing_keywords"`
	MissingKeywordLimit    int    `mapstructure:"missing_keyword_limit" validate:"min=1,max=100"`
	PreviewLength          int    `mapstructure:"preview_length" validate:"min=0"`
	Sentiment              bool   `mapstructure:"sentiment"`
}

// RateLimitConfig configures per-client HTTP rate limiting.
type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute" validate:"min=1"`
	Burst             int  `mapstructure:"burst" validate:"min=1"`
}

// FlagKeys maps command-line flag names to configuration keys. Flags that are not
// registered on a command are ignored.
var FlagKeys = map[string]string{
	"port":             "server.port",
	"log-level":        "logging.level",
	"log-format":       "logging.format",
	"taxonomy":         "analysis.taxonomy_path",
	"keyword-limit":    "analysis.missing_keyword_limit",
	"preview-length":   "analysis.preview_length",
	"rate-limit":       "rate_limit.enabled",
	"max-upload-bytes": "server.max_upload_bytes",
}

var validate = validator.New()

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.max_upload_bytes", 16<<20)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("analysis.taxonomy_path", "")
	v.SetDefault("analysis.stemming", true)
	v.SetDefault("analysis.include_missing_keywords", true)
	v.SetDefault("analysis.missing_keyword_limit", 5)
	v.SetDefault("analysis.preview_length", 1000)
	v.SetDefault("analysis.sentiment", true)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_minute", 60)
	v.SetDefault("rate_limit.burst", 10)
}

// Default returns the configuration with every key at its default.
func Default() *Config {
	cfg, err := Load("", nil)
	if err != nil {
		panic(fmt.Sprintf("default configuration is invalid: %v", err))
	}
	return cfg
}

// Load reads the configuration. path may be empty; when set, the file must exist and
// its type is taken from the extension (yaml, yml, json, toml). flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Logging.Level = strings.ToLower(cfg.Logging.Level)
	cfg.Logging.Format = strings.ToLower(cfg.Logging.Format)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range FlagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	// --no-stemming inverts analysis.stemming.
	if flag := flags.Lookup("no-stemming"); flag != nil && flag.Changed && flag.Value.String() == "true" {
		v.Set("analysis.stemming", false)
	}
	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
			}
			return fmt.Errorf("config error: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.Analysis.TaxonomyPath != "" {
		if _, err := os.Stat(c.Analysis.TaxonomyPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: taxonomy file not found: %s", c.Analysis.TaxonomyPath)
		}
	}
	return nil
}

// RequestsPerSecond converts the per-minute rate limit for token buckets.
func (r RateLimitConfig) RequestsPerSecond() float64 {
	return float64(r.RequestsPerMinute) / 60
}
