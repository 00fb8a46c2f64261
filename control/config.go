// File: control/config.go
//
// Viper-backed configuration with environment binding. The OPENAI_API_KEY
// variable keeps its historical name; everything else follows the
// OPENAI_COMPONENT_ prefix.

package control

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the complete component configuration.
type Config struct {
	APIKey  string        `mapstructure:"api_key" yaml:"api_key"`
	BaseURL string        `mapstructure:"base_url" yaml:"base_url"`
	Model   string        `mapstructure:"model" yaml:"model"`
	Cache   CacheConfig   `mapstructure:"cache" yaml:"cache"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// CacheConfig controls the prompt/response LRU cache.
type CacheConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	Size    int  `mapstructure:"size" yaml:"size"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

const (
	// DefaultBaseURL is the Responses API endpoint.
	DefaultBaseURL = "https://api.openai.com/v1/responses"
	// DefaultModel is used when no model is configured.
	DefaultModel = "gpt-4.1"
)

// LoadConfig reads configuration from the optional file at path and from the
// environment. Environment values override file values.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("model", DefaultModel)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.size", 128)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetEnvPrefix("OPENAI_COMPONENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The key variable predates the prefix scheme.
	if err := v.BindEnv("api_key", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("bind api key: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Validate reports configuration that cannot serve a request.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base_url must not be empty")
	}
	if c.Cache.Enabled && c.Cache.Size <= 0 {
		return fmt.Errorf("cache.size must be positive when cache is enabled")
	}
	return nil
}
