package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	TransportREST = "rest"
	TransportSDK  = "sdk"
)

type Config struct {
	Port string `mapstructure:"port"`

	GeminiAPIKey    string        `mapstructure:"gemini_api_key"`
	GeminiModel     string        `mapstructure:"gemini_model"`
	GeminiBaseURL   string        `mapstructure:"gemini_base_url"`
	GeminiTransport string        `mapstructure:"gemini_transport"`
	UpstreamTimeout time.Duration `mapstructure:"upstream_timeout"`
	BreakerEnabled  bool          `mapstructure:"breaker_enabled"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// flagKeys maps command line flags onto config keys.
var flagKeys = map[string]string{
	"port":      "port",
	"log-level": "log_level",
}

// Load resolves the configuration from defaults, an optional YAML file,
// the environment and the given flags, in increasing order of precedence.
// Either configFile or flags may be empty.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("port", "8080")
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("gemini_model", "gemini-pro")
	v.SetDefault("gemini_base_url", "https://generativelanguage.googleapis.com")
	v.SetDefault("gemini_transport", TransportREST)
	v.SetDefault("upstream_timeout", time.Duration(0)) // no deadline of our own
	v.SetDefault("breaker_enabled", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	cfg.GeminiTransport = strings.ToLower(strings.TrimSpace(cfg.GeminiTransport))
	cfg.GeminiBaseURL = strings.TrimRight(cfg.GeminiBaseURL, "/")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.GeminiTransport {
	case TransportREST, TransportSDK:
	default:
		return fmt.Errorf("gemini_transport must be %q or %q, got %q", TransportREST, TransportSDK, c.GeminiTransport)
	}

	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if c.GeminiModel == "" {
		return fmt.Errorf("gemini_model is required")
	}
	if c.UpstreamTimeout < 0 {
		return fmt.Errorf("upstream_timeout must not be negative")
	}

	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
