package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Shopify ShopifyConfig `mapstructure:"shopify"`
	Geo     GeoConfig     `mapstructure:"geo"`
	Demo    DemoConfig    `mapstructure:"demo"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig holds the HTTP surface settings.
type ServerConfig struct {
	Addr             string        `mapstructure:"addr" validate:"required"`
	RequestTimeout   time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout  time.Duration `mapstructure:"shutdown_timeout"`
	CORSAllowOrigins []string      `mapstructure:"cors_allow_origins"`
}

// ShopifyConfig holds the store credentials. They end up embedded in the
// request target, so all four fields are needed before the first fetch.
type ShopifyConfig struct {
	APIKey    string `mapstructure:"api_key"`
	APISecret string `mapstructure:"api_secret"`
	Hostname  string `mapstructure:"hostname"`
	Version   string `mapstructure:"version"`
}

// GeoConfig points at the zip code reference table.
type GeoConfig struct {
	ZipcodesPath string `mapstructure:"zipcodes_path" validate:"required"`
}

// DemoConfig switches the pipeline to a local order fixture instead of the
// live store, for testing the dashboard without credentials.
type DemoConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	FixturePath string `mapstructure:"fixture_path"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads and validates the config file at path. A missing or malformed
// credentials section is a startup-time failure, not something to limp past.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.cors_allow_origins", []string{"http://localhost:3000"})
	v.SetDefault("shopify.version", "2022-04")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	if cfg.Demo.Enabled {
		if cfg.Demo.FixturePath == "" {
			return nil, fmt.Errorf("demo.fixture_path is required when demo mode is enabled")
		}
	} else if err := cfg.Shopify.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c ShopifyConfig) validate() error {
	if c.APIKey == "" || c.APISecret == "" || c.Hostname == "" || c.Version == "" {
		return fmt.Errorf("shopify credentials are incomplete: api_key, api_secret, hostname and version are all required")
	}
	return nil
}
