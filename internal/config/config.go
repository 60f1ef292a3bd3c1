// Package config loads the server configuration from an optional config
// file plus PEACOCKEDIT_* environment variables, with sane defaults for a
// local tool.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces the environment overrides, e.g. PEACOCKEDIT_PORT.
const EnvPrefix = "PEACOCKEDIT"

// ServerConfig holds the HTTP server settings. PeacockPath pins the
// installation root, skipping discovery; the PEACOCK_PATH environment
// variable does the same thing one layer down and wins when both are set.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	EnableCORS   bool          `mapstructure:"enable_cors"`
	Debug        bool          `mapstructure:"debug"`
	PeacockPath  string        `mapstructure:"peacock_path"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DefaultServerConfig returns the settings used when nothing is configured:
// loopback only, the original webapp's port.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Host:         "127.0.0.1",
		Port:         3000,
		EnableCORS:   true,
		Debug:        false,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Load reads peacockedit.yaml from the home directory or the working
// directory when present, applies environment overrides and returns the
// merged configuration. A missing config file is not an error.
func Load() (*ServerConfig, error) {
	v := viper.New()
	v.SetConfigName("peacockedit")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME")
	v.AddConfigPath(".")

	defaults := DefaultServerConfig()
	v.SetDefault("host", defaults.Host)
	v.SetDefault("port", defaults.Port)
	v.SetDefault("enable_cors", defaults.EnableCORS)
	v.SetDefault("debug", defaults.Debug)
	v.SetDefault("peacock_path", "")
	v.SetDefault("read_timeout", defaults.ReadTimeout)
	v.SetDefault("write_timeout", defaults.WriteTimeout)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := &ServerConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
