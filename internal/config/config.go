// Package config provides centralized configuration for accountlens.
// Defaults are set in internal/cmd, user overrides come from a YAML config
// file, and environment variables (prefix ACCOUNTLENS_) win over both.
package config

import (
	"fmt"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/accountlens/accountlens/internal/browser"
)

// Config represents the complete application configuration.
type Config struct {
	Server  ServerConfig   `mapstructure:"server"`
	Search  SearchConfig   `mapstructure:"search"`
	Catalog CatalogConfig  `mapstructure:"catalog"`
	Browser browser.Config `mapstructure:"browser"`
	Logging LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// SearchConfig tunes the verification engine.
type SearchConfig struct {
	// Concurrency is the global probe budget across all platforms.
	Concurrency int `mapstructure:"concurrency"`

	// Timeout bounds each individual probe.
	Timeout time.Duration `mapstructure:"timeout"`

	// MinConfidence is the default reporting floor.
	MinConfidence int `mapstructure:"min_confidence"`
}

// CatalogConfig points at optional catalog data files.
type CatalogConfig struct {
	// PlatformsFile optionally overrides/extends the built-in platform
	// catalog (YAML).
	PlatformsFile string `mapstructure:"platforms_file"`

	// SitesFile is a WhatsMyName-format JSON dataset enabling deep search.
	SitesFile string `mapstructure:"sites_file"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Load unmarshals the current viper state into a Config.
func Load() (*Config, error) {
	var cfg Config
	decodeHook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
	if err := viper.Unmarshal(&cfg, viper.DecodeHook(decodeHook)); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
