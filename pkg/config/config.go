package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig contains server-specific configuration
type ServerConfig struct {
	Host        string   `mapstructure:"host"`
	Port        int      `mapstructure:"port"`
	Root        string   `mapstructure:"root"`
	CORSOrigins []string `mapstructure:"cors_origins"`
	ShowHidden  bool     `mapstructure:"show_hidden"`
}

// TelemetryConfig contains telemetry configuration
type TelemetryConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level      string `mapstructure:"level"`
	JSON       bool   `mapstructure:"json"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// Address returns the host:port the server listens on
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load loads the configuration from viper
func Load() (*Config, error) {
	cfg := &Config{}

	// Set defaults
	setDefaults()

	// Unmarshal configuration
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	// Post-process configuration
	if err := postProcess(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "")
	viper.SetDefault("server.port", 8000)
	viper.SetDefault("server.cors_origins", []string{"*"})
	viper.SetDefault("server.show_hidden", true)

	// Telemetry defaults
	viper.SetDefault("telemetry.enabled", false)

	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.json", false)
	viper.SetDefault("log.max_size_mb", 100)
	viper.SetDefault("log.max_backups", 7)
	viper.SetDefault("log.max_age_days", 30)
	viper.SetDefault("log.compress", true)

	// Environment variable mappings
	_ = viper.BindEnv("server.root", "SERVER_ROOT", "FILEBROWSER_ROOT")
	_ = viper.BindEnv("telemetry.endpoint", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

func postProcess(cfg *Config) error {
	// Serve the current directory if no root is specified
	if cfg.Server.Root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		cfg.Server.Root = wd
	}

	// The root is joined onto every resolved path, so it must be absolute
	if !filepath.IsAbs(cfg.Server.Root) {
		abs, err := filepath.Abs(cfg.Server.Root)
		if err != nil {
			return err
		}
		cfg.Server.Root = abs
	}
	cfg.Server.Root = filepath.Clean(cfg.Server.Root)

	info, err := os.Stat(cfg.Server.Root)
	if err != nil {
		return fmt.Errorf("root directory %s: %w", cfg.Server.Root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root %s is not a directory", cfg.Server.Root)
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", cfg.Server.Port)
	}

	return nil
}
