// Package app wires the toolkit together: configuration, logging, and the
// analysis orchestrator that runs analyzers against imported projects.
package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the resolved runtime configuration.
type Config struct {
	DataDir  string `mapstructure:"data_dir"`
	WatchDir string `mapstructure:"watch_dir"`
	LogLevel string `mapstructure:"log_level"`
	Port     int    `mapstructure:"port"`
}

// LoadConfig resolves configuration from defaults, an optional config file
// (~/.magpie/config.yaml), and MAGPIE_* environment variables, highest
// precedence last.
func LoadConfig() (*Config, error) {
	v := viper.New()

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	base := filepath.Join(home, ".magpie")

	v.SetDefault("data_dir", base)
	v.SetDefault("watch_dir", filepath.Join(base, "drop"))
	v.SetDefault("log_level", "info")
	v.SetDefault("port", 8080)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(base)

	v.SetEnvPrefix("MAGPIE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &cfg, nil
}

// RegistryPath is the bbolt database location under the data dir.
func (c *Config) RegistryPath() string {
	return filepath.Join(c.DataDir, "registry.db")
}
