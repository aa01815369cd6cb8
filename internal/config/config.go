// Package config loads taskboard settings from defaults, an optional YAML
// file, .env files and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// AppName is used for the config file name and env prefix.
	AppName = "taskboard"

	envPrefix = "TASKBOARD"
)

// Config holds all runtime settings.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Client   ClientConfig   `mapstructure:"client"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// DatabaseConfig configures the SQLite store.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

// ClientConfig configures commands that talk to a running server.
type ClientConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	User    string        `mapstructure:"user"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Addr returns the listen address for the server.
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.path", "./data/taskboard.db")
	v.SetDefault("client.base_url", "http://localhost:8080")
	v.SetDefault("client.user", "")
	v.SetDefault("client.timeout", 5*time.Second)
}

// Load reads configuration. If path is empty, taskboard.yaml is looked up in
// the working directory and in $HOME/.taskboard; a missing file is not an
// error. A .env file in the working directory is loaded into the environment
// first without overriding variables that are already set.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Legacy variable names.
	v.BindEnv("server.port", envPrefix+"_SERVER_PORT", "PORT")
	v.BindEnv("database.path", envPrefix+"_DATABASE_PATH", "DB_PATH")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(AppName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, "."+AppName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Database.Driver != "sqlite3" && c.Database.Driver != "sqlite" {
		return fmt.Errorf("database.driver must be 'sqlite3' or 'sqlite', got %q", c.Database.Driver)
	}
	if c.Database.Path == "" {
		return errors.New("database.path is required")
	}
	if c.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if c.Client.Timeout <= 0 {
		return errors.New("client.timeout must be positive")
	}
	return nil
}
