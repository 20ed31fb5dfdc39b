// Package config loads sqlkit settings from .sqlkit.yaml, the environment
// and .env files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/satishbabariya/sqlkit/runtime/client"
)

// AppFs is the filesystem config files and query documents are read from.
var AppFs = afero.NewOsFs()

// Config holds the application configuration
type Config struct {
	Provider       string
	DatabaseURL    string
	Debug          bool
	LogFormat      string
	MaxOpenConns   int
	ConnectTimeout int
	ConfigFile     string
}

// Load reads configuration. When path is empty, .sqlkit.yaml is searched
// in the working directory, $HOME and $HOME/.config/sqlkit; a missing file
// is not an error. Environment variables prefixed with SQLKIT_ override the
// file.
func Load(path string) (*Config, error) {
	loadDotEnv()

	v := viper.New()
	v.SetFs(AppFs)
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".sqlkit")
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
			v.AddConfigPath(filepath.Join(home, ".config", "sqlkit"))
		}
	}

	v.SetEnvPrefix("SQLKIT")
	v.AutomaticEnv()

	v.SetDefault("provider", "postgres")
	v.SetDefault("debug", false)
	v.SetDefault("log_format", "text")
	v.SetDefault("max_open_conns", 0)
	v.SetDefault("connect_timeout", 10)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Provider:       v.GetString("provider"),
		DatabaseURL:    v.GetString("database_url"),
		Debug:          v.GetBool("debug"),
		LogFormat:      v.GetString("log_format"),
		MaxOpenConns:   v.GetInt("max_open_conns"),
		ConnectTimeout: v.GetInt("connect_timeout"),
		ConfigFile:     v.ConfigFileUsed(),
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log_format %q: want text or json", cfg.LogFormat)
	}
	return cfg, nil
}

// loadDotEnv loads .env and then .env.local, which takes precedence.
func loadDotEnv() {
	if _, err := AppFs.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
	if _, err := AppFs.Stat(".env.local"); err == nil {
		_ = godotenv.Overload(".env.local")
	}
}

// Client returns the connection settings for the runtime client.
func (c *Config) Client() client.Config {
	return client.Config{
		Provider:       c.Provider,
		URL:            c.DatabaseURL,
		MaxConnections: c.MaxOpenConns,
		ConnectTimeout: c.ConnectTimeout,
	}
}
