package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config interface {
	EnvConfig
	APIConfig
	SessionConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
	GetMockPort() string
}

type APIConfig interface {
	GetBaseURL() string
	GetHTTPTimeout() time.Duration
}

type SessionConfig interface {
	GetCredentialsFile() string
	GetRefreshTimeout() time.Duration
	GetLoginRoute() string
}

const envPrefix = "HRMS"

type mainConfig struct {
	EnvVars
	API
	Session
}

// New loads configuration from HRMS_* environment variables and an optional
// hrms.yaml (or .toml/.json) in the working directory or the user config dir.
func New() (Config, error) {
	v, err := Load()
	if err != nil {
		return nil, err
	}
	return NewFromViper(v), nil
}

// NewFromViper wraps an already populated viper instance, e.g. one with CLI
// flags bound to it.
func NewFromViper(v *viper.Viper) Config {
	return mainConfig{
		EnvVars: EnvVars{v: v},
		API:     API{v: v},
		Session: Session{v: v},
	}
}

// Load builds the viper instance with defaults applied. The instance is returned
// even when the config file cannot be read, so callers can still bind flags.
func Load() (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	v.SetConfigName("hrms")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "hrms"))
	}
	// A missing config file is fine; env vars and defaults still apply.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return v, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyAppName, "HRMS")
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyMockPort, "8000")
	v.SetDefault(keyBaseURL, DefaultBaseURL)
	v.SetDefault(keyHTTPTimeout, time.Duration(0))
	v.SetDefault(keyCredentialsFile, defaultCredentialsFile())
	v.SetDefault(keyRefreshTimeout, DefaultRefreshTimeout)
	v.SetDefault(keyLoginRoute, DefaultLoginRoute)
}
