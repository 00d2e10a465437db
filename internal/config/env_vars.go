package config

import (
	"os"

	"github.com/spf13/viper"
)

const (
	keyAppName  = "app_name"
	keyLogLevel = "log_level"
	keyMockPort = "mock.port"
)

type EnvVars struct {
	v *viper.Viper
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetAppName() string {
	return e.v.GetString(keyAppName)
}

func (e EnvVars) GetLogLevel() string {
	return e.v.GetString(keyLogLevel)
}

func (e EnvVars) GetMockPort() string {
	port := e.v.GetString(keyMockPort)
	if port != "" && port[0] != ':' {
		port = ":" + port
	}
	return port
}

// GetEnv reads the unprefixed ENV variable, matching the deployment convention
// shared with the backend.
func (EnvVars) GetEnv() string {
	return GetEnv("ENV", "DEV")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
