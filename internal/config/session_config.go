package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// DefaultLoginRoute is where the user is sent once a session cannot be renewed.
const DefaultLoginRoute = "/login"

// DefaultRefreshTimeout bounds a token refresh when none is configured.
const DefaultRefreshTimeout = 30 * time.Second

const (
	keyCredentialsFile = "credentials.file"
	keyRefreshTimeout  = "refresh.timeout"
	keyLoginRoute      = "login.route"
)

type Session struct {
	v *viper.Viper
}

var _ SessionConfig = Session{}

func (s Session) GetCredentialsFile() string {
	return s.v.GetString(keyCredentialsFile)
}

func (s Session) GetRefreshTimeout() time.Duration {
	d := s.v.GetDuration(keyRefreshTimeout)
	if d <= 0 {
		return DefaultRefreshTimeout
	}
	return d
}

func (s Session) GetLoginRoute() string {
	return s.v.GetString(keyLoginRoute)
}

func defaultCredentialsFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "hrms", "credentials.json")
}
