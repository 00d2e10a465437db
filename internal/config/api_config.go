package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:8000"

const (
	keyBaseURL     = "api.base_url"
	keyHTTPTimeout = "http.timeout"
)

type API struct {
	v *viper.Viper
}

var _ APIConfig = API{}

// GetBaseURL returns the backend base URL without a trailing slash.
func (a API) GetBaseURL() string {
	base := strings.TrimSpace(a.v.GetString(keyBaseURL))
	if base == "" {
		base = DefaultBaseURL
	}
	return strings.TrimRight(base, "/")
}

// GetHTTPTimeout is zero (no timeout) unless configured.
func (a API) GetHTTPTimeout() time.Duration {
	return a.v.GetDuration(keyHTTPTimeout)
}
