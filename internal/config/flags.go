package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// RegisterFlags defines the global CLI flags and binds them to v. Flag defaults
// are taken from v, so --help shows the value currently in effect.
func RegisterFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	flags.String("base-url", v.GetString(keyBaseURL), "HRMS API base URL")
	flags.String("log-level", v.GetString(keyLogLevel), "log level (debug, info, warn, error)")
	flags.String("credentials-file", v.GetString(keyCredentialsFile), "where the token pair is stored")
	flags.Duration("refresh-timeout", v.GetDuration(keyRefreshTimeout), "upper bound for one token refresh")
	flags.Duration("http-timeout", v.GetDuration(keyHTTPTimeout), "per-request timeout, 0 disables it")

	for flag, key := range map[string]string{
		"base-url":         keyBaseURL,
		"log-level":        keyLogLevel,
		"credentials-file": keyCredentialsFile,
		"refresh-timeout":  keyRefreshTimeout,
		"http-timeout":     keyHTTPTimeout,
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return fmt.Errorf("failed to bind --%s: %w", flag, err)
		}
	}
	return nil
}

// RegisterMockFlags binds the mock server port flag.
func RegisterMockFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	flags.String("port", v.GetString(keyMockPort), "port the mock server listens on")
	if err := v.BindPFlag(keyMockPort, flags.Lookup("port")); err != nil {
		return fmt.Errorf("failed to bind --port: %w", err)
	}
	return nil
}
