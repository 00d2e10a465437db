package main

import (
	"time"

	"github.com/jrsteele09/go-hrms-client/credentials"
	"github.com/jrsteele09/go-hrms-client/internal/errors"
	"github.com/jrsteele09/go-hrms-client/token/jwt"
	"github.com/spf13/cobra"
)

type tokenStatus struct {
	LoggedIn        bool       `json:"logged_in"`
	Subject         string     `json:"subject,omitempty"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	Expired         bool       `json:"expired"`
	HasRefreshToken bool       `json:"has_refresh_token"`
}

func newLoginCmd(a *app) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the token pair",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = a.v.GetString("password")
			}
			if _, err := a.client.Login(cmd.Context(), username, password); err != nil {
				return err
			}
			a.logger.Info().Str("username", username).Msg("Logged in")
			return a.printStatus()
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (or HRMS_PASSWORD)")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token pair",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.client.Logout(); err != nil {
				return err
			}
			return a.printStatus()
		},
	}
}

func newTokenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Inspect the stored credentials",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show whether a session is stored and when it expires",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.printStatus()
		},
	})
	return cmd
}

func (a *app) printStatus() error {
	status, err := loadStatus(a.store)
	if err != nil {
		return err
	}
	return a.print(status)
}

func loadStatus(store credentials.Store) (*tokenStatus, error) {
	tok, err := credentials.Load(store)
	if errors.Is(err, errors.ErrNoAccessToken) {
		return &tokenStatus{}, nil
	}
	if err != nil {
		return nil, err
	}

	status := &tokenStatus{LoggedIn: true, HasRefreshToken: tok.RefreshToken != ""}
	if claims, err := jwt.Inspect(tok.AccessToken); err == nil {
		status.Subject = claims.Subject()
		status.Expired = claims.Expired()
	}
	if !tok.Expiry.IsZero() {
		status.ExpiresAt = &tok.Expiry
	}
	return status, nil
}
