package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/go-hrms-client/internal/config"
	"github.com/jrsteele09/go-hrms-client/internal/errors"
	"github.com/jrsteele09/go-hrms-client/mockserver"
	"github.com/spf13/cobra"
)

func newMockServerCmd(a *app) *cobra.Command {
	opts := mockserver.Options{Seed: true}
	cmd := &cobra.Command{
		Use:   "mock-server",
		Short: "Run an in-memory HRMS backend for local development",
		Long: `Serves the login, refresh and CRUD endpoints from memory.

The default account is admin/admin. Access tokens are short lived so that
session renewal can be observed from a second terminal.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.Env = a.cfg.GetEnv()
			opts.Logger = &a.logger
			srv, err := mockserver.New(opts)
			if err != nil {
				return err
			}
			displayAppname(cmd.OutOrStdout(), a.cfg.GetAppName())
			return a.serve(cmd.Context(), &http.Server{Addr: a.cfg.GetMockPort(), Handler: srv})
		},
	}
	if err := config.RegisterMockFlags(a.v, cmd.Flags()); err != nil {
		panic(err)
	}
	cmd.Flags().DurationVar(&opts.AccessTokenExpiry, "access-expiry", time.Minute, "access token lifetime")
	cmd.Flags().BoolVar(&opts.Seed, "seed", true, "create demo employees and attendance")
	return cmd
}

// serve runs server until ctx is cancelled, then shuts it down gracefully.
func (a *app) serve(ctx context.Context, server *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- a.listenAndServe(server)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	if err := shutdown(server); err != nil {
		return err
	}
	a.logger.Info().Msg("Server stopped")
	return nil
}

func (a *app) listenAndServe(server *http.Server) error {
	a.logger.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(w io.Writer, appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	fmt.Fprintln(w, myFigure.String())
}
