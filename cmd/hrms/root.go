package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jrsteele09/go-hrms-client/apiclient"
	"github.com/jrsteele09/go-hrms-client/credentials"
	"github.com/jrsteele09/go-hrms-client/credentials/filestore"
	"github.com/jrsteele09/go-hrms-client/interceptor"
	"github.com/jrsteele09/go-hrms-client/internal/config"
	"github.com/jrsteele09/go-hrms-client/internal/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/oauth2"
)

// session is what both API clients offer the commands.
type session interface {
	apiclient.Requester
	Login(ctx context.Context, username, password string) (*oauth2.Token, error)
	Logout() error
}

type app struct {
	v      *viper.Viper
	cfg    config.Config
	out    io.Writer
	logger zerolog.Logger
	store  credentials.Store
	client session

	format string
	fetch  bool

	// loadErr is reported once a command runs, after flags are registered.
	loadErr error
}

func newRootCmd() *cobra.Command {
	v, err := config.Load()
	a := &app{v: v, loadErr: err}

	root := &cobra.Command{
		Use:   "hrms",
		Short: "HRMS API client",
		Long: `Command line access to the HRMS REST API.

The token pair obtained with "hrms login" is stored in the credentials file and
renewed automatically when the access token expires. Pass --fetch to use the
plain client, which never renews the session.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	if err := config.RegisterFlags(a.v, flags); err != nil {
		panic(err)
	}
	flags.StringVarP(&a.format, "output", "o", "json", "output format: json or yaml")
	flags.BoolVar(&a.fetch, "fetch", false, "use the plain client without session renewal")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newTokenCmd(a),
		newEmployeesCmd(a),
		newAttendanceCmd(a),
		newShiftRequestsCmd(a),
		newWorkTypeRequestsCmd(a),
		newDashboardCmd(a),
		newMockServerCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if a.loadErr != nil {
		return a.loadErr
	}
	a.cfg = config.NewFromViper(a.v)
	a.out = cmd.OutOrStdout()
	a.logger = logging.Setup(a.cfg.GetLogLevel(), a.cfg.GetEnv() == "DEV")
	a.store = filestore.New(a.cfg.GetCredentialsFile())

	if a.fetch {
		a.client = apiclient.New(a.cfg.GetBaseURL(), a.store, apiclient.WithLogger(a.logger))
		return nil
	}

	errOut := cmd.ErrOrStderr()
	a.client = interceptor.NewFromConfig(a.cfg, a.store,
		interceptor.WithLogger(a.logger),
		interceptor.WithRedirector(func(route string) {
			fmt.Fprintf(errOut, "Session expired. Run \"hrms login\" to sign in again (%s).\n", route)
		}),
	)
	return nil
}

func exactlyOneID(cmd *cobra.Command, args []string) error {
	if len(args) != 1 || args[0] == "" {
		return fmt.Errorf("%s needs exactly one id", cmd.CommandPath())
	}
	return nil
}

func readFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return f, nil
}
