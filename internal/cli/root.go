// Package cli wires the command surface: the interactive TUI by default,
// plus one-shot subcommands for scripts and quick edits.
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gqtodo/gqtodo/internal/api"
	"github.com/gqtodo/gqtodo/internal/config"
	"github.com/gqtodo/gqtodo/internal/logging"
	"github.com/gqtodo/gqtodo/internal/session"
	"github.com/gqtodo/gqtodo/internal/tui"
	"github.com/gqtodo/gqtodo/internal/ui"
)

var (
	flagConfig     string
	flagNoColor    bool
	flagForceColor bool
)

// app bundles what every command needs.
type app struct {
	cfg    *config.Config
	sess   *session.Store
	client *api.Client
	log    *zap.Logger
}

func newApp() (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	sess, err := session.Open()
	if err != nil {
		return nil, err
	}

	ui.SetTheme(cfg.Theme)
	ui.SetColorForcing(flagForceColor, flagNoColor)

	// the token is re-read from durable storage before every request
	client := api.New(cfg.Endpoint, cfg.Timeout, sess.PersistedToken, log)
	return &app{cfg: cfg, sess: sess, client: client, log: log}, nil
}

var rootCmd = &cobra.Command{
	Use:   "gqtodo",
	Short: "A terminal client for a GraphQL todo service",
	Long: `gqtodo talks to a remote GraphQL todo API.

Run it without arguments for the interactive TUI: a signup/login form when
logged out, the todo list when logged in. Subcommands cover the same
operations one-shot.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer func() { _ = a.log.Sync() }()
		return tui.Run(a.sess, a.client, a.log)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ~/.config/gqtodo/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagForceColor, "color", false, "force colored output")

	rootCmd.AddCommand(
		newSignupCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newLsCmd(),
		newAddCmd(),
		newDoneCmd(),
		newRmCmd(),
	)
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }
