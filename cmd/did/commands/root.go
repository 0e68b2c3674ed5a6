package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"didwallet/internal/app"
	"didwallet/internal/log"
)

var (
	home       string
	passphrase string
	logLevel   string
	appCtx     *app.App
)

var logger = log.New("cli")

// usageError marks errors caused by how the CLI was invoked.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usageErr(err error) error {
	if err == nil {
		return nil
	}
	return &usageError{err: err}
}

// ExitCode maps the result of Execute to a process exit status.
func ExitCode(err error) int {
	var ue *usageError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &ue):
		return 1
	default:
		return 2
	}
}

// Execute runs the CLI against os.Args and reports any error on stderr.
func Execute() error {
	return execute(NewRootCmd())
}

func execute(root *cobra.Command) error {
	defer closeApp()

	cmd, err := root.ExecuteContextC(context.Background())
	if err != nil {
		// Errors surfacing at the root are unknown commands or bad root args.
		if cmd == root {
			err = usageErr(err)
		}
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
	}
	return err
}

// NewRootCmd builds the command tree. Flag values are reset on every call.
func NewRootCmd() *cobra.Command {
	home, passphrase, logLevel, appCtx = "", "", "", nil

	root := &cobra.Command{
		Use:           "did",
		Short:         "Local-first DID wallet: encrypted messages and verifiable credentials",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(app.ResolveHome(home))
			if err != nil {
				return usageErr(err)
			}
			cfg.Passphrase = passphrase
			if err := cfg.ConfigureLogging(logLevel); err != nil {
				return usageErr(err)
			}

			a, err := app.New(cfg)
			if err != nil {
				return err
			}
			appCtx = a
			logger.Debug("running", log.WithCommand(cmd.CommandPath()), log.WithPath(cfg.Home))
			return nil
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageErr(err) })

	root.PersistentFlags().StringVar(&home, "home", "",
		"wallet dir (default $"+app.HomeEnv+" or "+app.DefaultHome+")")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting the key file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log spec, e.g. debug or envelope=debug:warning (default $"+app.LogLevelEnv+")")

	root.AddCommand(
		initCmd(), docCmd(), didCmd(), fingerprintCmd(), seedCmd(),
		connectCmd(), didsCmd(),
		writeCmd(), readCmd(), holdCmd(), messagesCmd(), messageCmd(),
		issueCmd(), credentialsCmd(), credentialCmd(),
		presentCmd(), presentationsCmd(), presentationCmd(),
		verifyCmd(),
	)
	return root
}

func closeApp() {
	if appCtx == nil {
		return
	}
	if err := appCtx.Close(); err != nil {
		logger.Warn("closing wallet", log.WithError(err))
	}
	appCtx = nil
}
