/*
Package cli provides the notifymail commands.
*/
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sgaunet/notifymail/internal/app"
	"github.com/sgaunet/notifymail/internal/configapp"
	"github.com/sgaunet/notifymail/internal/logger"
	"github.com/spf13/cobra"
)

var version = "development"

type options struct {
	cfgFile  string
	logLevel string
	logFile  string

	cfg     configapp.AppConfig
	log     logger.Logger
	closers []io.Closer
	app     *app.App

	// appOpts are passed to app.New; tests use them to inject transports.
	appOpts []app.Option
}

// Execute runs the command line and returns the error of the executed
// command.
func Execute() error {
	o := &options{}
	defer o.close()
	return newRootCmd(o).Execute()
}

func newRootCmd(o *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "notifymail",
		Short: "Send an email notification over SMTP, Mailgun or SES",
		Long: `notifymail sends a single notification email to one address.

The recipient address and the sender settings are validated before any
delivery attempt; failed deliveries are retried up to 3 times.

Sender settings come from the EmailSettings section of the configuration
file, or from EMAILSETTINGS_<KEY> environment variables.

Example:
  notifymail send user@example.com
  notifymail -c config.yaml serve
  notifymail check`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return o.init(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().StringVarP(&o.cfgFile, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&o.logLevel, "log-level", "", "debug, info, warn or error (default from config or DEBUGLEVEL)")
	rootCmd.PersistentFlags().StringVar(&o.logFile, "log-file", "", "append logs to this file instead of stdout")

	rootCmd.AddCommand(newSendCmd(o))
	rootCmd.AddCommand(newServeCmd(o))
	rootCmd.AddCommand(newScheduleCmd(o))
	rootCmd.AddCommand(newCheckCmd(o))
	rootCmd.AddCommand(newIdentityCmd(o))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func (o *options) init(ctx context.Context) error {
	if o.cfgFile != "" {
		cfg, err := configapp.ReadYamlCnxFile(o.cfgFile)
		if err != nil {
			return err
		}
		o.cfg = cfg
	}
	o.cfg.SetDefaults()

	if err := o.initLogger(); err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	a, err := app.New(ctx, o.cfg, o.log, o.appOpts...)
	if err != nil {
		return err
	}
	o.app = a
	return nil
}

func (o *options) initLogger() error {
	level := o.logLevel
	if level == "" {
		level = o.cfg.DebugLevel
	}
	if level == "" {
		level = os.Getenv("DEBUGLEVEL")
	}
	path := o.logFile
	if path == "" {
		path = o.cfg.LogFile
	}

	if path == "" {
		o.log = logger.NewLogger(level)
		return nil
	}
	l, closer, err := logger.NewFileLogger(level, path)
	if err != nil {
		return err
	}
	o.log = l
	o.closers = append(o.closers, closer)
	return nil
}

func (o *options) close() {
	for _, c := range o.closers {
		_ = c.Close()
	}
	o.closers = nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		// the version needs neither configuration nor logger
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
