package cli

import (
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var errScheduleArgs = errors.New("a cron specification and a recipient are mandatory")

func newScheduleCmd(o *options) *cobra.Command {
	var spec, recipient string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Send the notification on a cron schedule until interrupted",
		Long: `Send the notification on a cron schedule until interrupted.

The specification has the fields second minute hour day month [weekday],
or is a descriptor such as @daily or "@every 1h".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if spec == "" {
				spec = o.cfg.Schedule.Cron
			}
			if recipient == "" {
				recipient = o.cfg.Schedule.Recipient
			}
			if spec == "" || recipient == "" {
				return errScheduleArgs
			}

			c, err := o.app.Schedule(spec, recipient, timeout)
			if err != nil {
				return err
			}
			o.log.Info("schedule started", "cron", spec, "recipient", recipient)
			c.Start()
			defer c.Stop()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()
			o.log.Info("schedule stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&spec, "cron", "", "cron specification (default from config)")
	cmd.Flags().StringVar(&recipient, "to", "", "recipient address (default from config)")
	cmd.Flags().DurationVar(&timeout, "timeout", defaultSendTimeout, "bound of each run")
	return cmd
}
