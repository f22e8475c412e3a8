package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errInvalidConfiguration = errors.New("invalid email configuration")

func newCheckCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the sender settings and list every problem",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := o.app.CheckConfiguration()
			cfg, ok := r.Value()
			if !ok {
				for _, msg := range r.Errors() {
					fmt.Fprintln(cmd.ErrOrStderr(), msg)
				}
				return errInvalidConfiguration
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration OK: %s <%s> via %s:%d (%s)\n",
				cfg.SenderName, cfg.SenderEmail, cfg.Host, cfg.Port, o.cfg.Transport)
			return nil
		},
	}
}
