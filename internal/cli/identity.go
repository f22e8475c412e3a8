package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newIdentityCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "identity",
		Short: "Print the AWS identity used by the SES transport",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := o.app.CallerIdentity(cmd.Context(), nil)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), id.String())
			return nil
		},
	}
}
