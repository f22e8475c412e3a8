package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

const defaultSendTimeout = time.Minute

func newSendCmd(o *options) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "send [recipient]",
		Short: "Send the notification to one address",
		Long: `Send the notification to one address. When the address is omitted
it is read from standard input.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var recipient string
			if len(args) == 1 {
				recipient = args[0]
			} else {
				r, err := promptRecipient(cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
				recipient = r
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			if err := o.app.Notify(ctx, recipient); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Message sent to %s\n", recipient)
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", defaultSendTimeout, "give up after this duration")
	return cmd
}

func promptRecipient(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Recipient email address: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("cannot read recipient: %w", err)
	}
	return strings.TrimSpace(line), nil
}
