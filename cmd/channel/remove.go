package channel

import (
	"context"
	"fmt"

	"github.com/Jan-Kur/ChatCLI/app"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <channel>",
	Aliases: []string{"rm"},
	Short:   "Remove a channel you created, along with its messages",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConnection(cmd, func(ctx context.Context, c *app.Client) error {
			ch, err := lookup(c, args[0])
			if err != nil {
				return err
			}
			if !ch.Removable {
				return fmt.Errorf("#%s is a built-in channel and can't be removed", ch.Name)
			}

			if err := c.Socket.RemoveChannel(ctx, ch.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed #%s\n", ch.Name)
			return nil
		})
	},
}

func init() {
	ChannelCmd.AddCommand(removeCmd)
}
