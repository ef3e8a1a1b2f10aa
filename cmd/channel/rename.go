package channel

import (
	"context"
	"fmt"

	"github.com/Jan-Kur/ChatCLI/app"
	"github.com/Jan-Kur/ChatCLI/state"
	chattui "github.com/Jan-Kur/ChatCLI/tui/channel"
	"github.com/spf13/cobra"
)

var renameCmd = &cobra.Command{
	Use:   "rename <channel> <new name>",
	Short: "Rename a channel you created",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConnection(cmd, func(ctx context.Context, c *app.Client) error {
			ch, err := lookup(c, args[0])
			if err != nil {
				return err
			}
			if !ch.Removable {
				return fmt.Errorf("#%s is a built-in channel and can't be renamed", ch.Name)
			}

			name, err := chattui.ValidateChannelName(args[1], state.ChannelNames(c.Store.State()), ch.ID, c.Filter)
			if err != nil {
				return err
			}
			if err := c.Socket.RenameChannel(ctx, ch.ID, name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed #%s to #%s\n", ch.Name, name)
			return nil
		})
	},
}

func init() {
	ChannelCmd.AddCommand(renameCmd)
}
