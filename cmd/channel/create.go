package channel

import (
	"context"
	"fmt"

	"github.com/Jan-Kur/ChatCLI/app"
	"github.com/Jan-Kur/ChatCLI/state"
	chattui "github.com/Jan-Kur/ChatCLI/tui/channel"
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a channel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withConnection(cmd, func(ctx context.Context, c *app.Client) error {
			name, err := chattui.ValidateChannelName(args[0], state.ChannelNames(c.Store.State()), "", c.Filter)
			if err != nil {
				return err
			}

			ch, err := c.Socket.CreateChannel(ctx, name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created #%s\n", ch.Name)
			return nil
		})
	},
}

func init() {
	ChannelCmd.AddCommand(createCmd)
}
