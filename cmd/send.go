package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/Jan-Kur/ChatCLI/app"
	"github.com/Jan-Kur/ChatCLI/core"
	"github.com/Jan-Kur/ChatCLI/state"
	"github.com/spf13/cobra"
)

var sendChannel string

var sendCmd = &cobra.Command{
	Use:   "send <message>...",
	Short: "Send a message without opening the tui",
	Long: `Sends a message to a channel and waits for the server to confirm it.
Without --channel the server's current channel is used.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := strings.TrimSpace(strings.Join(args, " "))
		if body == "" {
			return fmt.Errorf("nothing to send")
		}

		return app.WithConnection(cmd.Context(), app.ConfigFrom(cmd.Context()), func(ctx context.Context, c *app.Client) error {
			ch, ok := state.CurrentChannel(c.Store.State())
			if sendChannel != "" {
				var err error
				if ch, err = c.SelectChannel(sendChannel); err != nil {
					return err
				}
				ok = true
			}
			if !ok {
				return fmt.Errorf("the server has no channels")
			}

			_, err := c.Socket.SendMessage(ctx, core.Message{
				ChannelID: ch.ID,
				Username:  c.Session.Username,
				Body:      c.Filter.Clean(body),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sent to #%s\n", ch.Name)
			return nil
		})
	},
}

func init() {
	sendCmd.Flags().StringVarP(&sendChannel, "channel", "c", "", "channel to send to")
	RootCmd.AddCommand(sendCmd)
}
