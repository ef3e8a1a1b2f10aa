package channel

import (
	"fmt"

	"github.com/Jan-Kur/ChatCLI/app"
	"github.com/Jan-Kur/ChatCLI/state"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List channels",
	Long:  `Lists every channel. The current one is marked with *, channels you can rename or remove with (removable).`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := app.Open(cmd.Context(), app.ConfigFrom(cmd.Context()))
		if err != nil {
			return err
		}
		defer c.Close()

		s := c.Store.State()
		out := cmd.OutOrStdout()
		for _, ch := range state.Channels(s) {
			marker := " "
			if ch.ID == s.Channels.CurrentChannelID {
				marker = "*"
			}
			line := fmt.Sprintf("%s #%s", marker, ch.Name)
			if ch.Removable {
				line += " (removable)"
			}
			fmt.Fprintln(out, line)
		}
		return nil
	},
}

func init() {
	ChannelCmd.AddCommand(listCmd)
}
