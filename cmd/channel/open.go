package channel

import (
	"github.com/Jan-Kur/ChatCLI/app"
	chattui "github.com/Jan-Kur/ChatCLI/tui/channel"
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open [channel]",
	Short: "Open a channel",
	Long: `Opens a tui where you can interact with all of your channels.
The channel you selected or a default one will be opened by default`,
	RunE: RunOpen,
	Args: cobra.MaximumNArgs(1),
}

func init() {
	ChannelCmd.AddCommand(openCmd)
}

// RunOpen starts the chat tui. It also backs the root command.
func RunOpen(cmd *cobra.Command, args []string) error {
	var initialChannel string
	if len(args) > 0 {
		initialChannel = args[0]
	}

	c, err := app.Open(cmd.Context(), app.ConfigFrom(cmd.Context()))
	if err != nil {
		return err
	}
	defer c.Close()

	return chattui.Start(cmd.Context(), c, initialChannel)
}
