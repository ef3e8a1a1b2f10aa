package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/Jan-Kur/ChatCLI/api"
	"github.com/Jan-Kur/ChatCLI/app"
	"github.com/Jan-Kur/ChatCLI/cmd/channel"
	"github.com/Jan-Kur/ChatCLI/utils"
	"github.com/spf13/cobra"
)

var closeLog = func() error { return nil }

var RootCmd = &cobra.Command{
	Use:   "chatcli [channel]",
	Short: "Opens the app",
	Long: `Opens the chat tui. The provided channel will be opened initially.
Defaults to the channel the server marks as current.`,
	RunE:              channel.RunOpen,
	Args:              cobra.MaximumNArgs(1),
	PersistentPreRunE: loadConfig,
	SilenceErrors:     true,
	SilenceUsage:      true,
}

func Execute() {
	err := RootCmd.Execute()
	closeLog()
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, api.ErrNotLoggedIn):
		fmt.Println("You are not logged in.\n\nLog in with: chatcli login")
	case errors.Is(err, api.ErrUnauthorized):
		fmt.Println("Your session has expired.\n\nLog in again with: chatcli login")
	default:
		fmt.Println("Something went wrong:", err)
	}
	os.Exit(1)
}

func init() {
	RootCmd.AddCommand(channel.ChannelCmd)
}

// loadConfig runs before every command: it reads the config and sends
// logs to the configured file.
func loadConfig(cmd *cobra.Command, args []string) error {
	cfg, err := api.LoadConfig()
	if err != nil {
		return err
	}

	closeLog, err = utils.SetupLogging(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}

	cmd.SetContext(app.WithConfig(cmd.Context(), cfg))
	return nil
}
