package cmd

import (
	"github.com/Jan-Kur/ChatCLI/api"
	"github.com/Jan-Kur/ChatCLI/app"
	"github.com/Jan-Kur/ChatCLI/tui/setup"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var InitCmd = &cobra.Command{
	Use:   "init",
	Short: "Sets up the config",
	Long: `Run this command before using ChatCLI for the first time.
Enter the chat server address and select a theme.`,
	RunE: runInit,
}

func init() {
	RootCmd.AddCommand(InitCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg := app.ConfigFrom(cmd.Context())
	program := tea.NewProgram(setup.Start(cfg, api.SaveConfig), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
