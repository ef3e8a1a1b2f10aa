package cmd

import (
	"fmt"
	"os/exec"

	"github.com/Jan-Kur/ChatCLI/app"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Open the chat's web client in the browser",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server := app.ConfigFrom(cmd.Context()).Server
		if err := openBrowser(server); err != nil {
			return fmt.Errorf("couldn't open the browser: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Opened", server)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(webCmd)
}

func openBrowser(url string) error {
	err := browser.OpenURL(url)
	if err != nil {
		if err := exec.Command("wslview", url).Start(); err != nil {
			return err
		}
	}
	return nil
}
