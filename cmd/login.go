package cmd

import (
	"fmt"

	"github.com/Jan-Kur/ChatCLI/api"
	"github.com/Jan-Kur/ChatCLI/app"
	"github.com/Jan-Kur/ChatCLI/core"
	"github.com/Jan-Kur/ChatCLI/tui/login"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the chat server",
	Long:  `Log in with your username and password. The session is saved next to the config.`,
	RunE:  runAuth(false),
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account on the chat server",
	RunE:  runAuth(true),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := api.ClearSession(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(loginCmd, signupCmd, logoutCmd)
}

func runAuth(signup bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if session, err := api.LoadSession(); err == nil && !signup {
			fmt.Fprintf(cmd.OutOrStdout(), "✨ You are already logged in as %s ✨\n", session.Username)
			return nil
		}

		cfg := app.ConfigFrom(cmd.Context())
		client := api.NewRestClient(cfg.Server, core.Session{})

		program := tea.NewProgram(login.InitialModel(client, signup, api.SaveSession))
		_, err := program.Run()
		return err
	}
}
