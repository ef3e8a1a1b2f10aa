package cmd

import (
	"fmt"

	"github.com/Jan-Kur/ChatCLI/app"
	"github.com/Jan-Kur/ChatCLI/history"
	"github.com/spf13/cobra"
)

var (
	historyGrep  string
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history [channel]",
	Short: "Search messages archived on this machine",
	Long: `Every message ChatCLI sees is archived locally. This searches the
archive, newest first, without talking to the server.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := app.ConfigFrom(cmd.Context())
		if !cfg.History.Enabled {
			return fmt.Errorf("history is disabled in the config")
		}

		archive, err := history.Open(cfg.History.Path)
		if err != nil {
			return err
		}
		defer archive.Close()

		filter, err := app.NewFilter(cfg.Profanity)
		if err != nil {
			return err
		}

		q := history.Query{Text: historyGrep, Limit: historyLimit}
		if len(args) > 0 {
			q.Channel = args[0]
		}
		entries, err := archive.Search(cmd.Context(), q)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "No messages found.")
			return nil
		}
		for i := len(entries) - 1; i >= 0; i-- {
			e := entries[i]
			fmt.Fprintf(out, "%s #%s %s: %s\n",
				e.ReceivedAt.Format("2006-01-02 15:04"), e.Channel, e.Username, filter.Clean(e.Body))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVarP(&historyGrep, "grep", "g", "", "only messages containing this text")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of messages")
	RootCmd.AddCommand(historyCmd)
}
