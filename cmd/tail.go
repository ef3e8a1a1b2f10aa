package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/Jan-Kur/ChatCLI/api"
	"github.com/Jan-Kur/ChatCLI/app"
	"github.com/Jan-Kur/ChatCLI/core"
	"github.com/Jan-Kur/ChatCLI/profanity"
	"github.com/Jan-Kur/ChatCLI/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var tailCmd = &cobra.Command{
	Use:   "tail [channel]",
	Short: "Print new messages as they arrive",
	Long: `Follows the server and prints every new message, or only the ones
posted to the given channel. Stop with ctrl+c.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTail,
}

func init() {
	RootCmd.AddCommand(tailCmd)
}

func runTail(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	c, err := app.Open(ctx, app.ConfigFrom(ctx))
	if err != nil {
		return err
	}
	defer c.Close()

	var only core.ID
	if len(args) > 0 {
		ch, err := c.SelectChannel(args[0])
		if err != nil {
			return err
		}
		only = ch.ID
	}

	p := printer{out: cmd.OutOrStdout(), store: c.Store, filter: c.Filter, only: only}
	done, err := c.Connect(ctx, func(msg tea.Msg) {
		c.HandleHeadless(msg)
		p.print(msg)
	})
	if err != nil {
		return err
	}

	err = <-done
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

type printer struct {
	out    io.Writer
	store  *state.Store
	filter *profanity.Filter
	only   core.ID
}

// print writes one line per inbound message, after the bridge has
// applied it.
func (p printer) print(msg tea.Msg) {
	ev, ok := msg.(core.HandleEventMsg)
	if !ok {
		return
	}
	mes, ok := ev.Event.(*api.NewMessageEvent)
	if !ok || (p.only != "" && mes.ChannelID != p.only) {
		return
	}

	channelName := mes.ChannelID.String()
	if ch, ok := state.ChannelByID(p.store.State(), mes.ChannelID); ok {
		channelName = ch.Name
	}
	fmt.Fprintf(p.out, "#%s %s: %s\n", channelName, mes.Username, p.filter.Clean(mes.Body))
}
