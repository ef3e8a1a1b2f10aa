package channel

import (
	"context"
	"fmt"

	"github.com/Jan-Kur/ChatCLI/app"
	"github.com/Jan-Kur/ChatCLI/core"
	"github.com/Jan-Kur/ChatCLI/state"
	"github.com/spf13/cobra"
)

var ChannelCmd = &cobra.Command{
	Use:   "channel",
	Short: "Perform actions related to a channel",
	Long: `Available actions:
	- open
	- list
	- create
	- rename
	- remove`,
}

// lookup finds a channel by name in the client's store.
func lookup(c *app.Client, name string) (core.Channel, error) {
	ch, ok := state.ChannelByName(c.Store.State(), name)
	if !ok {
		return core.Channel{}, fmt.Errorf("no channel named %q", name)
	}
	return ch, nil
}

func withConnection(cmd *cobra.Command, fn func(context.Context, *app.Client) error) error {
	return app.WithConnection(cmd.Context(), app.ConfigFrom(cmd.Context()), fn)
}
