package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Jan-Kur/ChatCLI/api"
	"github.com/Jan-Kur/ChatCLI/core"
	"github.com/Jan-Kur/ChatCLI/profanity"
	"github.com/Jan-Kur/ChatCLI/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinter(t *testing.T) {
	filter, err := profanity.New("en")
	require.NoError(t, err)
	store := state.NewStore(state.FromSnapshot(core.Snapshot{
		Channels:         []core.Channel{{ID: "1", Name: "general"}, {ID: "2", Name: "random"}},
		CurrentChannelID: "1",
	}))

	var out bytes.Buffer
	p := printer{out: &out, store: store, filter: filter}
	p.print(core.HandleEventMsg{Event: &api.NewMessageEvent{ID: "1", ChannelID: "2", Username: "bob", Body: "oh crap"}})
	p.print(core.HandleEventMsg{Event: &api.NewChannelEvent{ID: "3", Name: "new"}})
	p.print(core.ConnectionStateMsg{Connected: true})

	p.only = "1"
	p.print(core.HandleEventMsg{Event: &api.NewMessageEvent{ID: "2", ChannelID: "2", Username: "bob", Body: "skipped"}})
	p.print(core.HandleEventMsg{Event: &api.NewMessageEvent{ID: "3", ChannelID: "1", Username: "ann", Body: "hi"}})

	assert.Equal(t, "#random bob: oh ****\n#general ann: hi\n", out.String())
}

func TestCommandTree(t *testing.T) {
	names := map[string]bool{}
	for _, c := range RootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"init", "login", "signup", "logout", "channel", "send", "tail", "history", "web", "version"} {
		assert.True(t, names[want], "missing command %s", want)
	}

	sub, _, err := RootCmd.Find([]string{"channel", "rm"})
	require.NoError(t, err)
	assert.Equal(t, "remove", sub.Name())
}

func TestVersion(t *testing.T) {
	t.Setenv("CHATCLI_CONFIG_DIR", t.TempDir())

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		closeLog()
		RootCmd.SetOut(nil)
		RootCmd.SetArgs(nil)
	})

	require.NoError(t, RootCmd.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "chatcli "))
}
