package state

import (
	"strings"

	"github.com/Jan-Kur/ChatCLI/core"
)

func Channels(s State) []core.Channel {
	return s.Channels.Channels
}

func ChannelByID(s State, id core.ID) (core.Channel, bool) {
	i := indexOfChannel(s.Channels.Channels, id)
	if i < 0 {
		return core.Channel{}, false
	}
	return s.Channels.Channels[i], true
}

func CurrentChannel(s State) (core.Channel, bool) {
	return ChannelByID(s, s.Channels.CurrentChannelID)
}

// MessagesFor returns the messages of one channel in arrival order.
func MessagesFor(s State, id core.ID) []core.Message {
	var out []core.Message
	for _, m := range s.Messages.Messages {
		if m.ChannelID == id {
			out = append(out, m)
		}
	}
	return out
}

func CurrentMessages(s State) []core.Message {
	return MessagesFor(s, s.Channels.CurrentChannelID)
}

func CurrentModal(s State) Modal {
	return s.Modal
}

// ChannelNames is used to keep channel names unique.
func ChannelNames(s State) map[string]core.ID {
	names := make(map[string]core.ID, len(s.Channels.Channels))
	for _, ch := range s.Channels.Channels {
		names[ch.Name] = ch.ID
	}
	return names
}

// ChannelByName looks a channel up by its name, with or without "#".
func ChannelByName(s State, name string) (core.Channel, bool) {
	name = strings.TrimPrefix(strings.TrimSpace(name), "#")
	for _, ch := range s.Channels.Channels {
		if ch.Name == name {
			return ch, true
		}
	}
	return core.Channel{}, false
}
