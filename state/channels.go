package state

import (
	"slices"

	"github.com/Jan-Kur/ChatCLI/core"
)

func reduceChannels(s ChannelsState, a Action) ChannelsState {
	switch a := a.(type) {
	case AddChannel:
		channels := slices.Clone(s.Channels)
		if i := indexOfChannel(channels, a.Channel.ID); i >= 0 {
			channels[i] = a.Channel
		} else {
			channels = append(channels, a.Channel)
		}
		current := s.CurrentChannelID
		if current == "" {
			current = fallbackChannel(channels)
		}
		return ChannelsState{Channels: channels, CurrentChannelID: current}

	case RemoveChannel:
		i := indexOfChannel(s.Channels, a.ID)
		if i < 0 {
			return s
		}
		channels := slices.Delete(slices.Clone(s.Channels), i, i+1)
		current := s.CurrentChannelID
		if current == a.ID {
			current = fallbackChannel(channels)
		}
		return ChannelsState{Channels: channels, CurrentChannelID: current}

	case RenameChannel:
		i := indexOfChannel(s.Channels, a.ID)
		if i < 0 {
			return s
		}
		channels := slices.Clone(s.Channels)
		channels[i].Name = a.Name
		return ChannelsState{Channels: channels, CurrentChannelID: s.CurrentChannelID}

	case SelectChannel:
		if indexOfChannel(s.Channels, a.ID) < 0 {
			return s
		}
		return ChannelsState{Channels: s.Channels, CurrentChannelID: a.ID}

	case Hydrate:
		channels := make([]core.Channel, 0, len(a.Snapshot.Channels))
		for _, ch := range a.Snapshot.Channels {
			if i := indexOfChannel(channels, ch.ID); i >= 0 {
				channels[i] = ch
				continue
			}
			channels = append(channels, ch)
		}
		current := a.Snapshot.CurrentChannelID
		if indexOfChannel(channels, current) < 0 {
			current = fallbackChannel(channels)
		}
		return ChannelsState{Channels: channels, CurrentChannelID: current}
	}
	return s
}

// fallbackChannel picks the first built-in channel, then the first
// channel of any kind. It returns "" only for an empty list.
func fallbackChannel(channels []core.Channel) core.ID {
	for _, ch := range channels {
		if !ch.Removable {
			return ch.ID
		}
	}
	if len(channels) > 0 {
		return channels[0].ID
	}
	return ""
}

func indexOfChannel(channels []core.Channel, id core.ID) int {
	return slices.IndexFunc(channels, func(ch core.Channel) bool {
		return ch.ID == id
	})
}
