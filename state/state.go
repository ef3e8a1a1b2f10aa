package state

import "github.com/Jan-Kur/ChatCLI/core"

type State struct {
	Channels ChannelsState
	Messages MessagesState
	Modal    Modal
}

type ChannelsState struct {
	Channels         []core.Channel
	CurrentChannelID core.ID
}

type MessagesState struct {
	Messages []core.Message
}

// Reduce routes a to every slice reducer. Reducers never modify prev.
func Reduce(prev State, a Action) State {
	return State{
		Channels: reduceChannels(prev.Channels, a),
		Messages: reduceMessages(prev.Messages, a),
		Modal:    reduceModal(prev.Modal, a),
	}
}

// FromSnapshot builds the state a Hydrate action would produce from an
// empty store.
func FromSnapshot(s core.Snapshot) State {
	return Reduce(State{}, Hydrate{Snapshot: s})
}
