package state

import (
	"slices"

	"github.com/Jan-Kur/ChatCLI/core"
)

// Messages for a channel that is not (yet) known are kept; they show up
// once the channel arrives and go away with it.
func reduceMessages(s MessagesState, a Action) MessagesState {
	switch a := a.(type) {
	case AddMessage:
		if slices.ContainsFunc(s.Messages, func(m core.Message) bool { return m.ID == a.Message.ID }) {
			return s
		}
		messages := make([]core.Message, len(s.Messages), len(s.Messages)+1)
		copy(messages, s.Messages)
		return MessagesState{Messages: append(messages, a.Message)}

	case RemoveChannel:
		if !slices.ContainsFunc(s.Messages, func(m core.Message) bool { return m.ChannelID == a.ID }) {
			return s
		}
		messages := slices.DeleteFunc(slices.Clone(s.Messages), func(m core.Message) bool {
			return m.ChannelID == a.ID
		})
		return MessagesState{Messages: messages}

	case Hydrate:
		messages := make([]core.Message, 0, len(a.Snapshot.Messages))
		seen := make(map[core.ID]bool, len(a.Snapshot.Messages))
		for _, m := range a.Snapshot.Messages {
			if seen[m.ID] {
				continue
			}
			seen[m.ID] = true
			messages = append(messages, m)
		}
		return MessagesState{Messages: messages}
	}
	return s
}
