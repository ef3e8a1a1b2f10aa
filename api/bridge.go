package api

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Jan-Kur/ChatCLI/core"
	"github.com/Jan-Kur/ChatCLI/state"
	"github.com/Jan-Kur/ChatCLI/utils"
)

type Dispatcher interface {
	Dispatch(state.Action) state.State
}

// Recorder receives every inbound message, e.g. to archive it.
type Recorder interface {
	Record(ctx context.Context, msg core.Message, channelName string) error
}

// Bridge applies inbound pushes to the store. The server is trusted:
// payloads are applied as they come.
type Bridge struct {
	store    Dispatcher
	recorder Recorder
	log      *slog.Logger
}

func NewBridge(store Dispatcher, recorder Recorder) *Bridge {
	return &Bridge{
		store:    store,
		recorder: recorder,
		log:      utils.Logger("socket"),
	}
}

// ActionFor maps a decoded event to its store action.
func ActionFor(ev any) (state.Action, bool) {
	switch ev := ev.(type) {
	case *NewMessageEvent:
		return state.AddMessage{Message: core.Message(*ev)}, true
	case *NewChannelEvent:
		return state.AddChannel{Channel: core.Channel(*ev)}, true
	case *RemoveChannelEvent:
		return state.RemoveChannel{ID: ev.ID}, true
	case *RenameChannelEvent:
		return state.RenameChannel{ID: ev.ID, Name: ev.Name}, true
	}
	return nil, false
}

func (b *Bridge) Handle(ev any) {
	action, ok := ActionFor(ev)
	if !ok {
		b.log.Warn("unhandled event", "type", fmt.Sprintf("%T", ev))
		return
	}
	b.log.Debug("inbound", "action", action)

	next := b.store.Dispatch(action)

	if msg, ok := action.(state.AddMessage); ok && b.recorder != nil {
		var channelName string
		if ch, ok := state.ChannelByID(next, msg.Message.ChannelID); ok {
			channelName = ch.Name
		}
		if err := b.recorder.Record(context.Background(), msg.Message, channelName); err != nil {
			b.log.Error("archive message", "id", msg.Message.ID, "err", err)
		}
	}
}
