package channel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Jan-Kur/ChatCLI/api"
	"github.com/Jan-Kur/ChatCLI/core"
	tea "github.com/charmbracelet/bubbletea"
)

// requestTimeout bounds the whole call including the send throttle. The
// acknowledgement itself times out after api.AckTimeout.
const requestTimeout = 10 * time.Second

func request(action string, call func(ctx context.Context) (tea.Msg, error)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		msg, err := call(ctx)
		if err != nil {
			return core.RequestFailedMsg{Action: action, Err: err}
		}
		return msg
	}
}

func sendMessageCmd(chat api.ChatAPI, msg core.Message) tea.Cmd {
	return request("send message", func(ctx context.Context) (tea.Msg, error) {
		sent, err := chat.SendMessage(ctx, msg)
		return core.MessageSentMsg{Message: sent}, err
	})
}

func createChannelCmd(chat api.ChatAPI, name string) tea.Cmd {
	return request("create channel", func(ctx context.Context) (tea.Msg, error) {
		ch, err := chat.CreateChannel(ctx, name)
		return core.ChannelCreatedMsg{Channel: ch}, err
	})
}

func renameChannelCmd(chat api.ChatAPI, id core.ID, name string) tea.Cmd {
	return request("rename channel", func(ctx context.Context) (tea.Msg, error) {
		err := chat.RenameChannel(ctx, id, name)
		return core.ChannelRenamedMsg{ID: id, Name: name}, err
	})
}

func removeChannelCmd(chat api.ChatAPI, id core.ID) tea.Cmd {
	return request("remove channel", func(ctx context.Context) (tea.Msg, error) {
		err := chat.RemoveChannel(ctx, id)
		return core.ChannelRemovedMsg{ID: id}, err
	})
}

// reloadCmd refetches the snapshot; pushes missed while disconnected are
// only recoverable this way.
func (a *app) reloadCmd() tea.Cmd {
	if a.reload == nil {
		return nil
	}
	reload := a.reload
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		snapshot, err := reload(ctx)
		return core.SnapshotLoadedMsg{Snapshot: snapshot, Err: err}
	}
}

func describeRequestError(err error) string {
	var rejected *api.RejectedError
	switch {
	case errors.Is(err, api.ErrAckTimeout):
		return "The server did not answer in time, try again"
	case errors.As(err, &rejected):
		return fmt.Sprintf("The server rejected the request (%s)", rejected.Status)
	case errors.Is(err, api.ErrNotConnected):
		return "Not connected to the server"
	case err == nil:
		return "Something went wrong"
	default:
		return "Something went wrong: " + err.Error()
	}
}
