package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/Jan-Kur/ChatCLI/core"
)

// ChatAPI is what the UI may ask the server to do. Every call resolves
// once the server acknowledges it; the resulting state change arrives
// separately as a push.
type ChatAPI interface {
	SendMessage(ctx context.Context, msg core.Message) (core.Message, error)
	CreateChannel(ctx context.Context, name string) (core.Channel, error)
	RenameChannel(ctx context.Context, id core.ID, name string) error
	RemoveChannel(ctx context.Context, id core.ID) error
}

var _ ChatAPI = (*Socket)(nil)

type newMessagePayload struct {
	Body      string  `json:"body"`
	ChannelID core.ID `json:"channelId"`
	Username  string  `json:"username"`
}

func (s *Socket) SendMessage(ctx context.Context, msg core.Message) (core.Message, error) {
	data, err := s.Request(ctx, EventNewMessage, newMessagePayload{
		Body:      msg.Body,
		ChannelID: msg.ChannelID,
		Username:  msg.Username,
	})
	if err != nil {
		return core.Message{}, fmt.Errorf("send message: %w", err)
	}
	sent := msg
	if err := decodeAckData(data, &sent); err != nil {
		return core.Message{}, fmt.Errorf("send message: %w", err)
	}
	return sent, nil
}

func (s *Socket) CreateChannel(ctx context.Context, name string) (core.Channel, error) {
	data, err := s.Request(ctx, EventNewChannel, map[string]string{"name": name})
	if err != nil {
		return core.Channel{}, fmt.Errorf("create channel: %w", err)
	}
	channel := core.Channel{Name: name, Removable: true}
	if err := decodeAckData(data, &channel); err != nil {
		return core.Channel{}, fmt.Errorf("create channel: %w", err)
	}
	return channel, nil
}

func (s *Socket) RenameChannel(ctx context.Context, id core.ID, name string) error {
	_, err := s.Request(ctx, EventRenameChannel, RenameChannelEvent{ID: id, Name: name})
	if err != nil {
		return fmt.Errorf("rename channel: %w", err)
	}
	return nil
}

func (s *Socket) RemoveChannel(ctx context.Context, id core.ID) error {
	_, err := s.Request(ctx, EventRemoveChannel, RemoveChannelEvent{ID: id})
	if err != nil {
		return fmt.Errorf("remove channel: %w", err)
	}
	return nil
}

// decodeAckData fills out from the ack's data, leaving it as is when
// the server sent none.
func decodeAckData(data json.RawMessage, out any) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	return json.Unmarshal(data, out)
}
