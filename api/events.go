package api

import (
	"encoding/json"
	"reflect"

	"github.com/Jan-Kur/ChatCLI/core"
)

const (
	EventNewMessage    = "newMessage"
	EventNewChannel    = "newChannel"
	EventRemoveChannel = "removeChannel"
	EventRenameChannel = "renameChannel"
)

// EventMapping lists the pushes the client understands and the payload
// type each one decodes into.
var EventMapping = map[string]any{
	EventNewMessage:    NewMessageEvent{},
	EventNewChannel:    NewChannelEvent{},
	EventRemoveChannel: RemoveChannelEvent{},
	EventRenameChannel: RenameChannelEvent{},
}

type NewMessageEvent core.Message

type NewChannelEvent core.Channel

type RemoveChannelEvent struct {
	ID core.ID `json:"id"`
}

type RenameChannelEvent struct {
	ID   core.ID `json:"id"`
	Name string  `json:"name"`
}

func (e *NewMessageEvent) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, (*core.Message)(e))
}

// createEventStruct decodes raw into a fresh value of the type mapped to
// eventType. It returns nil for unknown events.
func createEventStruct(eventType string, rawData []byte) (any, error) {
	template, exists := EventMapping[eventType]
	if !exists {
		return nil, nil
	}

	structType := reflect.TypeOf(template)
	newEvent := reflect.New(structType).Interface()

	if err := json.Unmarshal(rawData, newEvent); err != nil {
		return nil, err
	}

	return newEvent, nil
}
