// Package state holds the client-side chat state: the channel list, the
// message list and the modal dialog. State changes only through typed
// actions passed to Reduce or Store.Dispatch.
package state

import "github.com/Jan-Kur/ChatCLI/core"

// Action is implemented by every state transition. The set is closed to
// this package so each slice reducer can switch over a known list.
type Action interface {
	action()
}

type AddChannel struct {
	Channel core.Channel
}

type RemoveChannel struct {
	ID core.ID
}

type RenameChannel struct {
	ID   core.ID
	Name string
}

type SelectChannel struct {
	ID core.ID
}

type AddMessage struct {
	Message core.Message
}

type OpenModal struct {
	Kind      ModalKind
	ChannelID core.ID
}

type CloseModal struct{}

// Hydrate replaces the channel and message slices with a server snapshot.
type Hydrate struct {
	Snapshot core.Snapshot
}

func (AddChannel) action()    {}
func (RemoveChannel) action() {}
func (RenameChannel) action() {}
func (SelectChannel) action() {}
func (AddMessage) action()    {}
func (OpenModal) action()     {}
func (CloseModal) action()    {}
func (Hydrate) action()       {}
