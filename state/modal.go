package state

import "github.com/Jan-Kur/ChatCLI/core"

type ModalKind int

const (
	ModalNone ModalKind = iota
	ModalAddChannel
	ModalRenameChannel
	ModalRemoveChannel
)

func (k ModalKind) String() string {
	switch k {
	case ModalAddChannel:
		return "addChannel"
	case ModalRenameChannel:
		return "renameChannel"
	case ModalRemoveChannel:
		return "removeChannel"
	default:
		return "none"
	}
}

// Modal is the single open dialog. The zero value means no dialog.
type Modal struct {
	Kind      ModalKind
	ChannelID core.ID
}

func (m Modal) IsOpen() bool {
	return m.Kind != ModalNone
}

func reduceModal(s Modal, a Action) Modal {
	switch a := a.(type) {
	case OpenModal:
		if a.Kind == ModalNone {
			return Modal{}
		}
		if a.Kind == ModalAddChannel {
			return Modal{Kind: a.Kind}
		}
		return Modal{Kind: a.Kind, ChannelID: a.ChannelID}
	case CloseModal:
		return Modal{}
	case RemoveChannel:
		// A dialog about a channel that no longer exists has nothing to act on.
		if s.ChannelID != "" && s.ChannelID == a.ID {
			return Modal{}
		}
	}
	return s
}
