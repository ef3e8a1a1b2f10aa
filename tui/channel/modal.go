package channel

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Jan-Kur/ChatCLI/core"
	"github.com/Jan-Kur/ChatCLI/profanity"
	"github.com/Jan-Kur/ChatCLI/state"
	"github.com/Jan-Kur/ChatCLI/tui/styles"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	lg "github.com/charmbracelet/lipgloss"
)

const (
	minNameLen = 3
	maxNameLen = 20
)

var (
	ErrNameLength = fmt.Errorf("Name must be %d to %d characters long", minNameLen, maxNameLen)
	ErrNameTaken  = errors.New("A channel with this name already exists")
)

// modal holds the widgets of the open dialog. Which dialog is open, and
// for which channel, lives in the store.
type modal struct {
	input   textinput.Model
	err     string
	pending bool
	theme   styles.Theme
}

func initializeModal(theme styles.Theme) modal {
	i := textinput.New()
	i.Placeholder = "channel name"
	i.CharLimit = 64
	i.Width = 30
	i.Prompt = "# "
	i.Cursor.SetMode(cursor.CursorBlink)
	i.TextStyle = lg.NewStyle().Foreground(theme.Text)
	i.PromptStyle = lg.NewStyle().Foreground(theme.Primary)

	return modal{input: i, theme: theme}
}

func (m *modal) focus() tea.Cmd {
	return m.input.Focus()
}

// ValidateChannelName trims and masks raw and checks it against the
// existing names. self is the channel being renamed, if any.
func ValidateChannelName(raw string, names map[string]core.ID, self core.ID, filter *profanity.Filter) (string, error) {
	name := filter.Clean(strings.TrimSpace(raw))
	if n := utf8.RuneCountInString(name); n < minNameLen || n > maxNameLen {
		return "", ErrNameLength
	}
	if id, taken := names[name]; taken && id != self {
		return "", ErrNameTaken
	}
	return name, nil
}

func (a *app) openModal(kind state.ModalKind, id core.ID) {
	a.store.Dispatch(state.OpenModal{Kind: kind, ChannelID: id})
	a.modal.err = ""
	a.modal.pending = false
	a.modal.input.Reset()
	if kind == state.ModalRenameChannel {
		if ch, ok := state.ChannelByID(a.store.State(), id); ok {
			a.modal.input.SetValue(ch.Name)
			a.modal.input.CursorEnd()
		}
	}
}

func (a *app) closeModal() {
	if state.CurrentModal(a.store.State()).IsOpen() {
		a.store.Dispatch(state.CloseModal{})
	}
	a.modal.input.Blur()
	a.modal.input.Reset()
	a.modal.err = ""
	a.modal.pending = false
}

func (a *app) updateModal(msg tea.KeyMsg) tea.Cmd {
	current := state.CurrentModal(a.store.State())

	switch {
	case key.Matches(msg, a.keys.Back):
		a.closeModal()
		a.refresh()
		return nil
	case key.Matches(msg, a.keys.Confirm):
		if a.modal.pending {
			return nil
		}
		return a.submitModal(current)
	}

	if current.Kind == state.ModalRemoveChannel {
		return nil
	}
	var cmd tea.Cmd
	a.modal.input, cmd = a.modal.input.Update(msg)
	a.modal.err = ""
	return cmd
}

func (a *app) submitModal(current state.Modal) tea.Cmd {
	names := state.ChannelNames(a.store.State())

	switch current.Kind {
	case state.ModalAddChannel:
		name, err := ValidateChannelName(a.modal.input.Value(), names, "", a.filter)
		if err != nil {
			a.modal.err = err.Error()
			return nil
		}
		a.modal.pending = true
		return createChannelCmd(a.api, name)

	case state.ModalRenameChannel:
		name, err := ValidateChannelName(a.modal.input.Value(), names, current.ChannelID, a.filter)
		if err != nil {
			a.modal.err = err.Error()
			return nil
		}
		a.modal.pending = true
		return renameChannelCmd(a.api, current.ChannelID, name)

	case state.ModalRemoveChannel:
		a.modal.pending = true
		return removeChannelCmd(a.api, current.ChannelID)
	}
	return nil
}

func (a *app) modalView(current state.Modal) string {
	var title, body string

	switch current.Kind {
	case state.ModalAddChannel:
		title = "Add channel"
		body = a.modal.input.View()
	case state.ModalRenameChannel:
		title = "Rename channel"
		body = a.modal.input.View()
	case state.ModalRemoveChannel:
		title = "Remove channel"
		name := string(current.ChannelID)
		if ch, ok := state.ChannelByID(a.store.State(), current.ChannelID); ok {
			name = ch.Name
		}
		body = "Remove #" + name + "? Its messages will be gone too."
	}

	parts := []string{
		lg.NewStyle().Bold(true).Foreground(a.theme.Primary).Render(title),
		"",
		body,
	}
	if a.modal.err != "" {
		parts = append(parts, "", styles.Error.Render(a.modal.err))
	}
	hint := "enter confirm · esc cancel"
	if a.modal.pending {
		hint = a.status.View() + " waiting for the server"
	}
	parts = append(parts, "", lg.NewStyle().Foreground(a.theme.Subtle).Render(hint))

	return lg.NewStyle().
		Border(lg.RoundedBorder()).
		BorderForeground(a.theme.Selected).
		Padding(1, 2).
		Render(lg.JoinVertical(lg.Left, parts...))
}
