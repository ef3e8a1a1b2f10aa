package channel

import (
	"context"
	"log/slog"
	"time"

	"github.com/Jan-Kur/ChatCLI/api"
	"github.com/Jan-Kur/ChatCLI/core"
	"github.com/Jan-Kur/ChatCLI/profanity"
	"github.com/Jan-Kur/ChatCLI/state"
	"github.com/Jan-Kur/ChatCLI/tui/styles"
	"github.com/Jan-Kur/ChatCLI/utils"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

type FocusState int

const (
	FocusSidebar FocusState = iota
	FocusChat
	FocusInput
)

const (
	sidebarWidthRatio = 0.2
	inputHeightRatio  = 0.15
	borderPadding     = 4
	statusHeight      = 1
)

// Options is everything the chat screen needs from the application root.
type Options struct {
	Store    *state.Store
	API      api.ChatAPI
	Bridge   *api.Bridge
	Filter   *profanity.Filter
	Username string
	Theme    styles.Theme
	// Reload fetches a fresh snapshot after the socket reconnects.
	Reload func(context.Context) (core.Snapshot, error)
}

type model struct {
	sidebar       sidebar
	chat          chat
	input         textarea.Model
	modal         modal
	errorPopup    errorPopup
	status        spinner.Model
	focused       FocusState
	width, height int
	sidebarWidth  int
	inputHeight   int
}

type app struct {
	model
	store     *state.Store
	api       api.ChatAPI
	bridge    *api.Bridge
	filter    *profanity.Filter
	username  string
	theme     styles.Theme
	keys      keyMap
	reload    func(context.Context) (core.Snapshot, error)
	connected bool
	connErr   error
	log       *slog.Logger

	// Name of a channel created without an id in the ack. It is selected
	// when the server pushes it.
	pendingSelect string
}

func New(opts Options) *app {
	bridge := opts.Bridge
	if bridge == nil {
		bridge = api.NewBridge(opts.Store, nil)
	}

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = sp.Style.Foreground(opts.Theme.Secondary)

	a := &app{
		model: model{
			chat:       initializeChat(),
			input:      initializeInput(opts.Theme),
			modal:      initializeModal(opts.Theme),
			errorPopup: errorPopup{theme: opts.Theme},
			status:     sp,
			focused:    FocusInput,
		},
		store:    opts.Store,
		api:      opts.API,
		bridge:   bridge,
		filter:   opts.Filter,
		username: opts.Username,
		theme:    opts.Theme,
		reload:   opts.Reload,
		keys:     defaultKeyMap(),
		log:      utils.Logger("tui"),
	}
	a.sidebar.theme = opts.Theme
	a.input.Focus()
	a.refresh()
	return a
}

func (a *app) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, a.status.Tick)
}

func (a *app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.status, cmd = a.status.Update(msg)
		return a, cmd

	case core.HandleEventMsg:
		a.bridge.Handle(msg.Event)
		if ev, ok := msg.Event.(*api.NewChannelEvent); ok && a.pendingSelect != "" && ev.Name == a.pendingSelect {
			a.store.Dispatch(state.SelectChannel{ID: ev.ID})
			a.pendingSelect = ""
		}
		a.refresh()
		return a, nil

	case core.SnapshotLoadedMsg:
		if msg.Err != nil {
			return a, a.showError("Couldn't load channels: " + msg.Err.Error())
		}
		a.store.Dispatch(state.Hydrate{Snapshot: msg.Snapshot})
		a.refresh()
		return a, nil

	case core.ConnectionStateMsg:
		reconnected := msg.Connected && a.connErr != nil
		a.connected = msg.Connected
		a.connErr = msg.Err
		if !msg.Connected && msg.Err != nil {
			a.log.Warn("disconnected", "err", msg.Err)
		}
		if reconnected {
			return a, a.reloadCmd()
		}
		return a, nil

	case core.MessageSentMsg:
		if msg.Message.ID != "" {
			a.store.Dispatch(state.AddMessage{Message: msg.Message})
			a.refresh()
		}
		return a, nil

	case core.ChannelCreatedMsg:
		if msg.Channel.ID == "" {
			if ch, ok := state.ChannelByName(a.store.State(), msg.Channel.Name); ok {
				a.store.Dispatch(state.SelectChannel{ID: ch.ID})
			} else {
				a.pendingSelect = msg.Channel.Name
			}
		} else {
			a.store.Dispatch(state.AddChannel{Channel: msg.Channel})
			a.store.Dispatch(state.SelectChannel{ID: msg.Channel.ID})
		}
		a.closeModal()
		a.refresh()
		return a, nil

	case core.ChannelRenamedMsg:
		a.store.Dispatch(state.RenameChannel{ID: msg.ID, Name: msg.Name})
		a.closeModal()
		a.refresh()
		return a, nil

	case core.ChannelRemovedMsg:
		a.store.Dispatch(state.RemoveChannel{ID: msg.ID})
		a.closeModal()
		a.refresh()
		return a, nil

	case core.RequestFailedMsg:
		text := describeRequestError(msg.Err)
		a.log.Warn("request failed", "action", msg.Action, "err", msg.Err)
		if state.CurrentModal(a.store.State()).IsOpen() {
			a.modal.pending = false
			a.modal.err = text
			return a, nil
		}
		return a, a.showError(text)

	case core.WaitMsg:
		inner := msg.Msg
		return a, tea.Tick(msg.Duration, func(time.Time) tea.Msg { return inner })

	case core.CloseErrorPopupMsg:
		a.errorPopup.isVisible = false
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) {
			return a, tea.Quit
		}
		if state.CurrentModal(a.store.State()).IsOpen() {
			return a, a.updateModal(msg)
		}
		if a.errorPopup.isVisible && key.Matches(msg, a.keys.Back) {
			a.errorPopup.isVisible = false
			return a, nil
		}
		switch {
		case key.Matches(msg, a.keys.Back):
			return a, tea.Quit
		case key.Matches(msg, a.keys.NextFocus):
			a.setFocus((a.focused + 1) % 3)
			return a, nil
		case key.Matches(msg, a.keys.PrevFocus):
			a.setFocus((a.focused + 2) % 3)
			return a, nil
		}
	}

	var focusCmd tea.Cmd
	switch a.focused {
	case FocusSidebar:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			focusCmd = a.sidebarKeybinds(keyMsg)
		}
	case FocusChat:
		a.chat.viewport, focusCmd = a.chat.viewport.Update(msg)
	case FocusInput:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, a.keys.Send) {
			focusCmd = a.submitMessage()
			break
		}
		a.input, focusCmd = a.input.Update(msg)
	}
	cmds = append(cmds, focusCmd)

	return a, tea.Batch(cmds...)
}

func (a *app) sidebarKeybinds(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Up):
		a.sidebar.move(-1)
	case key.Matches(msg, a.keys.Down):
		a.sidebar.move(1)
	case key.Matches(msg, a.keys.Select):
		if ch, ok := a.sidebar.selected(); ok {
			a.store.Dispatch(state.SelectChannel{ID: ch.ID})
			a.refresh()
		}
	case key.Matches(msg, a.keys.AddChannel):
		a.openModal(state.ModalAddChannel, "")
		return a.modal.focus()
	case key.Matches(msg, a.keys.RenameChannel):
		if ch, ok := a.sidebar.selected(); ok && ch.Removable {
			a.openModal(state.ModalRenameChannel, ch.ID)
			return a.modal.focus()
		}
	case key.Matches(msg, a.keys.RemoveChannel):
		if ch, ok := a.sidebar.selected(); ok && ch.Removable {
			a.openModal(state.ModalRemoveChannel, ch.ID)
		}
	}
	return nil
}

func (a *app) setFocus(f FocusState) {
	a.focused = f
	if f == FocusInput {
		a.input.Focus()
	} else {
		a.input.Blur()
	}
}

// refresh rebuilds the sidebar and chat from the store.
func (a *app) refresh() {
	s := a.store.State()
	a.sidebar.setChannels(state.Channels(s), s.Channels.CurrentChannelID)
	a.renderChat(s)
}

func (a *app) resize(width, height int) {
	a.width = width - borderPadding
	a.height = height - borderPadding - statusHeight

	a.sidebarWidth = int(sidebarWidthRatio * float64(a.width))
	a.chat.width = a.width - a.sidebarWidth
	a.inputHeight = int(inputHeightRatio * float64(a.height))
	a.chat.height = a.height - a.inputHeight

	a.sidebar.setSize(a.sidebarWidth, a.height)

	a.chat.viewport.Width = a.chat.width
	a.chat.viewport.Height = a.chat.height

	a.input.SetWidth(a.chat.width)
	a.input.SetHeight(a.inputHeight)

	a.modal.input.Width = max(a.width/3, 20)

	a.renderChat(a.store.State())
}
