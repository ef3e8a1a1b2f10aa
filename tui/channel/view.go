package channel

import (
	"github.com/Jan-Kur/ChatCLI/state"
	"github.com/Jan-Kur/ChatCLI/tui/styles"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	lg "github.com/charmbracelet/lipgloss"
)

var paneStyle = lg.NewStyle().Border(lg.RoundedBorder(), true)

func (a *app) View() string {
	if current := state.CurrentModal(a.store.State()); current.IsOpen() {
		return lg.Place(a.width+borderPadding, a.height+borderPadding+statusHeight,
			lg.Center, lg.Center, a.modalView(current))
	}

	sidebar := a.pane(FocusSidebar).Render(a.sidebar.View())
	chatView := lg.JoinVertical(lg.Left, a.chatTitle(), a.chat.viewport.View())
	chat := a.pane(FocusChat).Render(chatView)
	input := a.pane(FocusInput).Render(a.input.View())

	body := lg.JoinHorizontal(lg.Top, sidebar, lg.JoinVertical(lg.Left, chat, input))
	if a.errorPopup.isVisible {
		body = lg.JoinVertical(lg.Left, body, a.errorPopup.View())
	}
	return lg.JoinVertical(lg.Left, body, a.statusLine())
}

func (a *app) pane(f FocusState) lg.Style {
	style := paneStyle.BorderForeground(a.theme.Border)
	if a.focused == f {
		style = style.BorderForeground(styles.Pink)
	}
	return style
}

func (a *app) statusLine() string {
	var conn string
	switch {
	case a.connected:
		conn = lg.NewStyle().Foreground(styles.Green).Render("●") + " " + a.username
	case a.connErr != nil:
		conn = styles.Error.Render("● disconnected")
	default:
		conn = a.status.View() + " connecting"
	}

	var bindings []key.Binding
	if a.focused == FocusSidebar {
		bindings = a.keys.sidebarHelp()
	} else {
		bindings = a.keys.inputHelp()
	}
	h := help.New()
	h.Styles.ShortKey = lg.NewStyle().Foreground(a.theme.Subtle)
	h.Styles.ShortDesc = lg.NewStyle().Foreground(a.theme.Muted)

	return conn + "  " + h.ShortHelpView(bindings)
}
