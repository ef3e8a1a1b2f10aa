package channel

import (
	"github.com/Jan-Kur/ChatCLI/core"
	"github.com/Jan-Kur/ChatCLI/state"
	"github.com/charmbracelet/bubbles/viewport"
	lg "github.com/charmbracelet/lipgloss"
)

type chat struct {
	viewport      viewport.Model
	content       string
	width, height int
}

func initializeChat() chat {
	v := viewport.New(0, 0)
	v.MouseWheelEnabled = true

	return chat{viewport: v}
}

func (a *app) renderChat(s state.State) {
	messages := state.CurrentMessages(s)
	wasAtBottom := a.chat.viewport.AtBottom()

	lines := make([]string, 0, len(messages))
	for _, mes := range messages {
		lines = append(lines, a.formatMessage(mes))
	}
	if len(lines) == 0 {
		lines = append(lines, lg.NewStyle().Margin(0, 1).Faint(true).Render("No messages yet"))
	}

	a.chat.content = lg.JoinVertical(lg.Left, lines...)
	a.chat.viewport.SetContent(a.chat.content)
	if wasAtBottom {
		a.chat.viewport.GotoBottom()
	}
}

// formatMessage renders one line per message; bodies are shown through
// the profanity filter.
func (a *app) formatMessage(mes core.Message) string {
	nameColor := a.theme.Primary
	if mes.Username == a.username {
		nameColor = a.theme.Secondary
	}
	username := lg.NewStyle().Foreground(nameColor).Bold(true).Render(mes.Username + ":")
	body := lg.NewStyle().Foreground(a.theme.Text).Render(a.filter.Clean(mes.Body))

	style := lg.NewStyle().Margin(0, 1)
	if a.chat.width > 2 {
		style = style.Width(a.chat.width - 2)
	}
	return style.Render(username + " " + body)
}

func (a *app) chatTitle() string {
	ch, ok := state.CurrentChannel(a.store.State())
	if !ok {
		return ""
	}
	count := len(state.CurrentMessages(a.store.State()))
	title := lg.NewStyle().Bold(true).Foreground(a.theme.Text).Render("# " + ch.Name)
	return title + lg.NewStyle().Foreground(a.theme.Subtle).Render(" "+plural(count, "message"))
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return itoa(n) + " " + word + "s"
}
