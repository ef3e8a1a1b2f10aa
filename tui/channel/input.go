package channel

import (
	"strconv"
	"strings"

	"github.com/Jan-Kur/ChatCLI/core"
	"github.com/Jan-Kur/ChatCLI/state"
	"github.com/Jan-Kur/ChatCLI/tui/styles"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	lg "github.com/charmbracelet/lipgloss"
)

func initializeInput(theme styles.Theme) textarea.Model {
	t := textarea.New()
	t.Placeholder = "Write a message..."
	t.ShowLineNumbers = false
	t.Prompt = ""
	t.Cursor.SetMode(cursor.CursorBlink)
	t.Cursor.Style = lg.NewStyle().Foreground(theme.Text)
	t.FocusedStyle.CursorLine = lg.NewStyle()
	t.FocusedStyle.Text = lg.NewStyle().Foreground(theme.Text)
	t.BlurredStyle.Text = lg.NewStyle().Foreground(theme.Subtle)
	t.KeyMap.InsertNewline.SetKeys("alt+enter", "ctrl+j")

	return t
}

func (a *app) submitMessage() tea.Cmd {
	body := strings.TrimSpace(a.input.Value())
	if body == "" {
		return nil
	}
	ch, ok := state.CurrentChannel(a.store.State())
	if !ok {
		return a.showError("Pick a channel first")
	}

	a.input.Reset()
	return sendMessageCmd(a.api, core.Message{
		ChannelID: ch.ID,
		Username:  a.username,
		Body:      a.filter.Clean(body),
	})
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
