package channel

import (
	"time"

	"github.com/Jan-Kur/ChatCLI/core"
	"github.com/Jan-Kur/ChatCLI/tui/styles"
	tea "github.com/charmbracelet/bubbletea"
	lg "github.com/charmbracelet/lipgloss"
)

const errorPopupDuration = 4 * time.Second

type errorPopup struct {
	isVisible bool
	text      string
	theme     styles.Theme
}

func (a *app) showError(text string) tea.Cmd {
	a.errorPopup.isVisible = true
	a.errorPopup.text = text
	return func() tea.Msg {
		return core.WaitMsg{Msg: core.CloseErrorPopupMsg{}, Duration: errorPopupDuration}
	}
}

func (p errorPopup) View() string {
	return lg.NewStyle().
		Border(lg.RoundedBorder()).
		BorderForeground(styles.Red).
		Foreground(p.theme.Text).
		Padding(0, 1).
		Render(p.text)
}
