package channel

import (
	"github.com/Jan-Kur/ChatCLI/core"
	"github.com/Jan-Kur/ChatCLI/tui/styles"
	lg "github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type sidebar struct {
	channels     []core.Channel
	current      core.ID
	selectedItem int
	scrollOffset int
	width        int
	height       int
	theme        styles.Theme
}

// setChannels replaces the list. The cursor follows the selected channel
// when it still exists and the current channel otherwise.
func (s *sidebar) setChannels(channels []core.Channel, current core.ID) {
	var selectedID core.ID
	if s.selectedItem < len(s.channels) {
		selectedID = s.channels[s.selectedItem].ID
	}
	currentChanged := s.current != current

	s.channels = channels
	s.current = current

	target := selectedID
	if currentChanged || target == "" {
		target = current
	}
	s.selectedItem = 0
	for i, ch := range channels {
		if ch.ID == target {
			s.selectedItem = i
			break
		}
	}
	s.clampScroll()
}

func (s *sidebar) selected() (core.Channel, bool) {
	if s.selectedItem < 0 || s.selectedItem >= len(s.channels) {
		return core.Channel{}, false
	}
	return s.channels[s.selectedItem], true
}

func (s *sidebar) move(delta int) {
	n := len(s.channels)
	if n == 0 {
		return
	}
	s.selectedItem = (s.selectedItem + delta + n) % n
	s.clampScroll()
}

func (s *sidebar) setSize(w, h int) {
	s.width = w
	s.height = h
	s.clampScroll()
}

func (s *sidebar) clampScroll() {
	if s.height <= 0 {
		s.scrollOffset = 0
		return
	}
	if s.selectedItem < s.scrollOffset {
		s.scrollOffset = s.selectedItem
	}
	if s.selectedItem >= s.scrollOffset+s.height {
		s.scrollOffset = s.selectedItem - s.height + 1
	}
	s.scrollOffset = max(0, min(s.scrollOffset, len(s.channels)-s.height))
}

func (s sidebar) View() string {
	var items []string

	end := len(s.channels)
	if s.height > 0 {
		end = min(s.scrollOffset+s.height, end)
	}

	for i := s.scrollOffset; i < end; i++ {
		ch := s.channels[i]
		style := lg.NewStyle().MarginLeft(1).Foreground(s.theme.Text)

		if i == s.selectedItem {
			style = style.Border(lg.ThickBorder(), false, false, false, true).BorderForeground(s.theme.Selected)
		}
		if ch.ID == s.current {
			style = style.Foreground(s.theme.Primary).Bold(true)
		}

		title := "# " + ch.Name
		if ch.Removable {
			title += " ·"
		}
		if s.width > 3 && runewidth.StringWidth(title) > s.width-1 {
			title = runewidth.Truncate(title, s.width-3, "") + "…"
		}
		items = append(items, style.Render(title))
	}

	if len(items) == 0 {
		items = append(items, lg.NewStyle().MarginLeft(1).Faint(true).Render("no channels"))
	}

	return lg.NewStyle().Width(max(s.width, 0)).Height(max(s.height, 0)).
		Render(lg.JoinVertical(lg.Left, items...))
}
