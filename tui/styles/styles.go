package styles

import (
	lg "github.com/charmbracelet/lipgloss"
)

var (
	Green = lg.Color("#18c39b")
	Pink  = lg.Color("#eb6f92")
	Red   = lg.Color("#c92323")
	Muted = lg.Color("#6e6a86")

	Faint = lg.NewStyle().Faint(true)
	Bold  = lg.NewStyle().Bold(true)
	Error = lg.NewStyle().Foreground(Red)
)
