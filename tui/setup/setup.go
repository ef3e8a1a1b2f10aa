// Package setup is the first-run wizard: server address and theme.
package setup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/Jan-Kur/ChatCLI/api"
	"github.com/Jan-Kur/ChatCLI/core"
	"github.com/Jan-Kur/ChatCLI/tui/styles"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	lg "github.com/charmbracelet/lipgloss"
)

type step int

const (
	stepAddress step = iota
	stepChecking
	stepTheme
	stepDone
)

const (
	checkTimeout = 5 * time.Second
	doneDelay    = 4 * time.Second
)

type (
	serverCheckedMsg struct {
		server string
		err    error
	}
	doneMsg struct{}
)

type palette struct {
	header, hint, input, item, selected, success, err lg.Style
}

func newPalette(theme styles.Theme) palette {
	return palette{
		header:   lg.NewStyle().Bold(true).Foreground(theme.Primary),
		hint:     lg.NewStyle().Foreground(theme.Muted),
		input:    lg.NewStyle().MarginLeft(2).Foreground(theme.Primary),
		item:     lg.NewStyle().PaddingLeft(4).Foreground(theme.Text),
		selected: lg.NewStyle().PaddingLeft(2).Foreground(theme.Primary),
		success:  lg.NewStyle().MarginLeft(2).Foreground(styles.Green).Bold(true),
		err:      lg.NewStyle().PaddingLeft(2).Foreground(styles.Pink),
	}
}

type keyMap struct {
	Quit    key.Binding
	Confirm key.Binding
	Back    key.Binding
}

var keys = keyMap{
	Quit:    key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	Back:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "back")),
}

type model struct {
	step    step
	input   textinput.Model
	themes  list.Model
	spinner spinner.Model
	p       palette
	err     string

	cfg   core.Config
	save  func(core.Config) error
	check func(ctx context.Context, server string) error
}

// Start builds the setup wizard around cfg. save persists the result.
func Start(cfg core.Config, save func(core.Config) error) model {
	theme := styles.Get(cfg.Theme)
	p := newPalette(theme)

	in := textinput.New()
	in.Focus()
	in.Width = 100
	in.Placeholder = "http://localhost:5001"
	in.SetValue(cfg.Server)
	in.Cursor.SetMode(cursor.CursorBlink)
	in.TextStyle = lg.NewStyle().Foreground(theme.Text)
	in.Cursor.Style = in.TextStyle

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lg.NewStyle().Foreground(theme.Secondary)

	if save == nil {
		save = api.SaveConfig
	}

	return model{
		step:    stepAddress,
		input:   in,
		themes:  newThemeList(cfg.Theme, p),
		spinner: sp,
		p:       p,
		cfg:     cfg,
		save:    save,
		check:   checkServer,
	}
}

func newThemeList(current string, p palette) list.Model {
	names := styles.Names()
	items := make([]list.Item, len(names))
	selected := 0
	for i, name := range names {
		items[i] = themeItem(name)
		if name == current {
			selected = i
		}
	}

	l := list.New(items, themeDelegate{p}, 0, 0)
	l.Select(selected)
	l.Title = p.header.Render("Choose a theme") + p.hint.Render(" (config key: theme)")
	l.Styles.Title = lg.NewStyle().MarginLeft(2)
	l.Help.Styles.ShortKey = p.hint
	l.Help.Styles.ShortDesc = p.hint
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(false)
	l.KeyMap = list.KeyMap{
		Quit:       keys.Quit,
		CursorUp:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
		CursorDown: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
	}
	return l
}

// checkServer asks the server for its data without a token. A chat
// server answers 401, anything else at that path is not one.
func checkServer(ctx context.Context, server string) error {
	_, err := api.NewRestClient(server, core.Session{}).FetchData(ctx)
	if err == nil || errors.Is(err, api.ErrUnauthorized) {
		return nil
	}
	return err
}

func (m model) checkCmd(server string) tea.Cmd {
	check := m.check
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
		defer cancel()
		return serverCheckedMsg{server: server, err: check(ctx, server)}
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.input.Width = msg.Width
		m.themes.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if m.step != stepChecking {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case serverCheckedMsg:
		if m.step != stepChecking {
			return m, nil
		}
		if msg.err != nil {
			m.step = stepAddress
			m.err = fmt.Sprintf("Couldn't reach a chat server at %s: %v", msg.server, msg.err)
			return m, textinput.Blink
		}
		m.cfg.Server = msg.server
		m.step = stepTheme
		m.err = ""
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}
		switch m.step {
		case stepAddress:
			return m.updateAddress(msg)
		case stepTheme:
			return m.updateTheme(msg)
		case stepDone:
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) updateAddress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, keys.Confirm) {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	server, err := normalizeServer(m.input.Value())
	if err != nil {
		m.err = err.Error()
		return m, nil
	}
	m.step = stepChecking
	m.err = ""
	return m, tea.Batch(m.spinner.Tick, m.checkCmd(server))
}

func (m model) updateTheme(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		m.step = stepAddress
		return m, textinput.Blink
	case key.Matches(msg, keys.Confirm):
		if name, ok := m.themes.SelectedItem().(themeItem); ok {
			m.cfg.Theme = string(name)
		}
		if err := m.save(m.cfg); err != nil {
			m.err = "Couldn't save the config: " + err.Error()
			return m, nil
		}
		m.step = stepDone
		m.err = ""
		return m, tea.Tick(doneDelay, func(time.Time) tea.Msg { return doneMsg{} })
	}
	var cmd tea.Cmd
	m.themes, cmd = m.themes.Update(msg)
	return m, cmd
}

func (m model) View() string {
	var b strings.Builder

	switch m.step {
	case stepAddress:
		b.WriteString(m.p.header.Render("  Chat server address"))
		b.WriteString("\n\n")
		b.WriteString(m.p.input.Render(m.input.View()))
	case stepChecking:
		fmt.Fprintf(&b, "  %s Checking %s", m.spinner.View(), m.input.Value())
	case stepTheme:
		b.WriteString(m.themes.View())
	case stepDone:
		b.WriteString(m.p.success.Render("Saved. Run chatcli login next."))
		b.WriteString("\n\n")
		b.WriteString(m.p.hint.Render("  Settings live in " + configPath()))
	}

	if m.err != "" {
		b.WriteString("\n\n")
		b.WriteString(m.p.err.Render(m.err))
	}
	return b.String()
}

func configPath() string {
	dir, err := api.ConfigDir()
	if err != nil {
		return "the config file"
	}
	return dir
}

type themeItem string

func (themeItem) FilterValue() string { return "" }

type themeDelegate struct{ p palette }

func (themeDelegate) Height() int                         { return 1 }
func (themeDelegate) Spacing() int                        { return 1 }
func (themeDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d themeDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	name, ok := item.(themeItem)
	if !ok {
		return
	}
	line := string(name) + " " + swatch(styles.Get(string(name)))
	if index == m.Index() {
		fmt.Fprint(w, d.p.selected.Render("> "+line))
		return
	}
	fmt.Fprint(w, d.p.item.Render(line))
}

func swatch(t styles.Theme) string {
	colors := []lg.Color{t.Background, t.Text, t.Primary, t.Secondary, t.Border, t.Selected, t.Subtle, t.Muted}
	cells := make([]string, len(colors))
	for i, c := range colors {
		cells[i] = lg.NewStyle().Background(c).Render("  ")
	}
	return strings.Join(cells, " ")
}

// normalizeServer accepts a bare host ("chat.example.com") and fills in
// the scheme.
func normalizeServer(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("Please enter the server address")
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", errors.New("That doesn't look like a server address")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("Unsupported scheme %q, use http or https", u.Scheme)
	}
	return strings.TrimRight(u.String(), "/"), nil
}
