// Package login is the username and password form used by the login and
// signup commands.
package login

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Jan-Kur/ChatCLI/api"
	"github.com/Jan-Kur/ChatCLI/core"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 20
	minPasswordLen = 6

	authTimeout = 10 * time.Second
)

// Authenticator is the part of api.RestClient the form needs.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (core.Session, error)
	Signup(ctx context.Context, username, password string) (core.Session, error)
}

type endMsg struct{}

type authResultMsg struct {
	session core.Session
	err     error
}

type field int

const (
	usernameField field = iota
	passwordField
)

type model struct {
	state        string
	signup       bool
	username     textinput.Model
	password     textinput.Model
	focused      field
	spinner      spinner.Model
	errorMessage string
	client       Authenticator
	save         func(core.Session) error
	session      core.Session
}

func InitialModel(client Authenticator, signup bool, save func(core.Session) error) model {
	u := textinput.New()
	u.Placeholder = "username"
	u.CharLimit = 64
	u.Width = 40
	u.Focus()

	p := textinput.New()
	p.Placeholder = "password"
	p.CharLimit = 128
	p.Width = 40
	p.EchoMode = textinput.EchoPassword
	p.EchoCharacter = '•'

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	if save == nil {
		save = api.SaveSession
	}

	return model{
		state:    "input",
		signup:   signup,
		username: u,
		password: p,
		spinner:  sp,
		client:   client,
		save:     save,
	}
}

// Session is the session obtained by the form, if any.
func (m model) Session() core.Session {
	return m.session
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		}
	case endMsg:
		return m, tea.Quit
	}

	switch m.state {
	case "input":
		return m.handleInput(msg)
	case "waiting":
		return m.handleWaiting(msg)
	case "end":
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) handleInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.toggleField()
			return m, textinput.Blink
		case "enter":
			if m.focused == usernameField {
				m.toggleField()
				return m, textinput.Blink
			}
			if err := m.validate(); err != nil {
				m.errorMessage = err.Error()
				return m, nil
			}
			m.state = "waiting"
			m.errorMessage = ""
			return m, tea.Batch(m.spinner.Tick, m.submit())
		}
	}

	var cmd tea.Cmd
	if m.focused == usernameField {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m model) handleWaiting(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		if msg.err != nil {
			m.state = "input"
			m.errorMessage = describeAuthError(msg.err)
			return m, nil
		}
		if err := m.save(msg.session); err != nil {
			m.state = "input"
			m.errorMessage = "Couldn't save the session: " + err.Error()
			return m, nil
		}
		m.session = msg.session
		m.state = "end"
		return m, tea.Tick(2*time.Second, func(time.Time) tea.Msg {
			return endMsg{}
		})
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) toggleField() {
	if m.focused == usernameField {
		m.focused = passwordField
		m.username.Blur()
		m.password.Focus()
	} else {
		m.focused = usernameField
		m.password.Blur()
		m.username.Focus()
	}
}

func (m model) validate() error {
	username := strings.TrimSpace(m.username.Value())
	password := m.password.Value()
	if username == "" || password == "" {
		return errors.New("Username and password are required")
	}
	if !m.signup {
		return nil
	}
	if n := utf8.RuneCountInString(username); n < minUsernameLen || n > maxUsernameLen {
		return fmt.Errorf("Username must be %d to %d characters long", minUsernameLen, maxUsernameLen)
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return fmt.Errorf("Password must be at least %d characters long", minPasswordLen)
	}
	return nil
}

func (m model) submit() tea.Cmd {
	client := m.client
	signup := m.signup
	username := strings.TrimSpace(m.username.Value())
	password := m.password.Value()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
		defer cancel()

		var (
			session core.Session
			err     error
		)
		if signup {
			session, err = client.Signup(ctx, username, password)
		} else {
			session, err = client.Login(ctx, username, password)
		}
		if err == nil && session.Username == "" {
			session.Username = username
		}
		return authResultMsg{session: session, err: err}
	}
}

func describeAuthError(err error) string {
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return "Wrong username or password"
	case errors.Is(err, api.ErrUserExists):
		return "This username is already taken"
	default:
		return "Couldn't reach the server: " + err.Error()
	}
}

func (m model) View() string {
	faint := lipgloss.NewStyle().Faint(true)
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color("#18c39bff")).Bold(true)

	title := "Log in"
	if m.signup {
		title = "Sign up"
	}

	s := "\n"
	switch m.state {
	case "input", "waiting":
		s += accent.Render(title) + "\n\n"
		s += m.username.View() + "\n"
		s += m.password.View() + "\n\n"
		if m.state == "waiting" {
			s += fmt.Sprint(m.spinner.View(), " ", "Talking to the server\n\n")
		}
	case "end":
		s += "✅ SUCCESS ✅\n\nYou are logged in as " + accent.Render(m.session.Username) + "\n\n"
	}
	if m.errorMessage != "" {
		s += lipgloss.NewStyle().Foreground(lipgloss.Color("#c92323")).Render(m.errorMessage) + "\n\n"
	}
	s += faint.Render("Press ") + lipgloss.NewStyle().Bold(true).Render("esc") + faint.Render(" to quit")

	return s
}
