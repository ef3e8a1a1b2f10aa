package setup

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Jan-Kur/ChatCLI/core"
	"github.com/Jan-Kur/ChatCLI/tui/styles"
	tea "github.com/charmbracelet/bubbletea"
	lg "github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeServer(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "http://localhost:5001", want: "http://localhost:5001"},
		{in: " chat.example.com/ ", want: "http://chat.example.com"},
		{in: "https://chat.example.com/base/", want: "https://chat.example.com/base"},
		{in: "", wantErr: true},
		{in: "ftp://chat.example.com", wantErr: true},
		{in: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := normalizeServer(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWizardSavesConfig(t *testing.T) {
	var saved []core.Config
	cfg := core.Config{Server: "http://localhost:5001", Theme: "Dracula"}
	w := Start(cfg, func(c core.Config) error {
		saved = append(saved, c)
		return nil
	})
	var checked []string
	w.check = func(_ context.Context, server string) error {
		checked = append(checked, server)
		return nil
	}
	m := tea.Model(w)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	// replace the prefilled address
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlU})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("chat.example.com")})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, stepChecking, m.(model).step)
	assert.NotNil(t, cmd)

	msg := m.(model).checkCmd("http://chat.example.com")()
	assert.Equal(t, []string{"http://chat.example.com"}, checked)
	m, _ = m.Update(msg)
	require.Equal(t, stepTheme, m.(model).step)

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(t, cmd)
	assert.Equal(t, stepDone, m.(model).step)

	require.Len(t, saved, 1)
	assert.Equal(t, "http://chat.example.com", saved[0].Server)
	assert.Equal(t, "Dracula", saved[0].Theme)
}

func TestWizardRejectsBadAddress(t *testing.T) {
	m := tea.Model(Start(core.Config{}, func(core.Config) error {
		t.Fatal("must not save")
		return nil
	}))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ftp://x")})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, stepAddress, m.(model).step)
	assert.NotEmpty(t, m.(model).err)
}

func TestWizardUnreachableServer(t *testing.T) {
	m := tea.Model(Start(core.Config{Server: "http://localhost:5001"}, func(core.Config) error {
		t.Fatal("must not save")
		return nil
	}))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, stepChecking, m.(model).step)

	m, _ = m.Update(serverCheckedMsg{server: "http://localhost:5001", err: errors.New("connection refused")})
	assert.Equal(t, stepAddress, m.(model).step)
	assert.Contains(t, m.(model).err, "connection refused")
}

func TestWizardBackToAddress(t *testing.T) {
	m := tea.Model(Start(core.Config{}, nil))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("chat.example.com")})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(serverCheckedMsg{server: "http://chat.example.com"})
	require.Equal(t, stepTheme, m.(model).step)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, stepAddress, m.(model).step)
	assert.Equal(t, "chat.example.com", m.(model).input.Value())
}

func TestCheckServer(t *testing.T) {
	chat := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/data" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer chat.Close()
	assert.NoError(t, checkServer(context.Background(), chat.URL))

	other := httptest.NewServer(http.NotFoundHandler())
	defer other.Close()
	assert.Error(t, checkServer(context.Background(), other.URL))
}

func TestSwatch(t *testing.T) {
	// eight two-cell blocks separated by spaces
	assert.Equal(t, 8*2+7, lg.Width(swatch(styles.Get(styles.DefaultTheme))))
}
