package channel

import (
	"context"
	"errors"

	chatapp "github.com/Jan-Kur/ChatCLI/app"
	"github.com/Jan-Kur/ChatCLI/tui/styles"
	tea "github.com/charmbracelet/bubbletea"
)

// Start opens the chat screen on c and blocks until the user quits. The
// named channel, if any, is opened first.
func Start(ctx context.Context, c *chatapp.Client, initialChannel string) error {
	if initialChannel != "" {
		if _, err := c.SelectChannel(initialChannel); err != nil {
			return err
		}
	}

	a := New(Options{
		Store:    c.Store,
		API:      c.Socket,
		Bridge:   c.Bridge,
		Filter:   c.Filter,
		Username: c.Session.Username,
		Theme:    styles.Get(c.Config.Theme),
		Reload:   c.Reload,
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	msgChan := make(chan tea.Msg)
	program := tea.NewProgram(a, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	go func() {
		if err := c.Socket.Run(ctx, msgChan); err != nil && !errors.Is(err, context.Canceled) {
			a.log.Error("socket stopped", "err", err)
		}
		close(msgChan)
	}()

	go func() {
		for msg := range msgChan {
			program.Send(msg)
		}
	}()

	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
