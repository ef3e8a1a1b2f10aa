// Package app assembles a running client from the config and the saved
// session: REST client, store, socket, profanity filter and archive.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Jan-Kur/ChatCLI/api"
	"github.com/Jan-Kur/ChatCLI/core"
	"github.com/Jan-Kur/ChatCLI/history"
	"github.com/Jan-Kur/ChatCLI/profanity"
	"github.com/Jan-Kur/ChatCLI/state"
	"github.com/Jan-Kur/ChatCLI/utils"
	tea "github.com/charmbracelet/bubbletea"
)

type configKey struct{}

func WithConfig(ctx context.Context, cfg core.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// ConfigFrom returns the config stored by WithConfig, or the defaults.
func ConfigFrom(ctx context.Context) core.Config {
	if cfg, ok := ctx.Value(configKey{}).(core.Config); ok {
		return cfg
	}
	return api.DefaultConfig()
}

type Client struct {
	Config  core.Config
	Session core.Session
	Rest    *api.RestClient
	Store   *state.Store
	Filter  *profanity.Filter
	Socket  *api.Socket
	Bridge  *api.Bridge
	Archive *history.Archive

	log *slog.Logger
}

// Open logs in with the saved session and loads the initial snapshot.
// The socket is created but not connected.
func Open(ctx context.Context, cfg core.Config) (*Client, error) {
	session, err := api.LoadSession()
	if err != nil {
		return nil, err
	}

	filter, err := NewFilter(cfg.Profanity)
	if err != nil {
		return nil, err
	}

	rest := api.NewRestClient(cfg.Server, session)
	snapshot, err := rest.FetchData(ctx)
	if err != nil {
		return nil, err
	}

	c := &Client{
		Config:  cfg,
		Session: session,
		Rest:    rest,
		Store:   state.NewStore(state.FromSnapshot(snapshot)),
		Filter:  filter,
		log:     utils.Logger("app"),
	}

	var recorder api.Recorder
	if cfg.History.Enabled {
		archive, err := history.Open(cfg.History.Path)
		if err != nil {
			c.log.Warn("history disabled", "err", err)
		} else {
			c.Archive = archive
			recorder = archive
			c.archiveSnapshot(ctx, snapshot)
		}
	}
	c.Bridge = api.NewBridge(c.Store, recorder)

	c.Socket = api.NewSocket(api.SocketOptions{
		Server:            cfg.Server,
		Token:             session.Token,
		Rate:              cfg.Send.Rate,
		Burst:             cfg.Send.Burst,
		ReconnectAttempts: cfg.Reconnect.Attempts,
		ReconnectDelay:    cfg.Reconnect.Delay,
	})

	return c, nil
}

func (c *Client) archiveSnapshot(ctx context.Context, snapshot core.Snapshot) {
	names := make(map[core.ID]string, len(snapshot.Channels))
	for _, ch := range snapshot.Channels {
		names[ch.ID] = ch.Name
	}
	for _, msg := range snapshot.Messages {
		if err := c.Archive.Record(ctx, msg, names[msg.ChannelID]); err != nil {
			c.log.Warn("archive snapshot", "err", err)
			return
		}
	}
}

// NewFilter builds the profanity filter described by cfg. A disabled
// filter is nil, which passes text through.
func NewFilter(cfg core.ProfanityConfig) (*profanity.Filter, error) {
	if cfg.Disabled {
		return nil, nil
	}
	filter, err := profanity.New(cfg.Languages...)
	if err != nil {
		return nil, err
	}
	filter.Add(cfg.ExtraWords...)
	return filter, nil
}

// Reload fetches a fresh snapshot, e.g. after a reconnect.
func (c *Client) Reload(ctx context.Context) (core.Snapshot, error) {
	return c.Rest.FetchData(ctx)
}

// SelectChannel makes the named channel current.
func (c *Client) SelectChannel(name string) (core.Channel, error) {
	ch, ok := state.ChannelByName(c.Store.State(), name)
	if !ok {
		return core.Channel{}, fmt.Errorf("no channel named %q", name)
	}
	c.Store.Dispatch(state.SelectChannel{ID: ch.ID})
	return ch, nil
}

// Connect runs the socket in the background and returns once it is
// connected. Every message the socket produces afterwards is passed to
// handle, one at a time. The returned channel yields Run's result.
func (c *Client) Connect(ctx context.Context, handle func(tea.Msg)) (<-chan error, error) {
	msgs := make(chan tea.Msg)
	done := make(chan error, 1)

	go func() {
		done <- c.Socket.Run(ctx, msgs)
		close(msgs)
	}()

	select {
	case msg, ok := <-msgs:
		if !ok {
			return nil, <-done
		}
		if st, isState := msg.(core.ConnectionStateMsg); isState && !st.Connected {
			if st.Err == nil {
				st.Err = api.ErrNotConnected
			}
			return nil, st.Err
		}
		handle(msg)
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	go func() {
		for msg := range msgs {
			handle(msg)
		}
	}()
	return done, nil
}

// HandleHeadless applies socket messages straight to the store.
func (c *Client) HandleHeadless(msg tea.Msg) {
	switch msg := msg.(type) {
	case core.HandleEventMsg:
		c.Bridge.Handle(msg.Event)
	case core.ConnectionStateMsg:
		if !msg.Connected {
			c.log.Warn("connection lost", "err", msg.Err)
		}
	}
}

func (c *Client) Close() error {
	var errs []error
	if c.Socket != nil {
		errs = append(errs, c.Socket.Close())
	}
	if c.Archive != nil {
		errs = append(errs, c.Archive.Close())
	}
	return errors.Join(errs...)
}

// WithConnection opens a client, connects its socket and runs fn. Pushes
// received meanwhile are applied to the store.
func WithConnection(ctx context.Context, cfg core.Config, fn func(context.Context, *Client) error) error {
	ctx, cancel := context.WithCancel(ctx)

	c, err := Open(ctx, cfg)
	if err != nil {
		cancel()
		return err
	}
	defer func() {
		cancel()
		c.Close()
	}()

	if _, err := c.Connect(ctx, c.HandleHeadless); err != nil {
		return err
	}
	return fn(ctx, c)
}
