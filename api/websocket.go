package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Jan-Kur/ChatCLI/core"
	"github.com/Jan-Kur/ChatCLI/utils"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

const (
	writeWait = 10 * time.Second

	handshakeWait = 10 * time.Second

	// Used until the server tells us its own ping settings.
	defaultPongWait = 45 * time.Second
)

var errServerDisconnect = errors.New("server closed the connection")

type SocketOptions struct {
	Server            string
	Token             string
	Rate              float64
	Burst             int
	ReconnectAttempts int
	ReconnectDelay    time.Duration
}

// Socket is a socket.io client over a single websocket.
type Socket struct {
	opts       SocketOptions
	log        *slog.Logger
	limiter    *rate.Limiter
	dialer     *websocket.Dialer
	ackTimeout time.Duration

	connMu   sync.RWMutex
	conn     *websocket.Conn
	pongWait time.Duration

	writeMu sync.Mutex

	ackMu   sync.Mutex
	nextAck int
	acks    map[int]AckFunc
}

func NewSocket(opts SocketOptions) *Socket {
	limit := rate.Inf
	if opts.Rate > 0 {
		limit = rate.Limit(opts.Rate)
	}
	burst := max(opts.Burst, 1)

	return &Socket{
		opts:       opts,
		log:        utils.Logger("socket"),
		limiter:    rate.NewLimiter(limit, burst),
		dialer:     websocket.DefaultDialer,
		ackTimeout: AckTimeout,
		acks:       make(map[int]AckFunc),
	}
}

func socketURL(server string) (string, error) {
	u, err := url.Parse(server)
	if err != nil {
		return "", fmt.Errorf("server url: %w", err)
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("server url: unsupported scheme %q", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/socket.io/"
	u.RawQuery = url.Values{"EIO": {"4"}, "transport": {"websocket"}}.Encode()
	return u.String(), nil
}

// Connect dials the server and completes the Engine.IO and socket.io
// handshakes.
func (s *Socket) Connect(ctx context.Context) error {
	target, err := socketURL(s.opts.Server)
	if err != nil {
		return err
	}

	headers := http.Header{}
	if s.opts.Token != "" {
		headers.Add("Authorization", "Bearer "+s.opts.Token)
	}

	conn, _, err := s.dialer.DialContext(ctx, target, headers)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", target, err)
	}

	pongWait, err := s.handshake(conn)
	if err != nil {
		conn.Close()
		return err
	}

	s.connMu.Lock()
	old := s.conn
	s.conn = conn
	s.pongWait = pongWait
	s.connMu.Unlock()
	if old != nil {
		old.Close()
	}

	s.log.Info("connected", "server", s.opts.Server)
	return nil
}

func (s *Socket) handshake(conn *websocket.Conn) (time.Duration, error) {
	conn.SetReadDeadline(time.Now().Add(handshakeWait))

	frame, err := readFrame(conn)
	if err != nil {
		return 0, fmt.Errorf("handshake: %w", err)
	}
	if frame == "" || frame[0] != engineOpen {
		return 0, fmt.Errorf("handshake: unexpected frame %q", frame)
	}
	var hs handshake
	if err := json.Unmarshal([]byte(frame[1:]), &hs); err != nil {
		return 0, fmt.Errorf("handshake: %w", err)
	}
	pongWait := defaultPongWait
	if hs.PingInterval > 0 {
		pongWait = time.Duration(hs.PingInterval+hs.PingTimeout) * time.Millisecond
	}

	connect := Packet{Type: PacketConnect}
	if s.opts.Token != "" {
		connect.Data, _ = json.Marshal(map[string]string{"token": s.opts.Token})
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteMessage(websocket.TextMessage, []byte(connect.Encode())); err != nil {
		return 0, fmt.Errorf("handshake: %w", err)
	}

	for {
		frame, err := readFrame(conn)
		if err != nil {
			return 0, fmt.Errorf("handshake: %w", err)
		}
		switch {
		case frame == string(enginePing):
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, []byte{enginePong}); err != nil {
				return 0, fmt.Errorf("handshake: %w", err)
			}
		case len(frame) > 1 && frame[0] == engineMessage:
			p, err := DecodePacket(frame[1:])
			if err != nil {
				return 0, fmt.Errorf("handshake: %w", err)
			}
			switch p.Type {
			case PacketConnect:
				conn.SetReadDeadline(time.Now().Add(pongWait))
				return pongWait, nil
			case PacketConnectError:
				return 0, fmt.Errorf("handshake: server refused connection: %s", p.Data)
			}
		}
	}
}

func readFrame(conn *websocket.Conn) (string, error) {
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return "", err
	}
	return string(msg), nil
}

// Run reads from the socket until ctx is done, forwarding inbound events
// as core.HandleEventMsg and connection changes as core.ConnectionStateMsg.
// A dropped connection is redialed up to ReconnectAttempts times.
func (s *Socket) Run(ctx context.Context, msgChan chan<- tea.Msg) error {
	send := func(msg tea.Msg) {
		select {
		case msgChan <- msg:
		case <-ctx.Done():
		}
	}

	if s.currentConn() == nil {
		if err := s.Connect(ctx); err != nil {
			send(core.ConnectionStateMsg{Connected: false, Err: err})
			return err
		}
	}
	send(core.ConnectionStateMsg{Connected: true})

	stop := context.AfterFunc(ctx, func() { s.Close() })
	defer stop()

	for {
		err := s.readLoop(ctx, send)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.log.Warn("connection lost", "err", err)
		send(core.ConnectionStateMsg{Connected: false, Err: err})

		if err = s.reconnect(ctx); err != nil {
			return err
		}
		send(core.ConnectionStateMsg{Connected: true})
	}
}

func (s *Socket) reconnect(ctx context.Context) error {
	var err error
	for attempt := 1; attempt <= s.opts.ReconnectAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.opts.ReconnectDelay):
		}
		if err = s.Connect(ctx); err == nil {
			return nil
		}
		s.log.Warn("reconnect failed", "attempt", attempt, "err", err)
	}
	if err == nil {
		err = errServerDisconnect
	}
	return fmt.Errorf("giving up after %d reconnect attempts: %w", s.opts.ReconnectAttempts, err)
}

func (s *Socket) readLoop(ctx context.Context, send func(tea.Msg)) error {
	conn := s.currentConn()
	if conn == nil {
		return ErrNotConnected
	}
	s.connMu.RLock()
	pongWait := s.pongWait
	s.connMu.RUnlock()

	for {
		frame, err := readFrame(conn)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Error("unexpected close", "err", err)
			}
			return err
		}
		conn.SetReadDeadline(time.Now().Add(pongWait))

		if frame == "" {
			continue
		}
		switch frame[0] {
		case enginePing:
			if err := s.writeText(string(enginePong)); err != nil {
				return err
			}
		case engineClose:
			return errServerDisconnect
		case engineMessage:
			if err := s.handlePacket(frame[1:], send); err != nil {
				return err
			}
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (s *Socket) handlePacket(raw string, send func(tea.Msg)) error {
	p, err := DecodePacket(raw)
	if err != nil {
		s.log.Warn("dropping packet", "err", err)
		return nil
	}

	switch p.Type {
	case PacketEvent:
		name, args, err := p.Event()
		if err != nil {
			s.log.Warn("dropping event", "err", err)
			return nil
		}
		var payload json.RawMessage
		if len(args) > 0 {
			payload = args[0]
		}
		ev, err := createEventStruct(name, payload)
		if err != nil {
			s.log.Warn("failed to decode event", "event", name, "err", err)
			return nil
		}
		if ev == nil {
			s.log.Debug("ignoring event", "event", name)
			return nil
		}
		s.log.Debug("event", "event", name, "payload", string(payload))
		send(core.HandleEventMsg{Event: ev})

	case PacketAck:
		s.ackMu.Lock()
		fn, ok := s.acks[p.AckID]
		delete(s.acks, p.AckID)
		s.ackMu.Unlock()
		if !ok {
			s.log.Debug("ack for unknown request", "ack", p.AckID)
			return nil
		}
		var args []Ack
		if err := json.Unmarshal(p.Data, &args); err != nil || len(args) == 0 {
			fn(Ack{Status: "malformed"})
			return nil
		}
		fn(args[0])

	case PacketDisconnect:
		return errServerDisconnect
	}
	return nil
}

func (s *Socket) currentConn() *websocket.Conn {
	s.connMu.RLock()
	defer s.connMu.RUnlock()
	return s.conn
}

func (s *Socket) writeText(frame string) error {
	conn := s.currentConn()
	if conn == nil {
		return ErrNotConnected
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, []byte(frame))
}

// Request emits event with payload and waits for the acknowledgement.
func (s *Socket) Request(ctx context.Context, event string, payload any) (json.RawMessage, error) {
	log := s.log.With("event", event, "request", uuid.NewString())

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	s.ackMu.Lock()
	id := s.nextAck
	s.nextAck++
	s.ackMu.Unlock()

	defer func() {
		s.ackMu.Lock()
		delete(s.acks, id)
		s.ackMu.Unlock()
	}()

	data, err := Acknowledge(ctx, s.ackTimeout, func(ack AckFunc) error {
		p, err := EventPacket(id, true, event, payload)
		if err != nil {
			return err
		}
		s.ackMu.Lock()
		s.acks[id] = ack
		s.ackMu.Unlock()
		log.Debug("emit", "frame", p.Encode())
		return s.writeText(p.Encode())
	})
	if err != nil {
		log.Warn("request failed", "err", err)
		return nil, err
	}
	log.Debug("acknowledged")
	return data, nil
}

func (s *Socket) Close() error {
	s.connMu.Lock()
	conn := s.conn
	s.conn = nil
	s.connMu.Unlock()
	if conn == nil {
		return nil
	}

	s.writeMu.Lock()
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	s.writeMu.Unlock()
	return conn.Close()
}
