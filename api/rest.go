package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Jan-Kur/ChatCLI/core"
	"github.com/Jan-Kur/ChatCLI/utils"
)

const restTimeout = 10 * time.Second

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrUserExists   = errors.New("user already exists")
)

type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("server responded %d: %s", e.Status, e.Body)
}

// RestClient talks to the HTTP side of the chat server.
type RestClient struct {
	server string
	token  string
	http   *http.Client
	log    *slog.Logger
}

func NewRestClient(server string, session core.Session) *RestClient {
	c := &RestClient{
		server: server,
		token:  session.Token,
		log:    utils.Logger("rest"),
	}
	tr := utils.BearerTransport(nil, func() string { return c.token })
	tr.AfterReq = func(resp *http.Response, req *http.Request) {
		c.log.Debug("request", "method", req.Method, "path", req.URL.Path, "status", resp.StatusCode)
	}
	c.http = utils.NewWithTransport(tr, restTimeout)
	return c
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *RestClient) Login(ctx context.Context, username, password string) (core.Session, error) {
	var session core.Session
	err := c.do(ctx, http.MethodPost, "/api/v1/login", credentials{username, password}, &session)
	if err != nil {
		return core.Session{}, fmt.Errorf("login: %w", err)
	}
	c.token = session.Token
	return session, nil
}

func (c *RestClient) Signup(ctx context.Context, username, password string) (core.Session, error) {
	var session core.Session
	err := c.do(ctx, http.MethodPost, "/api/v1/signup", credentials{username, password}, &session)
	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.Status == http.StatusConflict {
		return core.Session{}, ErrUserExists
	}
	if err != nil {
		return core.Session{}, fmt.Errorf("signup: %w", err)
	}
	c.token = session.Token
	return session, nil
}

// FetchData loads channels, messages and the current channel.
func (c *RestClient) FetchData(ctx context.Context) (core.Snapshot, error) {
	var snapshot core.Snapshot
	if err := c.do(ctx, http.MethodGet, "/api/v1/data", nil, &snapshot); err != nil {
		return core.Snapshot{}, fmt.Errorf("fetch data: %w", err)
	}
	return snapshot, nil
}

func (c *RestClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.server+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &HTTPError{Status: resp.StatusCode, Body: string(bytes.TrimSpace(msg))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
