package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Jan-Kur/ChatCLI/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/login", func(w http.ResponseWriter, r *http.Request) {
		var c credentials
		json.NewDecoder(r.Body).Decode(&c)
		if c.Username != "admin" || c.Password != "admin" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"token": "tok", "username": "admin"})
	})
	mux.HandleFunc("POST /api/v1/signup", func(w http.ResponseWriter, r *http.Request) {
		var c credentials
		json.NewDecoder(r.Body).Decode(&c)
		if c.Username == "admin" {
			w.WriteHeader(http.StatusConflict)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"token": "new", "username": c.Username})
	})
	mux.HandleFunc("GET /api/v1/data", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{
			"channels":[{"id":1,"name":"general","removable":false},{"id":2,"name":"random","removable":false}],
			"messages":[{"id":1,"channelId":1,"username":"admin","body":"hello"}],
			"currentChannelId":1
		}`))
	})
	mux.HandleFunc("GET /api/v1/broken", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRestClient_LoginThenFetch(t *testing.T) {
	srv := newRestServer(t)
	c := NewRestClient(srv.URL, core.Session{})
	ctx := context.Background()

	_, err := c.FetchData(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = c.Login(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)

	session, err := c.Login(ctx, "admin", "admin")
	require.NoError(t, err)
	assert.Equal(t, core.Session{Token: "tok", Username: "admin"}, session)

	snapshot, err := c.FetchData(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.ID("1"), snapshot.CurrentChannelID)
	require.Len(t, snapshot.Channels, 2)
	assert.Equal(t, core.Channel{ID: "2", Name: "random"}, snapshot.Channels[1])
	assert.Equal(t, []core.Message{{ID: "1", ChannelID: "1", Username: "admin", Body: "hello"}}, snapshot.Messages)
}

func TestRestClient_Signup(t *testing.T) {
	srv := newRestServer(t)
	c := NewRestClient(srv.URL, core.Session{})

	_, err := c.Signup(context.Background(), "admin", "x")
	assert.ErrorIs(t, err, ErrUserExists)

	session, err := c.Signup(context.Background(), "bob", "secret")
	require.NoError(t, err)
	assert.Equal(t, "new", session.Token)
}

func TestRestClient_HTTPError(t *testing.T) {
	srv := newRestServer(t)
	c := NewRestClient(srv.URL, core.Session{Token: "tok"})

	err := c.do(context.Background(), http.MethodGet, "/api/v1/broken", nil, nil)
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Equal(t, "boom", httpErr.Body)
}
