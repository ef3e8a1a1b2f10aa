package core

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type Config struct {
	Server    string          `toml:"server" env:"CHATCLI_SERVER"`
	Theme     string          `toml:"theme" env:"CHATCLI_THEME"`
	Log       LogConfig       `toml:"log" envPrefix:"CHATCLI_LOG_"`
	Profanity ProfanityConfig `toml:"profanity" envPrefix:"CHATCLI_PROFANITY_"`
	History   HistoryConfig   `toml:"history" envPrefix:"CHATCLI_HISTORY_"`
	Send      SendConfig      `toml:"send" envPrefix:"CHATCLI_SEND_"`
	Reconnect ReconnectConfig `toml:"reconnect" envPrefix:"CHATCLI_RECONNECT_"`
}

type LogConfig struct {
	Level string `toml:"level" env:"LEVEL"`
	File  string `toml:"file" env:"FILE"`
}

type ProfanityConfig struct {
	Disabled   bool     `toml:"disabled" env:"DISABLED"`
	Languages  []string `toml:"languages" env:"LANGUAGES" envSeparator:","`
	ExtraWords []string `toml:"extra_words" env:"EXTRA_WORDS" envSeparator:","`
}

type HistoryConfig struct {
	Enabled bool   `toml:"enabled" env:"ENABLED"`
	Path    string `toml:"path" env:"PATH"`
}

// SendConfig throttles outbound emits. Rate is in emits per second.
type SendConfig struct {
	Rate  float64 `toml:"rate" env:"RATE"`
	Burst int     `toml:"burst" env:"BURST"`
}

type ReconnectConfig struct {
	Attempts int           `toml:"attempts" env:"ATTEMPTS"`
	Delay    time.Duration `toml:"delay" env:"DELAY"`
}

type Session struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// ID identifies a channel or a message. The server uses numeric ids, so
// all-digit ids are encoded back as JSON numbers.
type ID string

func (id ID) MarshalJSON() ([]byte, error) {
	if id != "" {
		if n, err := strconv.ParseUint(string(id), 10, 64); err == nil && strconv.FormatUint(n, 10) == string(id) {
			return []byte(id), nil
		}
	}
	return json.Marshal(string(id))
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

type Channel struct {
	ID        ID     `json:"id"`
	Name      string `json:"name"`
	Removable bool   `json:"removable"`
}

type Message struct {
	ID        ID     `json:"id"`
	ChannelID ID     `json:"channelId"`
	Username  string `json:"username"`
	Body      string `json:"body"`
}

func (m *Message) UnmarshalJSON(data []byte) error {
	type plain Message
	var raw struct {
		plain
		Author string `json:"author"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = Message(raw.plain)
	if m.Username == "" {
		m.Username = raw.Author
	}
	return nil
}

// Snapshot is the initial state served by the REST api.
type Snapshot struct {
	Channels         []Channel `json:"channels"`
	Messages         []Message `json:"messages"`
	CurrentChannelID ID        `json:"currentChannelId"`
}

type HandleEventMsg struct {
	Event any
}

type SnapshotLoadedMsg struct {
	Snapshot Snapshot
	Err      error
}

type ChannelCreatedMsg struct {
	Channel Channel
}

type ChannelRenamedMsg struct {
	ID   ID
	Name string
}

type ChannelRemovedMsg struct {
	ID ID
}

type MessageSentMsg struct {
	Message Message
}

type RequestFailedMsg struct {
	Action string
	Err    error
}

type ConnectionStateMsg struct {
	Connected bool
	Err       error
}

type WaitMsg struct {
	Msg      tea.Msg
	Duration time.Duration
}

type CloseErrorPopupMsg struct{}
