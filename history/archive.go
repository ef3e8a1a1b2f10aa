// Package history keeps a local sqlite archive of every message the client
// has seen, so old conversations can be searched offline.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Jan-Kur/ChatCLI/core"
	_ "modernc.org/sqlite"
)

const defaultLimit = 50

var ErrClosed = errors.New("history archive is closed")

const schema = `
CREATE TABLE IF NOT EXISTS messages (
	id          TEXT NOT NULL,
	channel_id  TEXT NOT NULL,
	channel     TEXT NOT NULL DEFAULT '',
	username    TEXT NOT NULL DEFAULT '',
	body        TEXT NOT NULL,
	received_at INTEGER NOT NULL,
	PRIMARY KEY (id, channel_id)
);
CREATE INDEX IF NOT EXISTS messages_channel ON messages(channel, received_at);
`

type Archive struct {
	db  *sql.DB
	now func() time.Time
}

// Entry is an archived message.
type Entry struct {
	core.Message
	Channel    string
	ReceivedAt time.Time
}

type Query struct {
	Channel string
	Text    string
	Limit   int
}

func Open(path string) (*Archive, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000", schema} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("init history: %w", err)
		}
	}

	return &Archive{db: db, now: time.Now}, nil
}

// Record stores msg under channelName. Recording the same message twice
// keeps the first copy.
func (a *Archive) Record(ctx context.Context, msg core.Message, channelName string) error {
	if a == nil || a.db == nil {
		return ErrClosed
	}
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO messages (id, channel_id, channel, username, body, received_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id, channel_id) DO NOTHING`,
		msg.ID.String(), msg.ChannelID.String(), channelName, msg.Username, msg.Body, a.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("record message %s: %w", msg.ID, err)
	}
	return nil
}

// Search returns matching messages, newest first.
func (a *Archive) Search(ctx context.Context, q Query) ([]Entry, error) {
	if a == nil || a.db == nil {
		return nil, ErrClosed
	}

	var (
		where []string
		args  []any
	)
	if q.Channel != "" {
		where = append(where, "channel = ?")
		args = append(args, strings.TrimPrefix(q.Channel, "#"))
	}
	if q.Text != "" {
		where = append(where, "body LIKE ? ESCAPE '\\'")
		args = append(args, "%"+escapeLike(q.Text)+"%")
	}
	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	query := "SELECT id, channel_id, channel, username, body, received_at FROM messages"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY received_at DESC, rowid DESC LIMIT ?"
	args = append(args, limit)

	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e          Entry
			id, chID   string
			receivedAt int64
		)
		if err := rows.Scan(&id, &chID, &e.Channel, &e.Username, &e.Body, &receivedAt); err != nil {
			return nil, err
		}
		e.ID = core.ID(id)
		e.ChannelID = core.ID(chID)
		e.ReceivedAt = time.UnixMilli(receivedAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (a *Archive) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
