package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Jan-Kur/ChatCLI/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Archive {
	t.Helper()
	a, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	clock := time.UnixMilli(1_700_000_000_000)
	a.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return a
}

func TestArchive_RecordAndSearch(t *testing.T) {
	a := openTemp(t)
	ctx := context.Background()

	require.NoError(t, a.Record(ctx, core.Message{ID: "1", ChannelID: "1", Username: "alice", Body: "hello world"}, "general"))
	require.NoError(t, a.Record(ctx, core.Message{ID: "2", ChannelID: "2", Username: "bob", Body: "random stuff"}, "random"))
	require.NoError(t, a.Record(ctx, core.Message{ID: "3", ChannelID: "1", Username: "bob", Body: "hello again"}, "general"))
	// duplicate keeps the first copy
	require.NoError(t, a.Record(ctx, core.Message{ID: "1", ChannelID: "1", Username: "alice", Body: "edited"}, "general"))

	all, err := a.Search(ctx, Query{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, core.ID("3"), all[0].ID)
	assert.Equal(t, core.ID("1"), all[2].ID)
	assert.Equal(t, "hello world", all[2].Body)

	general, err := a.Search(ctx, Query{Channel: "#general"})
	require.NoError(t, err)
	assert.Len(t, general, 2)

	hello, err := a.Search(ctx, Query{Text: "hello", Limit: 1})
	require.NoError(t, err)
	require.Len(t, hello, 1)
	assert.Equal(t, "hello again", hello[0].Body)
	assert.Equal(t, "general", hello[0].Channel)
}

func TestArchive_LikeEscaping(t *testing.T) {
	a := openTemp(t)
	ctx := context.Background()

	require.NoError(t, a.Record(ctx, core.Message{ID: "1", ChannelID: "1", Body: "100% sure"}, "general"))
	require.NoError(t, a.Record(ctx, core.Message{ID: "2", ChannelID: "1", Body: "100 percent"}, "general"))

	got, err := a.Search(ctx, Query{Text: "100%"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, core.ID("1"), got[0].ID)
}

func TestArchive_Closed(t *testing.T) {
	a := openTemp(t)
	require.NoError(t, a.Close())
	require.NoError(t, a.Close())

	assert.ErrorIs(t, a.Record(context.Background(), core.Message{}, ""), ErrClosed)
	_, err := a.Search(context.Background(), Query{})
	assert.ErrorIs(t, err, ErrClosed)
}
