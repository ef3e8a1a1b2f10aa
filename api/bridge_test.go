package api

import (
	"context"
	"errors"
	"testing"

	"github.com/Jan-Kur/ChatCLI/core"
	"github.com/Jan-Kur/ChatCLI/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	msg     core.Message
	channel string
}

type fakeRecorder struct {
	got []recorded
	err error
}

func (r *fakeRecorder) Record(_ context.Context, msg core.Message, channelName string) error {
	r.got = append(r.got, recorded{msg, channelName})
	return r.err
}

func newStore() *state.Store {
	return state.NewStore(state.FromSnapshot(core.Snapshot{
		Channels:         []core.Channel{{ID: "1", Name: "general"}, {ID: "c1", Name: "side", Removable: true}},
		CurrentChannelID: "c1",
	}))
}

func TestBridge_NewMessage(t *testing.T) {
	store := newStore()
	rec := &fakeRecorder{}
	b := NewBridge(store, rec)

	ev, err := createEventStruct(EventNewMessage, []byte(`{"id":"m1","channelId":"c1","author":"alice","body":"hi"}`))
	require.NoError(t, err)
	b.Handle(ev)

	msgs := store.State().Messages.Messages
	require.Len(t, msgs, 1)
	assert.Equal(t, core.Message{ID: "m1", ChannelID: "c1", Username: "alice", Body: "hi"}, msgs[0])
	assert.Equal(t, []recorded{{msgs[0], "side"}}, rec.got)
}

func TestBridge_ChannelLifecycle(t *testing.T) {
	store := newStore()
	b := NewBridge(store, nil)

	b.Handle(&NewChannelEvent{ID: "c2", Name: "ops", Removable: true})
	b.Handle(&RenameChannelEvent{ID: "c2", Name: "devops"})
	b.Handle(&NewMessageEvent{ID: "m1", ChannelID: "c1", Body: "x"})
	b.Handle(&RemoveChannelEvent{ID: "c1"})

	s := store.State()
	assert.Equal(t, core.ID("1"), s.Channels.CurrentChannelID)
	ch, ok := state.ChannelByID(s, "c2")
	require.True(t, ok)
	assert.Equal(t, "devops", ch.Name)
	assert.Empty(t, s.Messages.Messages)
}

func TestBridge_RecorderErrorDoesNotBlockState(t *testing.T) {
	store := newStore()
	b := NewBridge(store, &fakeRecorder{err: errors.New("disk full")})

	b.Handle(&NewMessageEvent{ID: "m1", ChannelID: "1", Body: "x"})
	assert.Len(t, store.State().Messages.Messages, 1)
}

func TestBridge_UnknownEvent(t *testing.T) {
	store := newStore()
	before := store.State()
	NewBridge(store, nil).Handle("something else")
	assert.Equal(t, before, store.State())
}

func TestCreateEventStruct(t *testing.T) {
	ev, err := createEventStruct("nope", []byte(`{}`))
	assert.NoError(t, err)
	assert.Nil(t, ev)

	_, err = createEventStruct(EventRenameChannel, []byte(`{"id":[1]}`))
	assert.Error(t, err)

	ev, err = createEventStruct(EventRenameChannel, []byte(`{"id":3,"name":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, &RenameChannelEvent{ID: "3", Name: "x"}, ev)
}
