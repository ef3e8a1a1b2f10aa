package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventPacketEncode(t *testing.T) {
	p, err := EventPacket(7, true, "newMessage", map[string]any{"body": "hi"})
	require.NoError(t, err)
	assert.Equal(t, `427["newMessage",{"body":"hi"}]`, p.Encode())

	p, err = EventPacket(0, false, "ping")
	require.NoError(t, err)
	assert.Equal(t, `42["ping"]`, p.Encode())
}

func TestDecodePacket(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Packet
	}{
		{
			name:  "connect",
			input: `0{"sid":"abc"}`,
			want:  Packet{Type: PacketConnect, Data: json.RawMessage(`{"sid":"abc"}`)},
		},
		{
			name:  "event",
			input: `2["newChannel",{"id":3,"name":"x","removable":true}]`,
			want:  Packet{Type: PacketEvent, Data: json.RawMessage(`["newChannel",{"id":3,"name":"x","removable":true}]`)},
		},
		{
			name:  "ack",
			input: `312[{"status":"ok"}]`,
			want:  Packet{Type: PacketAck, AckID: 12, HasAck: true, Data: json.RawMessage(`[{"status":"ok"}]`)},
		},
		{
			name:  "namespace",
			input: `2/admin,5["x"]`,
			want:  Packet{Type: PacketEvent, Namespace: "/admin", AckID: 5, HasAck: true, Data: json.RawMessage(`["x"]`)},
		},
		{
			name:  "binary event",
			input: `51-["upload",{"_placeholder":true,"num":0}]`,
			want:  Packet{Type: PacketBinaryEvent, Data: json.RawMessage(`["upload",{"_placeholder":true,"num":0}]`)},
		},
		{
			name:  "bare disconnect",
			input: `1`,
			want:  Packet{Type: PacketDisconnect},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodePacket(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodePacketErrors(t *testing.T) {
	for _, input := range []string{"", "9", `2["unterminated`, "5[]"} {
		_, err := DecodePacket(input)
		assert.ErrorIs(t, err, ErrMalformedPacket, input)
	}
}

func TestPacketEvent(t *testing.T) {
	p, err := DecodePacket(`2["renameChannel",{"id":1,"name":"n"}]`)
	require.NoError(t, err)

	name, args, err := p.Event()
	require.NoError(t, err)
	assert.Equal(t, "renameChannel", name)
	require.Len(t, args, 1)
	assert.JSONEq(t, `{"id":1,"name":"n"}`, string(args[0]))

	_, _, err = Packet{Type: PacketEvent, Data: json.RawMessage(`[]`)}.Event()
	assert.ErrorIs(t, err, ErrMalformedPacket)
}
