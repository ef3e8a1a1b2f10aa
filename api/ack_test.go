package api

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcknowledge_ResolvesWithData(t *testing.T) {
	var ack AckFunc
	data, err := Acknowledge(context.Background(), time.Second, func(a AckFunc) error {
		ack = a
		go func() {
			a(Ack{Status: "ok", Data: json.RawMessage(`{"id":4}`)})
		}()
		return nil
	})

	require.NoError(t, err)
	assert.JSONEq(t, `{"id":4}`, string(data))
	assert.False(t, ack(Ack{Status: "ok"}), "second ack must not be honored")
}

func TestAcknowledge_SynchronousAck(t *testing.T) {
	data, err := Acknowledge(context.Background(), time.Second, func(a AckFunc) error {
		assert.True(t, a(Ack{Status: "ok", Data: json.RawMessage(`1`)}))
		assert.False(t, a(Ack{Status: "error"}))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "1", string(data))
}

func TestAcknowledge_Rejected(t *testing.T) {
	_, err := Acknowledge(context.Background(), time.Second, func(a AckFunc) error {
		a(Ack{Status: "error"})
		return nil
	})

	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "error", rejected.Status)
	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.NotErrorIs(t, err, ErrAckTimeout)
}

func TestAcknowledge_TimeoutThenLateAck(t *testing.T) {
	var ack AckFunc
	start := time.Now()
	_, err := Acknowledge(context.Background(), 20*time.Millisecond, func(a AckFunc) error {
		ack = a
		return nil
	})

	assert.ErrorIs(t, err, ErrAckTimeout)
	assert.ErrorIs(t, err, ErrRequestFailed)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	assert.False(t, ack(Ack{Status: "ok"}), "late ack must be a no-op")
}

func TestAcknowledge_EmitError(t *testing.T) {
	boom := errors.New("boom")
	var ack AckFunc
	_, err := Acknowledge(context.Background(), time.Second, func(a AckFunc) error {
		ack = a
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, ack(Ack{Status: "ok"}))
}

func TestAcknowledge_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var ack AckFunc
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := Acknowledge(ctx, time.Second, func(a AckFunc) error {
		ack = a
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ack(Ack{Status: "ok"}))
}

func TestAcknowledge_DefaultTimeoutValue(t *testing.T) {
	assert.Equal(t, 3*time.Second, AckTimeout)
}
