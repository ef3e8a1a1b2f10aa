package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

// AckTimeout is how long an outbound request waits for its acknowledgement.
const AckTimeout = 3000 * time.Millisecond

var (
	ErrRequestFailed = errors.New("request failed")
	ErrAckTimeout    = fmt.Errorf("%w: no acknowledgement within %v", ErrRequestFailed, AckTimeout)
	ErrNotConnected  = errors.New("not connected")
)

// RejectedError is returned when the server acknowledges with a status
// other than "ok".
type RejectedError struct {
	Status string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("request rejected by server (status %q)", e.Status)
}

func (e *RejectedError) Unwrap() error {
	return ErrRequestFailed
}

type Ack struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// AckFunc delivers an acknowledgement. It reports whether the ack was
// the one that settled the request; every later call returns false.
type AckFunc func(Ack) bool

const (
	ackPending int32 = iota
	ackResolved
	ackRejected
)

type ackResult struct {
	data json.RawMessage
	err  error
}

// Acknowledge runs one fire-and-acknowledge exchange. emit must send the
// request and arrange for ack to be called with the server's answer.
// The first of ack, timeout or ctx cancellation settles the call.
func Acknowledge(ctx context.Context, timeout time.Duration, emit func(ack AckFunc) error) (json.RawMessage, error) {
	var state atomic.Int32
	done := make(chan ackResult, 1)

	settle := func(to int32, res ackResult) bool {
		if !state.CompareAndSwap(ackPending, to) {
			return false
		}
		done <- res
		return true
	}

	ack := func(a Ack) bool {
		if a.Status == "ok" {
			return settle(ackResolved, ackResult{data: a.Data})
		}
		return settle(ackRejected, ackResult{err: &RejectedError{Status: a.Status}})
	}

	timer := time.AfterFunc(timeout, func() {
		settle(ackRejected, ackResult{err: ErrAckTimeout})
	})
	defer timer.Stop()

	if err := emit(ack); err != nil {
		if settle(ackRejected, ackResult{err: err}) {
			<-done
			return nil, err
		}
	}

	select {
	case res := <-done:
		return res.data, res.err
	case <-ctx.Done():
		if settle(ackRejected, ackResult{err: ctx.Err()}) {
			<-done
			return nil, ctx.Err()
		}
		res := <-done
		return res.data, res.err
	}
}
