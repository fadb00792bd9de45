package mpd

import (
	"io"
	"sync/atomic"

	"github.com/kholthaus/mpd-client/internal/logging"
)

// clientCore is the state shared by every clone of a Client handle: the
// command-submission channel and a reference count tracking how many
// clones are outstanding. Go has no destructors, so Close plays that role
// explicitly.
type clientCore struct {
	commands chan submission
	refcount int32
}

// Client is a cheaply cloneable handle on a running multiplexer. It has no
// state of its own beyond a sender on the command channel; concurrent use
// from multiple goroutines is safe because submissions are serialized by
// that channel, not by a lock here.
type Client struct {
	core *clientCore
}

// Clone returns a new handle sharing this Client's connection. The
// multiplexer keeps running until every clone (the original and every
// clone of it) has been closed.
func (c *Client) Clone() *Client {
	atomic.AddInt32(&c.core.refcount, 1)
	return &Client{core: c.core}
}

// Close releases this handle. Once the last outstanding clone is closed,
// the command channel is closed and the multiplexer observes that and
// terminates cleanly after finishing any reply already in flight.
func (c *Client) Close() error {
	if atomic.AddInt32(&c.core.refcount, -1) == 0 {
		close(c.core.commands)
	}
	return nil
}

// RawCommand submits a single command and returns its raw frame, without
// running it through a typed converter.
func (c *Client) RawCommand(cmd RawCommand) (*RawResponse, error) {
	return c.RawCommandList(RawCommandList{Commands: []RawCommand{cmd}})
}

// RawCommandList submits a command list and returns the raw per-command
// frames. commands.Len() == 0 returns immediately with an empty response.
func (c *Client) RawCommandList(commands RawCommandList) (*RawResponse, error) {
	if commands.Len() == 0 {
		return &RawResponse{}, nil
	}

	responder := make(chan commandResult, 1)
	c.core.commands <- submission{commands: commands, responder: responder}

	result, ok := <-responder
	if !ok {
		return nil, connectionClosedError()
	}
	if result.err != nil {
		return nil, result.err
	}
	if result.response.Err != nil {
		return nil, errorResponseCommandError(result.response.Err, result.response.Frames)
	}
	return result.response, nil
}

// Command encodes and submits a single command, then runs convert over the
// resulting frame. This is the typed counterpart of RawCommand; callers
// outside this package supply the converter for whatever command they are
// issuing (see status.go, stats.go, albumart.go, list.go for the ones this
// client ships with).
func Command[T any](c *Client, cmd RawCommand, convert func(*Frame) (T, *TypedResponseError)) (T, error) {
	var zero T

	resp, err := c.RawCommand(cmd)
	if err != nil {
		return zero, err
	}
	frame, err := resp.SingleFrame()
	if err != nil {
		return zero, err
	}
	value, typedErr := convert(frame)
	if typedErr != nil {
		return zero, typedResponseCommandError(typedErr)
	}
	return value, nil
}

// CommandList encodes and submits N commands with per-command frame
// markers, then runs convert over each resulting frame in order. On any
// per-command MPD error the returned error is an ErrorResponse carrying the
// frames from commands that had already succeeded.
func CommandList[T any](c *Client, commands []RawCommand, convert func(*Frame) (T, *TypedResponseError)) ([]T, error) {
	if len(commands) == 0 {
		return nil, nil
	}

	list := NewRawCommandListOf(commands)
	resp, err := c.RawCommandList(list)
	if err != nil {
		return nil, err
	}

	values := make([]T, 0, len(resp.Frames))
	for _, frame := range resp.Frames {
		value, typedErr := convert(frame)
		if typedErr != nil {
			return nil, typedResponseCommandError(typedErr)
		}
		values = append(values, value)
	}
	return values, nil
}

// Options configures a connect routine.
type Options struct {
	Logger logging.Logger
}

func (o Options) logger() logging.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return logging.Default()
}

// connect performs the handshake (greeting, initial idle) over an
// already-established transport, spawns the multiplexer goroutine, and
// returns the Client and StateChanges handles the caller owns.
func connect(transport io.ReadWriteCloser, opts Options) (*Client, *StateChanges, error) {
	codec := NewCodec(transport)
	if _, err := codec.ReadGreeting(); err != nil {
		transport.Close()
		return nil, nil, err
	}

	commands := make(chan submission, 2)
	hub := newStateChangesHub()

	m := newMultiplexer(transport, codec, commands, hub.in, opts.logger())
	go m.run()

	client := &Client{core: &clientCore{commands: commands, refcount: 1}}
	subscriber := &StateChanges{out: hub.out}
	return client, subscriber, nil
}
