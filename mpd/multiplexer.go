package mpd

import (
	"io"

	"github.com/kholthaus/mpd-client/internal/logging"
)

// submission is what a Client handle sends into the multiplexer's command
// channel: the commands to run, and the one-shot channel their combined
// reply is delivered on.
type submission struct {
	commands  RawCommandList
	responder chan commandResult
}

// commandResult is what a submission's responder receives: exactly one of
// a successful RawResponse or a CommandError, never both, never neither.
type commandResult struct {
	response *RawResponse
	err      *CommandError
}

// stateChangeMsg is what the multiplexer publishes to the state-changes
// subscriber.
type stateChangeMsg struct {
	subsystem Subsystem
	err       *StateChangeError
}

// readOutcome is what the background reader goroutine reports back after a
// requested ReadResponse call.
type readOutcome struct {
	response *RawResponse
	err      error
}

// multiplexer owns the transport exclusively and interleaves MPD's `idle`
// notification mode with user command submissions, per §4.5.
type multiplexer struct {
	transport io.ReadWriteCloser
	codec     *Codec
	commands  <-chan submission
	changes   chan<- stateChangeMsg
	logger    logging.Logger

	wantRead chan struct{}
	gotRead  chan readOutcome
	done     chan struct{}
}

func newMultiplexer(transport io.ReadWriteCloser, codec *Codec, commands <-chan submission, changes chan<- stateChangeMsg, logger logging.Logger) *multiplexer {
	return &multiplexer{
		transport: transport,
		codec:     codec,
		commands:  commands,
		changes:   changes,
		logger:    logger,
		wantRead:  make(chan struct{}, 1),
		gotRead:   make(chan readOutcome),
		done:      make(chan struct{}),
	}
}

// run drives the idle/command loop until the transport fails, the server
// closes the connection, or every Client handle has been dropped.
func (m *multiplexer) run() {
	defer close(m.done)
	defer m.transport.Close()
	defer close(m.changes)

	go m.readLoop()

	if err := m.write(idleCommand()); err != nil {
		m.reportTransportError(asStateChangeError(err))
		return
	}
	m.requestRead()

	var state loopState = loopStateIdling{}

	for {
		next, ok := state.step(m)
		if !ok {
			return
		}
		state = next
	}
}

// readLoop performs one ReadResponse call each time the main loop signals
// wantRead, delivering the outcome on gotRead. It exits once the
// multiplexer is done, so it never leaks past the main loop's lifetime.
func (m *multiplexer) readLoop() {
	for {
		select {
		case _, ok := <-m.wantRead:
			if !ok {
				return
			}
		case <-m.done:
			return
		}

		resp, err := m.codec.ReadResponse()

		select {
		case m.gotRead <- readOutcome{response: resp, err: err}:
		case <-m.done:
			return
		}
	}
}

func (m *multiplexer) requestRead() {
	select {
	case m.wantRead <- struct{}{}:
	case <-m.done:
	}
}

func (m *multiplexer) write(commands RawCommandList) error {
	_, err := io.WriteString(m.transport, commands.Encode())
	return err
}

// reportTransportError and emitChange send into the unbounded state-changes
// channel (see newStateChangesHub): the forwarding goroutine behind it always
// accepts promptly, so these never block the protocol loop on a slow or
// absent subscriber.
func (m *multiplexer) reportTransportError(err *StateChangeError) {
	m.changes <- stateChangeMsg{err: err}
}

func (m *multiplexer) emitChange(sub Subsystem) {
	m.changes <- stateChangeMsg{subsystem: sub}
}

func idleCommand() RawCommandList {
	return RawCommandList{Commands: []RawCommand{NewRawCommand("idle")}}
}

func noidleCommand() RawCommandList {
	return RawCommandList{Commands: []RawCommand{NewRawCommand("noidle")}}
}

// decodeStateChangeFrame implements the idle-response decode rule from
// §4.5/§4.1: a `changed:` field names the subsystem; a non-empty frame
// without one is logged and otherwise ignored (§9 Open Question: kept as a
// warning, not an error, matching the reference client).
func (m *multiplexer) decodeStateChangeFrame(resp *RawResponse) {
	if resp.Err != nil {
		// The ACK that terminated an idle is a protocol-level oddity (MPD
		// does not ACK `idle` itself) but is not impossible from a
		// misbehaving server; treat it as a non-fatal notification error.
		m.reportTransportError(&StateChangeError{Kind: StateChangeInvalidMessage, Err: resp.Err})
		return
	}

	for _, frame := range resp.Frames {
		changed := frame.Peek("changed")
		if len(changed) == 0 {
			if frame.Len() != 0 {
				m.logger.Warn("idle response had fields but no changed key")
			}
			continue
		}
		for _, name := range changed {
			m.emitChange(subsystemFromRaw(name))
		}
	}
}
