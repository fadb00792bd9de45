package mpd

import "io"

// loopState is the tagged variant from §3/§4.5: the multiplexer is either
// Idling (an `idle` is outstanding) or AwaitingReply (a user command is
// outstanding). Each state is a small, sequential script; they are kept
// distinct rather than merged into one branchy function.
type loopState interface {
	step(m *multiplexer) (next loopState, ok bool)
}

// loopStateIdling is the state immediately after the greeting and after
// every completed command exchange with no command queued.
type loopStateIdling struct{}

func (loopStateIdling) step(m *multiplexer) (loopState, bool) {
	select {
	case outcome := <-m.gotRead:
		return handleIdleOutcome(m, outcome)

	case sub, ok := <-m.commands:
		if !ok {
			return nil, false
		}
		return preemptIdle(m, sub)
	}
}

func handleIdleOutcome(m *multiplexer, outcome readOutcome) (loopState, bool) {
	if outcome.err != nil {
		if outcome.err == io.EOF {
			return nil, false
		}
		m.reportTransportError(asStateChangeError(outcome.err))
		return nil, false
	}

	m.decodeStateChangeFrame(outcome.response)

	if err := m.write(idleCommand()); err != nil {
		m.reportTransportError(asStateChangeError(err))
		return nil, false
	}
	m.requestRead()

	return loopStateIdling{}, true
}

// preemptIdle cancels the outstanding idle, consumes its terminating frame
// (which may carry changes accumulated before the cancel), then writes the
// user's command. This is the only place `noidle` is sent.
func preemptIdle(m *multiplexer, sub submission) (loopState, bool) {
	if err := m.write(noidleCommand()); err != nil {
		sub.responder <- commandResult{err: ioCommandError(err)}
		return nil, false
	}

	outcome := <-m.gotRead
	if outcome.err != nil {
		sub.responder <- commandResult{err: asCommandError(outcome.err)}
		return nil, false
	}
	m.decodeStateChangeFrame(outcome.response)

	if err := m.write(sub.commands); err != nil {
		sub.responder <- commandResult{err: ioCommandError(err)}
		return nil, false
	}
	m.requestRead()

	return loopStateAwaitingReply{responder: sub.responder}, true
}

// loopStateAwaitingReply is the state while a user command's reply is
// outstanding on the transport.
type loopStateAwaitingReply struct {
	responder chan commandResult
}

func (s loopStateAwaitingReply) step(m *multiplexer) (loopState, bool) {
	outcome := <-m.gotRead
	if outcome.err != nil {
		s.responder <- commandResult{err: asCommandError(outcome.err)}
		return nil, false
	}
	s.responder <- commandResult{response: outcome.response}

	// Batching opportunity (§4.5): check for an already-queued command
	// before paying for an idle/noidle round trip.
	select {
	case sub, ok := <-m.commands:
		if !ok {
			return nil, false
		}
		if err := m.write(sub.commands); err != nil {
			sub.responder <- commandResult{err: ioCommandError(err)}
			return nil, false
		}
		m.requestRead()
		return loopStateAwaitingReply{responder: sub.responder}, true

	default:
		if err := m.write(idleCommand()); err != nil {
			m.reportTransportError(asStateChangeError(err))
			return nil, false
		}
		m.requestRead()
		return loopStateIdling{}, true
	}
}
