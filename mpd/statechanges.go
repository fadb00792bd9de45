package mpd

// stateChangesHub is an unbounded channel: sends on in never block for long
// (the forwarding goroutine is always ready to receive), while a slow or
// absent reader of out only grows an in-memory backlog, never backpressure
// on the protocol loop. This is the concrete form of the "unbounded
// state-changes channel" from §4.5/§5.
type stateChangesHub struct {
	in  chan stateChangeMsg
	out chan stateChangeMsg
}

func newStateChangesHub() *stateChangesHub {
	h := &stateChangesHub{
		in:  make(chan stateChangeMsg),
		out: make(chan stateChangeMsg),
	}
	go h.forward()
	return h
}

func (h *stateChangesHub) forward() {
	var buf []stateChangeMsg

	for {
		if len(buf) == 0 {
			v, ok := <-h.in
			if !ok {
				close(h.out)
				return
			}
			buf = append(buf, v)
			continue
		}

		select {
		case v, ok := <-h.in:
			if !ok {
				for _, m := range buf {
					h.out <- m
				}
				close(h.out)
				return
			}
			buf = append(buf, v)

		case h.out <- buf[0]:
			buf = buf[1:]
		}
	}
}

// StateChanges is a single-receiver subscriber over the multiplexer's
// notifications. It is finite: Next returns false once the multiplexer has
// exited and every buffered notification has been delivered. It is not
// restartable.
type StateChanges struct {
	out <-chan stateChangeMsg

	current Subsystem
	err     error
}

// Next advances to the next state change, blocking until one is available
// or the subscription ends. Returns false when the sequence is exhausted.
func (s *StateChanges) Next() bool {
	msg, ok := <-s.out
	if !ok {
		return false
	}
	if msg.err != nil {
		s.current = Subsystem{}
		s.err = msg.err
		return true
	}
	s.current = msg.subsystem
	s.err = nil
	return true
}

// Subsystem returns the subsystem reported by the most recent Next, or the
// zero Subsystem if that call produced an error instead.
func (s *StateChanges) Subsystem() Subsystem {
	return s.current
}

// Err returns the StateChangeError produced by the most recent Next, or nil
// if it produced a subsystem notification instead.
func (s *StateChanges) Err() error {
	return s.err
}
