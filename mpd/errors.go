package mpd

import (
	"errors"
	"fmt"
)

// MpdError is the decoded form of an ACK line: an error the server reported
// for one command in a submission.
type MpdError struct {
	Code    int
	Index   int
	Command string
	Message string
}

func (e *MpdError) Error() string {
	return fmt.Sprintf("mpd: ack [%d@%d] {%s} %s", e.Code, e.Index, e.Command, e.Message)
}

// ErrConnectionClosed is returned to a caller whose submission was dropped
// because the multiplexer exited before producing a reply.
var ErrConnectionClosed = errors.New("mpd: connection closed")

// CommandError is returned by Command / CommandList and by
// Client.RawCommand / Client.RawCommandList.
type CommandError struct {
	// Kind identifies the failure category. Err holds the underlying cause
	// for Io and TypedResponse, and ErrorResponse holds the server error.
	Kind              CommandErrorKind
	Err               error
	ErrorResponse     *MpdError
	SuccessfulFrames  []*Frame
	TypedResponseErr  *TypedResponseError
}

// CommandErrorKind enumerates the ways a command submission can fail.
type CommandErrorKind int

const (
	// ErrKindConnectionClosed: the multiplexer exited without a reply.
	ErrKindConnectionClosed CommandErrorKind = iota
	// ErrKindIo: a transport or framing failure occurred.
	ErrKindIo
	// ErrKindInvalidMessage: the codec could not parse the response.
	ErrKindInvalidMessage
	// ErrKindErrorResponse: MPD returned an ACK for one command in the list.
	ErrKindErrorResponse
	// ErrKindTypedResponse: the frame was well formed but did not convert
	// to the expected domain type.
	ErrKindTypedResponse
)

func (e *CommandError) Error() string {
	switch e.Kind {
	case ErrKindConnectionClosed:
		return ErrConnectionClosed.Error()
	case ErrKindIo:
		return fmt.Sprintf("mpd: io error: %v", e.Err)
	case ErrKindInvalidMessage:
		return fmt.Sprintf("mpd: invalid message: %v", e.Err)
	case ErrKindErrorResponse:
		return fmt.Sprintf("mpd: command failed: %v (with %d successful frames)", e.ErrorResponse, len(e.SuccessfulFrames))
	case ErrKindTypedResponse:
		return fmt.Sprintf("mpd: typed response: %v", e.TypedResponseErr)
	default:
		return "mpd: unknown command error"
	}
}

func (e *CommandError) Unwrap() error {
	switch e.Kind {
	case ErrKindConnectionClosed:
		return ErrConnectionClosed
	case ErrKindIo, ErrKindInvalidMessage:
		return e.Err
	case ErrKindTypedResponse:
		return e.TypedResponseErr
	default:
		return nil
	}
}

func connectionClosedError() *CommandError {
	return &CommandError{Kind: ErrKindConnectionClosed}
}

func ioCommandError(err error) *CommandError {
	return &CommandError{Kind: ErrKindIo, Err: err}
}

func invalidMessageCommandError(err error) *CommandError {
	return &CommandError{Kind: ErrKindInvalidMessage, Err: err}
}

func errorResponseCommandError(mpdErr *MpdError, successful []*Frame) *CommandError {
	return &CommandError{Kind: ErrKindErrorResponse, ErrorResponse: mpdErr, SuccessfulFrames: successful}
}

func typedResponseCommandError(err *TypedResponseError) *CommandError {
	return &CommandError{Kind: ErrKindTypedResponse, TypedResponseErr: err}
}

// StateChangeError is delivered on the state-changes channel when the
// multiplexer's transport fails while idling.
type StateChangeError struct {
	Kind StateChangeErrorKind
	Err  error
}

// StateChangeErrorKind enumerates state-change failure categories.
type StateChangeErrorKind int

const (
	StateChangeIo StateChangeErrorKind = iota
	StateChangeInvalidMessage
)

func (e *StateChangeError) Error() string {
	switch e.Kind {
	case StateChangeIo:
		return fmt.Sprintf("mpd: state change io error: %v", e.Err)
	case StateChangeInvalidMessage:
		return fmt.Sprintf("mpd: state change invalid message: %v", e.Err)
	default:
		return "mpd: unknown state change error"
	}
}

func (e *StateChangeError) Unwrap() error {
	return e.Err
}

// TypedResponseError reports that a well-formed Frame could not be
// converted to the domain type a command's converter expected.
type TypedResponseError struct {
	Field string
	Kind  ValueErrorKind
	Value string
	Cause error
}

// ValueErrorKind enumerates the ways a field value can fail to convert.
type ValueErrorKind int

const (
	ErrMissing ValueErrorKind = iota
	ErrMalformedInteger
	ErrMalformedFloat
	ErrInvalidValue
	ErrUnexpectedField
)

func (e *TypedResponseError) Error() string {
	switch e.Kind {
	case ErrMissing:
		return fmt.Sprintf("mpd: field %q missing", e.Field)
	case ErrMalformedInteger:
		return fmt.Sprintf("mpd: field %q: malformed integer %q: %v", e.Field, e.Value, e.Cause)
	case ErrMalformedFloat:
		return fmt.Sprintf("mpd: field %q: malformed float %q: %v", e.Field, e.Value, e.Cause)
	case ErrInvalidValue:
		return fmt.Sprintf("mpd: field %q: invalid value %q", e.Field, e.Value)
	case ErrUnexpectedField:
		return fmt.Sprintf("mpd: unexpected field %q", e.Field)
	default:
		return fmt.Sprintf("mpd: field %q: unknown error", e.Field)
	}
}

func (e *TypedResponseError) Unwrap() error {
	return e.Cause
}

// InvalidMessageError wraps a framing-level protocol violation detected by
// the codec (malformed field line, unparsable ACK, bad binary length).
type InvalidMessageError struct {
	Reason string
}

func (e *InvalidMessageError) Error() string {
	return fmt.Sprintf("mpd: invalid message: %s", e.Reason)
}
