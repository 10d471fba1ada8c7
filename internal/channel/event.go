package channel

import (
	"encoding/json"
	"errors"
	"strings"
)

// Inbound event types.
const (
	EventConnect            = "connect"
	EventDisconnect         = "disconnect"
	EventConnectError       = "connect_error"
	EventGameFound          = "GAME_FOUND"
	EventInvitationAccepted = "INVITATION_ACCEPTED"
	EventInvitationRejected = "INVITATION_REJECTED"
	EventInvitationCanceled = "INVITATION_CANCELED"
	EventInvitationReceived = "INVITATION_RECEIVED"
)

// Outbound event types.
const (
	EventEnterQueue = "ENTER_QUEUE"
	EventLeaveQueue = "LEAVE_QUEUE"
)

// Recognized connect_error messages.
const (
	MessageAuthInvalid      = "Invalid or missing token"
	MessageAlreadyConnected = "User is already connected"
)

// aliases maps the names older servers put on the wire to the canonical ones.
var aliases = map[string]string{
	"ACCEPTED_INVITATION": EventInvitationAccepted,
	"REJECTED_INVITATION": EventInvitationRejected,
	"CANCELED_INVITATION": EventInvitationCanceled,
	"RECEIVED_INVITATION": EventInvitationReceived,
}

func canonicalType(t string) string {
	if c, ok := aliases[t]; ok {
		return c
	}
	return t
}

// envelope is the wire frame in both directions.
type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Event is something that happened on the channel.
type Event struct {
	Type    string
	Payload json.RawMessage

	// Err is set on connect_error events.
	Err *ConnectError
}

// Decode unmarshals the payload into v.
func (e Event) Decode(v any) error {
	if len(e.Payload) == 0 {
		return errors.New("empty payload")
	}
	return json.Unmarshal(e.Payload, v)
}

// ErrorKind classifies connection errors.
type ErrorKind string

const (
	ErrorNone             ErrorKind = "none"
	ErrorAuthInvalid      ErrorKind = "auth_invalid"
	ErrorAlreadyConnected ErrorKind = "already_connected"
	ErrorUnclassified     ErrorKind = "unclassified"
)

var (
	ErrAuthInvalid      = errors.New("authentication rejected")
	ErrAlreadyConnected = errors.New("already connected elsewhere")
	ErrNotConnected     = errors.New("channel not connected")
	ErrSendBufferFull   = errors.New("channel send buffer full")
)

// ConnectError is a classified failure to establish or keep the channel.
type ConnectError struct {
	Kind    ErrorKind
	Message string
}

func (e *ConnectError) Error() string {
	return "connect error (" + string(e.Kind) + "): " + e.Message
}

func (e *ConnectError) Is(target error) bool {
	switch target {
	case ErrAuthInvalid:
		return e.Kind == ErrorAuthInvalid
	case ErrAlreadyConnected:
		return e.Kind == ErrorAlreadyConnected
	}
	return false
}

// Classify maps a connect_error message to its kind.
func Classify(message string) ErrorKind {
	switch strings.TrimSpace(message) {
	case MessageAuthInvalid:
		return ErrorAuthInvalid
	case MessageAlreadyConnected:
		return ErrorAlreadyConnected
	default:
		return ErrorUnclassified
	}
}

func newConnectError(message string) *ConnectError {
	return &ConnectError{Kind: Classify(message), Message: message}
}
