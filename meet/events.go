package meet

import "fmt"

// EventType enumerates the callbacks the signalling layer can deliver to a
// session. Everything the underlying transport reports funnels through
// Session.Dispatch as one of these, which keeps the call state machine
// testable without a real network.
type EventType int

const (
	EventIncomingCall EventType = iota
	EventStreamReceived
	EventDataReceived
	EventConnectionClosed
	EventConnectionError
)

func (t EventType) String() string {
	switch t {
	case EventIncomingCall:
		return "IncomingCall"
	case EventStreamReceived:
		return "StreamReceived"
	case EventDataReceived:
		return "DataReceived"
	case EventConnectionClosed:
		return "ConnectionClosed"
	case EventConnectionError:
		return "ConnectionError"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// DataPayload travels over the side data channel. Exactly one of Username or
// Message is set, selected by Kind.
type DataPayload struct {
	Kind     string       `json:"kind"` // "username" or "message"
	Username string       `json:"username,omitempty"`
	Message  *ChatMessage `json:"message,omitempty"`
}

const (
	PayloadUsername = "username"
	PayloadMessage  = "message"
)

type Event struct {
	Type    EventType
	PeerID  string
	Stream  *MediaStream
	Payload DataPayload
	Err     error
}
