package meet

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

type State int

const (
	StateIdle State = iota
	StateAcquiringMedia
	StateWaitingForPeer
	StateDialing
	StateInCall
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateAcquiringMedia:
		return "AcquiringMedia"
	case StateWaitingForPeer:
		return "WaitingForPeer"
	case StateDialing:
		return "Dialing"
	case StateInCall:
		return "InCall"
	case StateEnded:
		return "Ended"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var ErrSessionActive = errors.New("session already started")

// Signaller is the transport used to reach other peers. Outgoing traffic
// goes through these methods; everything incoming arrives as Events via
// Session.Dispatch.
type Signaller interface {
	// Open registers the session under the requested address, or under a
	// provider-assigned one when address is empty. Returns the effective
	// address.
	Open(s *Session, address string) (string, error)
	// Call places a media call carrying the local stream.
	Call(from, to string, stream *MediaStream) error
	// Answer accepts an incoming call with the local stream.
	Answer(from, to string, stream *MediaStream) error
	// Connect opens the side data channel used for chat and the username
	// handshake.
	Connect(from, to string) error
	SendData(from, to string, payload DataPayload) error
	// Close destroys the endpoint and hangs up every call it carries.
	Close(from string)
}

// Session drives one call session through
// Idle → AcquiringMedia → WaitingForPeer|Dialing → InCall → Ended.
// A host claims the room identifier as its own address and waits for calls;
// a joiner opens an anonymous endpoint and dials the room address.
type Session struct {
	mu        sync.Mutex
	username  string
	devices   Devices
	signaller Signaller

	state       State
	addr        string
	roomID      string
	host        bool
	localStream *MediaStream
	controls    *Controls
	registry    *Registry
	chat        *ChatLog

	dataOpen     map[string]bool
	nameSent     map[string]bool
	answered     map[string]bool
	pendingNames map[string]string
	lastErr      error
}

func NewSession(username string, devices Devices, signaller Signaller) *Session {
	return &Session{
		username:  username,
		devices:   devices,
		signaller: signaller,
		state:     StateIdle,
		registry:  NewRegistry(),
		chat:      NewChatLog(),
		dataOpen:     make(map[string]bool),
		nameSent:     make(map[string]bool),
		answered:     make(map[string]bool),
		pendingNames: make(map[string]string),
	}
}

// HostRoom acquires local media, claims roomID as this session's address and
// waits for incoming calls.
func (s *Session) HostRoom(roomID string) error {
	if err := s.acquireMedia(roomID, true); err != nil {
		return err
	}

	addr, err := s.signaller.Open(s, roomID)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.addr = addr
	s.state = StateWaitingForPeer
	s.mu.Unlock()
	return nil
}

// JoinRoom acquires local media, opens an anonymous endpoint and dials the
// room address once the endpoint's own address is assigned.
func (s *Session) JoinRoom(roomID string) error {
	if err := s.acquireMedia(roomID, false); err != nil {
		return err
	}

	addr, err := s.signaller.Open(s, "")
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.addr = addr
	s.state = StateDialing
	stream := s.localStream
	s.mu.Unlock()

	// The data channel opens first so usernames are exchanged as soon as
	// possible; the media call follows.
	if err := s.signaller.Connect(addr, roomID); err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.dataOpen[roomID] = true
	s.nameSent[roomID] = true
	s.mu.Unlock()
	if err := s.signaller.SendData(addr, roomID, DataPayload{Kind: PayloadUsername, Username: s.username}); err != nil {
		s.fail(err)
		return err
	}

	if err := s.signaller.Call(addr, roomID, stream); err != nil {
		s.fail(err)
		return err
	}
	return nil
}

func (s *Session) acquireMedia(roomID string, host bool) error {
	s.mu.Lock()
	if s.state != StateIdle {
		s.mu.Unlock()
		return ErrSessionActive
	}
	s.state = StateAcquiringMedia
	s.roomID = roomID
	s.host = host
	s.mu.Unlock()

	stream, err := s.devices.GetUserMedia(true, true)
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.localStream = stream
	s.controls = NewControls(s.devices, stream)
	s.mu.Unlock()
	return nil
}

func (s *Session) fail(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.state = StateEnded
	s.mu.Unlock()
}

// Dispatch delivers one transport event to the state machine. Signaller
// calls are made after the internal state settles, so transports are free to
// deliver further events synchronously from those calls.
func (s *Session) Dispatch(ev Event) {
	type outgoing struct {
		answer  bool
		data    bool
		to      string
		payload DataPayload
	}
	var actions []outgoing

	s.mu.Lock()
	switch ev.Type {
	case EventIncomingCall:
		// Only answerable once local media exists.
		if s.localStream != nil {
			s.answered[ev.PeerID] = true
			actions = append(actions, outgoing{answer: true, to: ev.PeerID})
		}

	case EventStreamReceived:
		if s.answered[ev.PeerID] {
			s.registry.AddIfAbsent(ev.PeerID, ev.Stream)
		} else {
			s.registry.Upsert(ev.PeerID, ev.Stream)
		}
		// The username handshake may beat the stream; apply it now.
		if name, ok := s.pendingNames[ev.PeerID]; ok {
			s.registry.SetUsername(ev.PeerID, name)
			delete(s.pendingNames, ev.PeerID)
		}
		if s.state == StateWaitingForPeer || s.state == StateDialing {
			s.state = StateInCall
		}

	case EventDataReceived:
		s.dataOpen[ev.PeerID] = true
		if !s.nameSent[ev.PeerID] {
			s.nameSent[ev.PeerID] = true
			actions = append(actions, outgoing{
				data:    true,
				to:      ev.PeerID,
				payload: DataPayload{Kind: PayloadUsername, Username: s.username},
			})
		}
		switch ev.Payload.Kind {
		case PayloadUsername:
			if _, known := s.registry.Get(ev.PeerID); known {
				s.registry.SetUsername(ev.PeerID, ev.Payload.Username)
			} else {
				s.pendingNames[ev.PeerID] = ev.Payload.Username
			}
		case PayloadMessage:
			if ev.Payload.Message != nil {
				s.chat.AppendRemote(*ev.Payload.Message)
			}
		}

	case EventConnectionClosed:
		s.dropPeerLocked(ev.PeerID)

	case EventConnectionError:
		if ev.PeerID == "" {
			// Endpoint-level failure is unrecoverable.
			s.lastErr = ev.Err
			s.state = StateEnded
			s.registry.Clear()
		} else {
			s.dropPeerLocked(ev.PeerID)
		}
	}
	addr := s.addr
	stream := s.localStream
	s.mu.Unlock()

	for _, action := range actions {
		if action.answer {
			if err := s.signaller.Answer(addr, action.to, stream); err != nil {
				s.Dispatch(Event{Type: EventConnectionError, PeerID: action.to, Err: err})
			}
			continue
		}
		if action.data {
			_ = s.signaller.SendData(addr, action.to, action.payload)
		}
	}
}

func (s *Session) dropPeerLocked(peerID string) {
	s.registry.Remove(peerID)
	delete(s.dataOpen, peerID)
	delete(s.nameSent, peerID)
	delete(s.answered, peerID)
	delete(s.pendingNames, peerID)
}

// SendMessage appends a chat message and broadcasts it over every open data
// channel. Blank or whitespace-only input is a no-op and returns nil.
func (s *Session) SendMessage(text string) *ChatMessage {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	msg := newLocalMessage(s.username, text)
	s.chat.Append(msg)

	s.mu.Lock()
	addr := s.addr
	peers := make([]string, 0, len(s.dataOpen))
	for peer := range s.dataOpen {
		peers = append(peers, peer)
	}
	s.mu.Unlock()

	wire := msg
	wire.IsLocal = false
	for _, peer := range peers {
		_ = s.signaller.SendData(addr, peer, DataPayload{Kind: PayloadMessage, Message: &wire})
	}
	return &msg
}

// Hangup destroys the endpoint, stops local tracks and ends the session.
func (s *Session) Hangup() {
	s.mu.Lock()
	if s.state == StateEnded {
		s.mu.Unlock()
		return
	}
	addr := s.addr
	if s.localStream != nil {
		s.localStream.StopAll()
	}
	s.registry.Clear()
	s.dataOpen = make(map[string]bool)
	s.nameSent = make(map[string]bool)
	s.answered = make(map[string]bool)
	s.pendingNames = make(map[string]string)
	s.state = StateEnded
	s.mu.Unlock()

	if addr != "" {
		s.signaller.Close(addr)
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

func (s *Session) RoomID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roomID
}

func (s *Session) Username() string {
	return s.username
}

func (s *Session) Registry() *Registry {
	return s.registry
}

func (s *Session) Chat() *ChatLog {
	return s.chat
}

func (s *Session) Controls() *Controls {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controls
}

func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
