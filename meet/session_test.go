package meet

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDevices struct {
	userMediaErr   error
	displayErr     error
	userMediaCalls int
}

func (d *fakeDevices) GetUserMedia(audio, video bool) (*MediaStream, error) {
	d.userMediaCalls++
	if d.userMediaErr != nil {
		return nil, d.userMediaErr
	}
	return NewMediaStream(audio, video), nil
}

func (d *fakeDevices) GetDisplayMedia() (*MediaStream, error) {
	if d.displayErr != nil {
		return nil, d.displayErr
	}
	return NewMediaStream(false, true), nil
}

// loopback wires sessions to each other in-process, delivering callbacks
// synchronously the way a signalling provider would asynchronously.
type loopback struct {
	mu       sync.Mutex
	sessions map[string]*Session
	pending  map[string]*MediaStream // caller addr -> offered stream
	nextID   int
}

func newLoopback() *loopback {
	return &loopback{
		sessions: make(map[string]*Session),
		pending:  make(map[string]*MediaStream),
	}
}

func (l *loopback) Open(s *Session, address string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if address == "" {
		l.nextID++
		address = fmt.Sprintf("peer-%d", l.nextID)
	}
	if _, taken := l.sessions[address]; taken {
		return "", fmt.Errorf("address %q already taken", address)
	}
	l.sessions[address] = s
	return address, nil
}

func (l *loopback) session(addr string) *Session {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sessions[addr]
}

func (l *loopback) Call(from, to string, stream *MediaStream) error {
	target := l.session(to)
	if target == nil {
		return fmt.Errorf("no peer at %q", to)
	}
	l.mu.Lock()
	l.pending[from] = stream
	l.mu.Unlock()

	target.Dispatch(Event{Type: EventIncomingCall, PeerID: from})
	return nil
}

func (l *loopback) Answer(from, to string, stream *MediaStream) error {
	caller := l.session(to)
	callee := l.session(from)
	if caller == nil || callee == nil {
		return fmt.Errorf("no peer pair %q/%q", from, to)
	}
	l.mu.Lock()
	offered := l.pending[to]
	delete(l.pending, to)
	l.mu.Unlock()

	caller.Dispatch(Event{Type: EventStreamReceived, PeerID: from, Stream: stream})
	callee.Dispatch(Event{Type: EventStreamReceived, PeerID: to, Stream: offered})
	return nil
}

func (l *loopback) Connect(from, to string) error {
	if l.session(to) == nil {
		return fmt.Errorf("no peer at %q", to)
	}
	return nil
}

func (l *loopback) SendData(from, to string, payload DataPayload) error {
	target := l.session(to)
	if target == nil {
		return fmt.Errorf("no peer at %q", to)
	}
	target.Dispatch(Event{Type: EventDataReceived, PeerID: from, Payload: payload})
	return nil
}

func (l *loopback) Close(from string) {
	l.mu.Lock()
	delete(l.sessions, from)
	remaining := make([]*Session, 0, len(l.sessions))
	for _, s := range l.sessions {
		remaining = append(remaining, s)
	}
	l.mu.Unlock()

	for _, s := range remaining {
		s.Dispatch(Event{Type: EventConnectionClosed, PeerID: from})
	}
}

func startCall(t *testing.T, roomID string) (*loopback, *Session, *Session) {
	t.Helper()

	transport := newLoopback()
	host := NewSession("Alice", &fakeDevices{}, transport)
	joiner := NewSession("Bob", &fakeDevices{}, transport)

	require.NoError(t, host.HostRoom(roomID))
	require.NoError(t, joiner.JoinRoom(roomID))
	return transport, host, joiner
}

func TestHostAndJoinerReachInCall(t *testing.T) {
	_, host, joiner := startCall(t, "room-1")

	assert.Equal(t, StateInCall, host.State())
	assert.Equal(t, StateInCall, joiner.State())
	assert.Equal(t, "room-1", host.Addr())

	require.Equal(t, 1, host.Registry().Len())
	remote, ok := host.Registry().Get(joiner.Addr())
	require.True(t, ok)
	assert.Equal(t, "Bob", remote.Username)
	require.NotNil(t, remote.Stream)

	require.Equal(t, 1, joiner.Registry().Len())
	remote, ok = joiner.Registry().Get("room-1")
	require.True(t, ok)
	assert.Equal(t, "Alice", remote.Username)
	require.NotNil(t, remote.Stream)
}

func TestHostRoomAddressTaken(t *testing.T) {
	transport := newLoopback()
	first := NewSession("Alice", &fakeDevices{}, transport)
	second := NewSession("Mallory", &fakeDevices{}, transport)

	require.NoError(t, first.HostRoom("room-1"))
	err := second.HostRoom("room-1")
	require.Error(t, err)
	assert.Equal(t, StateEnded, second.State())
}

func TestSessionCannotStartTwice(t *testing.T) {
	_, host, joiner := startCall(t, "room-1")

	assert.ErrorIs(t, host.HostRoom("room-2"), ErrSessionActive)
	assert.ErrorIs(t, joiner.JoinRoom("room-2"), ErrSessionActive)
}

func TestMediaFailureEndsSession(t *testing.T) {
	for _, mediaErr := range []error{ErrPermissionDenied, ErrNoDevice, ErrDeviceBusy} {
		transport := newLoopback()
		s := NewSession("Alice", &fakeDevices{userMediaErr: mediaErr}, transport)

		err := s.HostRoom("room-1")
		// Each failure category surfaces unchanged so the UI can show
		// its specific message.
		assert.ErrorIs(t, err, mediaErr)
		assert.Equal(t, StateEnded, s.State())
		assert.ErrorIs(t, s.Err(), mediaErr)
	}
}

func TestChatMessageDelivery(t *testing.T) {
	_, host, joiner := startCall(t, "room-1")

	sent := joiner.SendMessage("hello")
	require.NotNil(t, sent)
	assert.True(t, sent.IsLocal)
	assert.Equal(t, "Bob", sent.Sender)
	assert.NotZero(t, sent.Timestamp)

	require.Equal(t, 1, joiner.Chat().Len())
	assert.True(t, joiner.Chat().Messages()[0].IsLocal)

	require.Equal(t, 1, host.Chat().Len())
	got := host.Chat().Messages()[0]
	assert.Equal(t, "hello", got.Text)
	assert.Equal(t, "Bob", got.Sender)
	assert.False(t, got.IsLocal)
}

func TestSendMessageBlankIsNoOp(t *testing.T) {
	_, host, joiner := startCall(t, "room-1")

	assert.Nil(t, joiner.SendMessage("   \t\n"))
	assert.Equal(t, 0, joiner.Chat().Len())
	assert.Equal(t, 0, host.Chat().Len())
}

func TestHangupEndsSessionAndNotifiesPeer(t *testing.T) {
	_, host, joiner := startCall(t, "room-1")

	host.Hangup()
	assert.Equal(t, StateEnded, host.State())
	assert.Equal(t, 0, host.Registry().Len())

	// The joiner saw the connection close and dropped the host.
	assert.Equal(t, 0, joiner.Registry().Len())

	// Hangup is idempotent.
	host.Hangup()
	assert.Equal(t, StateEnded, host.State())
}

func TestEndpointErrorEndsSession(t *testing.T) {
	_, _, joiner := startCall(t, "room-1")

	joiner.Dispatch(Event{Type: EventConnectionError, Err: fmt.Errorf("network unreachable")})
	assert.Equal(t, StateEnded, joiner.State())
	assert.EqualError(t, joiner.Err(), "network unreachable")
	assert.Equal(t, 0, joiner.Registry().Len())
}

func TestPeerErrorDropsOnlyThatPeer(t *testing.T) {
	_, host, joiner := startCall(t, "room-1")

	host.Dispatch(Event{Type: EventConnectionError, PeerID: joiner.Addr(), Err: fmt.Errorf("ice failed")})
	assert.Equal(t, StateInCall, host.State())
	assert.Equal(t, 0, host.Registry().Len())
}
