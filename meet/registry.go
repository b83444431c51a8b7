package meet

import "sync"

// DefaultUsername labels a participant until the data-channel handshake
// delivers the real one.
const DefaultUsername = "User"

type Participant struct {
	PeerID   string
	Username string
	Stream   *MediaStream
}

// Registry tracks the active remote participants of a call session, keyed by
// peer identifier. Events may arrive from multiple reader goroutines, so all
// access is mutex-guarded.
type Registry struct {
	mu           sync.RWMutex
	participants map[string]*Participant
}

func NewRegistry() *Registry {
	return &Registry{participants: make(map[string]*Participant)}
}

// AddIfAbsent records a participant for an answered incoming call. Adding an
// identifier that is already present is a no-op, so duplicate stream events
// cannot create duplicate entries.
func (r *Registry) AddIfAbsent(peerID string, stream *MediaStream) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.participants[peerID]; ok {
		return
	}
	r.participants[peerID] = &Participant{PeerID: peerID, Username: DefaultUsername, Stream: stream}
}

// Upsert records the remote stream of an outgoing call, updating the entry
// in place when the peer is already known.
func (r *Registry) Upsert(peerID string, stream *MediaStream) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.participants[peerID]; ok {
		existing.Stream = stream
		return
	}
	r.participants[peerID] = &Participant{PeerID: peerID, Username: DefaultUsername, Stream: stream}
}

// SetUsername applies the handshake payload. Unknown identifiers are ignored
// rather than creating stream-less entries.
func (r *Registry) SetUsername(peerID, username string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if participant, ok := r.participants[peerID]; ok {
		participant.Username = username
	}
}

func (r *Registry) Remove(peerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.participants, peerID)
}

func (r *Registry) Get(peerID string) (*Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	participant, ok := r.participants[peerID]
	return participant, ok
}

func (r *Registry) List() []*Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*Participant, 0, len(r.participants))
	for _, participant := range r.participants {
		list = append(list, participant)
	}
	return list
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.participants)
}

func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.participants = make(map[string]*Participant)
}
