package meet

import (
	"errors"
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// Envelope is the JSON frame relayed between peers. The server never
// interprets call payloads; it only routes them within a room and keeps the
// participant roster current.
type Envelope struct {
	Type     string       `json:"type"`
	Room     string       `json:"room,omitempty"`
	From     string       `json:"from,omitempty"`
	To       string       `json:"to,omitempty"`
	Host     bool         `json:"host,omitempty"`
	Username string       `json:"username,omitempty"`
	Audio    bool         `json:"audio,omitempty"`
	Video    bool         `json:"video,omitempty"`
	Payload  *DataPayload `json:"payload,omitempty"`
	PeerID   string       `json:"peer_id,omitempty"`
	Peers    []RosterPeer `json:"peers,omitempty"`
	Error    string       `json:"error,omitempty"`
}

type RosterPeer struct {
	PeerID   string `json:"peer_id"`
	Username string `json:"username"`
}

const (
	MsgJoin     = "join"
	MsgWelcome  = "welcome"
	MsgCall     = "call"
	MsgAnswer   = "answer"
	MsgStream   = "stream"
	MsgData     = "data"
	MsgLeave    = "leave"
	MsgPeerLeft = "peer-left"
	MsgError    = "error"
)

var ErrAddressTaken = errors.New("peer address already taken in this room")

type HubClient struct {
	PeerID   string
	RoomID   string
	Username string
	Conn     *websocket.Conn

	writeMu sync.Mutex
}

func (c *HubClient) writeJSON(v interface{}) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteJSON(v)
}

type room struct {
	clients map[string]*HubClient
	roster  *Registry
}

// Hub routes envelopes between the peers of a room. The host occupies the
// room identifier as its peer address, so "call the room" and "call the
// host" are the same operation.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]*room
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]*room)}
}

func (h *Hub) Register(client *HubClient) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[client.RoomID]
	if !ok {
		r = &room{clients: make(map[string]*HubClient), roster: NewRegistry()}
		h.rooms[client.RoomID] = r
		metricActiveRooms.Inc()
	}

	if _, taken := r.clients[client.PeerID]; taken {
		return ErrAddressTaken
	}

	r.clients[client.PeerID] = client
	r.roster.AddIfAbsent(client.PeerID, nil)
	r.roster.SetUsername(client.PeerID, client.Username)
	metricConnectedPeers.Inc()

	log.Printf("Peer registered: %s (room %s)", client.PeerID, client.RoomID)
	return nil
}

func (h *Hub) Unregister(client *HubClient) {
	h.mu.Lock()
	r, ok := h.rooms[client.RoomID]
	if !ok {
		h.mu.Unlock()
		return
	}
	if existing, found := r.clients[client.PeerID]; !found || existing != client {
		h.mu.Unlock()
		return
	}

	delete(r.clients, client.PeerID)
	r.roster.Remove(client.PeerID)
	metricConnectedPeers.Dec()

	var remaining []*HubClient
	for _, other := range r.clients {
		remaining = append(remaining, other)
	}
	if len(r.clients) == 0 {
		delete(h.rooms, client.RoomID)
		metricActiveRooms.Dec()
	}
	h.mu.Unlock()

	log.Printf("Peer unregistered: %s (room %s)", client.PeerID, client.RoomID)

	// Everyone still in the room learns the peer is gone so their
	// registries drop the entry.
	for _, other := range remaining {
		if err := other.writeJSON(Envelope{Type: MsgPeerLeft, From: client.PeerID, Room: client.RoomID}); err != nil {
			log.Printf("Error notifying peer %s: %v", other.PeerID, err)
		}
	}
}

// Forward routes an envelope to its addressee, or to every other peer in the
// room when To is empty.
func (h *Hub) Forward(env Envelope) {
	h.mu.RLock()
	r, ok := h.rooms[env.Room]
	if !ok {
		h.mu.RUnlock()
		return
	}

	var targets []*HubClient
	if env.To != "" {
		if target, found := r.clients[env.To]; found {
			targets = append(targets, target)
		}
	} else {
		for id, other := range r.clients {
			if id == env.From {
				continue
			}
			targets = append(targets, other)
		}
	}

	// Username handshakes keep the server-side roster current too.
	if env.Type == MsgData && env.Payload != nil && env.Payload.Kind == PayloadUsername {
		r.roster.SetUsername(env.From, env.Payload.Username)
	}
	h.mu.RUnlock()

	for _, target := range targets {
		if err := target.writeJSON(env); err != nil {
			log.Printf("Error forwarding %s to peer %s: %v", env.Type, target.PeerID, err)
			continue
		}
		metricRelayedMessages.WithLabelValues(env.Type).Inc()
	}
}

// Roster lists the participants of a room.
func (h *Hub) Roster(roomID string) []RosterPeer {
	h.mu.RLock()
	r, ok := h.rooms[roomID]
	h.mu.RUnlock()
	if !ok {
		return nil
	}

	participants := r.roster.List()
	peers := make([]RosterPeer, 0, len(participants))
	for _, p := range participants {
		peers = append(peers, RosterPeer{PeerID: p.PeerID, Username: p.Username})
	}
	return peers
}

func (h *Hub) RoomCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms)
}
