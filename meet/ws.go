package meet

import (
	"log"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// ServeWs handles one signalling connection. The first frame must be a join
// envelope; a host takes the room identifier as its peer address, a joiner
// gets a random one. Every subsequent frame is relayed within the room until
// the peer leaves or the connection drops.
func ServeWs(hub *Hub, conn *websocket.Conn) {
	defer conn.Close()

	var join Envelope
	if err := conn.ReadJSON(&join); err != nil {
		log.Printf("Error reading join frame: %v", err)
		return
	}
	if join.Type != MsgJoin || join.Room == "" {
		_ = conn.WriteJSON(Envelope{Type: MsgError, Error: "expected a join frame with a room"})
		return
	}

	username := join.Username
	if username == "" {
		username = DefaultUsername
	}

	peerID := uuid.NewString()
	if join.Host {
		peerID = join.Room
	}

	client := &HubClient{
		PeerID:   peerID,
		RoomID:   join.Room,
		Username: username,
		Conn:     conn,
	}
	if err := hub.Register(client); err != nil {
		_ = conn.WriteJSON(Envelope{Type: MsgError, Error: err.Error()})
		return
	}
	defer hub.Unregister(client)

	if err := client.writeJSON(Envelope{
		Type:   MsgWelcome,
		Room:   join.Room,
		PeerID: peerID,
		Peers:  hub.Roster(join.Room),
	}); err != nil {
		log.Printf("Error writing welcome to peer %s: %v", peerID, err)
		return
	}

	for {
		var env Envelope
		if err := conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Peer %s connection error: %v", peerID, err)
			}
			return
		}

		switch env.Type {
		case MsgCall, MsgAnswer, MsgStream, MsgData:
			// Sender identity and room come from the connection, never
			// from the frame.
			env.From = peerID
			env.Room = client.RoomID
			hub.Forward(env)
		case MsgLeave:
			return
		default:
			_ = client.writeJSON(Envelope{Type: MsgError, Error: "unknown message type: " + env.Type})
		}
	}
}
