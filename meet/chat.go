package meet

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	ID        string `json:"id"`
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds
	IsLocal   bool   `json:"is_local"`
}

// ChatLog is the append-only message sequence of one call session. Delivery
// is at-most-once: messages are never acknowledged, deduplicated or
// reconciled against replays.
type ChatLog struct {
	mu       sync.RWMutex
	messages []ChatMessage
}

func NewChatLog() *ChatLog {
	return &ChatLog{}
}

func newLocalMessage(sender, text string) ChatMessage {
	return ChatMessage{
		ID:        uuid.NewString(),
		Sender:    sender,
		Text:      text,
		Timestamp: time.Now().UnixMilli(),
		IsLocal:   true,
	}
}

func (l *ChatLog) Append(msg ChatMessage) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msg)
}

// AppendRemote records a received payload, marked non-local regardless of
// what the sender claimed.
func (l *ChatLog) AppendRemote(msg ChatMessage) {
	msg.IsLocal = false
	l.Append(msg)
}

func (l *ChatLog) Messages() []ChatMessage {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]ChatMessage, len(l.messages))
	copy(out, l.messages)
	return out
}

func (l *ChatLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.messages)
}
