package meet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalMessageFields(t *testing.T) {
	msg := newLocalMessage("Alice", "hello")

	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, "Alice", msg.Sender)
	assert.Equal(t, "hello", msg.Text)
	assert.NotZero(t, msg.Timestamp)
	assert.True(t, msg.IsLocal)
}

func TestAppendRemoteForcesNonLocal(t *testing.T) {
	chat := NewChatLog()
	msg := newLocalMessage("Bob", "hi")
	msg.IsLocal = true

	chat.AppendRemote(msg)

	require.Equal(t, 1, chat.Len())
	assert.False(t, chat.Messages()[0].IsLocal)
}

func TestMessagesReturnsCopy(t *testing.T) {
	chat := NewChatLog()
	chat.Append(newLocalMessage("Alice", "one"))

	snapshot := chat.Messages()
	snapshot[0].Text = "mutated"

	assert.Equal(t, "one", chat.Messages()[0].Text)
}

func TestAppendPreservesOrder(t *testing.T) {
	chat := NewChatLog()
	for _, text := range []string{"first", "second", "third"} {
		chat.Append(newLocalMessage("Alice", text))
	}

	messages := chat.Messages()
	require.Len(t, messages, 3)
	assert.Equal(t, "first", messages[0].Text)
	assert.Equal(t, "second", messages[1].Text)
	assert.Equal(t, "third", messages[2].Text)
}
