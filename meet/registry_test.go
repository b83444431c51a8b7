package meet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddIfAbsentIsIdempotent(t *testing.T) {
	registry := NewRegistry()
	first := NewMediaStream(true, true)
	second := NewMediaStream(true, true)

	registry.AddIfAbsent("peer-1", first)
	registry.AddIfAbsent("peer-1", second)

	require.Equal(t, 1, registry.Len())
	participant, ok := registry.Get("peer-1")
	require.True(t, ok)
	assert.Same(t, first, participant.Stream)
	assert.Equal(t, DefaultUsername, participant.Username)
}

func TestUpsertReplacesStream(t *testing.T) {
	registry := NewRegistry()
	first := NewMediaStream(true, true)
	second := NewMediaStream(true, true)

	registry.Upsert("peer-1", first)
	registry.SetUsername("peer-1", "Bob")
	registry.Upsert("peer-1", second)

	require.Equal(t, 1, registry.Len())
	participant, _ := registry.Get("peer-1")
	assert.Same(t, second, participant.Stream)
	assert.Equal(t, "Bob", participant.Username)
}

func TestSetUsernameIgnoresUnknownPeer(t *testing.T) {
	registry := NewRegistry()
	registry.SetUsername("ghost", "Bob")
	assert.Equal(t, 0, registry.Len())
}

func TestRemoveAndClear(t *testing.T) {
	registry := NewRegistry()
	registry.Upsert("peer-1", NewMediaStream(true, true))
	registry.Upsert("peer-2", NewMediaStream(true, true))

	registry.Remove("peer-1")
	assert.Equal(t, 1, registry.Len())
	_, ok := registry.Get("peer-1")
	assert.False(t, ok)

	registry.Clear()
	assert.Equal(t, 0, registry.Len())
	assert.Empty(t, registry.List())
}
