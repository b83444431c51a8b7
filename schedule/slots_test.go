package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotAvailablePastDate(t *testing.T) {
	slot, ok := FindSlot("10:00 AM - 11:00 AM")
	require.True(t, ok)

	now := time.Date(2025, 6, 15, 8, 0, 0, 0, time.Local)

	// A past date is never bookable, regardless of how many bookings exist.
	for _, count := range []int{0, 50, SlotBookingLimit} {
		assert.False(t, SlotAvailable(slot, "2025-06-14", count, now))
	}
}

func TestSlotAvailableFutureDate(t *testing.T) {
	slot, ok := FindSlot("10:00 AM - 11:00 AM")
	require.True(t, ok)

	now := time.Date(2025, 6, 15, 8, 0, 0, 0, time.Local)

	assert.True(t, SlotAvailable(slot, "2025-06-16", 0, now))
	assert.False(t, SlotAvailable(slot, "2025-06-16", SlotBookingLimit, now))
}

func TestSlotAvailableTodayBuffer(t *testing.T) {
	slot, ok := FindSlot("9:00 AM - 10:00 AM")
	require.True(t, ok)

	// 8:45 on the same day: the 9 AM slot starts inside the 30-minute buffer.
	now := time.Date(2025, 6, 15, 8, 45, 0, 0, time.Local)
	assert.False(t, SlotAvailable(slot, "2025-06-15", 0, now))

	// 8:15 leaves more than the buffer before the start.
	now = time.Date(2025, 6, 15, 8, 15, 0, 0, time.Local)
	assert.True(t, SlotAvailable(slot, "2025-06-15", 0, now))
}

func TestSlotStart(t *testing.T) {
	slot, ok := FindSlot("1:00 PM - 2:00 PM")
	require.True(t, ok)

	start, err := SlotStart(slot, "2025-06-15")
	require.NoError(t, err)
	assert.Equal(t, 13, start.Hour())
	assert.Equal(t, 0, start.Minute())
}

func TestSessionTitle(t *testing.T) {
	assert.Equal(t, "Web Development", SessionTitle("WebDev"))
	assert.Equal(t, "Quantum Computing", SessionTitle("Quantum Computing"))
	assert.True(t, IsValidSessionType("AIML"))
	assert.False(t, IsValidSessionType("Cooking"))
}
