package services

import (
	"errors"
	"testing"

	"github.com/engiversee/platform/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore is an in-memory SessionStore. Atomic units run under a single
// goroutine in tests, so no locking is needed.
type memoryStore struct {
	sessions map[uuid.UUID]*models.Session
	bookings map[uuid.UUID]*models.Booking
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		sessions: make(map[uuid.UUID]*models.Session),
		bookings: make(map[uuid.UUID]*models.Booking),
	}
}

func (m *memoryStore) Atomically(fn func(tx SessionTx) error) error {
	return fn(m)
}

func (m *memoryStore) LockSession(id uuid.UUID) (*models.Session, error) {
	session, ok := m.sessions[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	copied := *session
	return &copied, nil
}

func (m *memoryStore) SaveSession(session *models.Session) error {
	copied := *session
	m.sessions[session.ID] = &copied
	return nil
}

func (m *memoryStore) CreateBooking(booking *models.Booking) error {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	copied := *booking
	m.bookings[booking.ID] = &copied
	return nil
}

func (m *memoryStore) GetBooking(id uuid.UUID) (*models.Booking, error) {
	booking, ok := m.bookings[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	copied := *booking
	return &copied, nil
}

func (m *memoryStore) DeleteBooking(id uuid.UUID) error {
	delete(m.bookings, id)
	return nil
}

func seedSession(store *memoryStore, capacity, enrolled int) *models.Session {
	session := &models.Session{
		ID:         uuid.New(),
		Title:      "Intro to Web Development",
		Domain:     "WebDev",
		Date:       "2025-07-01",
		Time:       "10:00 AM - 11:00 AM",
		Instructor: "Jane Mwangi",
		Level:      "Beginner",
		Capacity:   capacity,
		Enrolled:   enrolled,
	}
	store.sessions[session.ID] = session
	return session
}

func TestBookSessionSuccess(t *testing.T) {
	store := newMemoryStore()
	session := seedSession(store, 10, 3)
	svc := NewBookingService(store)

	userID := uuid.New()
	booking, err := svc.BookSession(userID, "Alice Otieno", "alice@example.com", session.ID)

	require.NoError(t, err)
	require.NotNil(t, booking)
	assert.Equal(t, models.BookingTypeSession, booking.BookingType)
	assert.Equal(t, models.BookingStatusUpcoming, booking.Status)
	assert.Equal(t, session.Title, booking.SessionTitle)
	require.NotNil(t, booking.SessionID)
	assert.Equal(t, session.ID, *booking.SessionID)

	assert.Equal(t, 4, store.sessions[session.ID].Enrolled)
	assert.Len(t, store.bookings, 1)
}

func TestBookSessionFullRejected(t *testing.T) {
	store := newMemoryStore()
	session := seedSession(store, 5, 5)
	svc := NewBookingService(store)

	booking, err := svc.BookSession(uuid.New(), "Bob Kamau", "bob@example.com", session.ID)

	assert.ErrorIs(t, err, ErrSessionFull)
	assert.Nil(t, booking)
	assert.Equal(t, 5, store.sessions[session.ID].Enrolled)
	assert.Empty(t, store.bookings)
}

func TestBookSessionNotFound(t *testing.T) {
	store := newMemoryStore()
	svc := NewBookingService(store)

	booking, err := svc.BookSession(uuid.New(), "Alice", "alice@example.com", uuid.New())

	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Nil(t, booking)
}

func TestCancelBookingReleasesSeat(t *testing.T) {
	store := newMemoryStore()
	session := seedSession(store, 10, 3)
	svc := NewBookingService(store)

	userID := uuid.New()
	booking, err := svc.BookSession(userID, "Alice Otieno", "alice@example.com", session.ID)
	require.NoError(t, err)

	require.NoError(t, svc.CancelBooking(userID, booking.ID))

	assert.Empty(t, store.bookings)
	assert.Equal(t, 3, store.sessions[session.ID].Enrolled)
}

func TestCancelBookingWrongUser(t *testing.T) {
	store := newMemoryStore()
	session := seedSession(store, 10, 0)
	svc := NewBookingService(store)

	booking, err := svc.BookSession(uuid.New(), "Alice Otieno", "alice@example.com", session.ID)
	require.NoError(t, err)

	err = svc.CancelBooking(uuid.New(), booking.ID)

	assert.ErrorIs(t, err, ErrNotYourBooking)
	assert.Len(t, store.bookings, 1)
	assert.Equal(t, 1, store.sessions[session.ID].Enrolled)
}

func TestCancelAppointmentWithoutSession(t *testing.T) {
	store := newMemoryStore()
	svc := NewBookingService(store)

	userID := uuid.New()
	booking := &models.Booking{
		UserID:      userID,
		UserName:    "Alice Otieno",
		UserEmail:   "alice@example.com",
		SessionType: "WebDev",
		Date:        "2025-07-01",
		Time:        "9:00 AM - 10:00 AM",
		Status:      models.BookingStatusUpcoming,
		BookingType: models.BookingTypeAppointment,
	}
	require.NoError(t, store.CreateBooking(booking))

	require.NoError(t, svc.CancelBooking(userID, booking.ID))
	assert.Empty(t, store.bookings)
}
