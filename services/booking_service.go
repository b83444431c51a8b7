package services

import (
	"errors"

	"github.com/engiversee/platform/models"
	"github.com/engiversee/platform/notifications"
	"github.com/google/uuid"
)

var (
	ErrSessionFull     = errors.New("this session is already full")
	ErrSessionNotFound = errors.New("session not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrNotYourBooking  = errors.New("this is not your booking")
)

// SessionTx is the set of store operations available inside one atomic unit.
// LockSession must hold the session row against concurrent bookers until the
// unit commits.
type SessionTx interface {
	LockSession(id uuid.UUID) (*models.Session, error)
	SaveSession(session *models.Session) error
	CreateBooking(booking *models.Booking) error
	GetBooking(id uuid.UUID) (*models.Booking, error)
	DeleteBooking(id uuid.UUID) error
}

type SessionStore interface {
	Atomically(fn func(tx SessionTx) error) error
}

type BookingService struct {
	store SessionStore
}

func NewBookingService(store SessionStore) *BookingService {
	return &BookingService{store: store}
}

// BookSession reserves a seat on a catalog session. The capacity check and
// the enrolled increment happen inside one transaction under a row lock, so
// two concurrent bookers cannot both pass the check.
func (s *BookingService) BookSession(userID uuid.UUID, userName, userEmail string, sessionID uuid.UUID) (*models.Booking, error) {
	var booking *models.Booking

	err := s.store.Atomically(func(tx SessionTx) error {
		session, err := tx.LockSession(sessionID)
		if err != nil {
			return ErrSessionNotFound
		}

		if session.Enrolled >= session.Capacity {
			return ErrSessionFull
		}

		session.Enrolled++
		if err := tx.SaveSession(session); err != nil {
			return err
		}

		sessionID := session.ID
		booking = &models.Booking{
			UserID:       userID,
			UserName:     userName,
			UserEmail:    userEmail,
			SessionType:  session.Domain,
			SessionTitle: session.Title,
			Date:         session.Date,
			Time:         session.Time,
			Status:       models.BookingStatusUpcoming,
			BookingType:  models.BookingTypeSession,
			SessionID:    &sessionID,
		}
		return tx.CreateBooking(booking)
	})
	if err != nil {
		return nil, err
	}

	go notifications.SendBookingConfirmation(booking)

	return booking, nil
}

// CancelBooking removes the booking and, when it points at a catalog
// session, releases the seat. Both happen in the same transaction so a crash
// cannot leave the enrolled counter overcounted.
func (s *BookingService) CancelBooking(userID, bookingID uuid.UUID) error {
	return s.store.Atomically(func(tx SessionTx) error {
		booking, err := tx.GetBooking(bookingID)
		if err != nil {
			return ErrBookingNotFound
		}
		if booking.UserID != userID {
			return ErrNotYourBooking
		}

		if err := tx.DeleteBooking(bookingID); err != nil {
			return err
		}

		if booking.SessionID == nil {
			return nil
		}

		session, err := tx.LockSession(*booking.SessionID)
		if err != nil {
			// The catalog entry is gone; nothing left to release.
			return nil
		}
		if session.Enrolled > 0 {
			session.Enrolled--
		}
		return tx.SaveSession(session)
	})
}
