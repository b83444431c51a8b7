package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	BookingStatusUpcoming  = "Upcoming"
	BookingStatusCompleted = "Completed"

	BookingTypeAppointment = "appointment"
	BookingTypeSession     = "session"
)

type Booking struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID       uuid.UUID  `gorm:"not null;index" json:"user_id"`
	UserName     string     `gorm:"size:255;not null" json:"user_name"`
	UserEmail    string     `gorm:"size:255;not null" json:"user_email"`
	SessionType  string     `gorm:"size:50" json:"session_type"`
	SessionTitle string     `gorm:"size:255" json:"session_title"`
	Date         string     `gorm:"size:10;not null" json:"date"`
	Time         string     `gorm:"size:50;not null" json:"time"`
	Status       string     `gorm:"size:20;not null;default:'Upcoming'" json:"status"`
	BookingType  string     `gorm:"size:20;not null" json:"booking_type"`
	SessionID    *uuid.UUID `gorm:"index" json:"session_id,omitempty"`
	Reference    *string    `gorm:"size:20" json:"reference,omitempty"`

	User User `gorm:"foreignkey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
