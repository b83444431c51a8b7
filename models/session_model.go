package models

import (
	"time"

	"github.com/google/uuid"
)

type Session struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	Domain     string    `gorm:"size:50;not null" json:"domain"`
	Date       string    `gorm:"size:10;not null" json:"date"`
	Time       string    `gorm:"size:50;not null" json:"time"`
	Instructor string    `gorm:"size:255;not null" json:"instructor"`
	Level      string    `gorm:"size:20;not null" json:"level"`
	Capacity   int       `gorm:"not null" json:"capacity"`
	Enrolled   int       `gorm:"not null;default:0" json:"enrolled"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
