package services

import (
	"github.com/engiversee/platform/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSessionStore backs the booking service with Postgres. Atomic units map
// to database transactions and session locks to SELECT ... FOR UPDATE.
type GormSessionStore struct {
	DB *gorm.DB
}

func NewGormSessionStore(db *gorm.DB) *GormSessionStore {
	return &GormSessionStore{DB: db}
}

func (s *GormSessionStore) Atomically(fn func(tx SessionTx) error) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return fn(&gormSessionTx{tx: tx})
	})
}

type gormSessionTx struct {
	tx *gorm.DB
}

func (g *gormSessionTx) LockSession(id uuid.UUID) (*models.Session, error) {
	var session models.Session
	err := g.tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&session, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (g *gormSessionTx) SaveSession(session *models.Session) error {
	return g.tx.Save(session).Error
}

func (g *gormSessionTx) CreateBooking(booking *models.Booking) error {
	return g.tx.Create(booking).Error
}

func (g *gormSessionTx) GetBooking(id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	if err := g.tx.First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (g *gormSessionTx) DeleteBooking(id uuid.UUID) error {
	return g.tx.Delete(&models.Booking{}, "id = ?", id).Error
}
