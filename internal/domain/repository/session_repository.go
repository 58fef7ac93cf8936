package repository

import (
	"time"

	"uplift-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(db *gorm.DB, session *entity.Session) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Session, error)
	FindUpcoming(db *gorm.DB, from time.Time) ([]entity.Session, error)
	Update(db *gorm.DB, session *entity.Session) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
