package repository

import (
	"errors"
	"time"

	"uplift-backend/internal/domain/entity"
	domainRepo "uplift-backend/internal/domain/repository"
	"uplift-backend/internal/policy"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type sessionRepository struct{}

func NewSessionRepository() domainRepo.SessionRepository {
	return &sessionRepository{}
}

func (r *sessionRepository) Create(db *gorm.DB, session *entity.Session) error {
	return db.Omit("Doctor").Create(session).Error
}

func (r *sessionRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Session, error) {
	var session entity.Session
	err := db.Preload("Doctor").Where("id = ?", id).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// FindUpcoming returns sessions on or after the calendar day of from.
func (r *sessionRepository) FindUpcoming(db *gorm.DB, from time.Time) ([]entity.Session, error) {
	var sessions []entity.Session
	err := db.Preload("Doctor").
		Where("session_date >= ?", policy.FormatDate(from)).
		Order("session_date ASC, session_time ASC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepository) Update(db *gorm.DB, session *entity.Session) error {
	return db.Omit("Doctor").Save(session).Error
}

func (r *sessionRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.Session{})
	return result.RowsAffected, result.Error
}
