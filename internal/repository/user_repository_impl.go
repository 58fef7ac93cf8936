package repository

import (
	"errors"
	"fmt"

	"uplift-backend/internal/domain/entity"
	domainRepo "uplift-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(db *gorm.DB, user *entity.User) error {
	err := db.Omit("Role", "DoctorProfile").Create(user).Error
	switch {
	case isDuplicateKeyError(err, "email"):
		return fmt.Errorf("%w: %w", domainRepo.ErrDuplicateEmail, err)
	case isDuplicateKeyError(err, "username"):
		return fmt.Errorf("%w: %w", domainRepo.ErrDuplicateUsername, err)
	}
	return err
}

func (r *userRepository) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	return r.findOne(db.Where("email = ?", email))
}

func (r *userRepository) FindByUsername(db *gorm.DB, username string) (*entity.User, error) {
	return r.findOne(db.Where("username = ?", username))
}

func (r *userRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	return r.findOne(db.Preload("DoctorProfile").Where("id = ?", id))
}

func (r *userRepository) FindAll(db *gorm.DB) ([]entity.User, error) {
	var users []entity.User
	err := db.Preload("Role").Preload("DoctorProfile").Order("created_at DESC").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) findOne(query *gorm.DB) (*entity.User, error) {
	var user entity.User
	err := query.First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
