package repository

import (
	"context"
	"errors"

	"uplift-backend/internal/domain/entity"
	domainRepo "uplift-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorProfileRepository struct{}

func NewDoctorProfileRepository() domainRepo.DoctorProfileRepository {
	return &doctorProfileRepository{}
}

func (r *doctorProfileRepository) Create(db *gorm.DB, profile *entity.DoctorProfile) error {
	return db.Omit("User").Create(profile).Error
}

type doctorDirectory struct {
	db *gorm.DB
}

func NewDoctorDirectory(db *gorm.DB) domainRepo.DoctorDirectory {
	return &doctorDirectory{db: db}
}

func (r *doctorDirectory) GetDoctor(ctx context.Context, id uuid.UUID) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", id).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// ListApproved returns approved doctors whose account is active.
func (r *doctorDirectory) ListApproved(ctx context.Context) ([]entity.DoctorProfile, error) {
	var profiles []entity.DoctorProfile
	err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = doctor_profiles.user_id").
		Where("doctor_profiles.status = ? AND users.is_active = ?", entity.DoctorStatusApproved, true).
		Preload("User").
		Order("users.username ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *doctorDirectory) ListAll(ctx context.Context) ([]entity.DoctorProfile, error) {
	var profiles []entity.DoctorProfile
	err := r.db.WithContext(ctx).Preload("User").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *doctorDirectory) Update(ctx context.Context, id uuid.UUID, patch domainRepo.DoctorUpdate) (*entity.DoctorProfile, error) {
	updates := map[string]interface{}{}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.Availability != nil {
		updates["availability"] = *patch.Availability
	}
	if patch.Price != nil {
		updates["price"] = *patch.Price
	}
	if len(updates) == 0 {
		return r.GetDoctor(ctx, id)
	}

	result := r.db.WithContext(ctx).Model(&entity.DoctorProfile{}).Where("user_id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetDoctor(ctx, id)
}
