package repository

import (
	"context"

	"uplift-backend/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DoctorProfileRepository interface {
	Create(db *gorm.DB, profile *entity.DoctorProfile) error
}

// DoctorUpdate is a partial update of directory fields; nil fields are left untouched.
type DoctorUpdate struct {
	Status       *entity.DoctorStatus
	Availability *entity.Availability
	Price        *decimal.Decimal
}

// DoctorDirectory is the read-mostly doctor catalogue the booking engine consults.
// GetDoctor returns (nil, nil) when no doctor has that id.
type DoctorDirectory interface {
	GetDoctor(ctx context.Context, id uuid.UUID) (*entity.DoctorProfile, error)
	ListApproved(ctx context.Context) ([]entity.DoctorProfile, error)
	ListAll(ctx context.Context) ([]entity.DoctorProfile, error)
	Update(ctx context.Context, id uuid.UUID, patch DoctorUpdate) (*entity.DoctorProfile, error)
}
