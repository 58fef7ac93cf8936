package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DoctorStatus is the approval state of a doctor account
type DoctorStatus string

const (
	DoctorStatusPending  DoctorStatus = "pending"
	DoctorStatusApproved DoctorStatus = "approved"
)

// Availability tells whether a doctor currently accepts bookings
type Availability string

const (
	AvailabilityAvailable   Availability = "available"
	AvailabilityUnavailable Availability = "unavailable"
)

// DoctorProfile represents doctor-specific directory data
type DoctorProfile struct {
	UserID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"user_id"`
	Status         DoctorStatus    `gorm:"type:varchar(20);not null;index" json:"status"`
	Availability   Availability    `gorm:"type:varchar(20);not null" json:"availability"`
	Price          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Specialization string          `gorm:"type:varchar(100)" json:"specialization,omitempty"`
	Biography      string          `gorm:"type:text" json:"biography,omitempty"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}

// IsApproved checks if the doctor passed admin approval
func (d *DoctorProfile) IsApproved() bool {
	return d.Status == DoctorStatusApproved
}

// IsAvailable checks if the doctor currently accepts bookings
func (d *DoctorProfile) IsAvailable() bool {
	return d.Availability == AvailabilityAvailable
}
