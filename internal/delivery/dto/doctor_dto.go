package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

// UpdateDoctorRequest is the admin patch of a doctor's directory entry.
type UpdateDoctorRequest struct {
	Status       *string          `json:"status" validate:"omitempty,oneof=pending approved"`
	Availability *string          `json:"availability" validate:"omitempty,oneof=available unavailable"`
	Price        *decimal.Decimal `json:"price" validate:"omitempty"`
}

// UpdateDoctorProfileRequest is a doctor's patch of their own entry.
type UpdateDoctorProfileRequest struct {
	Availability *string          `json:"availability" validate:"omitempty,oneof=available unavailable"`
	Price        *decimal.Decimal `json:"price" validate:"omitempty"`
}

// Response DTOs

type DoctorResponse struct {
	ID             uuid.UUID       `json:"id"`
	Username       string          `json:"username,omitempty"`
	Email          string          `json:"email,omitempty"`
	Status         string          `json:"status"`
	Availability   string          `json:"availability"`
	Price          decimal.Decimal `json:"price"`
	Specialization string          `json:"specialization,omitempty"`
	Biography      string          `json:"biography,omitempty"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
