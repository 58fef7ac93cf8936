package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type AvailabilityQuery struct {
	DoctorID uuid.UUID `json:"doctor_id" validate:"required"`
	Date     string    `json:"date" validate:"required,date"`
	Time     string    `json:"time" validate:"required,hhmm"`
}

// BookAppointmentRequest carries the slot plus the payment evidence returned by checkout.
type BookAppointmentRequest struct {
	DoctorID  uuid.UUID `json:"doctor_id" validate:"required"`
	Date      string    `json:"date" validate:"required,date"`
	Time      string    `json:"time" validate:"required,hhmm"`
	PaymentID string    `json:"payment_id"`
	OrderID   string    `json:"order_id"`
	Signature string    `json:"signature"`
}

type RescheduleAppointmentRequest struct {
	Date string `json:"date" validate:"required,date"`
	Time string `json:"time" validate:"required,hhmm"`
}

// Response DTOs

type AvailabilityResponse struct {
	Available bool `json:"available"`
}

type AppointmentResponse struct {
	ID          uuid.UUID       `json:"id"`
	PatientID   uuid.UUID       `json:"patient_id"`
	PatientName string          `json:"patient_name,omitempty"`
	DoctorID    uuid.UUID       `json:"doctor_id"`
	DoctorName  string          `json:"doctor_name,omitempty"`
	Date        string          `json:"date"`
	Time        string          `json:"time"`
	Price       decimal.Decimal `json:"price"`
	Status      string          `json:"status"`
	PaymentID   string          `json:"payment_id,omitempty"`
	OrderID     string          `json:"order_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
