package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusBooked AppointmentStatus = "booked"
)

// Appointment is a booked slot. At most one row exists per (doctor, date, time),
// enforced by idx_appointments_slot, and a payment order backs at most one row.
type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID        uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_appointments_slot,priority:1" json:"doctor_id"`
	AppointmentDate time.Time         `gorm:"type:date;not null;uniqueIndex:idx_appointments_slot,priority:2" json:"appointment_date"`
	AppointmentTime string            `gorm:"type:varchar(5);not null;uniqueIndex:idx_appointments_slot,priority:3" json:"appointment_time"`
	Price           decimal.Decimal   `gorm:"type:decimal(10,2);not null" json:"price"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null" json:"status"`
	PaymentID       string            `gorm:"type:varchar(100)" json:"payment_id,omitempty"`
	OrderID         string            `gorm:"type:varchar(100);uniqueIndex:idx_appointments_order,where:order_id <> ''" json:"order_id,omitempty"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsOwnedBy checks if the appointment belongs to the given patient
func (a *Appointment) IsOwnedBy(userID uuid.UUID) bool {
	return a.PatientID == userID
}
