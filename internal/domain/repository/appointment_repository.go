package repository

import (
	"context"
	"errors"
	"time"

	"uplift-backend/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrDuplicateSlot is returned by SlotLedger writes that would put a second
// appointment on an occupied (doctor, date, time) slot.
var ErrDuplicateSlot = errors.New("slot already has an appointment")

// ErrDuplicateOrder is returned by Insert when the payment order already backs
// another appointment.
var ErrDuplicateOrder = errors.New("payment order already used by an appointment")

// Slot identifies a bookable (doctor, date, time) triple. Date is a calendar day at UTC
// midnight and Time is "HH:MM".
type Slot struct {
	DoctorID uuid.UUID
	Date     time.Time
	Time     string
}

// SlotLedger is the source of truth for booked appointments.
//
// Insert and Update must be atomic with respect to the slot: when the slot is taken
// they fail with ErrDuplicateSlot and write nothing. Finders return (nil, nil) when
// nothing matches.
type SlotLedger interface {
	FindConflict(ctx context.Context, slot Slot) (*entity.Appointment, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	Insert(ctx context.Context, appointment *entity.Appointment) error
	Update(ctx context.Context, id uuid.UUID, date time.Time, timeOfDay string) (*entity.Appointment, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]entity.Appointment, error)
	ListAll(ctx context.Context) ([]entity.Appointment, error)
	// DeleteElapsed removes appointments with date < day, or date == day and time < timeOfDay,
	// and returns their ids.
	DeleteElapsed(ctx context.Context, day time.Time, timeOfDay string) ([]uuid.UUID, error)
}
