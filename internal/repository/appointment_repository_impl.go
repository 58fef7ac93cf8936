package repository

import (
	"context"
	"errors"
	"time"

	"uplift-backend/internal/domain/entity"
	domainRepo "uplift-backend/internal/domain/repository"
	"uplift-backend/internal/policy"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	slotConstraint  = "idx_appointments_slot"
	orderConstraint = "idx_appointments_order"
)

type appointmentLedger struct {
	db *gorm.DB
}

// NewAppointmentLedger returns the Postgres-backed slot ledger. Slot uniqueness is
// enforced by the idx_appointments_slot index, not by the caller.
func NewAppointmentLedger(db *gorm.DB) domainRepo.SlotLedger {
	return &appointmentLedger{db: db}
}

func (r *appointmentLedger) FindConflict(ctx context.Context, slot domainRepo.Slot) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND appointment_date = ? AND appointment_time = ?",
			slot.DoctorID, policy.FormatDate(slot.Date), slot.Time).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentLedger) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentLedger) Insert(ctx context.Context, appointment *entity.Appointment) error {
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(appointment).Error
	switch {
	case isDuplicateKeyError(err, slotConstraint):
		return domainRepo.ErrDuplicateSlot
	case isDuplicateKeyError(err, orderConstraint):
		return domainRepo.ErrDuplicateOrder
	}
	return err
}

// Update moves an appointment to a new date and time. Returns (nil, nil) when the
// appointment no longer exists.
func (r *appointmentLedger) Update(ctx context.Context, id uuid.UUID, date time.Time, timeOfDay string) (*entity.Appointment, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"appointment_date": policy.FormatDate(date),
			"appointment_time": timeOfDay,
		})
	if result.Error != nil {
		if isDuplicateKeyError(result.Error, slotConstraint) {
			return nil, domainRepo.ErrDuplicateSlot
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

func (r *appointmentLedger) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Appointment{})
	return result.RowsAffected > 0, result.Error
}

func (r *appointmentLedger) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Doctor").
		Where("patient_id = ?", userID).
		Order("appointment_date ASC, appointment_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentLedger) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Where("doctor_id = ?", doctorID).
		Order("appointment_date ASC, appointment_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentLedger) ListAll(ctx context.Context) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient").Preload("Doctor").
		Order("appointment_date ASC, appointment_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentLedger) DeleteElapsed(ctx context.Context, day time.Time, timeOfDay string) ([]uuid.UUID, error) {
	var deleted []entity.Appointment
	d := policy.FormatDate(day)
	err := r.db.WithContext(ctx).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "id"}}}).
		Where("appointment_date < ? OR (appointment_date = ? AND appointment_time < ?)", d, d, timeOfDay).
		Delete(&deleted).Error
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(deleted))
	for _, a := range deleted {
		ids = append(ids, a.ID)
	}
	return ids, nil
}
