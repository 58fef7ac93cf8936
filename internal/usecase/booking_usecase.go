package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"uplift-backend/internal/converter"
	"uplift-backend/internal/delivery/dto"
	"uplift-backend/internal/domain/entity"
	"uplift-backend/internal/domain/repository"
	"uplift-backend/internal/infrastructure/metrics"
	"uplift-backend/internal/policy"
	"uplift-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrSlotConflict         = errors.New("this slot is already booked, please choose another time")
	ErrDoctorNotFound       = errors.New("doctor not found")
	ErrDoctorUnavailable    = errors.New("doctor is not available")
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrProtectedWindow      = errors.New("appointments cannot be changed this close to the scheduled date")
	ErrOutsideBusinessHours = errors.New("appointments can only be booked during business hours")
	ErrSlotInPast           = errors.New("cannot book a slot in the past")
	ErrInvalidSlot          = errors.New("invalid date or time, use YYYY-MM-DD and HH:MM")
	ErrPaymentRequired      = errors.New("payment details are required")
	ErrPaymentInvalid       = errors.New("payment could not be verified")
)

const (
	operationBook       = "book"
	operationReschedule = "reschedule"
	operationCancel     = "cancel"

	appointmentEntity = "appointment"
)

// BookingUsecase owns the appointment lifecycle: availability, booking, reschedule,
// cancellation and the sweep of elapsed appointments.
type BookingUsecase interface {
	CheckAvailability(ctx context.Context, query *dto.AvailabilityQuery) (*dto.AvailabilityResponse, error)
	BookAppointment(ctx context.Context, requester entity.Identity, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	RescheduleAppointment(ctx context.Context, requester entity.Identity, appointmentID uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error)
	CancelAppointment(ctx context.Context, requester entity.Identity, appointmentID uuid.UUID) error
	PurgeElapsedAppointments(ctx context.Context, now time.Time) ([]uuid.UUID, error)
	ListMyAppointments(ctx context.Context, requester entity.Identity) (*dto.AppointmentListResponse, error)
	ListDoctorAppointments(ctx context.Context, requester entity.Identity) (*dto.AppointmentListResponse, error)
	ListAllAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
}

type bookingUsecase struct {
	log       *logrus.Logger
	ledger    repository.SlotLedger
	directory repository.DoctorDirectory
	rules     policy.Rules
	payments  PaymentGateway
	notifier  AppointmentNotifier
	holds     SlotHolder
	audit     service.AuditService
	metrics   *metrics.BookingMetrics
	clock     Clock
}

// NewBookingUsecase wires the engine. payments, notifier, holds, audit and metrics may
// be nil; a nil payments gateway disables payment verification.
func NewBookingUsecase(
	log *logrus.Logger,
	ledger repository.SlotLedger,
	directory repository.DoctorDirectory,
	rules policy.Rules,
	payments PaymentGateway,
	notifier AppointmentNotifier,
	holds SlotHolder,
	audit service.AuditService,
	bookingMetrics *metrics.BookingMetrics,
	clock Clock,
) BookingUsecase {
	if clock == nil {
		clock = timeNow
	}
	return &bookingUsecase{
		log:       log,
		ledger:    ledger,
		directory: directory,
		rules:     rules,
		payments:  payments,
		notifier:  notifier,
		holds:     holds,
		audit:     audit,
		metrics:   bookingMetrics,
		clock:     clock,
	}
}

func (u *bookingUsecase) CheckAvailability(ctx context.Context, query *dto.AvailabilityQuery) (*dto.AvailabilityResponse, error) {
	slot, _, err := parseSlot(query.DoctorID, query.Date, query.Time)
	if err != nil {
		return nil, err
	}

	existing, err := u.ledger.FindConflict(ctx, slot)
	if err != nil {
		u.log.Warnf("Failed to check slot availability: %+v", err)
		return nil, infraError("check availability", err)
	}

	return &dto.AvailabilityResponse{Available: existing == nil}, nil
}

// BookAppointment books a slot for the requester.
//
// The ledger pre-check only gives early feedback. The insert itself is atomic on
// (doctor, date, time), so of concurrent requests for one slot exactly one succeeds
// and the rest get ErrSlotConflict.
func (u *bookingUsecase) BookAppointment(ctx context.Context, requester entity.Identity, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	slot, tod, err := parseSlot(req.DoctorID, req.Date, req.Time)
	if err != nil {
		return nil, err
	}
	if !u.rules.Hours.Contains(tod) {
		return nil, u.reject(operationBook, ErrOutsideBusinessHours)
	}
	if u.rules.InPast(slot.Date, tod, u.clock()) {
		return nil, u.reject(operationBook, ErrSlotInPast)
	}

	evidence := entity.PaymentEvidence{PaymentID: req.PaymentID, OrderID: req.OrderID, Signature: req.Signature}
	if u.payments != nil && !evidence.Present() {
		return nil, u.reject(operationBook, ErrPaymentRequired)
	}

	existing, err := u.ledger.FindConflict(ctx, slot)
	if err != nil {
		u.log.Warnf("Failed to check slot before booking: %+v", err)
		return nil, u.fail(operationBook, infraError("check slot", err))
	}
	if existing != nil {
		u.metrics.ObserveOperation(operationBook, metrics.OutcomeConflict)
		return nil, ErrSlotConflict
	}

	doctor, err := u.directory.GetDoctor(ctx, slot.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", slot.DoctorID, err)
		return nil, u.fail(operationBook, infraError("find doctor", err))
	}
	if doctor == nil {
		return nil, u.reject(operationBook, ErrDoctorNotFound)
	}
	if !policy.IsBookable(doctor) {
		return nil, u.reject(operationBook, ErrDoctorUnavailable)
	}

	if u.payments != nil {
		if !u.payments.VerifySignature(evidence) {
			u.log.Warnf("Payment signature mismatch for order %s by user %s", evidence.OrderID, requester.UserID)
			return nil, u.reject(operationBook, ErrPaymentInvalid)
		}
		if err := u.verifyOrder(ctx, requester, slot, doctor, evidence.OrderID); err != nil {
			return nil, err
		}
	}

	appointment := &entity.Appointment{
		ID:              uuid.New(),
		PatientID:       requester.UserID,
		DoctorID:        slot.DoctorID,
		AppointmentDate: slot.Date,
		AppointmentTime: slot.Time,
		Price:           doctor.Price,
		Status:          entity.AppointmentStatusBooked,
		PaymentID:       evidence.PaymentID,
		OrderID:         evidence.OrderID,
	}

	if err := u.ledger.Insert(ctx, appointment); err != nil {
		if errors.Is(err, repository.ErrDuplicateSlot) {
			u.metrics.ObserveOperation(operationBook, metrics.OutcomeConflict)
			return nil, ErrSlotConflict
		}
		if errors.Is(err, repository.ErrDuplicateOrder) {
			u.log.Warnf("Payment order %s already backs another appointment, rejecting user %s", evidence.OrderID, requester.UserID)
			return nil, u.reject(operationBook, ErrPaymentInvalid)
		}
		u.log.Warnf("Failed to insert appointment: %+v", err)
		return nil, u.fail(operationBook, infraError("insert appointment", err))
	}

	appointment.Doctor = doctor.User
	u.afterBooking(ctx, requester, appointment)
	u.metrics.ObserveOperation(operationBook, metrics.OutcomeSuccess)

	u.log.Infof("Appointment booked: id=%s, doctor=%s, slot=%s %s", appointment.ID, slot.DoctorID, req.Date, slot.Time)
	return converter.AppointmentToResponse(appointment), nil
}

// verifyOrder requires the paid order to have been opened for this slot and patient at
// the doctor's current price.
func (u *bookingUsecase) verifyOrder(ctx context.Context, requester entity.Identity, slot repository.Slot, doctor *entity.DoctorProfile, orderID string) error {
	order, err := u.payments.FetchOrder(ctx, orderID)
	if err != nil {
		u.log.Warnf("Failed to fetch payment order %s: %+v", orderID, err)
		return u.fail(operationBook, fmt.Errorf("%w: %w", ErrPaymentGateway, err))
	}
	if order == nil {
		u.log.Warnf("Payment order %s unknown to gateway, rejecting user %s", orderID, requester.UserID)
		return u.reject(operationBook, ErrPaymentInvalid)
	}

	matches := order.Amount == minorUnits(doctor.Price) &&
		order.Notes[noteDoctorID] == slot.DoctorID.String() &&
		order.Notes[notePatientID] == requester.UserID.String() &&
		order.Notes[noteDate] == policy.FormatDate(slot.Date) &&
		order.Notes[noteTime] == slot.Time
	if !matches {
		u.log.Warnf("Payment order %s was not opened for slot %s %s by user %s",
			orderID, policy.FormatDate(slot.Date), slot.Time, requester.UserID)
		return u.reject(operationBook, ErrPaymentInvalid)
	}
	return nil
}

// afterBooking runs the side effects of a booking. None of them can fail the booking.
func (u *bookingUsecase) afterBooking(ctx context.Context, requester entity.Identity, appointment *entity.Appointment) {
	if u.notifier != nil {
		u.notifier.NotifyBooked(service.BookingNotice{
			AppointmentID: appointment.ID,
			PatientEmail:  requester.Email,
			PatientName:   recipientName(requester.Email),
			DoctorName:    appointment.Doctor.Username,
			Date:          policy.FormatDate(appointment.AppointmentDate),
			Time:          appointment.AppointmentTime,
		})
	}

	if u.holds != nil {
		slot := repository.Slot{DoctorID: appointment.DoctorID, Date: appointment.AppointmentDate, Time: appointment.AppointmentTime}
		if err := u.holds.Release(ctx, slot, requester.UserID); err != nil {
			u.log.Warnf("Failed to release hold after booking %s: %+v", appointment.ID, err)
		}
	}

	if u.audit != nil {
		userID := requester.UserID
		_ = u.audit.LogCreate(ctx, nil, &userID, entity.AuditActionAppointmentBook, appointmentEntity, appointment.ID.String(), slotSnapshot(appointment))
	}
}

func (u *bookingUsecase) RescheduleAppointment(ctx context.Context, requester entity.Identity, appointmentID uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.findManaged(ctx, requester, appointmentID)
	if err != nil {
		return nil, err
	}

	now := u.clock()
	if u.rules.Protected(appointment.AppointmentDate, now) {
		return nil, u.reject(operationReschedule, ErrProtectedWindow)
	}

	slot, tod, err := parseSlot(appointment.DoctorID, req.Date, req.Time)
	if err != nil {
		return nil, err
	}
	if !u.rules.Hours.Contains(tod) {
		return nil, u.reject(operationReschedule, ErrOutsideBusinessHours)
	}
	if u.rules.InPast(slot.Date, tod, now) {
		return nil, u.reject(operationReschedule, ErrSlotInPast)
	}

	before := slotSnapshot(appointment)
	if slot.Date.Equal(appointment.AppointmentDate) && slot.Time == appointment.AppointmentTime {
		return converter.AppointmentToResponse(appointment), nil
	}

	existing, err := u.ledger.FindConflict(ctx, slot)
	if err != nil {
		u.log.Warnf("Failed to check slot before reschedule: %+v", err)
		return nil, u.fail(operationReschedule, infraError("check slot", err))
	}
	if existing != nil {
		u.metrics.ObserveOperation(operationReschedule, metrics.OutcomeConflict)
		return nil, ErrSlotConflict
	}

	updated, err := u.ledger.Update(ctx, appointmentID, slot.Date, slot.Time)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateSlot) {
			u.metrics.ObserveOperation(operationReschedule, metrics.OutcomeConflict)
			return nil, ErrSlotConflict
		}
		u.log.Warnf("Failed to reschedule appointment %s: %+v", appointmentID, err)
		return nil, u.fail(operationReschedule, infraError("update appointment", err))
	}
	if updated == nil {
		return nil, ErrAppointmentNotFound
	}

	if u.audit != nil {
		userID := requester.UserID
		_ = u.audit.LogUpdate(ctx, nil, &userID, entity.AuditActionAppointmentReschedule, appointmentEntity, appointmentID.String(), before, slotSnapshot(updated))
	}
	u.metrics.ObserveOperation(operationReschedule, metrics.OutcomeSuccess)

	return converter.AppointmentToResponse(updated), nil
}

func (u *bookingUsecase) CancelAppointment(ctx context.Context, requester entity.Identity, appointmentID uuid.UUID) error {
	appointment, err := u.findManaged(ctx, requester, appointmentID)
	if err != nil {
		return err
	}

	if u.rules.Protected(appointment.AppointmentDate, u.clock()) {
		return u.reject(operationCancel, ErrProtectedWindow)
	}

	deleted, err := u.ledger.Delete(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", appointmentID, err)
		return u.fail(operationCancel, infraError("delete appointment", err))
	}
	if !deleted {
		return ErrAppointmentNotFound
	}

	if u.audit != nil {
		userID := requester.UserID
		_ = u.audit.LogDelete(ctx, nil, &userID, entity.AuditActionAppointmentCancel, appointmentEntity, appointmentID.String(), slotSnapshot(appointment))
	}
	u.metrics.ObserveOperation(operationCancel, metrics.OutcomeSuccess)

	u.log.Infof("Appointment cancelled: id=%s", appointmentID)
	return nil
}

// PurgeElapsedAppointments removes every appointment whose slot started strictly before
// now, so a 09:00 slot goes at 09:00:30 but not at 09:00:00. Running it twice for the same now removes nothing the second time.
func (u *bookingUsecase) PurgeElapsedAppointments(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	day, tod := u.rules.ElapsedCutoff(now)

	ids, err := u.ledger.DeleteElapsed(ctx, day, tod.String())
	if err != nil {
		u.log.Warnf("Failed to purge elapsed appointments: %+v", err)
		return nil, infraError("purge appointments", err)
	}

	if len(ids) > 0 {
		u.metrics.AddPurged(len(ids))
		if u.audit != nil {
			_ = u.audit.LogDelete(ctx, nil, nil, entity.AuditActionAppointmentPurge, appointmentEntity, "", ids)
		}
	}
	return ids, nil
}

func (u *bookingUsecase) ListMyAppointments(ctx context.Context, requester entity.Identity) (*dto.AppointmentListResponse, error) {
	appointments, err := u.ledger.ListByUser(ctx, requester.UserID)
	if err != nil {
		u.log.Warnf("Failed to list appointments for user %s: %+v", requester.UserID, err)
		return nil, infraError("list appointments", err)
	}
	return appointmentList(appointments), nil
}

func (u *bookingUsecase) ListDoctorAppointments(ctx context.Context, requester entity.Identity) (*dto.AppointmentListResponse, error) {
	appointments, err := u.ledger.ListByDoctor(ctx, requester.UserID)
	if err != nil {
		u.log.Warnf("Failed to list appointments for doctor %s: %+v", requester.UserID, err)
		return nil, infraError("list appointments", err)
	}
	return appointmentList(appointments), nil
}

func (u *bookingUsecase) ListAllAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	appointments, err := u.ledger.ListAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list all appointments: %+v", err)
		return nil, infraError("list appointments", err)
	}
	return appointmentList(appointments), nil
}

// findManaged loads an appointment the requester may change. Appointments of other
// patients are reported as not found.
func (u *bookingUsecase) findManaged(ctx context.Context, requester entity.Identity, appointmentID uuid.UUID) (*entity.Appointment, error) {
	appointment, err := u.ledger.FindByID(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, infraError("find appointment", err)
	}
	if appointment == nil || !policy.CanManage(requester, appointment.PatientID) {
		return nil, ErrAppointmentNotFound
	}
	return appointment, nil
}

// recipientName addresses the patient by the local part of their email.
func recipientName(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}

func (u *bookingUsecase) reject(operation string, err error) error {
	u.metrics.ObserveOperation(operation, metrics.OutcomeRejected)
	return err
}

func (u *bookingUsecase) fail(operation string, err error) error {
	u.metrics.ObserveOperation(operation, metrics.OutcomeError)
	return err
}

func parseSlot(doctorID uuid.UUID, date, timeOfDay string) (repository.Slot, policy.TimeOfDay, error) {
	d, err := policy.ParseDate(date)
	if err != nil {
		return repository.Slot{}, policy.TimeOfDay{}, ErrInvalidSlot
	}
	tod, err := policy.ParseTimeOfDay(timeOfDay)
	if err != nil {
		return repository.Slot{}, policy.TimeOfDay{}, ErrInvalidSlot
	}
	return repository.Slot{DoctorID: doctorID, Date: d, Time: tod.String()}, tod, nil
}

func slotSnapshot(a *entity.Appointment) map[string]interface{} {
	return map[string]interface{}{
		"doctor_id": a.DoctorID.String(),
		"date":      policy.FormatDate(a.AppointmentDate),
		"time":      a.AppointmentTime,
		"price":     a.Price.String(),
	}
}

func appointmentList(appointments []entity.Appointment) *dto.AppointmentListResponse {
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}
}
