package handler

import (
	"encoding/json"
	"net/http"

	"uplift-backend/internal/delivery/dto"
	"uplift-backend/internal/usecase"
	"uplift-backend/pkg/response"
	"uplift-backend/pkg/validator"

	"github.com/google/uuid"
)

type AppointmentHandler struct {
	bookingUsecase usecase.BookingUsecase
	validator      *validator.CustomValidator
}

func NewAppointmentHandler(bookingUsecase usecase.BookingUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		bookingUsecase: bookingUsecase,
		validator:      validator,
	}
}

// CheckAvailability answers GET /appointments/availability?doctor_id=&date=&time=.
func (h *AppointmentHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	doctorID, err := uuid.Parse(q.Get("doctor_id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	query := dto.AvailabilityQuery{
		DoctorID: doctorID,
		Date:     q.Get("date"),
		Time:     q.Get("time"),
	}
	if err := h.validator.Validate(&query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	availability, err := h.bookingUsecase.CheckAvailability(r.Context(), &query)
	if err != nil {
		writeError(w, err, "Failed to check availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability checked successfully", availability)
}

func (h *AppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	requester, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req dto.BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.bookingUsecase.BookAppointment(r.Context(), requester, &req)
	if err != nil {
		writeError(w, err, "Failed to book appointment")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

func (h *AppointmentHandler) ListMyAppointments(w http.ResponseWriter, r *http.Request) {
	requester, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	appointments, err := h.bookingUsecase.ListMyAppointments(r.Context(), requester)
	if err != nil {
		writeError(w, err, "Failed to get appointments")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Appointments retrieved successfully", appointments.Appointments, &response.Meta{Total: appointments.Total})
}

func (h *AppointmentHandler) RescheduleAppointment(w http.ResponseWriter, r *http.Request) {
	requester, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	appointmentID, ok := pathUUID(w, r, "appointment")
	if !ok {
		return
	}

	var req dto.RescheduleAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.bookingUsecase.RescheduleAppointment(r.Context(), requester, appointmentID, &req)
	if err != nil {
		writeError(w, err, "Failed to reschedule appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment rescheduled successfully", appointment)
}

func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	requester, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	appointmentID, ok := pathUUID(w, r, "appointment")
	if !ok {
		return
	}

	if err := h.bookingUsecase.CancelAppointment(r.Context(), requester, appointmentID); err != nil {
		writeError(w, err, "Failed to cancel appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", nil)
}

func (h *AppointmentHandler) ListDoctorAppointments(w http.ResponseWriter, r *http.Request) {
	requester, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	appointments, err := h.bookingUsecase.ListDoctorAppointments(r.Context(), requester)
	if err != nil {
		writeError(w, err, "Failed to get appointments")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Appointments retrieved successfully", appointments.Appointments, &response.Meta{Total: appointments.Total})
}

func (h *AppointmentHandler) ListAllAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.bookingUsecase.ListAllAppointments(r.Context())
	if err != nil {
		writeError(w, err, "Failed to get appointments")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Appointments retrieved successfully", appointments.Appointments, &response.Meta{Total: appointments.Total})
}
