package converter

import (
	"uplift-backend/internal/delivery/dto"
	"uplift-backend/internal/domain/entity"
	"uplift-backend/internal/policy"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:          appointment.ID,
		PatientID:   appointment.PatientID,
		PatientName: appointment.Patient.Username,
		DoctorID:    appointment.DoctorID,
		DoctorName:  appointment.Doctor.Username,
		Date:        policy.FormatDate(appointment.AppointmentDate),
		Time:        appointment.AppointmentTime,
		Price:       appointment.Price,
		Status:      string(appointment.Status),
		PaymentID:   appointment.PaymentID,
		OrderID:     appointment.OrderID,
		CreatedAt:   appointment.CreatedAt,
		UpdatedAt:   appointment.UpdatedAt,
	}
}

func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
