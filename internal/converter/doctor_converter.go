package converter

import (
	"uplift-backend/internal/delivery/dto"
	"uplift-backend/internal/domain/entity"
)

// DoctorToResponse flattens a directory entry with its account fields.
func DoctorToResponse(profile *entity.DoctorProfile) *dto.DoctorResponse {
	if profile == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:             profile.UserID,
		Username:       profile.User.Username,
		Email:          profile.User.Email,
		Status:         string(profile.Status),
		Availability:   string(profile.Availability),
		Price:          profile.Price,
		Specialization: profile.Specialization,
		Biography:      profile.Biography,
	}
}

func DoctorsToResponses(profiles []entity.DoctorProfile) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(profiles))
	for i := range profiles {
		responses[i] = *DoctorToResponse(&profiles[i])
	}
	return responses
}
