package converter

import (
	"uplift-backend/internal/delivery/dto"
	"uplift-backend/internal/domain/entity"
	"uplift-backend/internal/policy"
)

func SessionToResponse(session *entity.Session) *dto.SessionResponse {
	if session == nil {
		return nil
	}

	return &dto.SessionResponse{
		ID:          session.ID,
		DoctorID:    session.DoctorID,
		DoctorName:  session.Doctor.Username,
		ClassName:   session.ClassName,
		Date:        policy.FormatDate(session.SessionDate),
		Time:        session.SessionTime,
		Venue:       session.Venue,
		Description: session.Description,
		ImageURL:    session.ImageURL,
		CreatedAt:   session.CreatedAt,
	}
}

func SessionsToResponses(sessions []entity.Session) []dto.SessionResponse {
	responses := make([]dto.SessionResponse, len(sessions))
	for i := range sessions {
		responses[i] = *SessionToResponse(&sessions[i])
	}
	return responses
}
