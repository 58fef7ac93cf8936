package handler

import (
	"encoding/json"
	"net/http"

	"uplift-backend/internal/delivery/dto"
	"uplift-backend/internal/usecase"
	"uplift-backend/pkg/response"
	"uplift-backend/pkg/validator"
)

type SessionHandler struct {
	sessionUsecase usecase.SessionUsecase
	validator      *validator.CustomValidator
}

func NewSessionHandler(sessionUsecase usecase.SessionUsecase, validator *validator.CustomValidator) *SessionHandler {
	return &SessionHandler{
		sessionUsecase: sessionUsecase,
		validator:      validator,
	}
}

func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessionUsecase.ListUpcomingSessions(r.Context())
	if err != nil {
		writeError(w, err, "Failed to get sessions")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Sessions retrieved successfully", sessions.Sessions, &response.Meta{Total: sessions.Total})
}

func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	requester, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req dto.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	session, err := h.sessionUsecase.CreateSession(r.Context(), requester, &req)
	if err != nil {
		writeError(w, err, "Failed to create session")
		return
	}

	response.Success(w, http.StatusCreated, "Session created successfully", session)
}

func (h *SessionHandler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	requester, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	sessionID, ok := pathUUID(w, r, "session")
	if !ok {
		return
	}

	var req dto.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	session, err := h.sessionUsecase.UpdateSession(r.Context(), requester, sessionID, &req)
	if err != nil {
		writeError(w, err, "Failed to update session")
		return
	}

	response.Success(w, http.StatusOK, "Session updated successfully", session)
}

func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	requester, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	sessionID, ok := pathUUID(w, r, "session")
	if !ok {
		return
	}

	if err := h.sessionUsecase.DeleteSession(r.Context(), requester, sessionID); err != nil {
		writeError(w, err, "Failed to delete session")
		return
	}

	response.Success(w, http.StatusOK, "Session deleted successfully", nil)
}
