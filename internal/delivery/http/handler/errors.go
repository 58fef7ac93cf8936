package handler

import (
	"errors"
	"net/http"

	"uplift-backend/internal/delivery/http/middleware"
	"uplift-backend/internal/domain/entity"
	"uplift-backend/internal/usecase"
	"uplift-backend/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// domainErrors maps usecase errors to their HTTP status and machine code. Order
// matters only where one error wraps another.
var domainErrors = []errorMapping{
	{usecase.ErrSlotConflict, http.StatusBadRequest, "SLOT_CONFLICT"},
	{usecase.ErrDoctorNotFound, http.StatusNotFound, "DOCTOR_NOT_FOUND"},
	{usecase.ErrDoctorUnavailable, http.StatusBadRequest, "DOCTOR_UNAVAILABLE"},
	{usecase.ErrOutsideBusinessHours, http.StatusBadRequest, "OUTSIDE_BUSINESS_HOURS"},
	{usecase.ErrSlotInPast, http.StatusBadRequest, "SLOT_IN_PAST"},
	{usecase.ErrProtectedWindow, http.StatusBadRequest, "PROTECTED_WINDOW"},
	{usecase.ErrInvalidSlot, http.StatusBadRequest, "INVALID_SLOT"},
	{usecase.ErrPaymentRequired, http.StatusPaymentRequired, "PAYMENT_REQUIRED"},
	{usecase.ErrPaymentInvalid, http.StatusPaymentRequired, "PAYMENT_INVALID"},
	{usecase.ErrSlotHeld, http.StatusConflict, "SLOT_HELD"},
	{usecase.ErrPriceNotSet, http.StatusBadRequest, "PRICE_NOT_SET"},
	{usecase.ErrPaymentGateway, http.StatusBadGateway, "PAYMENT_GATEWAY"},
	{usecase.ErrAppointmentNotFound, http.StatusNotFound, "APPOINTMENT_NOT_FOUND"},
	{usecase.ErrDoctorNotApproved, http.StatusForbidden, "DOCTOR_NOT_APPROVED"},
	{usecase.ErrSessionNotFound, http.StatusNotFound, "SESSION_NOT_FOUND"},
	{usecase.ErrArticleNotFound, http.StatusNotFound, "ARTICLE_NOT_FOUND"},
	{usecase.ErrInvalidPrice, http.StatusBadRequest, "INVALID_PRICE"},
	{usecase.ErrEmailAlreadyExists, http.StatusConflict, "EMAIL_EXISTS"},
	{usecase.ErrUsernameAlreadyExists, http.StatusConflict, "USERNAME_EXISTS"},
	{usecase.ErrInvalidRole, http.StatusBadRequest, "INVALID_ROLE"},
	{usecase.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{usecase.ErrInvalidToken, http.StatusUnauthorized, "INVALID_TOKEN"},
	{usecase.ErrTokenRevoked, http.StatusUnauthorized, "TOKEN_REVOKED"},
	{usecase.ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
	{usecase.ErrAuditLogNotFound, http.StatusNotFound, "AUDIT_LOG_NOT_FOUND"},
	{usecase.ErrInvalidAuditQuery, http.StatusBadRequest, "INVALID_QUERY"},
	{usecase.ErrEmptyQuery, http.StatusBadRequest, "EMPTY_QUERY"},
	{usecase.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
}

// writeError renders err as a coded error response. Anything unrecognised is a 500
// carrying fallback as its message.
func writeError(w http.ResponseWriter, err error, fallback string) {
	if errors.Is(err, usecase.ErrInfrastructure) {
		response.ServiceUnavailable(w, usecase.ErrInfrastructure.Error())
		return
	}

	for _, m := range domainErrors {
		if errors.Is(err, m.err) {
			response.Coded(w, m.status, m.code, m.err.Error())
			return
		}
	}

	response.InternalServerError(w, fallback)
}

// requireIdentity returns the authenticated caller or writes a 401.
func requireIdentity(w http.ResponseWriter, r *http.Request) (entity.Identity, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
	}
	return identity, ok
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid "+name+" ID", nil)
		return uuid.Nil, false
	}
	return id, true
}
