package usecase

import (
	"context"
	"errors"

	"uplift-backend/internal/converter"
	"uplift-backend/internal/delivery/dto"
	"uplift-backend/internal/domain/entity"
	"uplift-backend/internal/domain/repository"
	"uplift-backend/internal/policy"
	"uplift-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotApproved = errors.New("only approved doctors can manage sessions")
	ErrSessionNotFound   = errors.New("session not found")
)

const sessionEntity = "session"

// SessionUsecase manages group sessions. Sessions follow the same business hours and
// protected window as appointments.
type SessionUsecase interface {
	CreateSession(ctx context.Context, requester entity.Identity, req *dto.SessionRequest) (*dto.SessionResponse, error)
	UpdateSession(ctx context.Context, requester entity.Identity, sessionID uuid.UUID, req *dto.SessionRequest) (*dto.SessionResponse, error)
	DeleteSession(ctx context.Context, requester entity.Identity, sessionID uuid.UUID) error
	ListUpcomingSessions(ctx context.Context) (*dto.SessionListResponse, error)
}

type sessionUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	sessionRepo  repository.SessionRepository
	directory    repository.DoctorDirectory
	auditService service.AuditService
	rules        policy.Rules
	clock        Clock
}

func NewSessionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	sessionRepo repository.SessionRepository,
	directory repository.DoctorDirectory,
	auditService service.AuditService,
	rules policy.Rules,
	clock Clock,
) SessionUsecase {
	if clock == nil {
		clock = timeNow
	}
	return &sessionUsecase{
		db:           db,
		log:          log,
		sessionRepo:  sessionRepo,
		directory:    directory,
		auditService: auditService,
		rules:        rules,
		clock:        clock,
	}
}

func (u *sessionUsecase) CreateSession(ctx context.Context, requester entity.Identity, req *dto.SessionRequest) (*dto.SessionResponse, error) {
	doctor, err := u.requireApprovedDoctor(ctx, requester)
	if err != nil {
		return nil, err
	}

	session := &entity.Session{
		ID:       uuid.New(),
		DoctorID: requester.UserID,
	}
	if err := u.apply(session, req); err != nil {
		return nil, err
	}

	if err := u.sessionRepo.Create(u.db.WithContext(ctx), session); err != nil {
		u.log.Warnf("Failed to create session: %+v", err)
		return nil, infraError("create session", err)
	}
	session.Doctor = doctor.User

	response := converter.SessionToResponse(session)
	if u.auditService != nil {
		if err := u.auditService.LogCreate(ctx, nil, &requester.UserID, entity.AuditActionSessionCreate, sessionEntity, session.ID.String(), response); err != nil {
			u.log.Warnf("Failed to create audit log: %+v", err)
		}
	}

	return response, nil
}

func (u *sessionUsecase) UpdateSession(ctx context.Context, requester entity.Identity, sessionID uuid.UUID, req *dto.SessionRequest) (*dto.SessionResponse, error) {
	session, err := u.findOwned(ctx, requester, sessionID)
	if err != nil {
		return nil, err
	}

	if u.rules.Protected(session.SessionDate, u.clock()) {
		return nil, ErrProtectedWindow
	}

	oldValue := converter.SessionToResponse(session)
	if err := u.apply(session, req); err != nil {
		return nil, err
	}

	if err := u.sessionRepo.Update(u.db.WithContext(ctx), session); err != nil {
		u.log.Warnf("Failed to update session: %+v", err)
		return nil, infraError("update session", err)
	}

	newValue := converter.SessionToResponse(session)
	if u.auditService != nil {
		if err := u.auditService.LogUpdate(ctx, nil, &requester.UserID, entity.AuditActionSessionUpdate, sessionEntity, sessionID.String(), oldValue, newValue); err != nil {
			u.log.Warnf("Failed to create audit log: %+v", err)
		}
	}

	return newValue, nil
}

func (u *sessionUsecase) DeleteSession(ctx context.Context, requester entity.Identity, sessionID uuid.UUID) error {
	session, err := u.findOwned(ctx, requester, sessionID)
	if err != nil {
		return err
	}

	if u.rules.Protected(session.SessionDate, u.clock()) {
		return ErrProtectedWindow
	}

	affectedRows, err := u.sessionRepo.Delete(u.db.WithContext(ctx), sessionID)
	if err != nil {
		u.log.Warnf("Failed to delete session: %+v", err)
		return infraError("delete session", err)
	}
	if affectedRows == 0 {
		return ErrSessionNotFound
	}

	if u.auditService != nil {
		if err := u.auditService.LogDelete(ctx, nil, &requester.UserID, entity.AuditActionSessionDelete, sessionEntity, sessionID.String(), converter.SessionToResponse(session)); err != nil {
			u.log.Warnf("Failed to create audit log: %+v", err)
		}
	}

	return nil
}

func (u *sessionUsecase) ListUpcomingSessions(ctx context.Context) (*dto.SessionListResponse, error) {
	sessions, err := u.sessionRepo.FindUpcoming(u.db.WithContext(ctx), u.rules.Today(u.clock()))
	if err != nil {
		u.log.Warnf("Failed to list sessions: %+v", err)
		return nil, infraError("list sessions", err)
	}

	return &dto.SessionListResponse{
		Sessions: converter.SessionsToResponses(sessions),
		Total:    len(sessions),
	}, nil
}

// apply validates the requested slot and copies the request onto session.
func (u *sessionUsecase) apply(session *entity.Session, req *dto.SessionRequest) error {
	date, err := policy.ParseDate(req.Date)
	if err != nil {
		return ErrInvalidSlot
	}
	tod, err := policy.ParseTimeOfDay(req.Time)
	if err != nil {
		return ErrInvalidSlot
	}
	if !u.rules.Hours.Contains(tod) {
		return ErrOutsideBusinessHours
	}
	if u.rules.InPast(date, tod, u.clock()) {
		return ErrSlotInPast
	}

	session.ClassName = req.ClassName
	session.SessionDate = date
	session.SessionTime = tod.String()
	session.Venue = req.Venue
	session.Description = req.Description
	session.ImageURL = req.ImageURL
	return nil
}

// findOwned loads a session of the requesting doctor. Sessions of other doctors are
// reported as not found.
func (u *sessionUsecase) findOwned(ctx context.Context, requester entity.Identity, sessionID uuid.UUID) (*entity.Session, error) {
	if _, err := u.requireApprovedDoctor(ctx, requester); err != nil {
		return nil, err
	}

	session, err := u.sessionRepo.FindByID(u.db.WithContext(ctx), sessionID)
	if err != nil {
		u.log.Warnf("Failed to find session: %+v", err)
		return nil, infraError("find session", err)
	}
	if session == nil || !policy.IsOwner(requester, session.DoctorID) {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (u *sessionUsecase) requireApprovedDoctor(ctx context.Context, requester entity.Identity) (*entity.DoctorProfile, error) {
	profile, err := u.directory.GetDoctor(ctx, requester.UserID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, infraError("find doctor", err)
	}
	if !policy.IsApprovedDoctor(profile) {
		return nil, ErrDoctorNotApproved
	}
	return profile, nil
}
