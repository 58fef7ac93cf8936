package usecase

import (
	"context"
	"errors"

	"uplift-backend/internal/converter"
	"uplift-backend/internal/delivery/dto"
	"uplift-backend/internal/domain/entity"
	"uplift-backend/internal/domain/repository"
	"uplift-backend/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var ErrInvalidPrice = errors.New("price cannot be negative")

const doctorEntity = "doctor_profile"

type DoctorUsecase interface {
	ListApprovedDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error)
	UpdateDoctor(ctx context.Context, requester entity.Identity, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	GetMyProfile(ctx context.Context, requester entity.Identity) (*dto.DoctorResponse, error)
	UpdateMyProfile(ctx context.Context, requester entity.Identity, req *dto.UpdateDoctorProfileRequest) (*dto.DoctorResponse, error)
}

type doctorUsecase struct {
	log          *logrus.Logger
	directory    repository.DoctorDirectory
	auditService service.AuditService
}

func NewDoctorUsecase(log *logrus.Logger, directory repository.DoctorDirectory, auditService service.AuditService) DoctorUsecase {
	return &doctorUsecase{
		log:          log,
		directory:    directory,
		auditService: auditService,
	}
}

func (u *doctorUsecase) ListApprovedDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	profiles, err := u.directory.ListApproved(ctx)
	if err != nil {
		u.log.Warnf("Failed to list approved doctors: %+v", err)
		return nil, infraError("list doctors", err)
	}

	doctors := converter.DoctorsToResponses(profiles)

	return &dto.DoctorListResponse{
		Doctors: doctors,
		Total:   len(doctors),
	}, nil
}

// GetDoctor only exposes approved doctors.
func (u *doctorUsecase) GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	profile, err := u.findProfile(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if !profile.IsApproved() {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(profile), nil
}

func (u *doctorUsecase) UpdateDoctor(ctx context.Context, requester entity.Identity, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	patch := repository.DoctorUpdate{Price: req.Price}
	if req.Status != nil {
		status := entity.DoctorStatus(*req.Status)
		patch.Status = &status
	}
	if req.Availability != nil {
		availability := entity.Availability(*req.Availability)
		patch.Availability = &availability
	}

	return u.update(ctx, requester, doctorID, patch)
}

func (u *doctorUsecase) GetMyProfile(ctx context.Context, requester entity.Identity) (*dto.DoctorResponse, error) {
	profile, err := u.findProfile(ctx, requester.UserID)
	if err != nil {
		return nil, err
	}

	return converter.DoctorToResponse(profile), nil
}

// UpdateMyProfile lets a doctor change their own availability and price. Approval
// status stays with admins.
func (u *doctorUsecase) UpdateMyProfile(ctx context.Context, requester entity.Identity, req *dto.UpdateDoctorProfileRequest) (*dto.DoctorResponse, error) {
	patch := repository.DoctorUpdate{Price: req.Price}
	if req.Availability != nil {
		availability := entity.Availability(*req.Availability)
		patch.Availability = &availability
	}

	return u.update(ctx, requester, requester.UserID, patch)
}

func (u *doctorUsecase) update(ctx context.Context, requester entity.Identity, doctorID uuid.UUID, patch repository.DoctorUpdate) (*dto.DoctorResponse, error) {
	if patch.Price != nil && patch.Price.LessThan(decimal.Zero) {
		return nil, ErrInvalidPrice
	}

	before, err := u.findProfile(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	oldValue := converter.DoctorToResponse(before)

	profile, err := u.directory.Update(ctx, doctorID, patch)
	if err != nil {
		u.log.Warnf("Failed to update doctor profile: %+v", err)
		return nil, infraError("update doctor", err)
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	// Audit log - update doctor
	newValue := converter.DoctorToResponse(profile)
	if u.auditService != nil {
		userID := requester.UserID
		if err := u.auditService.LogUpdate(ctx, nil, &userID, entity.AuditActionDoctorUpdate, doctorEntity, doctorID.String(), oldValue, newValue); err != nil {
			u.log.Warnf("Failed to create audit log: %+v", err)
		}
	}

	return newValue, nil
}

func (u *doctorUsecase) findProfile(ctx context.Context, doctorID uuid.UUID) (*entity.DoctorProfile, error) {
	profile, err := u.directory.GetDoctor(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, infraError("find doctor", err)
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}
	return profile, nil
}
