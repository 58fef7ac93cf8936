package usecase

import (
	"context"
	"testing"

	"uplift-backend/internal/delivery/dto"
	"uplift-backend/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDoctorFixture() (DoctorUsecase, *memoryDirectory, *recordingAudit, *entity.DoctorProfile, *entity.DoctorProfile) {
	approved := &entity.DoctorProfile{
		UserID:       uuid.New(),
		Status:       entity.DoctorStatusApproved,
		Availability: entity.AvailabilityAvailable,
		Price:        decimal.NewFromInt(400),
	}
	pending := &entity.DoctorProfile{
		UserID:       uuid.New(),
		Status:       entity.DoctorStatusPending,
		Availability: entity.AvailabilityUnavailable,
		Price:        decimal.Zero,
	}
	directory := newMemoryDirectory(approved, pending)
	audit := &recordingAudit{}
	return NewDoctorUsecase(newTestLogger(), directory, audit), directory, audit, approved, pending
}

func TestDoctorUsecase_ListAndGet(t *testing.T) {
	uc, _, _, approved, pending := newDoctorFixture()

	list, err := uc.ListApprovedDoctors(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, approved.UserID, list.Doctors[0].ID)

	_, err = uc.GetDoctor(context.Background(), pending.UserID)
	assert.ErrorIs(t, err, ErrDoctorNotFound)

	_, err = uc.GetDoctor(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrDoctorNotFound)

	got, err := uc.GetDoctor(context.Background(), approved.UserID)
	require.NoError(t, err)
	assert.Equal(t, "approved", got.Status)
}

func TestDoctorUsecase_AdminApprovesDoctor(t *testing.T) {
	uc, directory, audit, _, pending := newDoctorFixture()
	admin := entity.Identity{UserID: uuid.New(), RoleID: entity.RoleIDAdmin}
	status, availability := "approved", "available"
	price := decimal.NewFromInt(750)

	resp, err := uc.UpdateDoctor(context.Background(), admin, pending.UserID, &dto.UpdateDoctorRequest{
		Status:       &status,
		Availability: &availability,
		Price:        &price,
	})
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)
	assert.Equal(t, "available", resp.Availability)
	assert.True(t, price.Equal(resp.Price))
	assert.Equal(t, []string{entity.AuditActionDoctorUpdate}, audit.actions)

	stored, _ := directory.GetDoctor(context.Background(), pending.UserID)
	assert.True(t, stored.IsApproved())
}

func TestDoctorUsecase_RejectsNegativePrice(t *testing.T) {
	uc, _, audit, approved, _ := newDoctorFixture()
	doctor := entity.Identity{UserID: approved.UserID, RoleID: entity.RoleIDDoctor}
	price := decimal.NewFromInt(-1)

	_, err := uc.UpdateMyProfile(context.Background(), doctor, &dto.UpdateDoctorProfileRequest{Price: &price})
	assert.ErrorIs(t, err, ErrInvalidPrice)
	assert.Empty(t, audit.actions)
}

func TestDoctorUsecase_UpdateMyProfileKeepsStatus(t *testing.T) {
	uc, _, _, _, pending := newDoctorFixture()
	doctor := entity.Identity{UserID: pending.UserID, RoleID: entity.RoleIDDoctor}
	availability := "available"

	resp, err := uc.UpdateMyProfile(context.Background(), doctor, &dto.UpdateDoctorProfileRequest{Availability: &availability})
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "available", resp.Availability)

	mine, err := uc.GetMyProfile(context.Background(), doctor)
	require.NoError(t, err)
	assert.Equal(t, "available", mine.Availability)
}

func TestDoctorUsecase_UpdateUnknownDoctor(t *testing.T) {
	uc, _, _, _, _ := newDoctorFixture()
	admin := entity.Identity{UserID: uuid.New(), RoleID: entity.RoleIDAdmin}

	_, err := uc.UpdateDoctor(context.Background(), admin, uuid.New(), &dto.UpdateDoctorRequest{})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}
