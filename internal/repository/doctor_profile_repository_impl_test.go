package repository

import (
	"context"
	"regexp"
	"testing"

	"uplift-backend/internal/domain/entity"
	domainRepo "uplift-backend/internal/domain/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectDoctorRows(mock sqlmock.Sqlmock, id uuid.UUID, availability entity.Availability, price string) {
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "doctor_profiles" WHERE user_id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "status", "availability", "price", "specialization"}).
			AddRow(id.String(), "approved", string(availability), price, "Anxiety"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "role_id", "username", "email", "is_active"}).
			AddRow(id.String(), entity.RoleIDDoctor, "dr.rao", "rao@example.com", true))
}

func TestDoctorDirectory_GetDoctor(t *testing.T) {
	db, mock := newMockDB(t)
	directory := NewDoctorDirectory(db)

	id := uuid.New()
	expectDoctorRows(mock, id, entity.AvailabilityAvailable, "1200.50")

	doctor, err := directory.GetDoctor(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, doctor)
	assert.True(t, doctor.IsApproved())
	assert.True(t, doctor.IsAvailable())
	assert.Equal(t, "1200.5", doctor.Price.String())
	assert.Equal(t, "dr.rao", doctor.User.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoctorDirectory_GetDoctor_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	directory := NewDoctorDirectory(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "doctor_profiles"`)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	doctor, err := directory.GetDoctor(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, doctor)
}

func TestDoctorDirectory_Update(t *testing.T) {
	db, mock := newMockDB(t)
	directory := NewDoctorDirectory(db)

	id := uuid.New()
	unavailable := entity.AvailabilityUnavailable
	price := decimal.NewFromInt(900)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "doctor_profiles" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	expectDoctorRows(mock, id, unavailable, "900.00")

	doctor, err := directory.Update(context.Background(), id, domainRepo.DoctorUpdate{
		Availability: &unavailable,
		Price:        &price,
	})
	require.NoError(t, err)
	require.NotNil(t, doctor)
	assert.False(t, doctor.IsAvailable())
	assert.True(t, price.Equal(doctor.Price))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoctorDirectory_Update_UnknownDoctor(t *testing.T) {
	db, mock := newMockDB(t)
	directory := NewDoctorDirectory(db)

	approved := entity.DoctorStatusApproved
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "doctor_profiles" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	doctor, err := directory.Update(context.Background(), uuid.New(), domainRepo.DoctorUpdate{Status: &approved})
	require.NoError(t, err)
	assert.Nil(t, doctor)
}
