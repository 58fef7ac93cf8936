package usecase

import (
	"context"
	"regexp"
	"testing"
	"time"

	"uplift-backend/config"
	"uplift-backend/internal/delivery/dto"
	"uplift-backend/internal/domain/entity"
	"uplift-backend/internal/repository"
	"uplift-backend/pkg/jwt"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var userColumns = []string{"id", "role_id", "username", "email", "password", "is_active"}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

type authFixture struct {
	usecase AuthUsecase
	mock    sqlmock.Sqlmock
	redis   *miniredis.Miniredis
	jwt     *jwt.JWTService
	audit   *recordingAudit
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	db, mock := newMockDB(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: time.Hour,
	})
	audit := &recordingAudit{}

	return &authFixture{
		usecase: NewAuthUsecase(db, newTestLogger(), repository.NewUserRepository(), repository.NewDoctorProfileRepository(), audit, jwtService, client),
		mock:    mock,
		redis:   mr,
		jwt:     jwtService,
		audit:   audit,
	}
}

func (f *authFixture) expectUserByEmail(t *testing.T, id uuid.UUID, roleID int, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	f.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1`)).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(id.String(), roleID, "asha", "asha@example.com", string(hash), true))
}

func TestAuthUsecase_RegisterPatient(t *testing.T) {
	f := newAuthFixture(t)

	f.mock.ExpectBegin()
	f.mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	f.mock.ExpectCommit()

	resp, err := f.usecase.Register(context.Background(), &dto.RegisterRequest{
		Username: "asha",
		Email:    "asha@example.com",
		Password: "secret123",
		Role:     "patient",
	})
	require.NoError(t, err)
	assert.Equal(t, "patient", resp.Role)
	assert.Nil(t, resp.Doctor)
	assert.Equal(t, []string{entity.AuditActionUserRegister}, f.audit.actions)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestAuthUsecase_RegisterDoctorStartsPending(t *testing.T) {
	f := newAuthFixture(t)

	f.mock.ExpectBegin()
	f.mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	f.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "doctor_profiles"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.mock.ExpectCommit()

	resp, err := f.usecase.Register(context.Background(), &dto.RegisterRequest{
		Username: "dr_rao",
		Email:    "rao@example.com",
		Password: "secret123",
		Role:     "doctor",
	})
	require.NoError(t, err)
	assert.Equal(t, "doctor", resp.Role)
	require.NotNil(t, resp.Doctor)
	assert.Equal(t, "pending", resp.Doctor.Status)
	assert.Equal(t, "unavailable", resp.Doctor.Availability)
	assert.True(t, resp.Doctor.Price.IsZero())
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestAuthUsecase_RegisterDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)

	f.mock.ExpectBegin()
	f.mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"})
	f.mock.ExpectRollback()

	_, err := f.usecase.Register(context.Background(), &dto.RegisterRequest{
		Username: "asha",
		Email:    "asha@example.com",
		Password: "secret123",
		Role:     "patient",
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	assert.Empty(t, f.audit.actions)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestAuthUsecase_RegisterRejectsAdminRole(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.usecase.Register(context.Background(), &dto.RegisterRequest{Role: "admin"})
	assert.ErrorIs(t, err, ErrInvalidRole)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestAuthUsecase_LoginStoresTokens(t *testing.T) {
	f := newAuthFixture(t)
	userID := uuid.New()
	f.expectUserByEmail(t, userID, entity.RoleIDDoctor, "secret123")

	resp, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Email: "asha@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "doctor", resp.Role)
	assert.Equal(t, int64(900), resp.ExpiresIn)

	claims, err := f.jwt.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleIDDoctor, claims.RoleID)
	assert.True(t, f.redis.Exists(TokenKey(AccessTokenKeyPrefix, userID, claims.TokenID)))

	refresh, err := f.jwt.ValidateToken(resp.RefreshToken)
	require.NoError(t, err)
	assert.True(t, f.redis.Exists(TokenKey(RefreshTokenKeyPrefix, userID, refresh.TokenID)))
}

func TestAuthUsecase_LoginWrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	f.expectUserByEmail(t, uuid.New(), entity.RoleIDPatient, "secret123")

	_, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Email: "asha@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthUsecase_LoginUnknownEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1`)).
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Email: "nobody@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthUsecase_RefreshTokenRotates(t *testing.T) {
	f := newAuthFixture(t)
	f.expectUserByEmail(t, uuid.New(), entity.RoleIDPatient, "secret123")

	login, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Email: "asha@example.com", Password: "secret123"})
	require.NoError(t, err)

	rotated, err := f.usecase.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, rotated.RefreshToken)
	assert.Equal(t, "patient", rotated.Role)

	_, err = f.usecase.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestAuthUsecase_RefreshRejectsAccessToken(t *testing.T) {
	f := newAuthFixture(t)
	f.expectUserByEmail(t, uuid.New(), entity.RoleIDPatient, "secret123")

	login, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Email: "asha@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = f.usecase.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: login.AccessToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthUsecase_LogoutRevokesBothTokens(t *testing.T) {
	f := newAuthFixture(t)
	userID := uuid.New()
	f.expectUserByEmail(t, userID, entity.RoleIDPatient, "secret123")

	login, err := f.usecase.Login(context.Background(), &dto.LoginRequest{Email: "asha@example.com", Password: "secret123"})
	require.NoError(t, err)
	access, err := f.jwt.ValidateToken(login.AccessToken)
	require.NoError(t, err)
	refresh, err := f.jwt.ValidateToken(login.RefreshToken)
	require.NoError(t, err)

	requester := entity.Identity{UserID: userID, RoleID: entity.RoleIDPatient}
	err = f.usecase.Logout(context.Background(), requester, access.TokenID, &dto.LogoutRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)

	assert.False(t, f.redis.Exists(TokenKey(AccessTokenKeyPrefix, userID, access.TokenID)))
	assert.False(t, f.redis.Exists(TokenKey(RefreshTokenKeyPrefix, userID, refresh.TokenID)))
}

func TestAuthUsecase_LogoutRejectsForeignRefreshToken(t *testing.T) {
	f := newAuthFixture(t)
	token, _, err := f.jwt.GenerateRefreshToken(uuid.New(), "other@example.com", entity.RoleIDPatient)
	require.NoError(t, err)

	requester := entity.Identity{UserID: uuid.New(), RoleID: entity.RoleIDPatient}
	err = f.usecase.Logout(context.Background(), requester, "token-id", &dto.LogoutRequest{RefreshToken: token})
	assert.ErrorIs(t, err, ErrInvalidToken)
}
