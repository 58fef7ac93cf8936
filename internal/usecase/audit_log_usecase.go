package usecase

import (
	"context"
	"errors"

	"uplift-backend/internal/converter"
	"uplift-backend/internal/delivery/dto"
	"uplift-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// defaultAuditLogLimit caps unfiltered listings.
const defaultAuditLogLimit = 100

var (
	ErrAuditLogNotFound  = errors.New("audit log not found")
	ErrInvalidAuditQuery = errors.New("user_id must be a valid UUID")
)

// AuditLogUsecase reads the trail of booking, doctor and session mutations.
type AuditLogUsecase interface {
	GetAllAuditLogs(ctx context.Context, query *dto.AuditLogQuery) (*dto.AuditLogListResponse, error)
	GetAuditLog(ctx context.Context, id int64) (*dto.AuditLogResponse, error)
}

type auditLogUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	auditLogRepo repository.AuditLogRepository,
) AuditLogUsecase {
	return &auditLogUsecase{
		db:           db,
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

func (u *auditLogUsecase) GetAllAuditLogs(ctx context.Context, query *dto.AuditLogQuery) (*dto.AuditLogListResponse, error) {
	filter := repository.AuditLogFilter{Limit: defaultAuditLogLimit}
	if query != nil {
		filter.Action = query.Action
		if query.Limit > 0 {
			filter.Limit = query.Limit
		}
		if query.UserID != "" {
			userID, err := uuid.Parse(query.UserID)
			if err != nil {
				return nil, ErrInvalidAuditQuery
			}
			filter.UserID = &userID
		}
	}

	logs, err := u.auditLogRepo.Find(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find audit logs: %+v", err)
		return nil, infraError("list audit logs", err)
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Total: len(logs),
	}, nil
}

func (u *auditLogUsecase) GetAuditLog(ctx context.Context, id int64) (*dto.AuditLogResponse, error) {
	auditLog, err := u.auditLogRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find audit log %d: %+v", id, err)
		return nil, infraError("find audit log", err)
	}
	if auditLog == nil {
		return nil, ErrAuditLogNotFound
	}

	return converter.AuditLogToResponse(auditLog), nil
}
