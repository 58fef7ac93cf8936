package repository

import (
	"uplift-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLogFilter narrows an audit trail listing. Zero fields do not filter.
type AuditLogFilter struct {
	Action string
	UserID *uuid.UUID
	Limit  int
}

type AuditLogRepository interface {
	Create(db *gorm.DB, log *entity.AuditLog) error
	// Find returns matching entries, newest first.
	Find(db *gorm.DB, filter AuditLogFilter) ([]entity.AuditLog, error)
	FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error)
}
