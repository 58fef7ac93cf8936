package dto

import (
	"time"

	"uplift-backend/internal/domain/entity"
)

// Request DTOs

// AuditLogQuery filters the admin audit trail.
type AuditLogQuery struct {
	Action string `json:"action" validate:"omitempty,max=100"`
	UserID string `json:"user_id" validate:"omitempty,uuid"`
	Limit  int    `json:"limit" validate:"omitempty,gte=1,lte=500"`
}

// Response DTOs

type AuditLogResponse struct {
	ID        int64         `json:"id"`
	User      *UserResponse `json:"user,omitempty"`
	Action    string        `json:"action"`
	Metadata  entity.JSON   `json:"metadata"`
	CreatedAt time.Time     `json:"created_at"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int                `json:"total"`
}
