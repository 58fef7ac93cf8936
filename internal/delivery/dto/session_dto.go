package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type SessionRequest struct {
	ClassName   string `json:"class_name" validate:"required,max=255"`
	Date        string `json:"date" validate:"required,date"`
	Time        string `json:"time" validate:"required,hhmm"`
	Venue       string `json:"venue" validate:"required,max=255"`
	Description string `json:"description" validate:"omitempty"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
}

// Response DTOs

type SessionResponse struct {
	ID          uuid.UUID `json:"id"`
	DoctorID    uuid.UUID `json:"doctor_id"`
	DoctorName  string    `json:"doctor_name,omitempty"`
	ClassName   string    `json:"class_name"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Venue       string    `json:"venue"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
	Total    int               `json:"total"`
}
