package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is a group session hosted by an approved doctor
type Session struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID    uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	ClassName   string    `gorm:"type:varchar(255);not null" json:"class_name"`
	SessionDate time.Time `gorm:"type:date;not null;index" json:"session_date"`
	SessionTime string    `gorm:"type:varchar(5);not null" json:"session_time"`
	Venue       string    `gorm:"type:varchar(255)" json:"venue"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    string    `gorm:"type:text" json:"image_url,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Session) TableName() string {
	return "sessions"
}
