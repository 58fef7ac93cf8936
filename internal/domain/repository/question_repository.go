package repository

import (
	"uplift-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type QuestionRepository interface {
	Search(db *gorm.DB, query string) ([]entity.Question, error)
}
