package repository

import (
	"strings"

	"uplift-backend/internal/domain/entity"
	domainRepo "uplift-backend/internal/domain/repository"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type questionRepository struct{}

func NewQuestionRepository() domainRepo.QuestionRepository {
	return &questionRepository{}
}

// Search returns questions containing query, case-insensitively.
func (r *questionRepository) Search(db *gorm.DB, query string) ([]entity.Question, error) {
	var questions []entity.Question
	err := db.Where("question ILIKE ?", "%"+likeEscaper.Replace(query)+"%").
		Order("id ASC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}
