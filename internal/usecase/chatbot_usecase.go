package usecase

import (
	"context"
	"errors"
	"strings"

	"uplift-backend/internal/delivery/dto"
	"uplift-backend/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrEmptyQuery = errors.New("query cannot be empty")

// ChatbotUsecase answers with stored FAQ questions that contain the query.
type ChatbotUsecase interface {
	Ask(ctx context.Context, req *dto.ChatbotRequest) (*dto.ChatbotResponse, error)
}

type chatbotUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	questionRepo repository.QuestionRepository
}

func NewChatbotUsecase(db *gorm.DB, log *logrus.Logger, questionRepo repository.QuestionRepository) ChatbotUsecase {
	return &chatbotUsecase{
		db:           db,
		log:          log,
		questionRepo: questionRepo,
	}
}

func (u *chatbotUsecase) Ask(ctx context.Context, req *dto.ChatbotRequest) (*dto.ChatbotResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	questions, err := u.questionRepo.Search(u.db.WithContext(ctx), query)
	if err != nil {
		u.log.Warnf("Failed to search questions: %+v", err)
		return nil, infraError("search questions", err)
	}

	matches := make([]string, len(questions))
	for i := range questions {
		matches[i] = questions[i].Question
	}

	return &dto.ChatbotResponse{Questions: matches}, nil
}
