package converter

import (
	"uplift-backend/internal/delivery/dto"
	"uplift-backend/internal/domain/entity"
)

func ReviewToResponse(review *entity.ArticleReview) *dto.ReviewResponse {
	if review == nil {
		return nil
	}

	return &dto.ReviewResponse{
		ID:        review.ID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}
}

// ArticleToResponse converts an Article entity, with its loaded reviews, to ArticleResponse DTO
func ArticleToResponse(article *entity.Article) *dto.ArticleResponse {
	if article == nil {
		return nil
	}

	reviews := make([]dto.ReviewResponse, len(article.Reviews))
	for i := range article.Reviews {
		reviews[i] = *ReviewToResponse(&article.Reviews[i])
	}

	return &dto.ArticleResponse{
		ID:            article.ID,
		AuthorID:      article.AuthorID,
		AuthorName:    article.Author.Username,
		Title:         article.Title,
		Content:       article.Content,
		ImageURL:      article.ImageURL,
		AverageRating: article.AverageRating,
		Reviews:       reviews,
		CreatedAt:     article.CreatedAt,
		UpdatedAt:     article.UpdatedAt,
	}
}

func ArticlesToResponses(articles []entity.Article) []dto.ArticleResponse {
	responses := make([]dto.ArticleResponse, len(articles))
	for i := range articles {
		responses[i] = *ArticleToResponse(&articles[i])
	}
	return responses
}
