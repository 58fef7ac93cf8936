package usecase

import (
	"context"
	"errors"

	"uplift-backend/internal/converter"
	"uplift-backend/internal/delivery/dto"
	"uplift-backend/internal/domain/entity"
	"uplift-backend/internal/domain/repository"
	"uplift-backend/internal/policy"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrArticleNotFound = errors.New("article not found")

type ArticleUsecase interface {
	CreateArticle(ctx context.Context, requester entity.Identity, req *dto.ArticleRequest) (*dto.ArticleResponse, error)
	ListArticles(ctx context.Context) (*dto.ArticleListResponse, error)
	ListArticlesByUsername(ctx context.Context, username string) (*dto.ArticleListResponse, error)
	UpdateArticle(ctx context.Context, requester entity.Identity, articleID uuid.UUID, req *dto.ArticleRequest) (*dto.ArticleResponse, error)
	DeleteArticle(ctx context.Context, requester entity.Identity, articleID uuid.UUID) error
	AddReview(ctx context.Context, requester entity.Identity, articleID uuid.UUID, req *dto.ReviewRequest) (*dto.ArticleResponse, error)
}

type articleUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	articleRepo repository.ArticleRepository
	userRepo    repository.UserRepository
}

func NewArticleUsecase(db *gorm.DB, log *logrus.Logger, articleRepo repository.ArticleRepository, userRepo repository.UserRepository) ArticleUsecase {
	return &articleUsecase{
		db:          db,
		log:         log,
		articleRepo: articleRepo,
		userRepo:    userRepo,
	}
}

func (u *articleUsecase) CreateArticle(ctx context.Context, requester entity.Identity, req *dto.ArticleRequest) (*dto.ArticleResponse, error) {
	article := &entity.Article{
		ID:       uuid.New(),
		AuthorID: requester.UserID,
		Title:    req.Title,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	}

	if err := u.articleRepo.Create(u.db.WithContext(ctx), article); err != nil {
		u.log.Warnf("Failed to create article: %+v", err)
		return nil, infraError("create article", err)
	}

	return converter.ArticleToResponse(article), nil
}

func (u *articleUsecase) ListArticles(ctx context.Context) (*dto.ArticleListResponse, error) {
	articles, err := u.articleRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all articles: %+v", err)
		return nil, infraError("list articles", err)
	}
	return articleList(articles), nil
}

func (u *articleUsecase) ListArticlesByUsername(ctx context.Context, username string) (*dto.ArticleListResponse, error) {
	db := u.db.WithContext(ctx)

	user, err := u.userRepo.FindByUsername(db, username)
	if err != nil {
		u.log.Warnf("Failed to find user by username: %+v", err)
		return nil, infraError("find user", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	articles, err := u.articleRepo.FindByAuthorID(db, user.ID)
	if err != nil {
		u.log.Warnf("Failed to find articles by author: %+v", err)
		return nil, infraError("list articles", err)
	}
	return articleList(articles), nil
}

func (u *articleUsecase) UpdateArticle(ctx context.Context, requester entity.Identity, articleID uuid.UUID, req *dto.ArticleRequest) (*dto.ArticleResponse, error) {
	db := u.db.WithContext(ctx)

	article, err := u.findManaged(db, requester, articleID)
	if err != nil {
		return nil, err
	}

	article.Title = req.Title
	article.Content = req.Content
	article.ImageURL = req.ImageURL

	if err := u.articleRepo.Update(db, article); err != nil {
		u.log.Warnf("Failed to update article: %+v", err)
		return nil, infraError("update article", err)
	}

	return converter.ArticleToResponse(article), nil
}

func (u *articleUsecase) DeleteArticle(ctx context.Context, requester entity.Identity, articleID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if _, err := u.findManaged(tx, requester, articleID); err != nil {
		return err
	}

	affectedRows, err := u.articleRepo.Delete(tx, articleID)
	if err != nil {
		u.log.Warnf("Failed delete article: %+v", err)
		return infraError("delete article", err)
	}
	if affectedRows == 0 {
		return ErrArticleNotFound
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return infraError("commit article delete", err)
	}

	return nil
}

// AddReview stores a rating and recomputes the article average in the same transaction.
// The article row stays locked until commit, so concurrent reviews recompute in turn.
func (u *articleUsecase) AddReview(ctx context.Context, requester entity.Identity, articleID uuid.UUID, req *dto.ReviewRequest) (*dto.ArticleResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	locked, err := u.articleRepo.FindByIDForUpdate(tx, articleID)
	if err != nil {
		u.log.Warnf("Failed to lock article: %+v", err)
		return nil, infraError("lock article", err)
	}
	if locked == nil {
		return nil, ErrArticleNotFound
	}

	review := &entity.ArticleReview{
		ArticleID: articleID,
		UserID:    requester.UserID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := u.articleRepo.AddReview(tx, review); err != nil {
		u.log.Warnf("Failed to add review: %+v", err)
		return nil, infraError("add review", err)
	}

	average, err := u.articleRepo.AverageRating(tx, articleID)
	if err != nil {
		u.log.Warnf("Failed to compute average rating: %+v", err)
		return nil, infraError("average rating", err)
	}
	if err := u.articleRepo.UpdateAverageRating(tx, articleID, average); err != nil {
		u.log.Warnf("Failed to update average rating: %+v", err)
		return nil, infraError("update average rating", err)
	}

	article, err := u.articleRepo.FindByID(tx, articleID)
	if err != nil {
		u.log.Warnf("Failed to reload article: %+v", err)
		return nil, infraError("reload article", err)
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, infraError("commit review", err)
	}

	return converter.ArticleToResponse(article), nil
}

// findManaged loads an article the requester may change: its author or an admin.
func (u *articleUsecase) findManaged(db *gorm.DB, requester entity.Identity, articleID uuid.UUID) (*entity.Article, error) {
	article, err := u.articleRepo.FindByID(db, articleID)
	if err != nil {
		u.log.Warnf("Failed to find article: %+v", err)
		return nil, infraError("find article", err)
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}
	if !policy.CanManage(requester, article.AuthorID) {
		return nil, ErrForbidden
	}
	return article, nil
}

func articleList(articles []entity.Article) *dto.ArticleListResponse {
	return &dto.ArticleListResponse{
		Articles: converter.ArticlesToResponses(articles),
		Total:    len(articles),
	}
}
