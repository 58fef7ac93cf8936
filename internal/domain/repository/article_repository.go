package repository

import (
	"uplift-backend/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ArticleRepository interface {
	Create(db *gorm.DB, article *entity.Article) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Article, error)
	// FindByIDForUpdate locks the article row until db's transaction ends. Relations
	// are not loaded.
	FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.Article, error)
	FindAll(db *gorm.DB) ([]entity.Article, error)
	FindByAuthorID(db *gorm.DB, authorID uuid.UUID) ([]entity.Article, error)
	Update(db *gorm.DB, article *entity.Article) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
	AddReview(db *gorm.DB, review *entity.ArticleReview) error
	AverageRating(db *gorm.DB, articleID uuid.UUID) (decimal.Decimal, error)
	UpdateAverageRating(db *gorm.DB, articleID uuid.UUID, rating decimal.Decimal) error
}
