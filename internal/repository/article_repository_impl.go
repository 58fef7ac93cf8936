package repository

import (
	"errors"

	"uplift-backend/internal/domain/entity"
	domainRepo "uplift-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type articleRepository struct{}

func NewArticleRepository() domainRepo.ArticleRepository {
	return &articleRepository{}
}

func (r *articleRepository) Create(db *gorm.DB, article *entity.Article) error {
	return db.Omit("Author", "Reviews").Create(article).Error
}

func (r *articleRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Article, error) {
	var article entity.Article
	err := db.Preload("Author").Preload("Reviews").Where("id = ?", id).First(&article).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.Article, error) {
	var article entity.Article
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&article).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) FindAll(db *gorm.DB) ([]entity.Article, error) {
	var articles []entity.Article
	err := db.Preload("Author").Preload("Reviews").Order("created_at DESC").Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *articleRepository) FindByAuthorID(db *gorm.DB, authorID uuid.UUID) ([]entity.Article, error) {
	var articles []entity.Article
	err := db.Preload("Author").Preload("Reviews").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&articles).Error
	if err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *articleRepository) Update(db *gorm.DB, article *entity.Article) error {
	return db.Omit("Author", "Reviews").Save(article).Error
}

func (r *articleRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	if err := db.Where("article_id = ?", id).Delete(&entity.ArticleReview{}).Error; err != nil {
		return 0, err
	}
	result := db.Where("id = ?", id).Delete(&entity.Article{})
	return result.RowsAffected, result.Error
}

func (r *articleRepository) AddReview(db *gorm.DB, review *entity.ArticleReview) error {
	return db.Create(review).Error
}

func (r *articleRepository) AverageRating(db *gorm.DB, articleID uuid.UUID) (decimal.Decimal, error) {
	var avg decimal.Decimal
	err := db.Model(&entity.ArticleReview{}).
		Select("COALESCE(AVG(rating), 0)").
		Where("article_id = ?", articleID).
		Row().Scan(&avg)
	if err != nil {
		return decimal.Zero, err
	}
	return avg.Round(2), nil
}

func (r *articleRepository) UpdateAverageRating(db *gorm.DB, articleID uuid.UUID, rating decimal.Decimal) error {
	return db.Model(&entity.Article{}).Where("id = ?", articleID).Update("average_rating", rating).Error
}
