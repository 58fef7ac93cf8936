package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Article is a user-authored post
type Article struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AuthorID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"author_id"`
	Title         string          `gorm:"type:varchar(255);not null" json:"title"`
	Content       string          `gorm:"type:text;not null" json:"content"`
	ImageURL      string          `gorm:"type:text" json:"image_url,omitempty"`
	AverageRating decimal.Decimal `gorm:"type:decimal(3,2);not null;default:0" json:"average_rating"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Author  User            `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Reviews []ArticleReview `gorm:"foreignKey:ArticleID" json:"reviews,omitempty"`
}

func (Article) TableName() string {
	return "articles"
}

// ArticleReview is a rating left on an article
type ArticleReview struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ArticleID uuid.UUID `gorm:"type:uuid;not null;index" json:"article_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ArticleReview) TableName() string {
	return "article_reviews"
}
