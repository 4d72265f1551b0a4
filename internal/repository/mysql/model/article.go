package model

import (
	"time"

	"github.com/Guyuepp/conduit-feed/domain"
)

type Article struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	Slug           string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Title          string    `gorm:"type:varchar(255);not null"`
	Description    string    `gorm:"type:text;not null"`
	Body           string    `gorm:"type:longtext;not null"`
	TagList        TagList   `gorm:"type:text"`
	Image          string    `gorm:"type:varchar(512)"`
	AuthorID       int64     `gorm:"column:author_id;not null;index"`
	FavoritesCount int64     `gorm:"column:favorites_count;not null;default:0"`
	CreatedAt      time.Time `gorm:"type:datetime;index"`
	UpdatedAt      time.Time `gorm:"type:datetime"`
}

func (Article) TableName() string {
	return "articles"
}

func (m *Article) ToDomain() domain.Article {
	tags := []string(m.TagList)
	if tags == nil {
		tags = []string{}
	}
	return domain.Article{
		ID:             m.ID,
		Slug:           m.Slug,
		Title:          m.Title,
		Description:    m.Description,
		Body:           m.Body,
		TagList:        tags,
		Image:          m.Image,
		Author:         domain.Profile{ID: m.AuthorID},
		FavoritesCount: m.FavoritesCount,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func NewArticleFromDomain(a *domain.Article) *Article {
	tags := TagList(a.TagList)
	if tags == nil {
		tags = TagList{}
	}
	return &Article{
		ID:             a.ID,
		Slug:           a.Slug,
		Title:          a.Title,
		Description:    a.Description,
		Body:           a.Body,
		TagList:        tags,
		Image:          a.Image,
		AuthorID:       a.Author.ID,
		FavoritesCount: a.FavoritesCount,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
