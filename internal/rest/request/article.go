package request

import "github.com/Guyuepp/conduit-feed/domain"

type NewArticle struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Body        string   `json:"body" binding:"required"`
	TagList     []string `json:"tagList" binding:"omitempty,dive,required,max=64"`
	Image       string   `json:"image" binding:"omitempty,url"`
}

// CreateArticle is the body of POST /articles.
type CreateArticle struct {
	Article NewArticle `json:"article" binding:"required"`
}

// ToDomain: Request -> Domain
func (r *CreateArticle) ToDomain() domain.ArticleInput {
	in := domain.ArticleInput{
		Title:       &r.Article.Title,
		Description: &r.Article.Description,
		Body:        &r.Article.Body,
		TagList:     r.Article.TagList,
	}
	if r.Article.Image != "" {
		in.Image = &r.Article.Image
	}
	return in
}

type ArticleChanges struct {
	Title       *string  `json:"title" binding:"omitempty,min=1"`
	Description *string  `json:"description" binding:"omitempty,min=1"`
	Body        *string  `json:"body" binding:"omitempty,min=1"`
	TagList     []string `json:"tagList" binding:"omitempty,dive,required,max=64"`
	Image       *string  `json:"image" binding:"omitempty,url"`
}

// UpdateArticle is the body of PUT /articles/:slug. Absent fields are kept.
type UpdateArticle struct {
	Article ArticleChanges `json:"article" binding:"required"`
}

func (r *UpdateArticle) ToDomain() domain.ArticleInput {
	return domain.ArticleInput{
		Title:       r.Article.Title,
		Description: r.Article.Description,
		Body:        r.Article.Body,
		TagList:     r.Article.TagList,
		Image:       r.Article.Image,
	}
}
