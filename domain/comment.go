package domain

import (
	"context"
	"time"
)

// Comment domain model
type Comment struct {
	ID        int64
	ArticleID int64
	AuthorID  int64
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Author 评论作者信息
	Author *Profile
}

// CommentUsecase 业务逻辑接口
type CommentUsecase interface {
	List(ctx context.Context, slug string) ([]Comment, error)
	Create(ctx context.Context, userID int64, slug string, body string) (Comment, error)
	// Delete returns ErrUnauthorized when userID is not the comment author.
	Delete(ctx context.Context, userID int64, slug string, id int64) (Comment, error)
}

// CommentRepository 数据存取接口
type CommentRepository interface {
	Store(ctx context.Context, c *Comment) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (Comment, error)
	FetchByArticle(ctx context.Context, articleID int64) ([]Comment, error)
}
