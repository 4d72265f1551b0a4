package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Guyuepp/conduit-feed/domain"
	"github.com/Guyuepp/conduit-feed/internal/repository"
	"github.com/Guyuepp/conduit-feed/internal/rest/middleware"
	"github.com/Guyuepp/conduit-feed/internal/rest/request"
	"github.com/Guyuepp/conduit-feed/internal/rest/response"
)

// ArticleHandler  represent the httphandler for article
type ArticleHandler struct {
	Service domain.ArticleUsecase
}

func NewArticleHandler(svc domain.ArticleUsecase) *ArticleHandler {
	return &ArticleHandler{
		Service: svc,
	}
}

// writePage sets X-Cursor when a newest-first listing has a next page.
// The cursor means "older than", so other orders page by index only.
func writePage(c *gin.Context, order domain.FeedOrder, page domain.FeedPage) {
	if page.HasMore && (order == "" || order == domain.OrderDesc) && len(page.Articles) > 0 {
		last := page.Articles[len(page.Articles)-1]
		c.Header(middleware.CursorHeader, repository.EncodeCursor(last.CreatedAt))
	}
	c.JSON(http.StatusOK, response.NewFeedPage(page))
}

// ListFeed will fetch the articles based on given params
func (a *ArticleHandler) ListFeed(c *gin.Context) {
	var q request.FeedQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithBindError(c, err)
		return
	}
	page, err := q.PageRequest()
	if err != nil {
		abortWithError(c, err)
		return
	}

	order := q.FeedOrder()
	res, err := a.Service.ListFeed(c.Request.Context(), q.Filters(), order, page, middleware.ViewerID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	writePage(c, order, res)
}

type personalFeed func(ctx *gin.Context, viewerID int64, page domain.PageRequest) (domain.FeedPage, error)

func (a *ArticleHandler) personal(c *gin.Context, list personalFeed) {
	viewerID, ok := requireViewer(c)
	if !ok {
		return
	}
	var q request.FeedQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithBindError(c, err)
		return
	}
	page, err := q.PageRequest()
	if err != nil {
		abortWithError(c, err)
		return
	}

	res, err := list(c, viewerID, page)
	if err != nil {
		abortWithError(c, err)
		return
	}
	writePage(c, domain.OrderDesc, res)
}

// ListFollowing 关注作者的文章
func (a *ArticleHandler) ListFollowing(c *gin.Context) {
	a.personal(c, func(c *gin.Context, viewerID int64, page domain.PageRequest) (domain.FeedPage, error) {
		return a.Service.ListFollowing(c.Request.Context(), viewerID, page)
	})
}

// ListBookmarked 书签列表
func (a *ArticleHandler) ListBookmarked(c *gin.Context) {
	a.personal(c, func(c *gin.Context, viewerID int64, page domain.PageRequest) (domain.FeedPage, error) {
		return a.Service.ListBookmarked(c.Request.Context(), viewerID, page)
	})
}

func (a *ArticleHandler) GetBySlug(c *gin.Context) {
	art, err := a.Service.GetBySlug(c.Request.Context(), c.Param("slug"), middleware.ViewerID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SingleArticle{Article: response.NewArticleFromDomain(&art, true)})
}

// Create will store the article by given request body
func (a *ArticleHandler) Create(c *gin.Context) {
	viewerID, ok := requireViewer(c)
	if !ok {
		return
	}
	var req request.CreateArticle
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}

	art, err := a.Service.Create(c.Request.Context(), viewerID, req.ToDomain())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.SingleArticle{Article: response.NewArticleFromDomain(&art, true)})
}

func (a *ArticleHandler) Update(c *gin.Context) {
	viewerID, ok := requireViewer(c)
	if !ok {
		return
	}
	var req request.UpdateArticle
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}

	art, err := a.Service.Update(c.Request.Context(), c.Param("slug"), viewerID, req.ToDomain())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SingleArticle{Article: response.NewArticleFromDomain(&art, true)})
}

// Delete returns the deleted article
func (a *ArticleHandler) Delete(c *gin.Context) {
	viewerID, ok := requireViewer(c)
	if !ok {
		return
	}
	art, err := a.Service.Delete(c.Request.Context(), c.Param("slug"), viewerID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SingleArticle{Article: response.NewArticleFromDomain(&art, true)})
}

type articleToggle func(ctx *gin.Context, viewerID int64, slug string, add bool) (domain.Article, error)

func (a *ArticleHandler) toggle(c *gin.Context, add bool, fn articleToggle) {
	viewerID, ok := requireViewer(c)
	if !ok {
		return
	}
	art, err := fn(c, viewerID, c.Param("slug"), add)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SingleArticle{Article: response.NewArticleFromDomain(&art, true)})
}

func (a *ArticleHandler) favorite(c *gin.Context, viewerID int64, slug string, add bool) (domain.Article, error) {
	return a.Service.ToggleFavorite(c.Request.Context(), viewerID, slug, add)
}

func (a *ArticleHandler) bookmark(c *gin.Context, viewerID int64, slug string, add bool) (domain.Article, error) {
	return a.Service.ToggleBookmark(c.Request.Context(), viewerID, slug, add)
}

func (a *ArticleHandler) Favorite(c *gin.Context)   { a.toggle(c, true, a.favorite) }
func (a *ArticleHandler) Unfavorite(c *gin.Context) { a.toggle(c, false, a.favorite) }
func (a *ArticleHandler) Bookmark(c *gin.Context)   { a.toggle(c, true, a.bookmark) }
func (a *ArticleHandler) Unbookmark(c *gin.Context) { a.toggle(c, false, a.bookmark) }

func (a *ArticleHandler) PopularTags(c *gin.Context) {
	tags, err := a.Service.PopularTags(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Tags{Tags: tags})
}
