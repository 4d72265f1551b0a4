package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/Guyuepp/conduit-feed/internal/rest/middleware"
)

// Routes wires the handlers to their paths.
type Routes struct {
	Articles *ArticleHandler
	Profiles *ProfileHandler
	Comments *CommentHandler

	JWTSecret string
	// Limiter throttles the toggle endpoints, nil disables it.
	Limiter *middleware.KeyedLimiter
}

func (rt Routes) Register(r gin.IRouter) {
	api := r.Group("/api")
	api.Use(middleware.Auth(rt.JWTSecret))

	api.GET("/articles", rt.Articles.ListFeed)
	api.GET("/articles/:slug", rt.Articles.GetBySlug)
	api.GET("/articles/:slug/comments", rt.Comments.List)
	api.GET("/tags", rt.Articles.PopularTags)
	api.GET("/profiles", rt.Profiles.Search)
	api.GET("/profiles/:username", rt.Profiles.GetProfile)

	authorized := api.Group("/")
	authorized.Use(middleware.RequireViewer())
	{
		authorized.GET("/feed", rt.Articles.ListFollowing)
		authorized.GET("/bookmarks", rt.Articles.ListBookmarked)
		authorized.POST("/articles", rt.Articles.Create)
		authorized.PUT("/articles/:slug", rt.Articles.Update)
		authorized.DELETE("/articles/:slug", rt.Articles.Delete)
		authorized.POST("/articles/:slug/comments", rt.Comments.Create)
		authorized.DELETE("/articles/:slug/comments/:id", rt.Comments.Delete)
	}

	toggles := authorized.Group("/")
	toggles.Use(middleware.RateLimit(rt.Limiter))
	{
		toggles.POST("/articles/:slug/favorite", rt.Articles.Favorite)
		toggles.DELETE("/articles/:slug/favorite", rt.Articles.Unfavorite)
		toggles.POST("/articles/:slug/bookmark", rt.Articles.Bookmark)
		toggles.DELETE("/articles/:slug/bookmark", rt.Articles.Unbookmark)
		toggles.POST("/profiles/:username/follow", rt.Profiles.Follow)
		toggles.DELETE("/profiles/:username/follow", rt.Profiles.Unfollow)
	}
}
