package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Guyuepp/conduit-feed/domain"
	"github.com/Guyuepp/conduit-feed/internal/rest/request"
	"github.com/Guyuepp/conduit-feed/internal/rest/response"
)

type CommentHandler struct {
	Service domain.CommentUsecase
}

func NewCommentHandler(svc domain.CommentUsecase) *CommentHandler {
	return &CommentHandler{
		Service: svc,
	}
}

func (h *CommentHandler) List(c *gin.Context) {
	comments, err := h.Service.List(c.Request.Context(), c.Param("slug"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewComments(comments))
}

func (h *CommentHandler) Create(c *gin.Context) {
	viewerID, ok := requireViewer(c)
	if !ok {
		return
	}
	var req request.CreateComment
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithBindError(c, err)
		return
	}

	comment, err := h.Service.Create(c.Request.Context(), viewerID, c.Param("slug"), req.Comment.Body)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.SingleComment{Comment: response.NewCommentFromDomain(&comment)})
}

func (h *CommentHandler) Delete(c *gin.Context) {
	viewerID, ok := requireViewer(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortWithError(c, domain.ErrNotFound)
		return
	}

	comment, err := h.Service.Delete(c.Request.Context(), viewerID, c.Param("slug"), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SingleComment{Comment: response.NewCommentFromDomain(&comment)})
}
