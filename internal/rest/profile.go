package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Guyuepp/conduit-feed/domain"
	"github.com/Guyuepp/conduit-feed/internal/rest/middleware"
	"github.com/Guyuepp/conduit-feed/internal/rest/response"
)

type ProfileHandler struct {
	Service domain.ProfileUsecase
}

func NewProfileHandler(svc domain.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{
		Service: svc,
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	p, err := h.Service.GetProfile(c.Request.Context(), c.Param("username"), middleware.ViewerID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SingleProfile{Profile: response.NewProfileFromDomain(&p)})
}

// Search 按用户名或简介搜索, 最多 20 条
func (h *ProfileHandler) Search(c *gin.Context) {
	ps, err := h.Service.SearchProfiles(c.Request.Context(), c.Query("search"), middleware.ViewerID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewProfiles(ps))
}

func (h *ProfileHandler) toggle(c *gin.Context, add bool) {
	viewerID, ok := requireViewer(c)
	if !ok {
		return
	}
	p, err := h.Service.ToggleFollow(c.Request.Context(), viewerID, c.Param("username"), add)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SingleProfile{Profile: response.NewProfileFromDomain(&p)})
}

func (h *ProfileHandler) Follow(c *gin.Context)   { h.toggle(c, true) }
func (h *ProfileHandler) Unfollow(c *gin.Context) { h.toggle(c, false) }
