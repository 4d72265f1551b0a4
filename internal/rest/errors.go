package rest

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/conduit-feed/domain"
	"github.com/Guyuepp/conduit-feed/internal/rest/middleware"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// getStatusCode maps domain errors to HTTP status codes
func getStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrBadParamInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	code := getStatusCode(err)
	entry := logrus.WithField("request_id", c.GetString(middleware.RequestIDKey))
	if code >= http.StatusInternalServerError {
		entry.Errorf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		// 不向客户端暴露内部错误
		c.AbortWithStatusJSON(code, ResponseError{Message: domain.ErrInternalServerError.Error()})
		return
	}
	entry.Debugf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	c.AbortWithStatusJSON(code, ResponseError{Message: err.Error()})
}

// abortWithBindError reports request body or query validation failures.
func abortWithBindError(c *gin.Context, err error) {
	res := ResponseError{Message: domain.ErrBadParamInput.Error()}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			res.Errors = append(res.Errors, strings.ToLower(fe.Field())+" failed on "+fe.Tag())
		}
	} else {
		res.Errors = []string{err.Error()}
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, res)
}

// requireViewer aborts with 401 for anonymous requests.
func requireViewer(c *gin.Context) (int64, bool) {
	id := middleware.ViewerID(c)
	if id <= 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ResponseError{Message: "user not authenticated"})
		return 0, false
	}
	return id, true
}
