package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/conduit-feed/internal/rest/middleware"
)

const secret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func viewerEngine(required bool) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Auth(secret))
	if required {
		r.Use(middleware.RequireViewer())
	}
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"viewer": middleware.ViewerID(c)})
	})
	return r
}

func get(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthOptional(t *testing.T) {
	r := viewerEngine(false)

	w := get(r, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"viewer":0}`, w.Body.String())

	tok, err := middleware.NewToken(secret, 42, time.Hour)
	require.NoError(t, err)
	for _, scheme := range []string{"Bearer ", "Token "} {
		w = get(r, scheme+tok)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"viewer":42}`, w.Body.String())
	}

	// 携带了非法 token 仍然拒绝
	w = get(r, "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequired(t *testing.T) {
	r := viewerEngine(true)
	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)

	other, err := middleware.NewToken("another-secret", 42, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer "+other).Code)

	expired, err := middleware.NewToken(secret, 42, -time.Minute)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer "+expired).Code)

	// 签名正确但算法为 none
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": 42, "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer "+none).Code)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer "+noUser).Code)

	ok, err := middleware.NewToken(secret, 7, time.Hour)
	require.NoError(t, err)
	w := get(r, "Bearer "+ok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"viewer":7}`, w.Body.String())
}

func TestRequestID(t *testing.T) {
	r := viewerEngine(false)

	w := get(r, "")
	assert.Len(t, w.Header().Get(middleware.RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Header().Get(middleware.RequestIDHeader))
}

func TestTimeout(t *testing.T) {
	r := gin.New()
	r.Use(middleware.SetRequestContextWithTimeout(time.Millisecond))
	r.GET("/", func(c *gin.Context) {
		<-c.Request.Context().Done()
		assert.ErrorIs(t, c.Request.Context().Err(), context.DeadlineExceeded)
		c.Status(http.StatusGatewayTimeout)
	})
	assert.Equal(t, http.StatusGatewayTimeout, get(r, "").Code)
}

func TestRateLimitPerViewer(t *testing.T) {
	limiter := middleware.NewKeyedLimiter(0.001, 2)
	r := gin.New()
	r.Use(middleware.Auth(secret), middleware.RateLimit(limiter))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	alice, _ := middleware.NewToken(secret, 1, time.Hour)
	bob, _ := middleware.NewToken(secret, 2, time.Hour)

	assert.Equal(t, http.StatusOK, get(r, "Bearer "+alice).Code)
	assert.Equal(t, http.StatusOK, get(r, "Bearer "+alice).Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, "Bearer "+alice).Code)
	// 不同用户互不影响
	assert.Equal(t, http.StatusOK, get(r, "Bearer "+bob).Code)
}

func TestRateLimitDisabled(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RateLimit(middleware.NewKeyedLimiter(0, 1)))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	for range 5 {
		assert.Equal(t, http.StatusOK, get(r, "").Code)
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CORS([]string{"http://app.test"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://app.test")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://app.test", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://evil.test")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
