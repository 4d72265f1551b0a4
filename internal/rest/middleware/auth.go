package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

// ViewerKey is the gin context key holding the authenticated user id.
const ViewerKey = "user_id"

var errNoToken = errors.New("missing token")

// NewToken signs an HS256 token for userID. It is used by the token command
// and by tests; issuing tokens to end users is out of scope of this service.
func NewToken(secret string, userID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// bearer 支持 "Bearer xxx" 与 "Token xxx" 两种写法
func bearer(header string) (string, bool) {
	for _, prefix := range []string{"Bearer ", "Token "} {
		if strings.HasPrefix(header, prefix) {
			tok := strings.TrimSpace(header[len(prefix):])
			return tok, tok != ""
		}
	}
	return "", false
}

func parseViewer(secret, header string) (int64, error) {
	tokenStr, ok := bearer(header)
	if !ok {
		return 0, errNoToken
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, jwt.ErrTokenInvalidClaims
	}

	// MapClaims 的数字解码为 float64
	id, ok := claims["user_id"].(float64)
	if !ok || id <= 0 {
		return 0, fmt.Errorf("token has no user_id: %w", jwt.ErrTokenInvalidClaims)
	}
	return int64(id), nil
}

// Auth extracts the viewer from the Authorization header. A request without a
// token passes through anonymously; a token that is present but invalid is
// rejected.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseViewer(secret, c.GetHeader("Authorization"))
		switch {
		case err == nil:
			c.Set(ViewerKey, id)
		case errors.Is(err, errNoToken):
		default:
			logrus.WithField("request_id", c.GetString(RequestIDKey)).Debugf("rejected token: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "user not authenticated"})
			return
		}
		c.Next()
	}
}

// RequireViewer rejects anonymous requests. It must run after Auth.
func RequireViewer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ViewerID(c) <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "user not authenticated"})
			return
		}
		c.Next()
	}
}

// ViewerID returns the authenticated user id, or 0 for anonymous requests.
func ViewerID(c *gin.Context) int64 {
	if v, ok := c.Get(ViewerKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
