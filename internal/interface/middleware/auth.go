package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/user-accounts/pkg/helpers"
	"github.com/oksasatya/user-accounts/pkg/response"
)

const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
)

// TokenParser is satisfied by *helpers.JWTManager.
type TokenParser interface {
	ParseAccessToken(token string) (*helpers.Claims, error)
}

// JWTAuth accepts an access token from the Authorization bearer header or the
// access_token cookie, validates it and injects the caller's id into the context.
func JWTAuth(jwt TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			token, _ = c.Cookie(helpers.AccessCookie)
		}
		if token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUserEmailKey, claims.Email)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// RequireSelf lets the request through only when the authenticated user is
// the one named by the :param path segment. Must run after JWTAuth.
func RequireSelf(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid := c.GetString(CtxUserIDKey); uid == "" || uid != c.Param(param) {
			response.Error[any](c, http.StatusForbidden, "forbidden resource", nil)
			return
		}
		c.Next()
	}
}
