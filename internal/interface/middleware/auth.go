package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dimasadyaksa/vidstream/pkg/helpers"
	"github.com/dimasadyaksa/vidstream/pkg/response"
)

const (
	CtxUserIDKey = "userID"
	CtxEmailKey  = "userEmail"
)

// RequireAuth reads the session cookie, verifies it, and injects the user id
// into the context. Requests without a valid token are rejected with 401.
func RequireAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.SessionCookieName)
		if err != nil || token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing session token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid or expired token", nil)
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxEmailKey, claims.Email)
		c.Next()
	}
}

// OptionalAuth resolves an identity when a valid session cookie is present and
// proceeds anonymously otherwise. It never aborts; downstream handlers decide
// whether an anonymous actor is acceptable.
func OptionalAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.SessionCookieName)
		if err == nil && token != "" {
			if claims, pErr := jwt.Parse(token); pErr == nil {
				c.Set(CtxUserIDKey, claims.UserID)
				c.Set(CtxEmailKey, claims.Email)
			}
		}
		c.Next()
	}
}
