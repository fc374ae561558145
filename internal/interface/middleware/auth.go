package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gatherly/events-api/pkg/helpers"
	"github.com/gatherly/events-api/pkg/response"
)

const (
	CtxUserIDKey   = "userID"
	CtxUsernameKey = "username"
)

// Auth validates the Authorization: Bearer token and injects the caller's
// identity into the Gin context. Authentication is stateless: the token is
// the only credential, re-validated on every request.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if Authenticate(c, jwt) {
			c.Next()
		}
	}
}

// Authenticate validates the request's bearer token and stores the caller's
// identity in the context. On failure it writes 401, aborts, and reports
// false. Exposed for routes that decide per-request whether they need a
// caller identity.
func Authenticate(c *gin.Context, jwt *helpers.JWTManager) bool {
	token := helpers.BearerToken(c.GetHeader("Authorization"))
	if token == "" {
		response.AbortError(c, http.StatusUnauthorized, "missing bearer token", nil)
		return false
	}
	claims, err := jwt.Parse(token)
	if err != nil {
		response.AbortError(c, http.StatusUnauthorized, "invalid bearer token", nil)
		return false
	}
	c.Set(CtxUserIDKey, claims.UserID)
	c.Set(CtxUsernameKey, claims.Username)
	return true
}
