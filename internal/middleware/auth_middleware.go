// Package middleware provides the gin middleware shared by every
// route group.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hassy/readcycle/internal/app/models/dto"
	"github.com/hassy/readcycle/internal/pkg/auth"
)

// Context keys set by the session middleware.
const (
	ContextUserID = "userID"
	ContextEmail  = "userEmail"
)

// RequireSession verifies the session cookie and stores the caller's
// identity on the gin context. Missing cookie is 401, a bad or expired
// token is 403.
func RequireSession(sessions *auth.SessionManager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.CodeUnauthorized, "Authentication required", nil))
			return
		}

		claims, err := sessions.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.CodeForbidden, "Invalid or expired session", nil))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}

// UserID returns the authenticated user id, or "" when the session
// middleware did not run.
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
