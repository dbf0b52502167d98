package mw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tmhire/tmhire-backend/internal/auth"
)

const (
	ctxUserID    = "user_id"
	ctxCompanyID = "company_id"
)

// Auth validates the bearer token and stores the user and company scope on
// the request context.
func Auth(manager *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := manager.VerifyToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxCompanyID, claims.CompanyID)
		c.Next()
	}
}

// CompanyID returns the authenticated tenant scope, or "" before Auth ran.
func CompanyID(c *gin.Context) string {
	return c.GetString(ctxCompanyID)
}

// UserID returns the authenticated user, or "" before Auth ran.
func UserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}
