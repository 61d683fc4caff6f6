package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAuth redirects unauthenticated requests to the login page. The
// resolved user ID is stored on the Gin context for handlers.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := CurrentUserID(c)
		if !ok {
			AddFlash(c, "info", "Please log in to access this page.")
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// RedirectIfAuthenticated sends logged-in users straight to the dashboard
// from pages like login and register.
func RedirectIfAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUserID(c); ok {
			c.Redirect(http.StatusFound, "/dashboard")
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user's ID set by RequireAuth.
func UserID(c *gin.Context) uint {
	return c.GetUint(userIDKey)
}
