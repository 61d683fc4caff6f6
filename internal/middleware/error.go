package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
)

// ErrorHandler is the safety net for errors handlers attach to the Gin
// context instead of handling inline. AppErrors render the error page
// matching their status; anything else is logged and rendered as a 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			if appErr.Internal != nil {
				logger.Get().Errorw("app error",
					"code", appErr.Code,
					"message", appErr.Message,
					"internal", appErr.Internal.Error(),
					"path", c.Request.URL.Path,
				)
			}
			if appErr.StatusCode == http.StatusNotFound {
				c.HTML(http.StatusNotFound, "404.html", gin.H{"Title": "Page Not Found"})
				return
			}
			c.HTML(appErr.StatusCode, "500.html", gin.H{"Title": "Error"})
			return
		}

		logger.Get().Errorw("unexpected error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		c.HTML(http.StatusInternalServerError, "500.html", gin.H{"Title": "Error"})
	}
}

// NotFound renders the 404 page for unmatched routes.
func NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", gin.H{"Title": "Page Not Found"})
}
