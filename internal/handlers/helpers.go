// Package handlers contains the Gin handlers behind the server-rendered
// pages. Handlers bind forms, call services, and either re-render the page
// or flash a message and redirect, in the classic post/redirect/get shape.
package handlers

import (
	"encoding/json"
	"errors"
	"html/template"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fintrack/internal/charts"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/middleware"
)

// parsePathID parses a uint path parameter.
func parsePathID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return uint(id), nil
}

// render renders an HTML template with queued flash messages merged in.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Flashes"] = middleware.TakeFlashes(c)
	_, data["LoggedIn"] = middleware.CurrentUserID(c)
	c.HTML(status, name, data)
}

// flashError flashes the user-facing message for an error and logs any
// wrapped internal cause. Unexpected errors flash a generic message.
func flashError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		middleware.AddFlash(c, "danger", appErr.Message)
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	middleware.AddFlash(c, "danger", apperrors.ErrInternalServer.Message)
}

// respondWithError writes a JSON error response for the JSON endpoints.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}

// chartJSON marshals a chart descriptor for embedding in a script block.
// Returns "null" for empty data so the templates can skip the canvas.
func chartJSON(data *charts.Data) template.JS {
	if data == nil {
		return template.JS("null")
	}
	b, err := json.Marshal(data)
	if err != nil {
		return template.JS("null")
	}
	return template.JS(b)
}

// centsToAmount converts stored cents to the decimal units forms use.
func centsToAmount(cents int64) float64 {
	return float64(cents) / 100
}

// amountToCents converts a form amount in decimal units to stored cents.
func amountToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// TemplateFuncs are the helpers available inside the HTML templates.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"money": func(cents int64) string {
			return strconv.FormatFloat(float64(cents)/100, 'f', 2, 64)
		},
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	}
}

// redirect is a small wrapper to keep the post/redirect/get calls short.
func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}
