package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"fintrack/internal/logger"
)

// Context and session keys shared by the middleware in this package.
const (
	sessionName  = "fintrack_session"
	userIDKey    = "user_id"
	requestIDKey = "request_id"

	sessionMaxAge = 7 * 24 * 60 * 60 // seconds
)

// NewSessionStore builds the cookie-backed session store. Sessions hold only
// the authenticated user's ID; everything else is loaded per request.
func NewSessionStore(secret string) sessions.Store {
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
	})
	return store
}

// Sessions returns the Gin middleware that attaches the session to each
// request.
func Sessions(store sessions.Store) gin.HandlerFunc {
	return sessions.Sessions(sessionName, store)
}

// SetCurrentUser records the user ID in the session after a successful login.
func SetCurrentUser(c *gin.Context, userID uint) error {
	session := sessions.Default(c)
	session.Set(userIDKey, userID)
	return session.Save()
}

// ClearSession drops all session state, logging the user out.
func ClearSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	return session.Save()
}

// CurrentUserID returns the authenticated user's ID from the session, or
// false when no user is logged in.
func CurrentUserID(c *gin.Context) (uint, bool) {
	session := sessions.Default(c)
	v := session.Get(userIDKey)
	if v == nil {
		return 0, false
	}
	id, ok := v.(uint)
	if !ok {
		return 0, false
	}
	return id, true
}

// Flash is a one-shot message carried across a redirect.
type Flash struct {
	Category string
	Message  string
}

// flashCategories are the message categories the templates style.
var flashCategories = []string{"success", "danger", "info", "warning"}

// AddFlash queues a flash message for the next rendered page.
func AddFlash(c *gin.Context, category, message string) {
	session := sessions.Default(c)
	session.AddFlash(message, "flash_"+category)
	if err := session.Save(); err != nil {
		logger.Get().Warnw("failed to save flash", "error", err.Error())
	}
}

// TakeFlashes drains all queued flash messages, oldest first per category.
func TakeFlashes(c *gin.Context) []Flash {
	session := sessions.Default(c)
	var flashes []Flash
	for _, category := range flashCategories {
		for _, v := range session.Flashes("flash_" + category) {
			if msg, ok := v.(string); ok {
				flashes = append(flashes, Flash{Category: category, Message: msg})
			}
		}
	}
	if len(flashes) > 0 {
		if err := session.Save(); err != nil {
			logger.Get().Warnw("failed to clear flashes", "error", err.Error())
		}
	}
	return flashes
}
