package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRequestLogging(t *testing.T) {
	t.Run("sets_unique_request_id_header", func(t *testing.T) {
		r := gin.New()
		r.Use(RequestLogging())
		r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

		first := httptest.NewRecorder()
		r.ServeHTTP(first, httptest.NewRequest("GET", "/ping", nil))
		second := httptest.NewRecorder()
		r.ServeHTTP(second, httptest.NewRequest("GET", "/ping", nil))

		id1 := first.Header().Get("X-Request-ID")
		id2 := second.Header().Get("X-Request-ID")
		if id1 == "" || id2 == "" {
			t.Fatal("expected X-Request-ID header on every response")
		}
		if id1 == id2 {
			t.Errorf("expected unique request IDs, got %s twice", id1)
		}
	})

	t.Run("exposes_request_id_to_handlers", func(t *testing.T) {
		r := gin.New()
		r.Use(RequestLogging())
		var fromContext string
		r.GET("/ping", func(c *gin.Context) {
			fromContext = c.GetString(requestIDKey)
			c.Status(http.StatusOK)
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest("GET", "/ping", nil))

		if fromContext == "" {
			t.Fatal("expected request ID in the Gin context")
		}
		if fromContext != rec.Header().Get("X-Request-ID") {
			t.Errorf("context ID %s does not match header %s", fromContext, rec.Header().Get("X-Request-ID"))
		}
	})
}
